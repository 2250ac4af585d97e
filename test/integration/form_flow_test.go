//go:build integration
// +build integration

package integration

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type formView struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	Components []struct {
		ID   uint   `json:"id"`
		Type string `json:"type"`
		Name string `json:"name"`
	} `json:"components"`
}

type submitResult struct {
	Message    string `json:"message"`
	Submission struct {
		ID           uint           `json:"id"`
		RespondentID string         `json:"respondentId"`
		Answers      map[string]any `json:"answers"`
	} `json:"submission"`
}

func createSignupForm(t *testing.T) formView {
	t.Helper()
	resp, err := testCtx.Client.POST("/api/form/create", map[string]any{
		"title": "Signup",
		"components": []map[string]any{
			{"type": "text", "name": "Full name", "properties": map[string]any{"required": true, "minLength": 2, "maxLength": 50, "defaultValue": "John Doe"}},
			{"type": "number", "name": "Age", "properties": map[string]any{"required": true, "min": 18, "max": 99, "step": 1, "defaultValue": 30}},
			{"type": "select", "name": "Department", "properties": map[string]any{"options": []string{"Sales", "Marketing", "Support"}, "defaultValue": "Marketing"}},
			{"type": "checkbox", "name": "Topics", "properties": map[string]any{"options": []string{"Newsletters", "Events", "Offers"}, "maxSelections": 2, "defaultValue": []string{"Newsletters"}}},
		},
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(resp.Body))

	var view formView
	require.NoError(t, resp.DecodeJSON(&view))
	require.Len(t, view.Components, 4)
	return view
}

func answersFor(view formView, name string, age any) map[string]any {
	return map[string]any{"answers": []map[string]any{
		{"componentId": view.Components[0].ID, "value": name},
		{"componentId": view.Components[1].ID, "value": age},
		{"componentId": view.Components[2].ID, "value": "Sales"},
		{"componentId": view.Components[3].ID, "value": []string{"Events"}},
	}}
}

func countSubmissions(t *testing.T, formID uint) int64 {
	t.Helper()
	n, err := testCtx.Env.Repos.Submission.CountByFormID(context.Background(), formID)
	require.NoError(t, err)
	return n
}

// --------------------- Submit ---------------------

func TestSubmit_AcceptedAndStored(t *testing.T) {
	view := createSignupForm(t)

	resp, err := testCtx.Client.POST(fmt.Sprintf("/api/form/answer/%d", view.ID), answersFor(view, "Alice Example", 28))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(resp.Body))

	var result submitResult
	require.NoError(t, resp.DecodeJSON(&result))
	assert.Equal(t, "Form submitted successfully.", result.Message)
	assert.Equal(t, "Alice Example", result.Submission.Answers[fmt.Sprint(view.Components[0].ID)])
	assert.Equal(t, []any{"Events"}, result.Submission.Answers[fmt.Sprint(view.Components[3].ID)])

	resp, err = testCtx.Client.GET(fmt.Sprintf("/api/form/answers/%d/%d", view.ID, result.Submission.ID))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detail struct {
		Value struct {
			Submission struct {
				Answers map[string]any `json:"answers"`
			} `json:"submission"`
		} `json:"value"`
	}
	require.NoError(t, resp.DecodeJSON(&detail))
	assert.Equal(t, result.Submission.Answers, detail.Value.Submission.Answers)
}

func TestSubmit_RejectedLeavesNoRows(t *testing.T) {
	view := createSignupForm(t)

	resp, err := testCtx.Client.POST(fmt.Sprintf("/api/form/answer/%d", view.ID), answersFor(view, "", 28))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Component 'Full name' is required.", resp.GetErrorMessage())

	assert.Zero(t, countSubmissions(t, view.ID))
}

func TestSubmit_RespondentFromToken(t *testing.T) {
	view := createSignupForm(t)
	path := fmt.Sprintf("/api/form/answer/%d", view.ID)

	for i := 0; i < 2; i++ {
		resp, err := testCtx.Respondent.POST(path, answersFor(view, "Token User", 40))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(resp.Body))

		var result submitResult
		require.NoError(t, resp.DecodeJSON(&result))
		assert.Equal(t, testCtx.RespondentID, result.Submission.RespondentID)
	}

	u, err := testCtx.Env.Repos.User.FindByID(context.Background(), testCtx.RespondentID)
	require.NoError(t, err)
	assert.Equal(t, "respondent_integration", u.Username)
	assert.Equal(t, int64(2), countSubmissions(t, view.ID))
}

func TestSubmit_ConcurrentSubmissionsAllStored(t *testing.T) {
	view := createSignupForm(t)
	path := fmt.Sprintf("/api/form/answer/%d", view.ID)

	const workers = 8
	var wg sync.WaitGroup
	codes := make([]int, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := testCtx.Client.POST(path, answersFor(view, fmt.Sprintf("User %d", i), 20+i))
			if err == nil {
				codes[i] = resp.StatusCode
			}
		}(i)
	}
	wg.Wait()

	for _, code := range codes {
		assert.Equal(t, http.StatusCreated, code)
	}
	assert.Equal(t, int64(workers), countSubmissions(t, view.ID))
}

func TestSubmit_IdempotencyKey(t *testing.T) {
	view := createSignupForm(t)
	path := fmt.Sprintf("/api/form/answer/%d", view.ID)
	headers := map[string]string{"Idempotency-Key": "integration-key"}

	first, err := testCtx.Client.POST(path, answersFor(view, "Replay", 33), headers)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, first.StatusCode)

	second, err := testCtx.Client.POST(path, answersFor(view, "Replay", 33), headers)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, second.StatusCode)
	assert.Equal(t, "true", second.Headers.Get("Idempotent-Replayed"))
	assert.JSONEq(t, string(first.Body), string(second.Body))

	assert.Equal(t, int64(1), countSubmissions(t, view.ID))
}

func TestSubmit_ConcurrentRetriesWithOneKey(t *testing.T) {
	view := createSignupForm(t)
	path := fmt.Sprintf("/api/form/answer/%d", view.ID)
	headers := map[string]string{"Idempotency-Key": "integration-concurrent"}

	const retries = 6
	var wg sync.WaitGroup
	codes := make([]int, retries)
	for i := 0; i < retries; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := testCtx.Client.POST(path, answersFor(view, "Same Retry", 35), headers)
			if err == nil {
				codes[i] = resp.StatusCode
			}
		}(i)
	}
	wg.Wait()

	for _, code := range codes {
		assert.Contains(t, []int{http.StatusCreated, http.StatusConflict}, code)
	}
	assert.Equal(t, int64(1), countSubmissions(t, view.ID))
}

// --------------------- Clear / Delete ---------------------

func TestClear_ReturnsDefaults(t *testing.T) {
	view := createSignupForm(t)
	resp, err := testCtx.Client.POST(fmt.Sprintf("/api/form/answer/%d", view.ID), answersFor(view, "Alice Example", 28))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = testCtx.Client.POST(fmt.Sprintf("/api/form/clear/%d", view.ID), nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(resp.Body))

	var body struct {
		Message string `json:"message"`
		Value   struct {
			FormID        uint           `json:"formId"`
			ClearedValues map[string]any `json:"clearedValues"`
		} `json:"value"`
	}
	require.NoError(t, resp.DecodeJSON(&body))
	assert.Equal(t, view.ID, body.Value.FormID)
	assert.Equal(t, map[string]any{
		fmt.Sprint(view.Components[0].ID): "John Doe",
		fmt.Sprint(view.Components[1].ID): float64(30),
		fmt.Sprint(view.Components[2].ID): "Marketing",
		fmt.Sprint(view.Components[3].ID): []any{"Newsletters"},
	}, body.Value.ClearedValues)
	assert.Zero(t, countSubmissions(t, view.ID))
}

func TestDelete_RemovesFormAndSubmissions(t *testing.T) {
	view := createSignupForm(t)
	resp, err := testCtx.Client.POST(fmt.Sprintf("/api/form/answer/%d", view.ID), answersFor(view, "Alice Example", 28))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = testCtx.Client.DELETE(fmt.Sprintf("/api/form/delete/%d", view.ID), map[string]any{"confirm": true})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(resp.Body))

	resp, err = testCtx.Client.GET(fmt.Sprintf("/api/form/answer/%d", view.ID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Zero(t, countSubmissions(t, view.ID))
}

// --------------------- Upload ---------------------

func TestUpload_ToObjectStore(t *testing.T) {
	resp, err := testCtx.Client.POSTFile("/api/form/upload", "badge.png", "image/png", []byte("\x89PNG-integration"), nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(resp.Body))

	var body struct {
		Src      string `json:"src"`
		Filename string `json:"filename"`
	}
	require.NoError(t, resp.DecodeJSON(&body))
	data, contentType, ok := testCtx.Env.Objects.Get(body.Filename)
	require.True(t, ok)
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, []byte("\x89PNG-integration"), data)
}
