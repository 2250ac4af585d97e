package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formflow/internal/application"
	"github.com/linskybing/formflow/internal/config"
	"github.com/linskybing/formflow/internal/domain/submission"
	"github.com/linskybing/formflow/internal/idempotency"
	"github.com/linskybing/formflow/pkg/response"
	"github.com/linskybing/formflow/pkg/utils"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"
	replayedHeader       = "Idempotent-Replayed"
	jsonContentType      = "application/json; charset=utf-8"
)

type SubmissionHandler struct {
	service *application.SubmissionService
	replay  idempotency.Store
}

// NewSubmissionHandler builds the handler. replay may be nil, in which case
// Idempotency-Key headers are ignored.
func NewSubmissionHandler(service *application.SubmissionService, replay idempotency.Store) *SubmissionHandler {
	return &SubmissionHandler{service: service, replay: replay}
}

type submitResponse struct {
	Message    string                     `json:"message"`
	Submission *submission.SubmissionView `json:"submission"`
}

// SubmitAnswers godoc
// @Summary Submit answers for a form
// @Tags answers
// @Accept json
// @Produce json
// @Param formID path int true "Form ID"
// @Param Idempotency-Key header string false "Replays the first successful response for this key"
// @Param input body submission.SubmitInput true "Answers"
// @Success 201 {object} submitResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "Form not found."
// @Failure 409 {object} response.ErrorResponse "Schema changed or Idempotency-Key in progress"
// @Failure 500 {object} response.ErrorResponse "Failed to submit form."
// @Router /api/form/answer/{formID} [post]
func (h *SubmissionHandler) SubmitAnswers(c *gin.Context) {
	formID, ok := parseID(c, "formID")
	if !ok {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid form ID."})
		return
	}

	ctx := c.Request.Context()
	replayKey := h.replayKey(c, formID)
	if replayKey != "" {
		body, found, err := h.replay.Reserve(ctx, replayKey, config.IdempotencyPendingTTL)
		switch {
		case errors.Is(err, idempotency.ErrInFlight):
			c.JSON(http.StatusConflict, response.ErrorResponse{Error: "A request with this Idempotency-Key is still in progress."})
			return
		case err != nil:
			log.Printf("[WARN] idempotency reserve %s: %v", replayKey, err)
			replayKey = ""
		case found:
			c.Header(replayedHeader, "true")
			c.Data(http.StatusCreated, jsonContentType, body)
			return
		}
	}
	settled := false
	defer func() {
		if replayKey != "" && !settled {
			h.release(context.WithoutCancel(ctx), replayKey)
		}
	}()

	var input submission.SubmitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: bindingMessage(err)})
		return
	}
	h.applyClaims(c, &input)

	view, err := h.service.Submit(ctx, formID, input)
	if err != nil {
		writeServiceError(c, err, "Failed to submit form.")
		return
	}

	body, err := json.Marshal(submitResponse{Message: "Form submitted successfully.", Submission: view})
	if err != nil {
		writeServiceError(c, err, "Failed to submit form.")
		return
	}
	if replayKey != "" {
		if err := h.replay.Set(ctx, replayKey, body, config.IdempotencyTTL); err != nil {
			log.Printf("[WARN] idempotency store %s: %v", replayKey, err)
		} else {
			settled = true
		}
	}
	c.Data(http.StatusCreated, jsonContentType, body)
}

// applyClaims takes the respondent from a verified token when the body
// names none.
func (h *SubmissionHandler) applyClaims(c *gin.Context, input *submission.SubmitInput) {
	if input.Respondent() != "" {
		return
	}
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil || userID == "" {
		return
	}
	input.RespondentID = &userID
	if name, err := utils.GetUserNameFromContext(c); err == nil {
		input.RespondentName = name
	}
}

func (h *SubmissionHandler) release(ctx context.Context, key string) {
	if err := h.replay.Release(ctx, key); err != nil {
		log.Printf("[WARN] idempotency release %s: %v", key, err)
	}
}

func (h *SubmissionHandler) replayKey(c *gin.Context, formID uint) string {
	if h.replay == nil {
		return ""
	}
	key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
	if key == "" {
		return ""
	}
	return fmt.Sprintf("submit:%d:%s", formID, key)
}

// ClearForm godoc
// @Summary Delete every submission of a form and return the default values
// @Tags answers
// @Produce json
// @Param formID path int true "Form ID"
// @Success 200 {object} response.Payload
// @Failure 400 {object} response.Payload "Invalid form ID."
// @Failure 404 {object} response.Payload "Form not found."
// @Failure 500 {object} response.Payload "Failed to clear form answers."
// @Router /api/form/clear/{formID} [post]
func (h *SubmissionHandler) ClearForm(c *gin.Context) {
	formID, ok := parseID(c, "formID")
	if !ok {
		c.JSON(http.StatusBadRequest, response.Payload{Message: "Invalid form ID."})
		return
	}

	result, err := h.service.Clear(c.Request.Context(), formID)
	if err != nil {
		writePayloadError(c, err, "Failed to clear form answers.")
		return
	}
	c.JSON(http.StatusOK, response.Payload{Message: "Form answers cleared successfully.", Value: result})
}

// GetSubmission godoc
// @Summary Load one submission joined with its form
// @Tags answers
// @Produce json
// @Param formID path int true "Form ID"
// @Param submissionID path int true "Submission ID"
// @Success 200 {object} response.Payload
// @Failure 400 {object} response.Payload
// @Failure 404 {object} response.Payload
// @Router /api/form/answers/{formID}/{submissionID} [get]
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	formID, ok := parseID(c, "formID")
	if !ok {
		c.JSON(http.StatusBadRequest, response.Payload{Message: "Invalid form ID."})
		return
	}
	submissionID, ok := parseID(c, "submissionID")
	if !ok {
		c.JSON(http.StatusBadRequest, response.Payload{Message: "Invalid submission ID."})
		return
	}

	detail, err := h.service.GetSubmission(c.Request.Context(), formID, submissionID)
	if err != nil {
		writePayloadError(c, err, "Failed to load submission.")
		return
	}
	c.JSON(http.StatusOK, response.Payload{Message: "Submission loaded successfully.", Value: detail})
}

// ListSubmissions godoc
// @Summary List submission headers of a form, newest first
// @Tags answers
// @Produce json
// @Param formID path int true "Form ID"
// @Success 200 {array} submission.SubmissionHeader
// @Failure 404 {object} response.ErrorResponse
// @Router /api/form/{formID}/submissions [get]
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	formID, ok := parseID(c, "formID")
	if !ok {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid form ID."})
		return
	}

	headers, err := h.service.ListSubmissions(c.Request.Context(), formID)
	if err != nil {
		writeServiceError(c, err, "Failed to list submissions.")
		return
	}
	c.JSON(http.StatusOK, headers)
}
