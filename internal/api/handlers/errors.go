package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/linskybing/formflow/internal/application"
	"github.com/linskybing/formflow/pkg/response"
	"github.com/linskybing/formflow/pkg/validation"
)

// badRequestErrors are caller mistakes reported with their own message.
var badRequestErrors = []error{
	application.ErrEmptyAnswers,
	application.ErrUnknownComponent,
	application.ErrNoComponents,
	application.ErrInvalidComponent,
	application.ErrTitleRequired,
	application.ErrConfirmationRequired,
	application.ErrUnsupportedMediaType,
	application.ErrFileTooLarge,
	application.ErrMissingFilename,
}

type failure struct {
	status      int
	message     string
	componentID *uint
}

// classify maps a service error to a status and a client-safe message.
// Anything unrecognised becomes a 500 carrying fallback.
func classify(err error, fallback string) failure {
	var verr *validation.Error
	if errors.As(err, &verr) {
		id := verr.ComponentID
		return failure{status: http.StatusBadRequest, message: verr.Reason, componentID: &id}
	}
	var rerr *validation.ReferenceError
	if errors.As(err, &rerr) {
		id := rerr.ComponentID
		return failure{status: http.StatusBadRequest, message: rerr.Error(), componentID: &id}
	}

	switch {
	case errors.Is(err, application.ErrFormNotFound):
		return failure{status: http.StatusNotFound, message: "Form not found."}
	case errors.Is(err, application.ErrSubmissionNotFound):
		return failure{status: http.StatusNotFound, message: "Submission not found for this form."}
	case errors.Is(err, application.ErrSchemaChanged):
		return failure{status: http.StatusConflict, message: "Form changed while submitting. Reload the form and try again."}
	case errors.Is(err, application.ErrConfirmationRequired):
		return failure{status: http.StatusBadRequest, message: "Confirmation required before deleting form."}
	case errors.Is(err, application.ErrUnsupportedMediaType):
		return failure{status: http.StatusBadRequest, message: "Invalid file type"}
	case errors.Is(err, application.ErrStorageUnavailable):
		return failure{status: http.StatusServiceUnavailable, message: "File storage is not available."}
	}
	for _, known := range badRequestErrors {
		if errors.Is(err, known) {
			return failure{status: http.StatusBadRequest, message: err.Error()}
		}
	}
	return failure{status: http.StatusInternalServerError, message: fallback}
}

// writeServiceError replies with an ErrorResponse body.
func writeServiceError(c *gin.Context, err error, fallback string) {
	f := classify(err, fallback)
	if f.status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(f.status, response.ErrorResponse{Error: f.message, ComponentID: f.componentID})
}

// writePayloadError replies with a {message, value: null} body.
func writePayloadError(c *gin.Context, err error, fallback string) {
	f := classify(err, fallback)
	if f.status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(f.status, response.Payload{Message: f.message})
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// bindingMessage turns binding failures into messages a form builder can show.
func bindingMessage(err error) string {
	var verr validator.ValidationErrors
	if !errors.As(err, &verr) {
		return "Invalid request body: " + err.Error()
	}

	labels := map[string]string{
		"FormID":             "form_id",
		"Type":               "type",
		"Title":              "title",
		"RespondentID":       "respondentId",
		"LegacyRespondentID": "respondent_id",
	}

	msgs := make([]string, 0, len(verr))
	for _, fe := range verr {
		field, ok := labels[fe.StructField()]
		if !ok {
			field = strings.ToLower(fe.StructField())
		}
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(msgs, "; ")
}
