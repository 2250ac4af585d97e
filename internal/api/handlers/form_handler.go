package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formflow/internal/application"
	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/linskybing/formflow/pkg/response"
	"github.com/linskybing/formflow/pkg/utils"
)

type FormHandler struct {
	service *application.FormService
}

func NewFormHandler(service *application.FormService) *FormHandler {
	return &FormHandler{service: service}
}

// CreateForm godoc
// @Summary Create a form with its components
// @Tags forms
// @Accept json
// @Produce json
// @Param input body form.CreateFormDTO true "Form definition"
// @Success 201 {object} form.FormView
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/form/create [post]
func (h *FormHandler) CreateForm(c *gin.Context) {
	var input form.CreateFormDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: bindingMessage(err)})
		return
	}
	if input.UserID == "" {
		if userID, err := utils.GetUserIDFromContext(c); err == nil {
			input.UserID = userID
		}
	}

	view, err := h.service.CreateForm(c.Request.Context(), input)
	if err != nil {
		writeServiceError(c, err, "Failed to create form.")
		return
	}
	c.JSON(http.StatusCreated, view)
}

// ListForms godoc
// @Summary List forms, newest first
// @Tags forms
// @Produce json
// @Success 200 {object} map[string][]form.FormView
// @Failure 500 {object} response.ErrorResponse
// @Router /api/form/list [get]
func (h *FormHandler) ListForms(c *gin.Context) {
	forms, err := h.service.ListForms(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "Failed to list forms.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"forms": forms})
}

// GetForm godoc
// @Summary Load a form for answering
// @Tags answers
// @Produce json
// @Param formID path int true "Form ID"
// @Success 200 {object} response.Payload
// @Failure 400 {object} response.Payload "Invalid form ID."
// @Failure 404 {object} response.Payload "Form not found."
// @Router /api/form/answer/{formID} [get]
func (h *FormHandler) GetForm(c *gin.Context) {
	formID, ok := parseID(c, "formID")
	if !ok {
		c.JSON(http.StatusBadRequest, response.Payload{Message: "Invalid form ID."})
		return
	}

	view, err := h.service.GetForm(c.Request.Context(), formID)
	if err != nil {
		writePayloadError(c, err, "Failed to fetch form.")
		return
	}
	c.JSON(http.StatusOK, response.Payload{Message: "Form loaded successfully.", Value: view})
}

// RenameForm godoc
// @Summary Rename a form
// @Tags forms
// @Accept json
// @Produce json
// @Param formID path int true "Form ID"
// @Param input body form.RenameFormDTO true "New title"
// @Success 200 {object} response.Payload
// @Failure 400 {object} response.Payload
// @Failure 404 {object} response.Payload
// @Router /api/form/rename/{formID} [put]
func (h *FormHandler) RenameForm(c *gin.Context) {
	formID, ok := parseID(c, "formID")
	if !ok {
		c.JSON(http.StatusBadRequest, response.Payload{Message: "Invalid form ID."})
		return
	}
	var input form.RenameFormDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.Payload{Message: bindingMessage(err)})
		return
	}

	view, err := h.service.RenameForm(c.Request.Context(), formID, input.Title)
	if err != nil {
		writePayloadError(c, err, "Failed to rename form.")
		return
	}
	c.JSON(http.StatusOK, response.Payload{Message: "Form renamed successfully", Value: view})
}

// PublishForm godoc
// @Summary Publish a form
// @Tags forms
// @Produce json
// @Param formID path int true "Form ID"
// @Success 200 {object} response.Payload
// @Failure 404 {object} response.Payload
// @Router /api/form/publish/{formID} [put]
func (h *FormHandler) PublishForm(c *gin.Context) {
	formID, ok := parseID(c, "formID")
	if !ok {
		c.JSON(http.StatusBadRequest, response.Payload{Message: "Invalid form ID."})
		return
	}

	view, err := h.service.PublishForm(c.Request.Context(), formID)
	if err != nil {
		writePayloadError(c, err, "Failed to publish form.")
		return
	}
	c.JSON(http.StatusOK, response.Payload{Message: "Form published successfully", Value: view})
}

// DeleteForm godoc
// @Summary Delete a form with its components and submissions
// @Tags forms
// @Accept json
// @Produce json
// @Param formID path int true "Form ID"
// @Param input body form.DeleteFormDTO true "Must carry confirm=true"
// @Success 200 {object} response.Payload
// @Failure 400 {object} response.Payload "Confirmation required before deleting form."
// @Failure 404 {object} response.Payload
// @Router /api/form/delete/{formID} [delete]
func (h *FormHandler) DeleteForm(c *gin.Context) {
	formID, ok := parseID(c, "formID")
	if !ok {
		c.JSON(http.StatusBadRequest, response.Payload{Message: "Invalid form ID."})
		return
	}
	var input form.DeleteFormDTO
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, response.Payload{Message: bindingMessage(err)})
		return
	}

	if err := h.service.DeleteForm(c.Request.Context(), formID, input.Confirm); err != nil {
		writePayloadError(c, err, "Failed to delete form.")
		return
	}
	c.JSON(http.StatusOK, response.Payload{Message: "Form deleted successfully.", Value: gin.H{"formId": formID}})
}

// CreateComponent godoc
// @Summary Add a component to a form
// @Tags components
// @Accept json
// @Produce json
// @Param input body form.CreateComponentDTO true "Component"
// @Success 201 {object} schema.Descriptor
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/form/components [post]
func (h *FormHandler) CreateComponent(c *gin.Context) {
	var input form.CreateComponentDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: bindingMessage(err)})
		return
	}

	component, err := h.service.AddComponent(c.Request.Context(), input)
	if err != nil {
		writeServiceError(c, err, "Failed to create component.")
		return
	}
	c.JSON(http.StatusCreated, component)
}

// ListComponents godoc
// @Summary List a form's components in canonical order
// @Tags components
// @Produce json
// @Param formID path int true "Form ID"
// @Success 200 {array} schema.Descriptor
// @Failure 404 {object} response.ErrorResponse
// @Router /api/form/{formID}/components [get]
func (h *FormHandler) ListComponents(c *gin.Context) {
	formID, ok := parseID(c, "formID")
	if !ok {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid form ID."})
		return
	}

	view, err := h.service.GetForm(c.Request.Context(), formID)
	if err != nil {
		writeServiceError(c, err, "Failed to list components.")
		return
	}
	c.JSON(http.StatusOK, view.Components)
}
