package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formflow/internal/application"
	"github.com/linskybing/formflow/pkg/response"
)

type UploadHandler struct {
	service *application.UploadService
}

func NewUploadHandler(service *application.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

type uploadResponse struct {
	Src      string `json:"src"`
	Filename string `json:"filename"`
	Message  string `json:"message"`
}

// Upload godoc
// @Summary Upload a file to object storage
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File"
// @Param form_id formData int false "Form whose file component limits apply"
// @Param component_id formData int false "File component whose limits apply"
// @Success 200 {object} uploadResponse
// @Failure 400 {object} response.ErrorResponse "No file uploaded"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/form/upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "No file uploaded"})
		return
	}
	formID, ok := optionalID(c.PostForm("form_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid form ID."})
		return
	}
	componentID, ok := optionalID(c.PostForm("component_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid component ID."})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Could not read uploaded file"})
		return
	}
	defer file.Close()

	result, err := h.service.Upload(c.Request.Context(), application.UploadInput{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Body:        file,
		FormID:      formID,
		ComponentID: componentID,
	})
	if err != nil {
		writeServiceError(c, err, "Failed to upload file.")
		return
	}
	c.JSON(http.StatusOK, uploadResponse{Src: result.Src, Filename: result.Filename, Message: "Upload successful"})
}

// optionalID parses an optional positive id form value. Blank means zero.
func optionalID(raw string) (uint, bool) {
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
