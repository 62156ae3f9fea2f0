package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"simplimed/internal/domain"
	"simplimed/internal/service"
)

// uploadFormField is the multipart field name carrying the report file.
const uploadFormField = "medicalReport"

// UploadHandler handles report upload and text extraction.
type UploadHandler struct {
	uploadService service.UploadService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Upload handles POST /api/upload
// @Summary Upload a report file
// @Description Upload a report (PDF, text, or image, max 10MB) and extract its text
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param medicalReport formData file true "Report file (PDF, TXT, JPG, or PNG)"
// @Success 200 {object} domain.UploadEnvelope "Upload with extraction result"
// @Failure 400 {object} ErrorEnvelope "Missing file, bad type, or too large"
// @Failure 500 {object} ErrorEnvelope "Storage failure"
// @Router /api/upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile(uploadFormField)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer func() { _ = file.Close() }()

	up, err := h.uploadService.Upload(c.Request.Context(), service.UploadInput{
		File:   file,
		Header: header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, domain.UploadEnvelope{
		Success:    true,
		Message:    "File uploaded successfully",
		Filename:   up.OriginalName,
		SavedAs:    up.StoredName,
		Size:       up.SizeBytes,
		Type:       up.ContentType,
		UploadTime: up.UploadedAt.Format(time.RFC3339),
		Extraction: up.Extraction,
	})
}
