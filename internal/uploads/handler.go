package uploads

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"cvmentor-backend/internal/shared/metrics"
	"cvmentor-backend/internal/shared/server/respond"
)

const maxUploadBytes = 5 << 20

var allowedContentTypes = map[string]struct{}{
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
}

// Handler decodes multipart upload requests and maps pipeline errors to
// HTTP responses.
type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/uploads", h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	metrics.IncUploadStarted()
	started := time.Now()

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		metrics.IncUploadFailed()
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	email := strings.TrimSpace(c.PostForm("email"))
	if email == "" {
		metrics.IncUploadFailed()
		respond.Error(c, http.StatusBadRequest, "validation_error", "email is required", nil)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if _, ok := allowedContentTypes[contentType]; !ok && !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".docx") {
		metrics.IncUploadFailed()
		respond.Error(c, http.StatusBadRequest, "validation_error", "file type is not allowed", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		metrics.IncUploadFailed()
		respond.Error(c, http.StatusBadRequest, "validation_error", "failed to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		metrics.IncUploadFailed()
		respond.Error(c, http.StatusBadRequest, "validation_error", "failed to read file", nil)
		return
	}

	analysisID, err := h.Service.Process(c.Request.Context(), Input{
		FileName:    fileHeader.Filename,
		ContentType: contentType,
		Data:        data,
		Email:       email,
		Name:        strings.TrimSpace(c.PostForm("name")),
		TargetRole:  strings.TrimSpace(c.PostForm("targetRole")),
	})
	if err != nil {
		metrics.IncUploadFailed()
		switch {
		case errors.Is(err, ErrUnsupportedFile):
			respond.Error(c, http.StatusBadRequest, "validation_error", "file type is not allowed", nil)
		case errors.Is(err, ErrUpstream):
			respond.Error(c, http.StatusBadGateway, "upstream_error", "Failed to analyze resume", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to process upload", nil)
		}
		return
	}

	c.Set("analysisId", analysisID)
	metrics.IncUploadCompleted()
	metrics.ObserveUploadDurationMs(float64(time.Since(started).Milliseconds()))

	respond.OK(c, gin.H{"analysisId": analysisID})
}
