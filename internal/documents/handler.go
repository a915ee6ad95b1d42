package documents

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"das-backend/internal/shared/config"
	"das-backend/internal/shared/server/middleware"
	"das-backend/internal/shared/server/respond"
)

const (
	uploadField     = "files"
	maxFilesPerBody = 20
	multipartSlack  = 1 << 20
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler. A non-positive maxUploadBytes falls back
// to the default per-file limit.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = config.DefaultMaxUploadBytes
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload", h.upload)
	rg.GET("/documents", h.list)
}

func (h *Handler) upload(c *gin.Context) {
	limit := h.MaxUploadBytes*maxFilesPerBody + multipartSlack
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "File too large")
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "No files uploaded")
		return
	}
	defer form.RemoveAll()

	headers := form.File[uploadField]
	if len(headers) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "No files uploaded")
		return
	}
	for _, fh := range headers {
		if fh.Size > h.MaxUploadBytes {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "File too large")
			return
		}
	}

	uploads := make([]Upload, 0, len(headers))
	for _, fh := range headers {
		uploads = append(uploads, Upload{FileName: fh.Filename, Open: openPart(fh)})
	}

	result, err := h.Svc.IngestBatch(c.Request.Context(), uploads)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoFiles):
			respond.Error(c, http.StatusBadRequest, "validation_error", "No files uploaded")
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", err.Error())
		}
		return
	}

	c.Set(middleware.FilesCountKey, len(result.Files))
	c.Set(middleware.FilesFailedKey, result.Failed())

	files := make([]any, 0, len(result.Files))
	for _, fr := range result.Files {
		files = append(files, toFileResponse(fr))
	}
	respond.OK(c, gin.H{
		"message": "Files processed successfully",
		"files":   files,
	})
}

func (h *Handler) list(c *gin.Context) {
	docs, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list documents")
		return
	}

	resp := make([]DocumentResponse, 0, len(docs))
	for _, m := range docs {
		resp = append(resp, toDocumentResponse(m))
	}
	respond.OK(c, gin.H{"documents": resp})
}

func openPart(fh *multipart.FileHeader) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return fh.Open()
	}
}
