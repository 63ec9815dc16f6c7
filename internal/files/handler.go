package files

import (
	"net/http"

	"gobarber_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for file uploads.
type Handler struct {
	svc *Service
}

// NewHandler creates a new files handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Upload handles POST /files. The file arrives as the "file" multipart
// field.
func (h *Handler) Upload(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "file is required")
		return
	}

	src, err := header.Open()
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid file")
		return
	}
	defer src.Close()

	resp, err := h.svc.Upload(
		c.Request.Context(),
		header.Filename,
		header.Header.Get("Content-Type"),
		src,
		header.Size,
	)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}
