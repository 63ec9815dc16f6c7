package providers

import (
	"net/http"
	"strconv"
	"time"

	"gobarber_backend/platform/httpkit"
	"gobarber_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// AvailableRequest carries the day the availability grid is asked for.
type AvailableRequest struct {
	Date string `form:"date" validate:"required,datetime=2006-01-02"`
}

// Handler handles HTTP requests for the provider catalog.
type Handler struct {
	svc *Service
	val *validator.Validator
}

// NewHandler creates a new providers handler.
func NewHandler(svc *Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// List handles GET /providers.
func (h *Handler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, items)
}

// Available handles GET /providers/:providerId/available.
func (h *Handler) Available(c *gin.Context) {
	providerID, err := strconv.ParseInt(c.Param("providerId"), 10, 64)
	if err != nil || providerID <= 0 {
		httpkit.Error(c, http.StatusBadRequest, "invalid request")
		return
	}

	var req AvailableRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed")
		return
	}

	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid date")
		return
	}

	grid, err := h.svc.Available(c.Request.Context(), providerID, day)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, grid)
}
