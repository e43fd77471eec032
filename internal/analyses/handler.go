package analyses

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cvmentor-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analyses repo.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/analyses/:id", h.getAnalysis)
}

func (h *Handler) getAnalysis(c *gin.Context) {
	analysisID, err := strconv.Atoi(c.Param("id"))
	if err != nil || analysisID <= 0 {
		respond.Error(c, http.StatusBadRequest, "invalid_id", "Invalid analysis ID", nil)
		return
	}
	c.Set("analysisId", analysisID)

	view, err := h.Repo.GetView(c.Request.Context(), analysisID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Analysis not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to fetch analysis", nil)
		}
		return
	}

	respond.OK(c, view)
}
