package gemini

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cvmentor-backend/internal/shared/metrics"
	"cvmentor-backend/internal/shared/server/respond"
	"cvmentor-backend/internal/shared/telemetry"
)

// Handler exposes the AI proxy endpoint.
type Handler struct {
	AI Analyzer
}

// NewHandler constructs a Handler.
func NewHandler(ai Analyzer) *Handler {
	return &Handler{AI: ai}
}

// RegisterRoutes attaches the proxy route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/gemini", h.analyze)
}

type analyzeRequest struct {
	Text       string `json:"text"`
	TargetRole string `json:"targetRole"`
	IsChat     bool   `json:"isChat"`
}

func (h *Handler) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "text is required", nil)
		return
	}

	if req.IsChat {
		metrics.IncChatRequest()
	}

	resp, err := h.AI.Analyze(c.Request.Context(), Request{
		Text:       req.Text,
		TargetRole: req.TargetRole,
		IsChat:     req.IsChat,
	})
	if err != nil {
		telemetry.Error("gemini.analyze failed", map[string]any{
			"request_id": c.GetString("requestId"),
			"is_chat":    req.IsChat,
			"error":      err.Error(),
		})
		respond.Error(c, http.StatusBadGateway, "upstream_error", "Failed to analyze with Gemini AI", nil)
		return
	}

	respond.OK(c, gin.H{
		"success":           true,
		"result":            resp.Result,
		"rawGeminiResponse": resp.RawText,
	})
}
