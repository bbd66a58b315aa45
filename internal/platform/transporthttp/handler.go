package transporthttp

import (
	"context"
	"net/http"

	"github.com/andreypavlenko/matchengine/modules/matching"
	"github.com/gin-gonic/gin"
)

// EngineFunc is the engine's Match method, bound at wiring time in
// cmd/matchengine so this package never imports modules/engine.
type EngineFunc func(ctx context.Context, req matching.MatchRequest) (matching.MatchResult, error)

// Handler exposes the engine over HTTP.
type Handler struct {
	engine EngineFunc
}

// NewHandler builds a Handler around an engine's Match method.
func NewHandler(engineFunc EngineFunc) *Handler {
	return &Handler{engine: engineFunc}
}

// PostMatch handles POST /v1/match.
func (h *Handler) PostMatch(c *gin.Context) {
	var req matching.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, string(matching.CodeInvalidRequest), err.Error())
		return
	}
	if req.HardGateMode == "" {
		req.HardGateMode = matching.HardGateStrict
	}

	result, err := h.engine(c.Request.Context(), req)
	if err != nil {
		code := matching.GetErrorCode(err)
		RespondWithError(c, statusForCode(code), string(code), err.Error())
		return
	}

	RespondWithData(c, http.StatusOK, result)
}

// Healthz handles GET /healthz.
func (h *Handler) Healthz(c *gin.Context) {
	RespondWithHealth(c, map[string]string{"engine": "up"})
}
