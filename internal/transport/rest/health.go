package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} messageResponseType
// @Router /healthz [get]
func (h *Handler) healthz(c *gin.Context) {
	messageResponse(c, http.StatusOK, "ok")
}

// @Summary Readiness probe
// @Description Reports ready once the appointment store answers a ping.
// @Tags Health
// @Produce json
// @Success 200 {object} messageResponseType
// @Failure 503 {object} errorResponseBody
// @Router /readyz [get]
func (h *Handler) readyz(c *gin.Context) {
	if err := h.health.Ping(c.Request.Context()); err != nil {
		h.logger.Warn("readiness check failed", zap.Error(err))
		errorResponse(c, http.StatusServiceUnavailable, "storage unavailable")
		return
	}
	messageResponse(c, http.StatusOK, "ready")
}
