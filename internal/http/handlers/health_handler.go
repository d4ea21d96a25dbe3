package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string `json:"status"             example:"healthy"`
	Timestamp string `json:"timestamp"          example:"2024-03-01T12:30:00.123456Z"`
	Service   string `json:"service"            example:"NeuralFlow SaaS"`
	Platform  string `json:"platform,omitempty" example:"Vercel"`
}

// Health godoc
// @ID          health
// @Summary     Liveness probe
// @Tags        ops
// @Produce     json
// @Success     200  {object}  handlers.HealthResponse
// @Router      /health [get]
func (h *Handlers) Health(c *gin.Context) {
	ok(c, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC().Format(time.RFC3339Nano),
		Service:   h.info.Service,
		Platform:  h.info.Platform,
	})
}
