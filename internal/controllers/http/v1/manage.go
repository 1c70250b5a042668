package http

import (
	"github.com/gofiber/fiber/v2"

	"weather-dashboard/internal/scheduler"
)

type ProviderResponse struct {
	Name    string            `json:"name" example:"openweathermap"`
	Breaker string            `json:"breaker" example:"closed"`
	Probe   *scheduler.Status `json:"probe,omitempty"`
}

// GetProvider godoc
// @Summary Get provider status
// @Description Reports the upstream circuit breaker state and the result of the last scheduled probe
// @Tags Manage
// @Produce json
// @Success 200 {object} ProviderResponse
// @Router /manage/provider [get]
func (r *routes) handleProvider(c *fiber.Ctx) error {
	response := ProviderResponse{
		Name:    r.service.RepositoryName(),
		Breaker: r.service.BreakerState(),
	}
	if r.probe != nil {
		status := r.probe.Status()
		response.Probe = &status
	}
	return c.JSON(response)
}
