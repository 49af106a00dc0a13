package rest

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agenda/internal/repository"
	"agenda/internal/service"
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	health   repository.HealthChecker
	limiter  *RedisRateLimiter
}

// NewHandler wires the HTTP surface. limiter may be nil.
func NewHandler(services *service.Services, logger *zap.Logger, health repository.HealthChecker, limiter *RedisRateLimiter) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		health:   health,
		limiter:  limiter,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.requestIDMiddleware())

	router.Use(h.loggerMiddleware())

	router.Use(h.errorMiddleware())

	router.Use(h.corsMiddleware())

	router.GET("/healthz", h.healthz)
	router.GET("/readyz", h.readyz)

	api := router.Group("/api/v1")
	{
		api.GET("/services", h.getServices)
		api.GET("/available_slots", h.getAvailableSlots)
		api.POST("/appointments", h.bookingRateLimit(), h.createAppointment)

		admin := api.Group("/admin")
		{
			services := admin.Group("/services")
			{
				services.POST("", h.createService)
				services.GET("", h.getServices)
				services.GET("/:id", h.getServiceByID)
				services.PUT("/:id", h.updateService)
				services.DELETE("/:id", h.deleteService)
			}

			admin.GET("/appointments", h.getAppointments)
			admin.POST("/reports/agenda", h.exportAgenda)
		}
	}
}
