package rest

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salon/config"
	"salon/internal/service"
)

// TokenParser validates bearer tokens issued by the identity provider.
type TokenParser interface {
	Parse(token string) (int64, string, error)
}

// HealthCheck reports a dependency's readiness; nil error means healthy.
type HealthCheck func(ctx context.Context) error

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
	tokens   TokenParser
	checks   map[string]HealthCheck
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config, tokens TokenParser, checks map[string]HealthCheck) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
		tokens:   tokens,
		checks:   checks,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.requestIDMiddleware())

	router.Use(h.loggerMiddleware())

	router.Use(h.errorMiddleware())

	router.Use(h.corsMiddleware())

	router.GET("/health", h.health)

	api := router.Group("/api/v1")
	api.Use(h.authMiddleware())
	{
		appointments := api.Group("/appointments")
		{
			appointments.POST("", h.createAppointment)
			appointments.GET("", h.getAppointments)
			appointments.GET("/:id", h.getAppointmentByID)
			appointments.POST("/:id/cancel", h.cancelAppointment)
			appointments.POST("/:id/reschedule", h.rescheduleAppointment)

			staff := appointments.Group("", h.staffMiddleware())
			{
				staff.POST("/:id/confirm", h.confirmAppointment)
				staff.POST("/:id/start", h.startAppointment)
				staff.POST("/:id/complete", h.completeAppointment)
				staff.POST("/:id/no-show", h.markNoShow)
			}
		}

		employees := api.Group("/employees/:id")
		{
			employees.GET("/availability", h.getAvailability)
			employees.GET("/timetables", h.getTimetables)
			employees.GET("/time-blocks", h.getTimeBlocks)

			staff := employees.Group("", h.staffMiddleware())
			{
				staff.GET("/conflicts", h.checkConflict)
				staff.GET("/commission-rules", h.getCommissionRules)
				staff.GET("/commissions", h.getCommissions)
				staff.POST("/commission-statements", h.exportCommissionStatement)
				staff.GET("/commission-statements/:name", h.downloadCommissionStatement)
			}
		}

		h.initTimetableRoutes(api)

		timeBlocks := api.Group("/time-blocks", h.staffMiddleware())
		{
			timeBlocks.POST("", h.createTimeBlock)
			timeBlocks.DELETE("/:id", h.deleteTimeBlock)
		}

		rules := api.Group("/commission-rules", h.adminMiddleware())
		{
			rules.PUT("", h.upsertCommissionRule)
			rules.DELETE("/:id", h.deleteCommissionRule)
		}
	}
}

func (h *Handler) initTimetableRoutes(api *gin.RouterGroup) {
	timetables := api.Group("/timetables")
	{
		timetables.GET("/:id", h.getTimetableByID)

		staff := timetables.Group("", h.staffMiddleware())
		{
			staff.POST("", h.createTimetable)
			staff.POST("/:id/deactivate", h.deactivateTimetable)
			staff.POST("/:id/exceptions", h.addException)
		}
	}

	exceptions := api.Group("/exceptions", h.staffMiddleware())
	{
		exceptions.DELETE("/:id", h.removeException)
		exceptions.POST("/:id/review", h.adminMiddleware(), h.reviewException)
	}
}

// @Summary Проверка состояния сервиса
// @Tags Служебное
// @Produce json
// @Success 200 {object} map[string]interface{} "Все зависимости доступны"
// @Failure 503 {object} map[string]interface{} "Одна из зависимостей недоступна"
// @Router /health [get]
func (h *Handler) health(c *gin.Context) {
	status := http.StatusOK
	components := make(map[string]string, len(h.checks))

	for name, check := range h.checks {
		if err := check(c.Request.Context()); err != nil {
			h.logger.Warn("проверка состояния не пройдена", zap.String("component", name), zap.Error(err))
			components[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		components[name] = "up"
	}

	c.JSON(status, gin.H{
		"service":    h.config.Name,
		"version":    h.config.Version,
		"components": components,
	})
}
