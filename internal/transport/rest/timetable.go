package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salon/internal/domain"
	"salon/pkg/validator"
)

// @Summary Создать расписание сотрудника
// @Description Создает недельное расписание; предыдущее активное расписание сотрудника деактивируется
// @Tags Расписание
// @Accept json
// @Produce json
// @Param input body domain.CreateTimetableDTO true "Данные расписания"
// @Success 201 {object} domain.Timetable "Созданное расписание"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Сотрудник не найден"
// @Security ApiKeyAuth
// @Router /timetables [post]
func (h *Handler) createTimetable(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		unauthorizedResponse(c)
		return
	}

	var req domain.CreateTimetableDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	timetable, err := h.services.Timetable.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.handleServiceError(c, err, "ошибка создания расписания")
		return
	}

	createdResponse(c, timetable)
}

// @Summary Получить расписание по ID
// @Tags Расписание
// @Produce json
// @Param id path int true "ID расписания"
// @Success 200 {object} domain.Timetable "Расписание"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 404 {object} errorResponseBody "Расписание не найдено"
// @Security ApiKeyAuth
// @Router /timetables/{id} [get]
func (h *Handler) getTimetableByID(c *gin.Context) {
	id, err := validator.ParseID(c.Param("id"))
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	timetable, err := h.services.Timetable.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err, "ошибка получения расписания")
		return
	}

	successResponse(c, http.StatusOK, timetable)
}

// @Summary Получить расписания сотрудника
// @Tags Расписание
// @Produce json
// @Param id path int true "ID сотрудника"
// @Param active_only query bool false "Только активные" default(true)
// @Success 200 {array} domain.Timetable "Расписания"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Security ApiKeyAuth
// @Router /employees/{id}/timetables [get]
func (h *Handler) getTimetables(c *gin.Context) {
	employeeID, err := validator.ParseID(c.Param("id"))
	if err != nil {
		badRequestResponse(c, "неверный формат ID сотрудника")
		return
	}

	timetables, err := h.services.Timetable.List(c.Request.Context(), employeeID, validator.ParseBool(c.Query("active_only"), true))
	if err != nil {
		h.handleServiceError(c, err, "ошибка получения расписаний")
		return
	}

	successResponse(c, http.StatusOK, timetables)
}

// @Summary Деактивировать расписание
// @Tags Расписание
// @Produce json
// @Param id path int true "ID расписания"
// @Success 200 {object} messageResponseType "Расписание деактивировано"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Расписание не найдено"
// @Security ApiKeyAuth
// @Router /timetables/{id}/deactivate [post]
func (h *Handler) deactivateTimetable(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		unauthorizedResponse(c)
		return
	}

	id, err := validator.ParseID(c.Param("id"))
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.services.Timetable.Deactivate(c.Request.Context(), actor, id); err != nil {
		h.handleServiceError(c, err, "ошибка деактивации расписания")
		return
	}

	messageResponse(c, http.StatusOK, "расписание деактивировано")
}

// @Summary Добавить исключение в расписание
// @Description Выходной, отпуск, больничный или особые часы на конкретную дату
// @Tags Расписание
// @Accept json
// @Produce json
// @Param id path int true "ID расписания"
// @Param input body domain.CreateExceptionDTO true "Данные исключения"
// @Success 201 {object} domain.TimetableException "Созданное исключение"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Расписание не найдено"
// @Security ApiKeyAuth
// @Router /timetables/{id}/exceptions [post]
func (h *Handler) addException(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		unauthorizedResponse(c)
		return
	}

	timetableID, err := validator.ParseID(c.Param("id"))
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	var req domain.CreateExceptionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	exception, err := h.services.Timetable.AddException(c.Request.Context(), actor, timetableID, req)
	if err != nil {
		h.handleServiceError(c, err, "ошибка добавления исключения")
		return
	}

	createdResponse(c, exception)
}

// @Summary Удалить исключение
// @Tags Расписание
// @Produce json
// @Param id path int true "ID исключения"
// @Success 200 {object} messageResponseType "Исключение удалено"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Исключение не найдено"
// @Security ApiKeyAuth
// @Router /exceptions/{id} [delete]
func (h *Handler) removeException(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		unauthorizedResponse(c)
		return
	}

	id, err := validator.ParseID(c.Param("id"))
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.services.Timetable.RemoveException(c.Request.Context(), actor, id); err != nil {
		h.handleServiceError(c, err, "ошибка удаления исключения")
		return
	}

	messageResponse(c, http.StatusOK, "исключение удалено")
}

// @Summary Рассмотреть заявку на исключение
// @Description Администратор одобряет или отклоняет отпуск сотрудника
// @Tags Расписание
// @Accept json
// @Produce json
// @Param id path int true "ID исключения"
// @Param input body domain.ReviewExceptionDTO true "Решение"
// @Success 200 {object} domain.TimetableException "Исключение после рассмотрения"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Исключение не найдено"
// @Security ApiKeyAuth
// @Router /exceptions/{id}/review [post]
func (h *Handler) reviewException(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		unauthorizedResponse(c)
		return
	}

	id, err := validator.ParseID(c.Param("id"))
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	var req domain.ReviewExceptionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	exception, err := h.services.Timetable.ReviewException(c.Request.Context(), actor, id, req)
	if err != nil {
		h.handleServiceError(c, err, "ошибка рассмотрения исключения")
		return
	}

	successResponse(c, http.StatusOK, exception)
}
