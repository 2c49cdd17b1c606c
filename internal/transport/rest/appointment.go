package rest

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salon/internal/domain"
	"salon/pkg/validator"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// @Summary Создать запись
// @Description Бронирует время сотрудника под услугу. Клиент записывает себя, сотрудник или администратор указывает client_id.
// @Tags Записи
// @Accept json
// @Produce json
// @Param input body domain.CreateAppointmentDTO true "Данные записи"
// @Success 201 {object} domain.Appointment "Созданная запись"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 404 {object} errorResponseBody "Сотрудник или услуга не найдены"
// @Failure 409 {object} conflictResponseBody "Время занято"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /appointments [post]
func (h *Handler) createAppointment(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		unauthorizedResponse(c)
		return
	}

	var req domain.CreateAppointmentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	appointment, err := h.services.Appointment.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.handleServiceError(c, err, "ошибка создания записи")
		return
	}

	createdResponse(c, appointment)
}

// @Summary Получить список записей
// @Description Клиент видит свои записи, сотрудник свои, администратор все
// @Tags Записи
// @Produce json
// @Param employee_id query int false "ID сотрудника"
// @Param client_id query int false "ID клиента"
// @Param status query string false "Статус записи"
// @Param start_date query string false "Начало периода (RFC 3339)"
// @Param end_date query string false "Конец периода (RFC 3339)"
// @Param limit query int false "Количество записей" default(50)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} paginatedResponse "Список записей"
// @Failure 400 {object} errorResponseBody "Неверные параметры запроса"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /appointments [get]
func (h *Handler) getAppointments(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		unauthorizedResponse(c)
		return
	}

	var filter domain.AppointmentFilter
	var err error

	if filter.EmployeeID, err = validator.ParseOptionalID(c.Query("employee_id")); err != nil {
		badRequestResponse(c, "неверный формат ID сотрудника")
		return
	}
	if filter.ClientID, err = validator.ParseOptionalID(c.Query("client_id")); err != nil {
		badRequestResponse(c, "неверный формат ID клиента")
		return
	}
	if status := c.Query("status"); status != "" {
		s := domain.AppointmentStatus(status)
		filter.Status = &s
	}
	if v := c.Query("start_date"); v != "" {
		start, err := validator.ParseInstant(v)
		if err != nil {
			badRequestResponse(c, err.Error())
			return
		}
		filter.StartDate = &start
	}
	if v := c.Query("end_date"); v != "" {
		end, err := validator.ParseInstant(v)
		if err != nil {
			badRequestResponse(c, err.Error())
			return
		}
		filter.EndDate = &end
	}

	filter.Limit, filter.Offset = validator.ParsePage(c.Query("limit"), c.Query("offset"), defaultPageSize)
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}

	appointments, total, err := h.services.Appointment.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.handleServiceError(c, err, "ошибка получения списка записей")
		return
	}

	paginatedSuccessResponse(c, appointments, total, filter.Offset/filter.Limit+1, filter.Limit)
}

// @Summary Получить запись по ID
// @Tags Записи
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} domain.Appointment "Данные записи"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Security ApiKeyAuth
// @Router /appointments/{id} [get]
func (h *Handler) getAppointmentByID(c *gin.Context) {
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

	appointment, err := h.services.Appointment.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.handleServiceError(c, err, "ошибка получения записи")
		return
	}

	successResponse(c, http.StatusOK, appointment)
}

// @Summary Отменить запись
// @Tags Записи
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} domain.Appointment "Отмененная запись"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Failure 409 {object} errorResponseBody "Запись уже завершена или отменена"
// @Security ApiKeyAuth
// @Router /appointments/{id}/cancel [post]
func (h *Handler) cancelAppointment(c *gin.Context) {
	h.changeStatus(c, "ошибка отмены записи", h.services.Appointment.Cancel)
}

// @Summary Подтвердить запись
// @Tags Записи
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} domain.Appointment "Подтвержденная запись"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Failure 409 {object} errorResponseBody "Недопустимое изменение статуса"
// @Security ApiKeyAuth
// @Router /appointments/{id}/confirm [post]
func (h *Handler) confirmAppointment(c *gin.Context) {
	h.changeStatus(c, "ошибка подтверждения записи", h.services.Appointment.Confirm)
}

// @Summary Начать обслуживание
// @Tags Записи
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} domain.Appointment "Запись в работе"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Failure 409 {object} errorResponseBody "Недопустимое изменение статуса"
// @Security ApiKeyAuth
// @Router /appointments/{id}/start [post]
func (h *Handler) startAppointment(c *gin.Context) {
	h.changeStatus(c, "ошибка начала обслуживания", h.services.Appointment.Start)
}

// @Summary Отметить неявку клиента
// @Tags Записи
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} domain.Appointment "Запись с неявкой"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Failure 409 {object} errorResponseBody "Недопустимое изменение статуса"
// @Security ApiKeyAuth
// @Router /appointments/{id}/no-show [post]
func (h *Handler) markNoShow(c *gin.Context) {
	h.changeStatus(c, "ошибка отметки неявки", h.services.Appointment.NoShow)
}

// @Summary Завершить запись
// @Description Фиксирует оплату и начисляет комиссию сотруднику
// @Tags Записи
// @Accept json
// @Produce json
// @Param id path int true "ID записи"
// @Param input body domain.CompleteAppointmentDTO false "Данные об оплате"
// @Success 200 {object} domain.Appointment "Завершенная запись"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Failure 409 {object} errorResponseBody "Недопустимое изменение статуса"
// @Security ApiKeyAuth
// @Router /appointments/{id}/complete [post]
func (h *Handler) completeAppointment(c *gin.Context) {
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

	var req domain.CompleteAppointmentDTO
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warn("неверный формат данных", zap.Error(err))
			badRequestResponse(c, "неверный формат данных")
			return
		}
	}

	appointment, err := h.services.Appointment.Complete(c.Request.Context(), actor, id, req)
	if err != nil {
		h.handleServiceError(c, err, "ошибка завершения записи")
		return
	}

	successResponse(c, http.StatusOK, appointment)
}

// @Summary Перенести запись
// @Description Переносит запись на новое время с сохранением длительности
// @Tags Записи
// @Accept json
// @Produce json
// @Param id path int true "ID записи"
// @Param input body domain.RescheduleAppointmentDTO true "Новое время начала"
// @Success 200 {object} domain.Appointment "Перенесенная запись"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Failure 409 {object} conflictResponseBody "Время занято"
// @Security ApiKeyAuth
// @Router /appointments/{id}/reschedule [post]
func (h *Handler) rescheduleAppointment(c *gin.Context) {
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

	var req domain.RescheduleAppointmentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	appointment, err := h.services.Appointment.Reschedule(c.Request.Context(), actor, id, req)
	if err != nil {
		h.handleServiceError(c, err, "ошибка переноса записи")
		return
	}

	successResponse(c, http.StatusOK, appointment)
}

type statusChangeFunc func(ctx context.Context, actor domain.Actor, id int64) (*domain.Appointment, error)

func (h *Handler) changeStatus(c *gin.Context, action string, change statusChangeFunc) {
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

	appointment, err := change(c.Request.Context(), actor, id)
	if err != nil {
		h.handleServiceError(c, err, action)
		return
	}

	successResponse(c, http.StatusOK, appointment)
}
