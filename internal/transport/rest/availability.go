package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salon/pkg/validator"
)

// @Summary Получить доступность сотрудника
// @Description Возвращает рабочие интервалы сотрудника по дням с учетом исключений из расписания
// @Tags Доступность
// @Produce json
// @Param id path int true "ID сотрудника"
// @Param from query string true "Дата начала (YYYY-MM-DD)"
// @Param to query string true "Дата окончания включительно (YYYY-MM-DD)"
// @Success 200 {array} domain.AvailabilitySlot "Интервалы доступности"
// @Failure 400 {object} errorResponseBody "Неверные параметры запроса"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 404 {object} errorResponseBody "Сотрудник не найден"
// @Security ApiKeyAuth
// @Router /employees/{id}/availability [get]
func (h *Handler) getAvailability(c *gin.Context) {
	employeeID, err := validator.ParseID(c.Param("id"))
	if err != nil {
		badRequestResponse(c, "неверный формат ID сотрудника")
		return
	}

	from, err := validator.ParseDate(c.Query("from"))
	if err != nil {
		badRequestResponse(c, err.Error())
		return
	}
	to, err := validator.ParseDate(c.Query("to"))
	if err != nil {
		badRequestResponse(c, err.Error())
		return
	}

	slots, err := h.services.Availability.GetAvailability(c.Request.Context(), employeeID, from, to)
	if err != nil {
		h.handleServiceError(c, err, "ошибка получения доступности")
		return
	}

	successResponse(c, http.StatusOK, slots)
}

// @Summary Проверить пересечения
// @Description Возвращает записи и блокировки сотрудника, пересекающиеся с интервалом [start, end)
// @Tags Доступность
// @Produce json
// @Param id path int true "ID сотрудника"
// @Param start query string true "Начало интервала (RFC 3339)"
// @Param end query string true "Конец интервала (RFC 3339)"
// @Param exclude_id query int false "ID записи, которую не учитывать"
// @Success 200 {object} domain.ConflictResult "Результат проверки"
// @Failure 400 {object} errorResponseBody "Неверные параметры запроса"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ только для сотрудников и администраторов"
// @Security ApiKeyAuth
// @Router /employees/{id}/conflicts [get]
func (h *Handler) checkConflict(c *gin.Context) {
	employeeID, err := validator.ParseID(c.Param("id"))
	if err != nil {
		badRequestResponse(c, "неверный формат ID сотрудника")
		return
	}

	start, err := validator.ParseInstant(c.Query("start"))
	if err != nil {
		badRequestResponse(c, err.Error())
		return
	}
	end, err := validator.ParseInstant(c.Query("end"))
	if err != nil {
		badRequestResponse(c, err.Error())
		return
	}
	excludeID, err := validator.ParseOptionalID(c.Query("exclude_id"))
	if err != nil {
		badRequestResponse(c, "неверный формат ID записи")
		return
	}

	result, err := h.services.Conflict.CheckConflict(c.Request.Context(), employeeID, start, end, excludeID)
	if err != nil {
		h.handleServiceError(c, err, "ошибка проверки пересечений")
		return
	}

	successResponse(c, http.StatusOK, result)
}
