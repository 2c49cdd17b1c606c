package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salon/internal/domain"
	"salon/pkg/validator"
)

// @Summary Заблокировать время сотрудника
// @Description Перерыв, обучение или другое событие, не являющееся записью клиента
// @Tags Блокировки
// @Accept json
// @Produce json
// @Param input body domain.CreateTimeBlockDTO true "Данные блокировки"
// @Success 201 {object} domain.TimeBlock "Созданная блокировка"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 409 {object} conflictResponseBody "Время занято"
// @Security ApiKeyAuth
// @Router /time-blocks [post]
func (h *Handler) createTimeBlock(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		unauthorizedResponse(c)
		return
	}

	var req domain.CreateTimeBlockDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	block, err := h.services.TimeBlock.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.handleServiceError(c, err, "ошибка создания блокировки")
		return
	}

	createdResponse(c, block)
}

// @Summary Удалить блокировку
// @Tags Блокировки
// @Produce json
// @Param id path int true "ID блокировки"
// @Success 200 {object} messageResponseType "Блокировка удалена"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Блокировка не найдена"
// @Security ApiKeyAuth
// @Router /time-blocks/{id} [delete]
func (h *Handler) deleteTimeBlock(c *gin.Context) {
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

	if err := h.services.TimeBlock.Delete(c.Request.Context(), actor, id); err != nil {
		h.handleServiceError(c, err, "ошибка удаления блокировки")
		return
	}

	messageResponse(c, http.StatusOK, "блокировка удалена")
}

// @Summary Получить блокировки сотрудника
// @Tags Блокировки
// @Produce json
// @Param id path int true "ID сотрудника"
// @Param start query string true "Начало периода (RFC 3339)"
// @Param end query string true "Конец периода (RFC 3339)"
// @Success 200 {array} domain.TimeBlock "Блокировки"
// @Failure 400 {object} errorResponseBody "Неверные параметры запроса"
// @Security ApiKeyAuth
// @Router /employees/{id}/time-blocks [get]
func (h *Handler) getTimeBlocks(c *gin.Context) {
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

	blocks, err := h.services.TimeBlock.List(c.Request.Context(), employeeID, start, end)
	if err != nil {
		h.handleServiceError(c, err, "ошибка получения блокировок")
		return
	}

	successResponse(c, http.StatusOK, blocks)
}
