package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salon/internal/domain"
	"salon/pkg/validator"
)

// @Summary Создать или обновить правило комиссии
// @Description Правило задается для услуги или категории услуг; повторный вызов обновляет процент
// @Tags Комиссии
// @Accept json
// @Produce json
// @Param input body domain.UpsertCommissionRuleDTO true "Данные правила"
// @Success 200 {object} domain.CommissionRule "Сохраненное правило"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Сотрудник, услуга или категория не найдены"
// @Security ApiKeyAuth
// @Router /commission-rules [put]
func (h *Handler) upsertCommissionRule(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		unauthorizedResponse(c)
		return
	}

	var req domain.UpsertCommissionRuleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	rule, err := h.services.Commission.UpsertRule(c.Request.Context(), actor, req)
	if err != nil {
		h.handleServiceError(c, err, "ошибка сохранения правила комиссии")
		return
	}

	successResponse(c, http.StatusOK, rule)
}

// @Summary Удалить правило комиссии
// @Tags Комиссии
// @Produce json
// @Param id path int true "ID правила"
// @Success 200 {object} messageResponseType "Правило удалено"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Правило не найдено"
// @Security ApiKeyAuth
// @Router /commission-rules/{id} [delete]
func (h *Handler) deleteCommissionRule(c *gin.Context) {
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

	if err := h.services.Commission.DeleteRule(c.Request.Context(), actor, id); err != nil {
		h.handleServiceError(c, err, "ошибка удаления правила комиссии")
		return
	}

	messageResponse(c, http.StatusOK, "правило удалено")
}

// @Summary Получить правила комиссии сотрудника
// @Tags Комиссии
// @Produce json
// @Param id path int true "ID сотрудника"
// @Success 200 {array} domain.CommissionRule "Правила"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /employees/{id}/commission-rules [get]
func (h *Handler) getCommissionRules(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		unauthorizedResponse(c)
		return
	}

	employeeID, err := validator.ParseID(c.Param("id"))
	if err != nil {
		badRequestResponse(c, "неверный формат ID сотрудника")
		return
	}

	rules, err := h.services.Commission.ListRules(c.Request.Context(), actor, employeeID)
	if err != nil {
		h.handleServiceError(c, err, "ошибка получения правил комиссии")
		return
	}

	successResponse(c, http.StatusOK, rules)
}

// @Summary Получить начисленные комиссии сотрудника
// @Tags Комиссии
// @Produce json
// @Param id path int true "ID сотрудника"
// @Param from query string false "Начало периода (RFC 3339)"
// @Param to query string false "Конец периода (RFC 3339)"
// @Param limit query int false "Количество записей" default(50)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {array} domain.Commission "Комиссии"
// @Failure 400 {object} errorResponseBody "Неверные параметры запроса"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /employees/{id}/commissions [get]
func (h *Handler) getCommissions(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		unauthorizedResponse(c)
		return
	}

	employeeID, err := validator.ParseID(c.Param("id"))
	if err != nil {
		badRequestResponse(c, "неверный формат ID сотрудника")
		return
	}

	filter := domain.CommissionFilter{EmployeeID: &employeeID}
	if v := c.Query("from"); v != "" {
		from, err := validator.ParseInstant(v)
		if err != nil {
			badRequestResponse(c, err.Error())
			return
		}
		filter.From = &from
	}
	if v := c.Query("to"); v != "" {
		to, err := validator.ParseInstant(v)
		if err != nil {
			badRequestResponse(c, err.Error())
			return
		}
		filter.To = &to
	}
	filter.Limit, filter.Offset = validator.ParsePage(c.Query("limit"), c.Query("offset"), defaultPageSize)

	commissions, err := h.services.Commission.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.handleServiceError(c, err, "ошибка получения комиссий")
		return
	}

	successResponse(c, http.StatusOK, commissions)
}

type statementRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

// @Summary Сформировать выписку комиссий
// @Description Выгружает CSV с комиссиями за период [from, to) в хранилище и возвращает ссылку для скачивания
// @Tags Комиссии
// @Accept json
// @Produce json
// @Param id path int true "ID сотрудника"
// @Param input body statementRequest true "Период (YYYY-MM-DD)"
// @Success 201 {object} domain.CommissionStatement "Выписка"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /employees/{id}/commission-statements [post]
func (h *Handler) exportCommissionStatement(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		unauthorizedResponse(c)
		return
	}

	employeeID, err := validator.ParseID(c.Param("id"))
	if err != nil {
		badRequestResponse(c, "неверный формат ID сотрудника")
		return
	}

	var req statementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	from, err := validator.ParseDate(req.From)
	if err != nil {
		badRequestResponse(c, err.Error())
		return
	}
	to, err := validator.ParseDate(req.To)
	if err != nil {
		badRequestResponse(c, err.Error())
		return
	}

	statement, err := h.services.Commission.ExportStatement(c.Request.Context(), actor, employeeID, from, to)
	if err != nil {
		h.handleServiceError(c, err, "ошибка формирования выписки")
		return
	}

	createdResponse(c, statement)
}

// @Summary Скачать выписку комиссий
// @Tags Комиссии
// @Produce text/csv
// @Param id path int true "ID сотрудника"
// @Param name path string true "Имя файла выписки (последний сегмент object_key)"
// @Success 200 {file} file "CSV выписки"
// @Failure 400 {object} errorResponseBody "Некорректное имя выписки"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Выписка не найдена"
// @Security ApiKeyAuth
// @Router /employees/{id}/commission-statements/{name} [get]
func (h *Handler) downloadCommissionStatement(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		unauthorizedResponse(c)
		return
	}

	employeeID, err := validator.ParseID(c.Param("id"))
	if err != nil {
		badRequestResponse(c, "неверный формат ID сотрудника")
		return
	}

	name := c.Param("name")
	data, err := h.services.Commission.DownloadStatement(c.Request.Context(), actor, employeeID, name)
	if err != nil {
		h.handleServiceError(c, err, "ошибка получения выписки")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "text/csv", data)
}
