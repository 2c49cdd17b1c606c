package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salon/internal/domain"
)

// handleServiceError maps domain errors onto HTTP responses.
func (h *Handler) handleServiceError(c *gin.Context, err error, action string) {
	var (
		conflict   *domain.ConflictError
		transition *domain.TransitionError
	)

	switch {
	case errors.As(err, &conflict):
		h.logger.Info(action+": конфликт времени", zap.Error(err))
		conflictResponse(c, conflict.Events)
	case errors.Is(err, domain.ErrValidation):
		h.logger.Warn(action+": ошибка валидации", zap.Error(err))
		badRequestResponse(c, publicMessage(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrForbidden):
		h.logger.Warn(action+": доступ запрещен", zap.Error(err))
		forbiddenResponse(c)
	case errors.Is(err, domain.ErrNotFound):
		h.logger.Info(action+": не найдено", zap.Error(err))
		notFoundResponse(c, publicMessage(err, domain.ErrNotFound))
	case errors.As(err, &transition):
		h.logger.Warn(action+": недопустимый переход статуса", zap.Error(err))
		errorResponse(c, http.StatusConflict, "недопустимое изменение статуса записи")
	case errors.Is(err, domain.ErrIllegalTransition):
		h.logger.Warn(action+": недопустимое действие с записью", zap.Error(err))
		errorResponse(c, http.StatusConflict, publicMessage(err, domain.ErrIllegalTransition))
	case errors.Is(err, domain.ErrConflict):
		h.logger.Info(action+": конфликт времени", zap.Error(err))
		conflictResponse(c, nil)
	default:
		h.logger.Error(action, zap.Error(err))
		internalServerErrorResponse(c)
	}
}

// publicMessage strips the sentinel prefix added by domain.Validationf and friends.
func publicMessage(err, sentinel error) string {
	msg := err.Error()
	if idx := strings.Index(msg, sentinel.Error()+": "); idx >= 0 {
		return msg[idx+len(sentinel.Error())+2:]
	}
	switch sentinel {
	case domain.ErrNotFound:
		return "не найдено"
	case domain.ErrIllegalTransition:
		return "недопустимое изменение статуса записи"
	default:
		return "неверные данные запроса"
	}
}
