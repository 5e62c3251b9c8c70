package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Leganyst/saas-store/internal/apperr"
)

const (
	codeSuccess = 2000
	codeFailure = -1
)

// Envelope — общий формат ответа.
type Envelope struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Result  any    `json:"result,omitempty"`
	Field   string `json:"field,omitempty"`
}

func ok(c *gin.Context, result any) {
	c.JSON(http.StatusOK, Envelope{Code: codeSuccess, Type: "success", Message: "ok", Result: result})
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{Code: codeFailure, Type: "error", Message: message})
}

// writeError переводит доменную ошибку в HTTP-ответ.
// Подробности ошибок базы и конфигурации остаются в логе.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	e, isApp := apperr.As(err)
	if !isApp {
		log.Error("unexpected handler error", zap.String("path", c.FullPath()), zap.Error(err))
		fail(c, http.StatusInternalServerError, "internal error")
		return
	}

	switch e.Kind {
	case apperr.KindNotFound:
		fail(c, http.StatusNotFound, e.Message)
	case apperr.KindValidation:
		c.AbortWithStatusJSON(http.StatusBadRequest, Envelope{
			Code:    codeFailure,
			Type:    "error",
			Message: e.Message,
			Field:   e.Field,
		})
	default:
		log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("kind", string(e.Kind)),
			zap.Error(err),
		)
		fail(c, http.StatusInternalServerError, "internal error")
	}
}
