package service

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Leganyst/saas-store/internal/apperr"
	"github.com/Leganyst/saas-store/internal/db"
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// dbFailure логирует причину (с SQLSTATE, если есть) и возвращает
// обобщённую DatabaseError; детали драйвера наружу не уходят.
func dbFailure(log *zap.Logger, operation string, err error, fields ...zap.Field) error {
	if appErr, ok := apperr.As(err); ok {
		return appErr
	}
	fields = append(fields, zap.String("operation", operation), zap.Error(err))
	if code := db.SQLState(err); code != "" {
		fields = append(fields, zap.String("sqlstate", code))
	}
	log.Error("database operation failed", fields...)
	return apperr.Database(operation, err)
}
