// Package apperr описывает типизированные доменные ошибки, которые сервисы
// возвращают вызывающему коду вместо «сырых» ошибок драйвера.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNotFound      Kind = "NotFoundError"
	KindValidation    Kind = "ValidationError"
	KindDatabase      Kind = "DatabaseError"
	KindConfiguration Kind = "ConfigurationError"
)

// Error — единственный конкретный тип доменной ошибки.
// Заполняется только поле, соответствующее Kind:
// Resource для NotFound, Field для Validation, Operation для Database,
// Setting для Configuration.
type Error struct {
	Kind      Kind
	Message   string
	Resource  string
	Field     string
	Operation string
	Setting   string

	// исходная причина: только для логов, наружу не отдаётся
	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("%s: %s", e.Resource, e.Message)
	case KindValidation:
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	case KindDatabase:
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", e.Operation, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %s", e.Operation, e.Message)
	case KindConfiguration:
		return fmt.Sprintf("%s: %s", e.Setting, e.Message)
	default:
		return e.Message
	}
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound — ресурс не найден в рамках тенанта.
func NotFound(resource, message string) *Error {
	return &Error{Kind: KindNotFound, Resource: resource, Message: message}
}

// Validation — входные данные или состояние не позволяют выполнить операцию.
func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// Database оборачивает неожиданную ошибку хранилища.
func Database(operation string, cause error) *Error {
	return &Error{
		Kind:      KindDatabase,
		Operation: operation,
		Message:   "database operation failed",
		Err:       cause,
	}
}

func Databasef(operation string, cause error, format string, args ...any) *Error {
	e := Database(operation, cause)
	e.Message = fmt.Sprintf(format, args...)
	return e
}

// Configuration — неизвестное значение в сохранённой конфигурации.
func Configuration(setting, message string) *Error {
	return &Error{Kind: KindConfiguration, Setting: setting, Message: message}
}

// As извлекает *Error из цепочки.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf возвращает категорию ошибки или пустую строку для чужих ошибок.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return ""
}

func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsDatabase(err error) bool   { return KindOf(err) == KindDatabase }
