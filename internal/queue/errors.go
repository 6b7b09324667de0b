package queue

import (
	"fmt"

	"github.com/pkg/errors"
)

// ValidationError — некорректный или отсутствующий входной параметр.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Message)
}

// NotFoundError — очередь или запись в очереди не найдена.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// StorageError — сбой хранилища. Автоматически не повторяется.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func missing(field string) error {
	return &ValidationError{Field: field, Message: "is required"}
}

// wrap оставляет доменные ошибки как есть, всё остальное считает сбоем хранилища.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}

	var validation *ValidationError
	var notFound *NotFoundError
	var storage *StorageError
	if errors.As(err, &validation) || errors.As(err, &notFound) || errors.As(err, &storage) {
		return err
	}

	return &StorageError{Op: op, Err: err}
}
