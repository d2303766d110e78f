package exception

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// AppError is an error that already knows the HTTP status and the message the
// caller should see. Err keeps the underlying cause for logging.
type AppError struct {
	Code    int
	Message string
	Details any
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap attaches the cause and returns the same error.
func (e *AppError) Wrap(err error) *AppError {
	e.Err = err
	return e
}

func (e *AppError) WithDetails(details any) *AppError {
	e.Details = details
	return e
}

func New(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Unauthorized(message string) *AppError {
	return New(fiber.StatusUnauthorized, message)
}

func BadRequest(message string) *AppError {
	return New(fiber.StatusBadRequest, message)
}

func NotFound(message string) *AppError {
	return New(fiber.StatusNotFound, message)
}

func Conflict(message string) *AppError {
	return New(fiber.StatusConflict, message)
}

func TooManyRequests(message string) *AppError {
	return New(fiber.StatusTooManyRequests, message)
}

func Internal(message string) *AppError {
	return New(fiber.StatusInternalServerError, message)
}
