package exception

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"support-desk-api/dto/res"
)

// NewErrorHandler returns the fiber.ErrorHandler every route funnels into.
func NewErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		response := Translate(err)
		if response.Status >= fiber.StatusInternalServerError {
			log.WithError(err).Errorf("%s %s failed", ctx.Method(), ctx.Path())
		} else {
			log.WithError(err).Warnf("%s %s rejected", ctx.Method(), ctx.Path())
		}
		return ctx.Status(response.Status).JSON(response)
	}
}

// Translate maps any error returned by a handler to the error envelope.
func Translate(err error) res.ErrorResponse {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return res.ErrorResponse{Status: appErr.Code, Message: appErr.Message, Details: appErr.Details}
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make([]res.FieldError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			details = append(details, res.FieldError{
				Field:   fe.Field(),
				Message: fieldMessage(fe),
			})
		}
		return res.ErrorResponse{Status: fiber.StatusBadRequest, Message: "Missing required fields", Details: details}
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return res.ErrorResponse{Status: fiberErr.Code, Message: fiberErr.Message}
	}

	return res.ErrorResponse{Status: fiber.StatusInternalServerError, Message: "Internal Server Error"}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
