package usecase

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"support-desk-api/exception"
)

func assertStatus(t *testing.T, err error, want int) *exception.AppError {
	t.Helper()

	var appErr *exception.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("error = %v (%T), want *exception.AppError with status %d", err, err, want)
	}
	if appErr.Code != want {
		t.Fatalf("status = %d (%q), want %d", appErr.Code, appErr.Message, want)
	}
	return appErr
}

func assertInvalidField(t *testing.T, err error, field string) {
	t.Helper()

	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v (%T), want validator.ValidationErrors", err, err)
	}
	for _, fieldErr := range invalid {
		if fieldErr.Field() == field {
			return
		}
	}
	t.Fatalf("validation errors %v do not mention %q", invalid, field)
}
