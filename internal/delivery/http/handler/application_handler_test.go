package handler

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v3"

	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/usecase"
)

func appErrorStatus(t *testing.T, err error) int {
	t.Helper()
	var appErr *middleware.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *middleware.AppError, got %T", err)
	}
	return appErr.StatusCode
}

func TestMapApplicationErrorStatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"profile required", usecase.ErrProfileRequired, fiber.StatusBadRequest},
		{"already applied", usecase.ErrAlreadyApplied, fiber.StatusConflict},
		{"posting not available", usecase.ErrPostingNotAvailable, fiber.StatusBadRequest},
		{"posting expired", usecase.ErrPostingExpired, fiber.StatusBadRequest},
		{"withdrawal blocked", usecase.ErrWithdrawalBlocked, fiber.StatusBadRequest},
		{"not found", usecase.ErrNotFound, fiber.StatusNotFound},
		{"forbidden", usecase.ErrForbidden, fiber.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := appErrorStatus(t, mapApplicationError(tc.err))
			if got != tc.want {
				t.Fatalf("status = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestMapApplicationErrorNil(t *testing.T) {
	if err := mapApplicationError(nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
