package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestErrorsMatchByKind(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, Validation("bad input: %d", 7), ErrValidation)
	assert.ErrorIs(t, NotFound("user not found"), ErrNotFound)
	assert.ErrorIs(t, InsufficientFunds("broke"), ErrInsufficientFunds)
	assert.ErrorIs(t, OutOfStock("empty"), ErrOutOfStock)
	assert.ErrorIs(t, Conflict("version moved"), ErrConflict)

	assert.NotErrorIs(t, NotFound("user not found"), ErrValidation)
	assert.NotErrorIs(t, errors.New("plain"), ErrInternal)
}

func TestErrorsMatchThroughWrapping(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("purchase failed: %w", OutOfStock("empty"))
	assert.ErrorIs(t, wrapped, ErrOutOfStock)
	assert.Equal(t, fiber.StatusConflict, StatusCode(wrapped))
}

func TestStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{Validation("bad"), fiber.StatusBadRequest},
		{Authentication("no"), fiber.StatusUnauthorized},
		{Forbidden("no"), fiber.StatusForbidden},
		{NotFound("gone"), fiber.StatusNotFound},
		{InsufficientFunds("broke"), fiber.StatusPaymentRequired},
		{OutOfStock("empty"), fiber.StatusConflict},
		{Duplicate("again"), fiber.StatusConflict},
		{Conflict("moved"), fiber.StatusConflict},
		{Internal("boom"), fiber.StatusInternalServerError},
		{errors.New("plain"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusCode(tt.err), "error %v", tt.err)
	}
}
