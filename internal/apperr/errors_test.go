package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrAuthenticationRequired, http.StatusUnauthorized},
		{fmt.Errorf("purchase: %w", ErrAuthenticationRequired), http.StatusUnauthorized},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("get itinerary 3: %w", ErrNotFound), http.StatusNotFound},
		{ErrNoSelection, http.StatusBadRequest},
		{Validation("quantity", "must be at least 1"), http.StatusBadRequest},
		{Conflict("username already taken"), http.StatusConflict},
		{ErrPaymentDeclined, http.StatusPaymentRequired},
		{Persistence("create purchase", errors.New("disk I/O error")), http.StatusInternalServerError},
		{errors.New("unexpected"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err), tc.err.Error())
	}
}

func TestMessageHidesDatabaseDetail(t *testing.T) {
	err := Persistence("create purchase", errors.New("UNIQUE constraint failed: purchases.transaction_code"))

	assert.Equal(t, "could not save, please retry", Message(err))
	assert.Contains(t, err.Error(), "UNIQUE constraint failed")
	assert.True(t, IsPersistence(fmt.Errorf("wrapped: %w", err)))
}

func TestMessageUsesSentinelText(t *testing.T) {
	err := fmt.Errorf("get purchase 9: %w", ErrNotFound)

	assert.Equal(t, "not found", Message(err))
	assert.Equal(t, "name: is required", Message(Validation("name", "is required")))
	assert.Equal(t, "already checked in today", Message(Conflict("already checked in today")))
	assert.Equal(t, "internal error", Message(errors.New("boom")))
}

func TestClassified(t *testing.T) {
	assert.True(t, Classified(Validation("name", "required")))
	assert.True(t, Classified(fmt.Errorf("save: %w", ErrNotFound)))
	assert.True(t, Classified(Persistence("create itinerary", errors.New("locked"))))
	assert.False(t, Classified(errors.New("commit failed")))
}
