package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/alumnet/alumni-network/internal/core/domain"
)

func statusOf(statuses map[uint]domain.UserStatus) StatusLookup {
	return func(_ context.Context, userID uint) (domain.UserStatus, error) {
		s, ok := statuses[userID]
		if !ok {
			return "", domain.ErrUserNotFound
		}
		return s, nil
	}
}

func TestActiveAccount(t *testing.T) {
	lookup := statusOf(map[uint]domain.UserStatus{
		1: domain.UserStatusActive,
		2: domain.UserStatusSuspended,
		3: domain.UserStatusPending,
	})

	cases := []struct {
		name   string
		method string
		userID uint
		want   int
	}{
		{name: "active write", method: http.MethodPost, userID: 1, want: http.StatusOK},
		{name: "pending write", method: http.MethodPatch, userID: 3, want: http.StatusOK},
		{name: "suspended write", method: http.MethodPost, userID: 2, want: http.StatusForbidden},
		{name: "suspended delete", method: http.MethodDelete, userID: 2, want: http.StatusForbidden},
		{name: "suspended read", method: http.MethodGet, userID: 2, want: http.StatusOK},
		{name: "deleted account", method: http.MethodPut, userID: 9, want: http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(tc.method, "/", nil), rec)
			c.Set(ContextUserID, tc.userID)

			handler := ActiveAccount(lookup)(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})
			if err := handler(c); err != nil {
				e.HTTPErrorHandler(err, c)
			}
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestActiveAccount_LookupError(t *testing.T) {
	boom := errors.New("db down")
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), httptest.NewRecorder())
	c.Set(ContextUserID, uint(1))

	handler := ActiveAccount(func(context.Context, uint) (domain.UserStatus, error) {
		return "", boom
	})(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, boom) {
		t.Fatalf("expected lookup error, got %v", err)
	}
}

func TestActiveAccount_NilLookup(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	handler := ActiveAccount(nil)(func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
