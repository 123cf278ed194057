package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/alumnet/alumni-network/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, body
}

func TestHTTPErrorHandler_MapsKinds(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.ErrInvalidAmount, http.StatusBadRequest},
		{"conflict", domain.ErrDuplicateRequest, http.StatusBadRequest},
		{"wrapped conflict", fmt.Errorf("join: %w", domain.ErrNotAMember), http.StatusBadRequest},
		{"not found", domain.ErrClubNotFound, http.StatusNotFound},
		{"unauthorized", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed},
		{"unexpected", errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _ := renderError(t, tc.err)
			if code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, code)
			}
		})
	}
}

func TestHTTPErrorHandler_ValidationFields(t *testing.T) {
	code, body := renderError(t, &domain.ValidationError{Fields: map[string]string{
		"email":    "email must be a valid email",
		"password": "password is required",
	}})

	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if body.Fields["email"] == "" || body.Fields["password"] == "" {
		t.Fatalf("expected field messages, got %+v", body.Fields)
	}
}

func TestHTTPErrorHandler_HidesInternalDetails(t *testing.T) {
	_, body := renderError(t, errors.New("pq: password authentication failed"))
	if body.Error != "internal server error" {
		t.Fatalf("leaked internal error: %q", body.Error)
	}
}
