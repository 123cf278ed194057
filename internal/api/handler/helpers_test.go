package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/alumnet/alumni-network/internal/api/middleware"
	"github.com/alumnet/alumni-network/internal/core/domain"
)

var alice = domain.Actor{UserID: 1, Username: "alice", UserType: domain.UserTypeAlumni}

type testRequest struct {
	method  string
	target  string
	body    string
	actor   *domain.Actor
	params  map[string]string
	headers map[string]string
}

func newContext(tr testRequest) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var body io.Reader
	if tr.body != "" {
		body = strings.NewReader(tr.body)
	}
	req := httptest.NewRequest(tr.method, tr.target, body)
	if tr.body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range tr.headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if len(tr.params) > 0 {
		names := make([]string, 0, len(tr.params))
		values := make([]string, 0, len(tr.params))
		for k, v := range tr.params {
			names = append(names, k)
			values = append(values, v)
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	if tr.actor != nil {
		c.Set(middleware.ContextUserID, tr.actor.UserID)
		c.Set(middleware.ContextUsername, tr.actor.Username)
		c.Set(middleware.ContextUserType, tr.actor.UserType)
	}
	return c, rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return out
}

func validationFields(t *testing.T, err error) map[string]string {
	t.Helper()
	ve, ok := err.(*domain.ValidationError)
	if !ok {
		t.Fatalf("expected *domain.ValidationError, got %T (%v)", err, err)
	}
	return ve.Fields
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	return he.Code
}
