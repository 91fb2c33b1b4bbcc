package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devmanager/dev-manager/internal/core/domain"
)

func renderError(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec, body
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err     error
		code    int
		message string
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{domain.ErrInvalidToken, http.StatusUnauthorized, "invalid token"},
		{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{domain.ErrClientNotFound, http.StatusNotFound, "client not found"},
		{domain.ErrProjectNotFound, http.StatusNotFound, "project not found"},
		{domain.ErrUserExists, http.StatusConflict, "user already exists"},
		{domain.ErrTooManyAttempts, http.StatusTooManyRequests, "too many login attempts, try again later"},
		{domain.ErrPasswordTooShort, http.StatusBadRequest, domain.ErrPasswordTooShort.Error()},
	}

	for _, tc := range cases {
		rec, body := renderError(t, tc.err)
		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
		if body["error"] != tc.message {
			t.Fatalf("%v: expected message %q, got %q", tc.err, tc.message, body["error"])
		}
	}
}

func TestHTTPErrorHandler_WrappedValidation(t *testing.T) {
	err := fmt.Errorf("%w: name is required", domain.ErrValidation)
	rec, body := renderError(t, err)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body["error"] != err.Error() {
		t.Fatalf("expected wrapped message, got %q", body["error"])
	}
}

func TestHTTPErrorHandler_UnknownRoute(t *testing.T) {
	rec, body := renderError(t, echo.ErrNotFound)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body["error"] != "route not found" {
		t.Fatalf("expected route not found, got %q", body["error"])
	}
	endpoints, ok := body["available_endpoints"].([]any)
	if !ok || len(endpoints) == 0 {
		t.Fatalf("expected available endpoints listing, got %+v", body["available_endpoints"])
	}
}

func TestHTTPErrorHandler_EchoHTTPError(t *testing.T) {
	rec, body := renderError(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body["error"] != "invalid payload" {
		t.Fatalf("expected invalid payload, got %q", body["error"])
	}
}

func TestHTTPErrorHandler_UnexpectedError(t *testing.T) {
	rec, body := renderError(t, fmt.Errorf("mongo exploded"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body["error"] != "internal server error" {
		t.Fatalf("internal detail leaked: %q", body["error"])
	}
}
