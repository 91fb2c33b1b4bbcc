package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/devmanager/dev-manager/internal/core/domain"
	"github.com/devmanager/dev-manager/internal/core/ports"
)

type captureRecorder struct {
	records []ports.ActivityInput
}

func (r *captureRecorder) Record(input ports.ActivityInput) {
	r.records = append(r.records, input)
}

func newActivityContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req.Header.Set("User-Agent", "go-test")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(target)
	return c, rec
}

func TestActivityLog_RecordsCreate(t *testing.T) {
	e := echo.New()
	recorder := &captureRecorder{}
	c, _ := newActivityContext(e, http.MethodPost, "/api/clients", `{"name":"Acme","email":"x@y.com"}`)
	c.Set("user_id", "user_1")

	mw := ActivityLog(recorder)
	handler := mw(func(c echo.Context) error {
		// The handler must still be able to bind the sniffed body.
		var payload map[string]interface{}
		if err := json.NewDecoder(c.Request().Body).Decode(&payload); err != nil {
			t.Fatalf("body not restored: %v", err)
		}
		return c.JSON(http.StatusCreated, payload)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(recorder.records) != 1 {
		t.Fatalf("expected one record, got %d", len(recorder.records))
	}

	rec := recorder.records[0]
	if rec.Action != string(domain.ActionCreate) {
		t.Fatalf("expected create action, got %s", rec.Action)
	}
	if rec.EntityType != string(domain.EntityClient) {
		t.Fatalf("expected client entity, got %s", rec.EntityType)
	}
	if rec.EntityName != "Acme" {
		t.Fatalf("expected entity name from body, got %q", rec.EntityName)
	}
	if rec.UserID != "user_1" {
		t.Fatalf("expected user_1, got %s", rec.UserID)
	}
	if rec.UserAgent != "go-test" {
		t.Fatalf("expected user agent, got %q", rec.UserAgent)
	}
}

func TestActivityLog_MapsVerbsAndPaths(t *testing.T) {
	e := echo.New()

	cases := []struct {
		method, path string
		action       domain.ActivityAction
		entityType   domain.EntityType
	}{
		{http.MethodPut, "/api/projects/:id", domain.ActionUpdate, domain.EntityProject},
		{http.MethodDelete, "/api/clients/:id", domain.ActionDelete, domain.EntityClient},
		{http.MethodPost, "/api/auth/register", domain.ActionCreate, domain.EntityUser},
		{http.MethodPost, "/api/auth/change-password", domain.ActionCreate, domain.EntitySystem},
	}
	for _, tc := range cases {
		recorder := &captureRecorder{}
		c, _ := newActivityContext(e, tc.method, tc.path, "")
		c.Set("user_id", "user_1")

		handler := ActivityLog(recorder)(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		if err := handler(c); err != nil {
			t.Fatalf("%s %s: handler error: %v", tc.method, tc.path, err)
		}
		if len(recorder.records) != 1 {
			t.Fatalf("%s %s: expected one record, got %d", tc.method, tc.path, len(recorder.records))
		}
		if recorder.records[0].Action != string(tc.action) {
			t.Fatalf("%s %s: expected action %s, got %s", tc.method, tc.path, tc.action, recorder.records[0].Action)
		}
		if recorder.records[0].EntityType != string(tc.entityType) {
			t.Fatalf("%s %s: expected entity %s, got %s", tc.method, tc.path, tc.entityType, recorder.records[0].EntityType)
		}
	}
}

func TestActivityLog_SkipsReads(t *testing.T) {
	e := echo.New()
	recorder := &captureRecorder{}
	c, _ := newActivityContext(e, http.MethodGet, "/api/clients", "")
	c.Set("user_id", "user_1")

	handler := ActivityLog(recorder)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(recorder.records) != 0 {
		t.Fatalf("expected no records for GET, got %d", len(recorder.records))
	}
}

func TestActivityLog_SkipsAnonymous(t *testing.T) {
	e := echo.New()
	recorder := &captureRecorder{}
	c, _ := newActivityContext(e, http.MethodPost, "/api/clients", `{"name":"Acme"}`)

	handler := ActivityLog(recorder)(func(c echo.Context) error {
		return c.NoContent(http.StatusCreated)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(recorder.records) != 0 {
		t.Fatalf("expected no records without user, got %d", len(recorder.records))
	}
}

func TestActivityLog_SkipsFailedRequests(t *testing.T) {
	e := echo.New()
	recorder := &captureRecorder{}

	c, _ := newActivityContext(e, http.MethodPost, "/api/clients", `{"name":"Acme"}`)
	c.Set("user_id", "user_1")
	handler := ActivityLog(recorder)(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "nope")
	})
	if err := handler(c); err == nil {
		t.Fatalf("expected handler error to propagate")
	}
	if len(recorder.records) != 0 {
		t.Fatalf("expected no records for failed request, got %d", len(recorder.records))
	}

	c, _ = newActivityContext(e, http.MethodPost, "/api/clients", `{"name":"Acme"}`)
	c.Set("user_id", "user_1")
	handler = ActivityLog(recorder)(func(c echo.Context) error {
		return c.JSON(http.StatusConflict, map[string]string{"error": "client has projects"})
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(recorder.records) != 0 {
		t.Fatalf("expected no records for 4xx response, got %d", len(recorder.records))
	}
}
