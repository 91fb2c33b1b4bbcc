package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/devmanager/dev-manager/internal/core/domain"
	"github.com/devmanager/dev-manager/internal/core/ports"
)

type stubAuthService struct {
	loginFn          func(ctx context.Context, email, password, ip, ua string) (string, *domain.User, error)
	registerFn       func(ctx context.Context, input ports.RegisterInput) (*domain.User, error)
	profileFn        func(ctx context.Context, userID string) (*domain.User, error)
	changePasswordFn func(ctx context.Context, userID, current, next string) error
}

func (s *stubAuthService) Login(ctx context.Context, email, password, ip, ua string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password, ip, ua)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.profileFn(ctx, userID)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	return s.changePasswordFn(ctx, userID, current, next)
}

func (s *stubAuthService) EnsureAdmin(context.Context, string, string, string) error {
	return nil
}

func newHandlerContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func asAuthenticated(c echo.Context, actor domain.Actor) {
	c.Set("user_id", actor.UserID)
	c.Set("email", actor.Email)
	c.Set("role", actor.Role)
}

func httpErrorCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected echo.HTTPError, got %v", err)
	}
	return he.Code
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password, _, _ string) (string, *domain.User, error) {
			if email != "alice@example.com" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", &domain.User{ID: "user_1", Name: "Alice", Role: domain.RoleAdmin}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newHandlerContext(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"secret1"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["name"] != "Alice" || user["role"] != domain.RoleAdmin {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("password hash leaked into response")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newHandlerContext(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"badpass"}`)
	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string, string, string) (string, *domain.User, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newHandlerContext(http.MethodPost, "/api/auth/login", "not-json")
	if code := httpErrorCode(t, handler.Login(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}

	c, _ = newHandlerContext(http.MethodPost, "/api/auth/login", `{"email":"not-an-email","password":"secret1"}`)
	if code := httpErrorCode(t, handler.Login(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid email, got %d", code)
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, input ports.RegisterInput) (*domain.User, error) {
			if input.Name != "Bob" || input.Role != domain.RoleEmployee {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.User{ID: "user_2", Name: input.Name, Role: input.Role}, nil
		},
	}
	handler := NewAuthHandler(stub)

	body := `{"name":"Bob","email":"bob@example.com","password":"secret1","role":"employee"}`
	c, rec := newHandlerContext(http.MethodPost, "/api/auth/register", body)
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newHandlerContext(http.MethodPost, "/api/auth/register", `{"name":"Bob","email":"bob@example.com","password":"tiny"}`)
	if code := httpErrorCode(t, handler.Register(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub)

	body := `{"name":"Bob","email":"bob@example.com","password":"secret1"}`
	c, _ := newHandlerContext(http.MethodPost, "/api/auth/register", body)
	if err := handler.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Profile(t *testing.T) {
	stub := &stubAuthService{
		profileFn: func(_ context.Context, userID string) (*domain.User, error) {
			if userID != "user_1" {
				t.Fatalf("unexpected user id: %s", userID)
			}
			return &domain.User{ID: userID, Name: "Alice"}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newHandlerContext(http.MethodGet, "/api/auth/profile", "")
	asAuthenticated(c, domain.Actor{UserID: "user_1", Role: domain.RoleAdmin})
	if err := handler.Profile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Profile_Unauthenticated(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	c, _ := newHandlerContext(http.MethodGet, "/api/auth/profile", "")
	if code := httpErrorCode(t, handler.Profile(c)); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	called := false
	stub := &stubAuthService{
		changePasswordFn: func(_ context.Context, userID, current, next string) error {
			called = true
			if userID != "user_1" || current != "oldpass" || next != "newpass1" {
				t.Fatalf("unexpected args: %s %s %s", userID, current, next)
			}
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	body := `{"current_password":"oldpass","new_password":"newpass1"}`
	c, rec := newHandlerContext(http.MethodPost, "/api/auth/change-password", body)
	asAuthenticated(c, domain.Actor{UserID: "user_1", Role: domain.RoleEmployee})
	if err := handler.ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("service not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
