package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devmanager/dev-manager/internal/core/domain"
	"github.com/devmanager/dev-manager/internal/core/ports"
)

// maxSniffedBody bounds how much of a request body is buffered to extract the
// entity name. Larger bodies are passed through untouched and unnamed.
const maxSniffedBody = 64 << 10

// ActivityLog observes mutating requests and hands an audit record to the
// recorder after the handler has completed. It is deliberately decoupled from
// handlers: no handler knows audit logging exists.
//
// Rules:
//   - GET, HEAD and OPTIONS requests are never recorded.
//   - Unauthenticated requests are never recorded.
//   - Requests whose handler failed are not recorded.
//   - Recording never blocks and never fails the request.
func ActivityLog(recorder ports.ActivityRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			method := c.Request().Method
			switch method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			userID, _ := c.Get("user_id").(string)
			if userID == "" {
				return next(c)
			}

			entityName := sniffEntityName(c)

			if err := next(c); err != nil {
				return err
			}
			if c.Response().Status >= http.StatusBadRequest {
				return nil
			}

			recorder.Record(ports.ActivityInput{
				UserID:     userID,
				Action:     string(actionFor(method)),
				EntityType: string(entityTypeFor(c.Path())),
				EntityID:   c.Param("id"),
				EntityName: entityName,
				IPAddress:  c.RealIP(),
				UserAgent:  c.Request().UserAgent(),
				Timestamp:  time.Now().UTC(),
			})
			return nil
		}
	}
}

// actionFor maps an HTTP verb to the audit action it represents.
func actionFor(method string) domain.ActivityAction {
	switch method {
	case http.MethodPost:
		return domain.ActionCreate
	case http.MethodPut, http.MethodPatch:
		return domain.ActionUpdate
	case http.MethodDelete:
		return domain.ActionDelete
	}
	return domain.ActionView
}

// entityTypeFor derives the audited entity kind from the route path.
func entityTypeFor(path string) domain.EntityType {
	switch {
	case strings.Contains(path, "/clients"):
		return domain.EntityClient
	case strings.Contains(path, "/projects"):
		return domain.EntityProject
	case strings.Contains(path, "/users"), strings.Contains(path, "/auth/register"):
		return domain.EntityUser
	}
	return domain.EntitySystem
}

// sniffEntityName peeks at a JSON request body for a top-level "name" field,
// restoring the body so the handler can bind it as usual.
func sniffEntityName(c echo.Context) string {
	req := c.Request()
	if req.Body == nil || req.ContentLength > maxSniffedBody {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(req.Body, maxSniffedBody))
	req.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var payload struct {
		Name string `json:"name"`
	}
	if json.Unmarshal(body, &payload) != nil {
		return ""
	}
	return payload.Name
}
