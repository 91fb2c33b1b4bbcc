package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devmanager/dev-manager/internal/core/domain"
)

// ctxActor extracts the caller identity injected by the Auth middleware and
// performs a fast-fail check before any service call: a missing user_id or
// role means the middleware did not run, so the request is rejected with 401
// rather than reaching a service with an empty actor.
func ctxActor(c echo.Context) (domain.Actor, error) {
	userID, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	if userID == "" || role == "" {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	email, _ := c.Get("email").(string)
	return domain.Actor{UserID: userID, Email: email, Role: role}, nil
}

// pageParams reads ?page= and ?limit= query parameters, tolerating absence.
func pageParams(c echo.Context) (int, int) {
	page := intQuery(c, "page")
	limit := intQuery(c, "limit")
	return page, limit
}

func intQuery(c echo.Context, name string) int {
	v := c.QueryParam(name)
	if v == "" {
		return 0
	}
	n := 0
	for _, r := range v {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
		if n > 1_000_000 {
			return 0
		}
	}
	return n
}
