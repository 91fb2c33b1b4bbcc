package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devmanager/dev-manager/internal/core/domain"
	"github.com/devmanager/dev-manager/internal/core/ports"
)

type activityResponse struct {
	ID         string    `json:"_id"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name,omitempty"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id,omitempty"`
	EntityName string    `json:"entity_name,omitempty"`
	Details    string    `json:"details"`
	IPAddress  string    `json:"ip_address,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

type listActivitiesResponse struct {
	Data       []activityResponse `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// ActivityHandler serves the audit trail.
type ActivityHandler struct {
	service ports.ActivityService
}

func NewActivityHandler(service ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// List handles GET /api/auth/activities. Admins see every record, employees
// only their own. Newest first.
//
// @Summary      List audit records
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (1-based)"
// @Param        limit  query     int  false  "Page size (default 50, max 100)"
// @Success      200    {object}  listActivitiesResponse
// @Failure      401    {object}  errorResponse
// @Router       /api/auth/activities [get]
func (h *ActivityHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	page, limit := pageParams(c)
	result, err := h.service.List(c.Request().Context(), actor, page, limit)
	if err != nil {
		return err
	}

	items := make([]activityResponse, len(result.Items))
	for i, a := range result.Items {
		items[i] = toActivityResponse(a)
	}

	return c.JSON(http.StatusOK, listActivitiesResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

func toActivityResponse(a *domain.Activity) activityResponse {
	return activityResponse{
		ID:         a.ID,
		UserID:     a.UserID,
		UserName:   a.UserName,
		Action:     string(a.Action),
		EntityType: string(a.EntityType),
		EntityID:   a.EntityID,
		EntityName: a.EntityName,
		Details:    a.Details,
		IPAddress:  a.IPAddress,
		UserAgent:  a.UserAgent,
		Timestamp:  a.Timestamp.UTC(),
	}
}
