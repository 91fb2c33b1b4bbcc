package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/devmanager/dev-manager/internal/core/domain"
	"github.com/devmanager/dev-manager/internal/core/ports"
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns an ActivityService implementation.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

// Log validates and persists a single audit record. Callers on the request
// path must never invoke this directly; records arrive here through the
// dispatcher workers after the response has been sent.
func (s *activityService) Log(ctx context.Context, in ports.ActivityInput) error {
	action := domain.ActivityAction(in.Action)
	entityType := domain.EntityType(in.EntityType)

	if in.UserID == "" {
		return fmt.Errorf("log activity: %w: user_id is required", domain.ErrValidation)
	}
	if !domain.ValidActivityAction(action) {
		return fmt.Errorf("log activity: %w: unknown action %q", domain.ErrValidation, in.Action)
	}
	if !domain.ValidEntityType(entityType) {
		return fmt.Errorf("log activity: %w: unknown entity type %q", domain.ErrValidation, in.EntityType)
	}

	ts := in.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	details := in.Details
	if details == "" {
		details = fmt.Sprintf("%s %s", action, entityType)
	}

	err := s.repo.Insert(ctx, &domain.Activity{
		UserID:     in.UserID,
		UserName:   in.UserName,
		Action:     action,
		EntityType: entityType,
		EntityID:   in.EntityID,
		EntityName: in.EntityName,
		Details:    details,
		IPAddress:  in.IPAddress,
		UserAgent:  in.UserAgent,
		Timestamp:  ts,
	})
	if err != nil {
		return fmt.Errorf("log activity: %w", err)
	}
	return nil
}

// List returns audit records, newest first. Admins see every record;
// employees only their own.
func (s *activityService) List(ctx context.Context, actor domain.Actor, page, limit int) (*ports.ListResult[*domain.Activity], error) {
	page, limit = normalizePage(page, limit)

	filter := ports.ActivityFilter{Page: page, Limit: limit}
	if !actor.IsAdmin() {
		filter.UserID = actor.UserID
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListResult[*domain.Activity]{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}
