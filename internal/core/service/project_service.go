package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/devmanager/dev-manager/internal/core/domain"
	"github.com/devmanager/dev-manager/internal/core/ports"
)

type ProjectService struct {
	repo    ports.ProjectRepository
	clients ports.ClientRepository
	log     zerolog.Logger
}

func NewProjectService(repo ports.ProjectRepository, clients ports.ClientRepository, log zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, clients: clients, log: log}
}

func (s *ProjectService) Create(ctx context.Context, actor domain.Actor, input ports.CreateProjectInput) (*domain.Project, error) {
	if input.Name == "" || input.Description == "" {
		return nil, fmt.Errorf("%w: name and description are required", domain.ErrValidation)
	}
	if input.StartDate.IsZero() {
		return nil, fmt.Errorf("%w: start_date is required", domain.ErrValidation)
	}

	projectType := domain.ProjectType(input.ProjectType)
	if !domain.ValidProjectType(projectType) {
		return nil, fmt.Errorf("%w: unknown project type %q", domain.ErrValidation, input.ProjectType)
	}

	status := domain.ProjectStatus(input.Status)
	if status == "" {
		status = domain.StatusPending
	}
	if !domain.ValidProjectStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, input.Status)
	}

	if err := validateDates(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	// A project may omit its client, but a supplied reference must resolve.
	if input.ClientID != "" {
		if _, err := s.clients.FindByID(ctx, input.ClientID); err != nil {
			if err == domain.ErrClientNotFound {
				return nil, fmt.Errorf("%w: client %s does not exist", domain.ErrValidation, input.ClientID)
			}
			return nil, err
		}
	}

	technologies := input.Technologies
	if technologies == nil {
		technologies = []string{}
	}

	now := time.Now().UTC()
	project := &domain.Project{
		Name:           input.Name,
		Description:    input.Description,
		ProjectType:    projectType,
		Status:         status,
		ClientID:       input.ClientID,
		Technologies:   technologies,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		Budget:         input.Budget,
		HourlyRate:     input.HourlyRate,
		EstimatedHours: input.EstimatedHours,
		CreatedBy:      actor.UserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.repo.Create(ctx, project)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create project")
		return nil, err
	}

	s.log.Info().Str("project_id", created.ID).Str("created_by", actor.UserID).Msg("project created")
	return created, nil
}

func (s *ProjectService) Get(ctx context.Context, actor domain.Actor, id string) (*ports.ProjectView, error) {
	project, err := s.findOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	view := &ports.ProjectView{Project: project}
	if project.ClientID != "" {
		client, err := s.clients.FindByID(ctx, project.ClientID)
		if err != nil && err != domain.ErrClientNotFound {
			return nil, err
		}
		view.Client = client
	}
	return view, nil
}

func (s *ProjectService) List(ctx context.Context, actor domain.Actor, page, limit int) (*ports.ListResult[*ports.ProjectView], error) {
	page, limit = normalizePage(page, limit)

	filter := ports.ListFilter{Page: page, Limit: limit}
	if !actor.IsAdmin() {
		filter.CreatedBy = actor.UserID
	}

	projects, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	views, err := s.resolveClients(ctx, projects)
	if err != nil {
		return nil, err
	}

	return &ports.ListResult[*ports.ProjectView]{
		Items:      views,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *ProjectService) Update(ctx context.Context, actor domain.Actor, id string, input ports.UpdateProjectInput) (*domain.Project, error) {
	existing, err := s.findOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	update := ports.ProjectUpdate{
		Name:           input.Name,
		Description:    input.Description,
		ClientID:       input.ClientID,
		Technologies:   input.Technologies,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		Budget:         input.Budget,
		HourlyRate:     input.HourlyRate,
		EstimatedHours: input.EstimatedHours,
		UpdatedBy:      actor.UserID,
	}

	if input.Name != nil && *input.Name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrValidation)
	}
	if input.ProjectType != nil {
		pt := domain.ProjectType(*input.ProjectType)
		if !domain.ValidProjectType(pt) {
			return nil, fmt.Errorf("%w: unknown project type %q", domain.ErrValidation, *input.ProjectType)
		}
		update.ProjectType = &pt
	}
	if input.Status != nil {
		st := domain.ProjectStatus(*input.Status)
		if !domain.ValidProjectStatus(st) {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *input.Status)
		}
		update.Status = &st
	}
	if input.ClientID != nil && *input.ClientID != "" {
		if _, err := s.clients.FindByID(ctx, *input.ClientID); err != nil {
			if err == domain.ErrClientNotFound {
				return nil, fmt.Errorf("%w: client %s does not exist", domain.ErrValidation, *input.ClientID)
			}
			return nil, err
		}
	}

	// Re-check the date invariant against the effective post-update values.
	startDate := existing.StartDate
	if input.StartDate != nil {
		startDate = *input.StartDate
	}
	endDate := existing.EndDate
	if input.EndDate != nil {
		endDate = input.EndDate
	}
	if err := validateDates(startDate, endDate); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("project_id", id).Str("updated_by", actor.UserID).Msg("project updated")
	return updated, nil
}

func (s *ProjectService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if _, err := s.findOwned(ctx, actor, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("project_id", id).Str("deleted_by", actor.UserID).Msg("project deleted")
	return nil
}

func (s *ProjectService) findOwned(ctx context.Context, actor domain.Actor, id string) (*domain.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && project.CreatedBy != actor.UserID {
		return nil, domain.ErrForbidden
	}
	return project, nil
}

// resolveClients batch-fetches the referenced clients for a page of projects.
func (s *ProjectService) resolveClients(ctx context.Context, projects []*domain.Project) ([]*ports.ProjectView, error) {
	ids := make([]string, 0, len(projects))
	seen := make(map[string]struct{}, len(projects))
	for _, p := range projects {
		if p.ClientID == "" {
			continue
		}
		if _, ok := seen[p.ClientID]; ok {
			continue
		}
		seen[p.ClientID] = struct{}{}
		ids = append(ids, p.ClientID)
	}

	var byID map[string]*domain.Client
	if len(ids) > 0 {
		var err error
		byID, err = s.clients.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	views := make([]*ports.ProjectView, len(projects))
	for i, p := range projects {
		views[i] = &ports.ProjectView{Project: p, Client: byID[p.ClientID]}
	}
	return views, nil
}

func validateDates(start time.Time, end *time.Time) error {
	if end != nil && end.Before(start) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	return nil
}
