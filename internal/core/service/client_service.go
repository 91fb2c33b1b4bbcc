package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/devmanager/dev-manager/internal/core/domain"
	"github.com/devmanager/dev-manager/internal/core/ports"
)

type ClientService struct {
	repo     ports.ClientRepository
	projects ports.ProjectRepository
	log      zerolog.Logger
}

func NewClientService(repo ports.ClientRepository, projects ports.ProjectRepository, log zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, projects: projects, log: log}
}

func (s *ClientService) Create(ctx context.Context, actor domain.Actor, input ports.CreateClientInput) (*domain.Client, error) {
	if input.Name == "" || input.Email == "" {
		return nil, fmt.Errorf("%w: name and email are required", domain.ErrValidation)
	}

	clientType := domain.ClientType(input.ClientType)
	if clientType == "" {
		clientType = domain.ClientIndividual
	}
	if !domain.ValidClientType(clientType) {
		return nil, fmt.Errorf("%w: unknown client type %q", domain.ErrValidation, input.ClientType)
	}

	now := time.Now().UTC()
	client := &domain.Client{
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Company:    input.Company,
		Website:    input.Website,
		Address:    input.Address,
		ClientType: clientType,
		CreatedBy:  actor.UserID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.repo.Create(ctx, client)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create client")
		return nil, err
	}

	s.log.Info().Str("client_id", created.ID).Str("created_by", actor.UserID).Msg("client created")
	return created, nil
}

func (s *ClientService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && client.CreatedBy != actor.UserID {
		return nil, domain.ErrForbidden
	}
	return client, nil
}

func (s *ClientService) List(ctx context.Context, actor domain.Actor, page, limit int) (*ports.ListResult[*domain.Client], error) {
	page, limit = normalizePage(page, limit)

	filter := ports.ListFilter{Page: page, Limit: limit}
	if !actor.IsAdmin() {
		filter.CreatedBy = actor.UserID
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListResult[*domain.Client]{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *ClientService) Update(ctx context.Context, actor domain.Actor, id string, input ports.UpdateClientInput) (*domain.Client, error) {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return nil, err
	}

	update := ports.ClientUpdate{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Company: input.Company,
		Website: input.Website,
		Address: input.Address,
	}
	if input.Name != nil && *input.Name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrValidation)
	}
	if input.Email != nil && *input.Email == "" {
		return nil, fmt.Errorf("%w: email cannot be empty", domain.ErrValidation)
	}
	if input.ClientType != nil {
		ct := domain.ClientType(*input.ClientType)
		if !domain.ValidClientType(ct) {
			return nil, fmt.Errorf("%w: unknown client type %q", domain.ErrValidation, *input.ClientType)
		}
		update.ClientType = &ct
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("client_id", id).Str("updated_by", actor.UserID).Msg("client updated")
	return updated, nil
}

// Delete removes a client. Deletion is restricted while any project still
// references the client, so no dangling references are left behind.
func (s *ClientService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}

	refs, err := s.projects.CountByClient(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return domain.ErrClientInUse
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("client_id", id).Str("deleted_by", actor.UserID).Msg("client deleted")
	return nil
}
