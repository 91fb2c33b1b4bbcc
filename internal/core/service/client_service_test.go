package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/devmanager/dev-manager/internal/core/domain"
	"github.com/devmanager/dev-manager/internal/core/ports"
)

type stubClientRepo struct {
	clients map[string]*domain.Client
	nextID  int
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{clients: make(map[string]*domain.Client)}
}

func cloneClient(c *domain.Client) *domain.Client {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

func (r *stubClientRepo) Create(_ context.Context, c *domain.Client) (*domain.Client, error) {
	copy := cloneClient(c)
	r.nextID++
	copy.ID = "client_" + strconv.Itoa(r.nextID)
	r.clients[copy.ID] = cloneClient(copy)
	return cloneClient(copy), nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id string) (*domain.Client, error) {
	if c, ok := r.clients[id]; ok {
		return cloneClient(c), nil
	}
	return nil, domain.ErrClientNotFound
}

func (r *stubClientRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.Client, error) {
	out := make(map[string]*domain.Client, len(ids))
	for _, id := range ids {
		if c, ok := r.clients[id]; ok {
			out[id] = cloneClient(c)
		}
	}
	return out, nil
}

func (r *stubClientRepo) List(_ context.Context, filter ports.ListFilter) ([]*domain.Client, int64, error) {
	var matched []*domain.Client
	for _, c := range r.clients {
		if filter.CreatedBy != "" && c.CreatedBy != filter.CreatedBy {
			continue
		}
		matched = append(matched, cloneClient(c))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubClientRepo) Update(_ context.Context, id string, update ports.ClientUpdate) (*domain.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	if update.Name != nil {
		c.Name = *update.Name
	}
	if update.Email != nil {
		c.Email = *update.Email
	}
	if update.Phone != nil {
		c.Phone = *update.Phone
	}
	if update.Company != nil {
		c.Company = *update.Company
	}
	if update.Website != nil {
		c.Website = *update.Website
	}
	if update.Address != nil {
		c.Address = *update.Address
	}
	if update.ClientType != nil {
		c.ClientType = *update.ClientType
	}
	return cloneClient(c), nil
}

func (r *stubClientRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.clients[id]; !ok {
		return domain.ErrClientNotFound
	}
	delete(r.clients, id)
	return nil
}

var (
	adminActor    = domain.Actor{UserID: "admin_1", Email: "admin@example.com", Role: domain.RoleAdmin}
	employeeActor = domain.Actor{UserID: "emp_1", Email: "emp@example.com", Role: domain.RoleEmployee}
	otherEmployee = domain.Actor{UserID: "emp_2", Email: "emp2@example.com", Role: domain.RoleEmployee}
)

func strPtr(s string) *string { return &s }

func newTestClientService(clients *stubClientRepo, projects *stubProjectRepo) *ClientService {
	return NewClientService(clients, projects, zerolog.Nop())
}

func TestClientService_Create_Defaults(t *testing.T) {
	svc := newTestClientService(newStubClientRepo(), newStubProjectRepo())

	client, err := svc.Create(context.Background(), employeeActor, ports.CreateClientInput{
		Name:  "Acme",
		Email: "contact@acme.test",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if client.ClientType != domain.ClientIndividual {
		t.Fatalf("expected default client type individual, got %q", client.ClientType)
	}
	if client.CreatedBy != employeeActor.UserID {
		t.Fatalf("expected created_by %s, got %s", employeeActor.UserID, client.CreatedBy)
	}
}

func TestClientService_Create_Validation(t *testing.T) {
	svc := newTestClientService(newStubClientRepo(), newStubProjectRepo())

	if _, err := svc.Create(context.Background(), employeeActor, ports.CreateClientInput{Email: "x@y.com"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing name, got %v", err)
	}
	if _, err := svc.Create(context.Background(), employeeActor, ports.CreateClientInput{
		Name: "Acme", Email: "x@y.com", ClientType: "conglomerate",
	}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for bad client type, got %v", err)
	}
}

func TestClientService_Get_Ownership(t *testing.T) {
	svc := newTestClientService(newStubClientRepo(), newStubProjectRepo())

	client, err := svc.Create(context.Background(), employeeActor, ports.CreateClientInput{Name: "Acme", Email: "x@y.com"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Get(context.Background(), otherEmployee, client.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for other employee, got %v", err)
	}
	if _, err := svc.Get(context.Background(), adminActor, client.ID); err != nil {
		t.Fatalf("expected admin to read any client, got %v", err)
	}
	if _, err := svc.Get(context.Background(), employeeActor, "client_missing"); err != domain.ErrClientNotFound {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestClientService_List_ScopedForEmployees(t *testing.T) {
	svc := newTestClientService(newStubClientRepo(), newStubProjectRepo())

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(context.Background(), employeeActor, ports.CreateClientInput{Name: "Mine", Email: "m@y.com"}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}
	if _, err := svc.Create(context.Background(), otherEmployee, ports.CreateClientInput{Name: "Theirs", Email: "t@y.com"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	mine, err := svc.List(context.Background(), employeeActor, 1, 50)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if mine.Total != 3 {
		t.Fatalf("expected 3 owned clients, got %d", mine.Total)
	}

	all, err := svc.List(context.Background(), adminActor, 1, 50)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if all.Total != 4 {
		t.Fatalf("expected 4 clients for admin, got %d", all.Total)
	}
}

func TestClientService_List_Pagination(t *testing.T) {
	svc := newTestClientService(newStubClientRepo(), newStubProjectRepo())

	for i := 0; i < 5; i++ {
		if _, err := svc.Create(context.Background(), adminActor, ports.CreateClientInput{Name: "C", Email: "c@y.com"}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	page, err := svc.List(context.Background(), adminActor, 2, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(page.Items) != 2 || page.Total != 5 || page.TotalPages != 3 {
		t.Fatalf("unexpected page: items=%d total=%d pages=%d", len(page.Items), page.Total, page.TotalPages)
	}

	// Out-of-range pages come back empty, not as an error.
	empty, err := svc.List(context.Background(), adminActor, 9, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(empty.Items) != 0 || empty.Total != 5 {
		t.Fatalf("expected empty page with total 5, got items=%d total=%d", len(empty.Items), empty.Total)
	}
}

func TestClientService_Update(t *testing.T) {
	svc := newTestClientService(newStubClientRepo(), newStubProjectRepo())

	client, err := svc.Create(context.Background(), employeeActor, ports.CreateClientInput{Name: "Acme", Email: "x@y.com"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(context.Background(), employeeActor, client.ID, ports.UpdateClientInput{
		Name:       strPtr("Acme Corp"),
		ClientType: strPtr(string(domain.ClientEnterprise)),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Acme Corp" || updated.ClientType != domain.ClientEnterprise {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if updated.Email != "x@y.com" {
		t.Fatalf("untouched field changed: %s", updated.Email)
	}

	if _, err := svc.Update(context.Background(), employeeActor, client.ID, ports.UpdateClientInput{Name: strPtr("")}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty name, got %v", err)
	}
	if _, err := svc.Update(context.Background(), otherEmployee, client.ID, ports.UpdateClientInput{Name: strPtr("Hijack")}); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestClientService_Delete_RestrictedWhileReferenced(t *testing.T) {
	clients := newStubClientRepo()
	projects := newStubProjectRepo()
	svc := newTestClientService(clients, projects)

	client, err := svc.Create(context.Background(), employeeActor, ports.CreateClientInput{Name: "Acme", Email: "x@y.com"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	projects.add(&domain.Project{Name: "Site", ClientID: client.ID, CreatedBy: employeeActor.UserID})

	if err := svc.Delete(context.Background(), employeeActor, client.ID); err != domain.ErrClientInUse {
		t.Fatalf("expected ErrClientInUse, got %v", err)
	}

	projects.clear()
	if err := svc.Delete(context.Background(), employeeActor, client.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), employeeActor, client.ID); err != domain.ErrClientNotFound {
		t.Fatalf("expected client gone, got %v", err)
	}
}
