package ports

import (
	"context"

	"github.com/devmanager/dev-manager/internal/core/domain"
)

// RegisterInput carries all data needed to create a user account.
type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Role       string
	EmployeeID string
	Department string
	Position   string
}

// AuthService implements the single store-backed authentication path.
type AuthService interface {
	// Login validates credentials and returns a signed token plus the user.
	Login(ctx context.Context, email, password, ipAddress, userAgent string) (string, *domain.User, error)
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	// EnsureAdmin idempotently provisions the bootstrap administrator account.
	EnsureAdmin(ctx context.Context, name, email, password string) error
}
