package ports

import (
	"context"
	"time"

	"github.com/devmanager/dev-manager/internal/core/domain"
)

// ActivityInput is the DTO handed from the transport layer (or the login
// path) to the activity recorder.
type ActivityInput struct {
	UserID     string
	UserName   string
	Action     string
	EntityType string
	EntityID   string
	EntityName string
	Details    string
	IPAddress  string
	UserAgent  string
	Timestamp  time.Time
}

// ActivityRecorder accepts audit records for asynchronous persistence.
// Record must never block and must never surface an error to the caller.
type ActivityRecorder interface {
	Record(input ActivityInput)
}

// ActivityService validates and persists audit records, and serves listings.
type ActivityService interface {
	// Log persists a single record synchronously. Used by dispatcher workers.
	Log(ctx context.Context, input ActivityInput) error
	List(ctx context.Context, actor domain.Actor, page, limit int) (*ListResult[*domain.Activity], error)
}
