package matter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CaseRepository persists legal cases and their movements
type CaseRepository interface {
	// Save inserts a new case
	Save(ctx context.Context, c *LegalCase) error

	// FindByIDForTenant returns a case or NOT_FOUND
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*LegalCase, error)

	// FindAllForTenant lists a tenant's cases, newest first, each with its
	// most recent movements attached
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]LegalCase, error)

	// FindByIDs loads cases by primary key for reference denormalization.
	// Missing IDs are silently absent from the result.
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]LegalCase, error)

	// UpdateSyncResult persists registry metadata and the sync timestamp
	UpdateSyncResult(ctx context.Context, c *LegalCase) error

	// AppendMovements inserts movements, skipping any that collide on the
	// (case_id, code, occurred_at) unique key. Returns the number inserted.
	AppendMovements(ctx context.Context, caseID uuid.UUID, movements []CaseMovement) (int, error)
}

// ClientRepository persists clients
type ClientRepository interface {
	Save(ctx context.Context, c *Client) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Client, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]Client, error)

	// FindByIDs loads clients by primary key for reference denormalization
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]Client, error)
}

// SyncOutcome is what the registry client hands back to the worker after a
// successful fetch
type SyncOutcome struct {
	Court        string
	RulingBody   string
	ProcessClass string
	FiledAt      *time.Time
	Movements    []CaseMovement
}
