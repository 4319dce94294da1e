package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionFilter defines filtering options for transaction queries
type TransactionFilter struct {
	Status   TransactionStatus
	Category TransactionCategory
}

// GroupedSum is one row of the dashboard aggregation: the sum of active
// transaction amounts for a (type, category, status) combination.
type GroupedSum struct {
	Type     TransactionType     `json:"type"`
	Category TransactionCategory `json:"category"`
	Status   TransactionStatus   `json:"status"`
	Total    decimal.Decimal     `json:"total"`
}

// TransactionRepository persists ledger entries.
//
// Every method is tenant-scoped and operates on active (non-archived) rows
// only; the scope is applied inside the repository on every statement, never
// left to calling code. There is no "include archived" mode.
type TransactionRepository interface {
	// Save inserts a single transaction
	Save(ctx context.Context, tx *Transaction) error

	// SaveAll inserts a batch of transactions in one atomic unit: either all
	// rows are durably persisted or none are. This is the settlement split's
	// commit boundary.
	SaveAll(ctx context.Context, txs []*Transaction) error

	// Update persists changes to an active transaction using optimistic
	// locking. Archived rows are invisible to updates and yield NOT_FOUND.
	Update(ctx context.Context, tx *Transaction) error

	// FindActiveByIDForTenant returns an active transaction or NOT_FOUND
	FindActiveByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Transaction, error)

	// FindAllForTenant lists active transactions, newest first
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter TransactionFilter) ([]Transaction, error)

	// FindOpenInPeriod selects active transactions whose createdAt falls in
	// the half-open interval [from, to)
	FindOpenInPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]Transaction, error)

	// SumByGroup aggregates active transaction amounts by (type, category,
	// status). It reads the same active-row set as FindAllForTenant, so the
	// listing and the dashboard sums can never disagree on what is open.
	SumByGroup(ctx context.Context, tenantID uuid.UUID) ([]GroupedSum, error)
}

// ReportSnapshotRepository persists closed-period snapshots
type ReportSnapshotRepository interface {
	// FindByPeriod returns the snapshot for (tenant, month, year), or nil
	// when the period has not been closed
	FindByPeriod(ctx context.Context, tenantID uuid.UUID, month, year int) (*ReportSnapshot, error)

	// FindAllForTenant lists a tenant's snapshots, newest period first
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]ReportSnapshot, error)

	// SaveWithArchive inserts the snapshot and stamps archivedAt = ClosedAt on
	// exactly the given active transactions, in one database transaction.
	// A reader never observes the snapshot without its transactions archived,
	// or vice versa. A violation of the (tenant, month, year) unique key is
	// surfaced as PERIOD_ALREADY_CLOSED, which makes this method the loser's
	// exit in a concurrent-close race.
	SaveWithArchive(ctx context.Context, snapshot *ReportSnapshot, transactionIDs []uuid.UUID) error
}
