package ledger

import (
	"strings"
	"time"

	"github.com/advoga/backend/internal/domain/shared"
	"github.com/advoga/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// TransactionType represents the direction of a money movement.
// The sign of a movement is carried by its type, never by the amount.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// IsValid checks if the type is a valid TransactionType
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense:
		return true
	}
	return false
}

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// TransactionCategory represents the business category of a money movement
type TransactionCategory string

const (
	CategoryFee             TransactionCategory = "FEE"              // attorney fees
	CategoryCourtCost       TransactionCategory = "COURT_COST"       // court filing costs
	CategoryClientRepayment TransactionCategory = "CLIENT_REPAYMENT" // client share of a settlement
	CategoryOperational     TransactionCategory = "OPERATIONAL"      // office overhead
)

// IsValid checks if the category is a valid TransactionCategory
func (c TransactionCategory) IsValid() bool {
	switch c {
	case CategoryFee, CategoryCourtCost, CategoryClientRepayment, CategoryOperational:
		return true
	}
	return false
}

// String returns the string representation of TransactionCategory
func (c TransactionCategory) String() string {
	return string(c)
}

// TransactionStatus represents the payment status of a ledger entry
type TransactionStatus string

const (
	StatusPending TransactionStatus = "PENDING"
	StatusPaid    TransactionStatus = "PAID"
)

// IsValid checks if the status is a valid TransactionStatus
func (s TransactionStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid:
		return true
	}
	return false
}

// String returns the string representation of TransactionStatus
func (s TransactionStatus) String() string {
	return string(s)
}

// Transaction is one dated, typed, categorized money movement tied to a legal
// matter. It is the ledger's only mutable record kind, and the mutation surface
// is deliberately narrow: a PENDING entry can be marked PAID exactly once, and
// the Period Closer can archive it. Archived entries are invisible to every
// query and every mutation; they survive only as part of the report snapshot
// that archived them.
type Transaction struct {
	shared.TenantAggregateRoot
	Type        TransactionType
	Category    TransactionCategory
	Amount      valueobject.Money
	Status      TransactionStatus
	Description string
	DueDate     time.Time
	PaidDate    *time.Time
	CaseID      *uuid.UUID
	ClientID    *uuid.UUID
	ArchivedAt  *time.Time
}

// NewTransaction creates a new PENDING ledger entry after validating its parts
func NewTransaction(
	tenantID uuid.UUID,
	txType TransactionType,
	category TransactionCategory,
	amount valueobject.Money,
	description string,
	dueDate time.Time,
) (*Transaction, error) {
	if !txType.IsValid() {
		return nil, shared.NewValidationError("type", "type must be INCOME or EXPENSE")
	}
	if !category.IsValid() {
		return nil, shared.NewValidationError("category", "unknown transaction category")
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("amount", "amount must be greater than zero")
	}
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewValidationError("description", "description is required")
	}
	if dueDate.IsZero() {
		dueDate = time.Now()
	}

	return &Transaction{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Type:                txType,
		Category:            category,
		Amount:              amount,
		Status:              StatusPending,
		Description:         description,
		DueDate:             dueDate,
	}, nil
}

// AttachCase links the entry to a case and, optionally, the case's client
func (t *Transaction) AttachCase(caseID uuid.UUID, clientID *uuid.UUID) {
	t.CaseID = &caseID
	t.ClientID = clientID
}

// MarkPaid transitions PENDING -> PAID and stamps the payment date.
// PaidDate is set exactly once; any other transition is rejected.
func (t *Transaction) MarkPaid(paidAt time.Time) error {
	if t.Status != StatusPending {
		return shared.NewDomainError(shared.ErrCodeInvalidState, "transaction is already paid")
	}
	t.Status = StatusPaid
	t.PaidDate = &paidAt
	t.UpdatedAt = paidAt
	return nil
}

// IsArchived reports whether the entry has been archived by a period close
func (t *Transaction) IsArchived() bool {
	return t.ArchivedAt != nil
}
