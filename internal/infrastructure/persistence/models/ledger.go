package models

import (
	"time"

	"github.com/advoga/backend/internal/domain/ledger"
	"github.com/advoga/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionModel is the persistence model for the Transaction aggregate root
type TransactionModel struct {
	TenantAggregateModel
	Type        ledger.TransactionType     `gorm:"type:varchar(10);not null;index"`
	Category    ledger.TransactionCategory `gorm:"type:varchar(30);not null;index"`
	Amount      decimal.Decimal            `gorm:"type:decimal(18,2);not null"`
	Currency    string                     `gorm:"type:varchar(3);not null;default:'BRL'"`
	Status      ledger.TransactionStatus   `gorm:"type:varchar(10);not null;index"`
	Description string                     `gorm:"type:varchar(500);not null"`
	DueDate     time.Time                  `gorm:"not null"`
	PaidDate    *time.Time
	CaseID      *uuid.UUID `gorm:"type:uuid;index"`
	ClientID    *uuid.UUID `gorm:"type:uuid;index"`
	ArchivedAt  *time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts the persistence model to a domain Transaction
func (m *TransactionModel) ToDomain() *ledger.Transaction {
	tx := &ledger.Transaction{
		Type:        m.Type,
		Category:    m.Category,
		Amount:      mustMoney(m.Amount, m.Currency),
		Status:      m.Status,
		Description: m.Description,
		DueDate:     m.DueDate,
		PaidDate:    m.PaidDate,
		CaseID:      m.CaseID,
		ClientID:    m.ClientID,
		ArchivedAt:  m.ArchivedAt,
	}
	m.PopulateTenantAggregateRoot(&tx.TenantAggregateRoot)
	return tx
}

// TransactionModelFromDomain converts a domain Transaction to its persistence model
func TransactionModelFromDomain(tx *ledger.Transaction) *TransactionModel {
	m := &TransactionModel{
		Type:        tx.Type,
		Category:    tx.Category,
		Amount:      tx.Amount.Amount(),
		Currency:    string(tx.Amount.Currency()),
		Status:      tx.Status,
		Description: tx.Description,
		DueDate:     tx.DueDate,
		PaidDate:    tx.PaidDate,
		CaseID:      tx.CaseID,
		ClientID:    tx.ClientID,
		ArchivedAt:  tx.ArchivedAt,
	}
	m.FromDomainTenantAggregateRoot(tx.TenantAggregateRoot)
	return m
}

// ReportSnapshotModel is the persistence model for the ReportSnapshot
// aggregate root. The unique index on (tenant_id, month, year), created by
// the schema migration, is what makes closing a period idempotent under
// concurrency.
type ReportSnapshotModel struct {
	TenantAggregateModel
	Month                int             `gorm:"not null"`
	Year                 int             `gorm:"not null"`
	Currency             string          `gorm:"type:varchar(3);not null;default:'BRL'"`
	TotalIncome          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalExpense         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalFee             decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalCourtCost       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalClientRepayment decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalOperational     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TransactionCount     int             `gorm:"not null"`
	NetBalance           decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ClosedAt             time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReportSnapshotModel) TableName() string {
	return "report_snapshots"
}

// ToDomain converts the persistence model to a domain ReportSnapshot
func (m *ReportSnapshotModel) ToDomain() *ledger.ReportSnapshot {
	r := &ledger.ReportSnapshot{
		Month:                m.Month,
		Year:                 m.Year,
		TotalIncome:          mustMoney(m.TotalIncome, m.Currency),
		TotalExpense:         mustMoney(m.TotalExpense, m.Currency),
		TotalFee:             mustMoney(m.TotalFee, m.Currency),
		TotalCourtCost:       mustMoney(m.TotalCourtCost, m.Currency),
		TotalClientRepayment: mustMoney(m.TotalClientRepayment, m.Currency),
		TotalOperational:     mustMoney(m.TotalOperational, m.Currency),
		TransactionCount:     m.TransactionCount,
		NetBalance:           mustMoney(m.NetBalance, m.Currency),
		ClosedAt:             m.ClosedAt,
	}
	m.PopulateTenantAggregateRoot(&r.TenantAggregateRoot)
	return r
}

// ReportSnapshotModelFromDomain converts a domain ReportSnapshot to its persistence model
func ReportSnapshotModelFromDomain(r *ledger.ReportSnapshot) *ReportSnapshotModel {
	m := &ReportSnapshotModel{
		Month:                r.Month,
		Year:                 r.Year,
		Currency:             string(r.TotalIncome.Currency()),
		TotalIncome:          r.TotalIncome.Amount(),
		TotalExpense:         r.TotalExpense.Amount(),
		TotalFee:             r.TotalFee.Amount(),
		TotalCourtCost:       r.TotalCourtCost.Amount(),
		TotalClientRepayment: r.TotalClientRepayment.Amount(),
		TotalOperational:     r.TotalOperational.Amount(),
		TransactionCount:     r.TransactionCount,
		NetBalance:           r.NetBalance.Amount(),
		ClosedAt:             r.ClosedAt,
	}
	m.FromDomainTenantAggregateRoot(r.TenantAggregateRoot)
	return m
}

func mustMoney(amount decimal.Decimal, currency string) valueobject.Money {
	if currency == "" {
		currency = string(valueobject.DefaultCurrency)
	}
	m, err := valueobject.NewMoney(amount, valueobject.Currency(currency))
	if err != nil {
		// Currency is non-empty here, NewMoney cannot fail.
		panic(err)
	}
	return m
}
