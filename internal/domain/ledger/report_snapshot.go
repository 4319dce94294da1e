package ledger

import (
	"fmt"
	"time"

	"github.com/advoga/backend/internal/domain/shared"
	"github.com/advoga/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ReportSnapshot is the immutable closing record of one calendar month of a
// tenant's ledger. Exactly one snapshot may exist per (tenant, month, year);
// the storage layer enforces that key and the Period Closer relies on it as
// the idempotency guard. Once written, a snapshot is never updated or deleted.
type ReportSnapshot struct {
	shared.TenantAggregateRoot
	Month                int
	Year                 int
	TotalIncome          valueobject.Money
	TotalExpense         valueobject.Money
	TotalFee             valueobject.Money
	TotalCourtCost       valueobject.Money
	TotalClientRepayment valueobject.Money
	TotalOperational     valueobject.Money
	TransactionCount     int
	NetBalance           valueobject.Money
	ClosedAt             time.Time
}

// PeriodLabel returns the snapshot's period formatted as MM/YYYY
func (r *ReportSnapshot) PeriodLabel() string {
	return FormatPeriod(r.Month, r.Year)
}

// FormatPeriod formats a (month, year) pair as MM/YYYY
func FormatPeriod(month, year int) string {
	return fmt.Sprintf("%02d/%d", month, year)
}

// ValidateMonth checks the calendar-month bound
func ValidateMonth(month int) error {
	if month < 1 || month > 12 {
		return shared.NewValidationError("month", "month must be between 1 and 12")
	}
	return nil
}

// PeriodInterval returns the half-open UTC interval [first day of month,
// first day of next month) used to select a period's transactions by createdAt.
func PeriodInterval(month, year int) (from, to time.Time) {
	from = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

// NewPeriodAlreadyClosedError reports that a period was already closed
func NewPeriodAlreadyClosedError(month, year int) *shared.DomainError {
	return shared.NewDomainError(shared.ErrCodePeriodAlreadyClosed,
		fmt.Sprintf("period %s has already been closed", FormatPeriod(month, year)))
}

// NewNothingToCloseError reports that a period has no open transactions
func NewNothingToCloseError(month, year int) *shared.DomainError {
	return shared.NewDomainError(shared.ErrCodeNothingToClose,
		fmt.Sprintf("no open transactions found in period %s", FormatPeriod(month, year)))
}

// BuildReportSnapshot folds a non-empty set of open transactions into the
// closing snapshot for the given period. Totals are grouped the way the
// dashboard reads them: by direction (income/expense) and by category.
func BuildReportSnapshot(
	tenantID uuid.UUID,
	month, year int,
	transactions []Transaction,
	closedAt time.Time,
) (*ReportSnapshot, error) {
	if err := ValidateMonth(month); err != nil {
		return nil, err
	}
	if len(transactions) == 0 {
		return nil, NewNothingToCloseError(month, year)
	}

	currency := transactions[0].Amount.Currency()
	totalIncome := valueobject.Zero(currency)
	totalExpense := valueobject.Zero(currency)
	totalFee := valueobject.Zero(currency)
	totalCourtCost := valueobject.Zero(currency)
	totalClientRepayment := valueobject.Zero(currency)
	totalOperational := valueobject.Zero(currency)

	var err error
	for _, tx := range transactions {
		switch tx.Type {
		case TransactionTypeIncome:
			if totalIncome, err = totalIncome.Add(tx.Amount); err != nil {
				return nil, err
			}
		case TransactionTypeExpense:
			if totalExpense, err = totalExpense.Add(tx.Amount); err != nil {
				return nil, err
			}
		}

		switch tx.Category {
		case CategoryFee:
			if totalFee, err = totalFee.Add(tx.Amount); err != nil {
				return nil, err
			}
		case CategoryCourtCost:
			if totalCourtCost, err = totalCourtCost.Add(tx.Amount); err != nil {
				return nil, err
			}
		case CategoryClientRepayment:
			if totalClientRepayment, err = totalClientRepayment.Add(tx.Amount); err != nil {
				return nil, err
			}
		case CategoryOperational:
			if totalOperational, err = totalOperational.Add(tx.Amount); err != nil {
				return nil, err
			}
		}
	}

	netBalance, err := totalIncome.Sub(totalExpense)
	if err != nil {
		return nil, err
	}

	return &ReportSnapshot{
		TenantAggregateRoot:  shared.NewTenantAggregateRoot(tenantID),
		Month:                month,
		Year:                 year,
		TotalIncome:          totalIncome,
		TotalExpense:         totalExpense,
		TotalFee:             totalFee,
		TotalCourtCost:       totalCourtCost,
		TotalClientRepayment: totalClientRepayment,
		TotalOperational:     totalOperational,
		TransactionCount:     len(transactions),
		NetBalance:           netBalance,
		ClosedAt:             closedAt,
	}, nil
}
