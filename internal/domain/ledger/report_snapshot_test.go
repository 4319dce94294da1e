package ledger

import (
	"testing"
	"time"

	"github.com/advoga/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMonth(t *testing.T) {
	for _, m := range []int{1, 6, 12} {
		assert.NoError(t, ValidateMonth(m))
	}
	for _, m := range []int{0, -1, 13} {
		var domainErr *shared.DomainError
		require.ErrorAs(t, ValidateMonth(m), &domainErr)
		assert.Equal(t, shared.ErrCodeValidation, domainErr.Code)
		assert.Equal(t, "month", domainErr.Field)
	}
}

func TestPeriodInterval(t *testing.T) {
	t.Run("mid-year month", func(t *testing.T) {
		from, to := PeriodInterval(3, 2025)
		assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), from)
		assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), to)
	})

	t.Run("december rolls over to january", func(t *testing.T) {
		from, to := PeriodInterval(12, 2025)
		assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), from)
		assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), to)
	})
}

func TestFormatPeriod(t *testing.T) {
	assert.Equal(t, "03/2025", FormatPeriod(3, 2025))
	assert.Equal(t, "12/2025", FormatPeriod(12, 2025))
}

func TestBuildReportSnapshot(t *testing.T) {
	tenantID := uuid.New()
	closedAt := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

	makeTx := func(t *testing.T, txType TransactionType, category TransactionCategory, amount string) Transaction {
		tx, err := NewTransaction(tenantID, txType, category, mustMoney(t, amount), "entry", time.Now())
		require.NoError(t, err)
		return *tx
	}

	t.Run("folds totals by direction and category", func(t *testing.T) {
		txs := []Transaction{
			makeTx(t, TransactionTypeIncome, CategoryFee, "3000.00"),
			makeTx(t, TransactionTypeIncome, CategoryFee, "1500.50"),
			makeTx(t, TransactionTypeExpense, CategoryClientRepayment, "7000.00"),
			makeTx(t, TransactionTypeExpense, CategoryCourtCost, "250.25"),
			makeTx(t, TransactionTypeExpense, CategoryOperational, "99.99"),
		}

		snapshot, err := BuildReportSnapshot(tenantID, 3, 2025, txs, closedAt)
		require.NoError(t, err)

		assert.Equal(t, tenantID, snapshot.TenantID)
		assert.Equal(t, 3, snapshot.Month)
		assert.Equal(t, 2025, snapshot.Year)
		assert.Equal(t, closedAt, snapshot.ClosedAt)
		assert.Equal(t, 5, snapshot.TransactionCount)

		assert.True(t, snapshot.TotalIncome.Equal(mustMoney(t, "4500.50")), "income = %s", snapshot.TotalIncome)
		assert.True(t, snapshot.TotalExpense.Equal(mustMoney(t, "7350.24")), "expense = %s", snapshot.TotalExpense)
		assert.True(t, snapshot.TotalFee.Equal(mustMoney(t, "4500.50")), "fee = %s", snapshot.TotalFee)
		assert.True(t, snapshot.TotalCourtCost.Equal(mustMoney(t, "250.25")), "court cost = %s", snapshot.TotalCourtCost)
		assert.True(t, snapshot.TotalClientRepayment.Equal(mustMoney(t, "7000.00")), "repayment = %s", snapshot.TotalClientRepayment)
		assert.True(t, snapshot.TotalOperational.Equal(mustMoney(t, "99.99")), "operational = %s", snapshot.TotalOperational)
		assert.True(t, snapshot.NetBalance.Equal(mustMoney(t, "-2849.74")), "net = %s", snapshot.NetBalance)
	})

	t.Run("empty period yields nothing-to-close", func(t *testing.T) {
		_, err := BuildReportSnapshot(tenantID, 3, 2025, nil, closedAt)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.ErrCodeNothingToClose, domainErr.Code)
		assert.Contains(t, domainErr.Message, "03/2025")
	})

	t.Run("invalid month is rejected before anything else", func(t *testing.T) {
		_, err := BuildReportSnapshot(tenantID, 13, 2025, nil, closedAt)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.ErrCodeValidation, domainErr.Code)
	})
}

func TestNewPeriodAlreadyClosedError(t *testing.T) {
	err := NewPeriodAlreadyClosedError(7, 2025)
	assert.Equal(t, shared.ErrCodePeriodAlreadyClosed, err.Code)
	assert.Contains(t, err.Message, "07/2025")
}
