package ledger

import (
	"github.com/advoga/backend/internal/domain/shared"
	"github.com/advoga/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// SplitSettlement splits a gross settlement amount into the firm's fee and the
// client's repayment.
//
// The fee is rounded half-up to two decimal places; the repayment is then
// derived by subtraction from the gross, never by rounding its own share.
// Rounding each half independently can drift by a cent, so this order is the
// invariant, not an implementation detail: fee + repayment == gross, exactly.
func SplitSettlement(gross valueobject.Money, feePercent decimal.Decimal) (fee, repayment valueobject.Money, err error) {
	if !gross.IsPositive() {
		return fee, repayment, shared.NewValidationError("gross_amount", "gross amount must be greater than zero")
	}
	if feePercent.LessThanOrEqual(decimal.Zero) || feePercent.GreaterThanOrEqual(oneHundred) {
		return fee, repayment, shared.NewValidationError("fee_percent", "fee percent must be between 0 and 100, exclusive")
	}

	fee = gross.Mul(feePercent.Div(oneHundred)).Round()
	repayment, err = gross.Sub(fee)
	if err != nil {
		return fee, repayment, err
	}

	// Degenerate combinations (tiny gross, extreme percent) can round one
	// share to zero, which would produce an unpayable ledger entry.
	if fee.IsZero() {
		return fee, repayment, shared.NewValidationError("fee_percent", "fee share rounds to zero for this gross amount")
	}
	if repayment.IsZero() {
		return fee, repayment, shared.NewValidationError("fee_percent", "client share rounds to zero for this gross amount")
	}
	return fee, repayment, nil
}
