package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/advoga/backend/internal/domain/ledger"
	"github.com/advoga/backend/internal/domain/matter"
	"github.com/advoga/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettlementService splits incoming settlements into the firm's fee and the
// client's repayment, persisting both ledger entries atomically.
type SettlementService struct {
	txRepo   ledger.TransactionRepository
	caseRepo matter.CaseRepository
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(txRepo ledger.TransactionRepository, caseRepo matter.CaseRepository) *SettlementService {
	return &SettlementService{
		txRepo:   txRepo,
		caseRepo: caseRepo,
	}
}

// SplitSettlementRequest represents a request to split a settlement
type SplitSettlementRequest struct {
	CaseID      uuid.UUID       `json:"case_id" binding:"required"`
	GrossAmount decimal.Decimal `json:"gross_amount" binding:"required"`
	FeePercent  decimal.Decimal `json:"fee_percent" binding:"required"`
}

// SplitSettlementResponse returns the two entries produced by a split
type SplitSettlementResponse struct {
	Fee       TransactionResponse `json:"fee"`
	Repayment TransactionResponse `json:"repayment"`
}

// Split validates the case, computes the fee/repayment pair and writes both
// entries in one atomic batch. Calling Split twice for the same settlement
// records it twice; deduplication is the caller's responsibility.
func (s *SettlementService) Split(ctx context.Context, tenantID uuid.UUID, req SplitSettlementRequest) (*SplitSettlementResponse, error) {
	legalCase, err := s.caseRepo.FindByIDForTenant(ctx, tenantID, req.CaseID)
	if err != nil {
		return nil, err
	}

	gross := valueobject.NewMoneyBRL(req.GrossAmount)
	fee, repayment, err := ledger.SplitSettlement(gross, req.FeePercent)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	feeTx, err := ledger.NewTransaction(
		tenantID,
		ledger.TransactionTypeIncome,
		ledger.CategoryFee,
		fee,
		fmt.Sprintf("Attorney fees (%s%%) - settlement %s", req.FeePercent.String(), legalCase.CaseNumber),
		now,
	)
	if err != nil {
		return nil, err
	}
	repaymentTx, err := ledger.NewTransaction(
		tenantID,
		ledger.TransactionTypeExpense,
		ledger.CategoryClientRepayment,
		repayment,
		fmt.Sprintf("Client repayment - settlement %s", legalCase.CaseNumber),
		now,
	)
	if err != nil {
		return nil, err
	}

	feeTx.AttachCase(legalCase.ID, legalCase.ClientID)
	repaymentTx.AttachCase(legalCase.ID, legalCase.ClientID)

	if err := s.txRepo.SaveAll(ctx, []*ledger.Transaction{feeTx, repaymentTx}); err != nil {
		return nil, err
	}

	return &SplitSettlementResponse{
		Fee:       *toTransactionResponse(feeTx),
		Repayment: *toTransactionResponse(repaymentTx),
	}, nil
}
