package ledger

import (
	"context"
	"time"

	"github.com/advoga/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PeriodService closes accounting periods and lists their snapshots
type PeriodService struct {
	txRepo       ledger.TransactionRepository
	snapshotRepo ledger.ReportSnapshotRepository
}

// NewPeriodService creates a new PeriodService
func NewPeriodService(txRepo ledger.TransactionRepository, snapshotRepo ledger.ReportSnapshotRepository) *PeriodService {
	return &PeriodService{
		txRepo:       txRepo,
		snapshotRepo: snapshotRepo,
	}
}

// ClosePeriodRequest represents a request to close a calendar month
type ClosePeriodRequest struct {
	Month int `json:"month" binding:"required"`
	Year  int `json:"year" binding:"required"`
}

// ReportSnapshotResponse represents a closed period in API responses
type ReportSnapshotResponse struct {
	ID                   uuid.UUID       `json:"id"`
	Month                int             `json:"month"`
	Year                 int             `json:"year"`
	Period               string          `json:"period"`
	TotalIncome          decimal.Decimal `json:"total_income"`
	TotalExpense         decimal.Decimal `json:"total_expense"`
	TotalFee             decimal.Decimal `json:"total_fee"`
	TotalCourtCost       decimal.Decimal `json:"total_court_cost"`
	TotalClientRepayment decimal.Decimal `json:"total_client_repayment"`
	TotalOperational     decimal.Decimal `json:"total_operational"`
	TransactionCount     int             `json:"transaction_count"`
	NetBalance           decimal.Decimal `json:"net_balance"`
	ClosedAt             time.Time       `json:"closed_at"`
}

// ClosePeriod closes one calendar month for a tenant: it folds the month's
// open transactions into an immutable snapshot and archives them, atomically.
// Closing an already-closed period fails with PERIOD_ALREADY_CLOSED, an empty
// month with NOTHING_TO_CLOSE; in either case nothing is written.
func (s *PeriodService) ClosePeriod(ctx context.Context, tenantID uuid.UUID, req ClosePeriodRequest) (*ReportSnapshotResponse, error) {
	if err := ledger.ValidateMonth(req.Month); err != nil {
		return nil, err
	}

	// Cheap pre-check; the unique period key settles any race at commit time.
	existing, err := s.snapshotRepo.FindByPeriod(ctx, tenantID, req.Month, req.Year)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ledger.NewPeriodAlreadyClosedError(req.Month, req.Year)
	}

	from, to := ledger.PeriodInterval(req.Month, req.Year)
	open, err := s.txRepo.FindOpenInPeriod(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}

	snapshot, err := ledger.BuildReportSnapshot(tenantID, req.Month, req.Year, open, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(open))
	for i := range open {
		ids[i] = open[i].ID
	}
	if err := s.snapshotRepo.SaveWithArchive(ctx, snapshot, ids); err != nil {
		return nil, err
	}
	return toReportSnapshotResponse(snapshot), nil
}

// ListReports lists the tenant's closed periods, newest first
func (s *PeriodService) ListReports(ctx context.Context, tenantID uuid.UUID) ([]ReportSnapshotResponse, error) {
	snapshots, err := s.snapshotRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	responses := make([]ReportSnapshotResponse, 0, len(snapshots))
	for i := range snapshots {
		responses = append(responses, *toReportSnapshotResponse(&snapshots[i]))
	}
	return responses, nil
}

func toReportSnapshotResponse(r *ledger.ReportSnapshot) *ReportSnapshotResponse {
	return &ReportSnapshotResponse{
		ID:                   r.ID,
		Month:                r.Month,
		Year:                 r.Year,
		Period:               r.PeriodLabel(),
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
}
