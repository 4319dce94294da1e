package persistence

import (
	"context"
	"errors"

	"github.com/advoga/backend/internal/domain/ledger"
	"github.com/advoga/backend/internal/domain/shared"
	"github.com/advoga/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReportSnapshotRepository implements ledger.ReportSnapshotRepository using GORM
type GormReportSnapshotRepository struct {
	db *gorm.DB
}

// NewGormReportSnapshotRepository creates a new GormReportSnapshotRepository
func NewGormReportSnapshotRepository(db *gorm.DB) *GormReportSnapshotRepository {
	return &GormReportSnapshotRepository{db: db}
}

// FindByPeriod returns the snapshot for (tenant, month, year), or nil when
// the period has not been closed
func (r *GormReportSnapshotRepository) FindByPeriod(ctx context.Context, tenantID uuid.UUID, month, year int) (*ledger.ReportSnapshot, error) {
	var model models.ReportSnapshotModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND month = ? AND year = ?", tenantID, month, year).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists a tenant's snapshots, newest period first
func (r *GormReportSnapshotRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]ledger.ReportSnapshot, error) {
	var snapshotModels []models.ReportSnapshotModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("year DESC, month DESC").
		Find(&snapshotModels).Error; err != nil {
		return nil, err
	}
	snapshots := make([]ledger.ReportSnapshot, len(snapshotModels))
	for i := range snapshotModels {
		snapshots[i] = *snapshotModels[i].ToDomain()
	}
	return snapshots, nil
}

// SaveWithArchive inserts the snapshot and archives exactly the given active
// transactions in one database transaction. Losing a concurrent-close race
// trips the (tenant_id, month, year) unique key, which gorm's TranslateError
// surfaces as ErrDuplicatedKey; that rolls the archive back and the caller
// sees PERIOD_ALREADY_CLOSED. If any targeted row was archived or removed in
// the meantime, the row count mismatch rolls everything back too.
func (r *GormReportSnapshotRepository) SaveWithArchive(ctx context.Context, snapshot *ledger.ReportSnapshot, transactionIDs []uuid.UUID) error {
	model := models.ReportSnapshotModelFromDomain(snapshot)

	err := r.db.WithContext(ctx).Transaction(func(dbTx *gorm.DB) error {
		if err := dbTx.Create(model).Error; err != nil {
			return err
		}

		result := dbTx.Model(&models.TransactionModel{}).
			Where("tenant_id = ? AND id IN ? AND archived_at IS NULL", snapshot.TenantID, transactionIDs).
			Updates(map[string]any{
				"archived_at": snapshot.ClosedAt,
				"updated_at":  snapshot.ClosedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != int64(len(transactionIDs)) {
			return shared.ErrConcurrencyConflict
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ledger.NewPeriodAlreadyClosedError(snapshot.Month, snapshot.Year)
		}
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return err
		}
		return shared.NewPersistenceError("period close", err)
	}
	return nil
}
