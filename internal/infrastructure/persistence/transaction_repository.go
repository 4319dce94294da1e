package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/advoga/backend/internal/domain/ledger"
	"github.com/advoga/backend/internal/domain/shared"
	"github.com/advoga/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTransactionRepository implements ledger.TransactionRepository using GORM.
// Every statement carries both the tenant scope and the active-rows guard
// (archived_at IS NULL); nothing outside this file decides row visibility.
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

func (r *GormTransactionRepository) activeForTenant(ctx context.Context, tenantID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.TransactionModel{}).
		Where("tenant_id = ? AND archived_at IS NULL", tenantID)
}

// Save inserts a single transaction
func (r *GormTransactionRepository) Save(ctx context.Context, tx *ledger.Transaction) error {
	model := models.TransactionModelFromDomain(tx)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return shared.NewPersistenceError("transaction insert", err)
	}
	return nil
}

// SaveAll inserts a batch of transactions in one database transaction
func (r *GormTransactionRepository) SaveAll(ctx context.Context, txs []*ledger.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	batch := make([]*models.TransactionModel, len(txs))
	for i, tx := range txs {
		batch[i] = models.TransactionModelFromDomain(tx)
	}
	err := r.db.WithContext(ctx).Transaction(func(dbTx *gorm.DB) error {
		return dbTx.Create(&batch).Error
	})
	if err != nil {
		return shared.NewPersistenceError("transaction batch insert", err)
	}
	return nil
}

// Update persists changes to an active transaction using optimistic locking.
// Archived rows are invisible here, so updating one yields NOT_FOUND rather
// than resurrecting it.
func (r *GormTransactionRepository) Update(ctx context.Context, tx *ledger.Transaction) error {
	model := models.TransactionModelFromDomain(tx)
	expectedVersion := tx.Version

	result := r.db.WithContext(ctx).
		Model(&models.TransactionModel{}).
		Where("id = ? AND tenant_id = ? AND version = ? AND archived_at IS NULL",
			tx.ID, tx.TenantID, expectedVersion).
		Updates(map[string]any{
			"status":     model.Status,
			"paid_date":  model.PaidDate,
			"updated_at": time.Now().UTC(),
			"version":    expectedVersion + 1,
		})
	if result.Error != nil {
		return shared.NewPersistenceError("transaction update", result.Error)
	}
	if result.RowsAffected == 0 {
		// Distinguish a stale version from a row that is gone or archived.
		var count int64
		if err := r.activeForTenant(ctx, tx.TenantID).Where("id = ?", tx.ID).Count(&count).Error; err != nil {
			return shared.NewPersistenceError("transaction update", err)
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrConcurrencyConflict
	}
	tx.IncrementVersion()
	return nil
}

// FindActiveByIDForTenant returns an active transaction or NOT_FOUND
func (r *GormTransactionRepository) FindActiveByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Transaction, error) {
	var model models.TransactionModel
	if err := r.activeForTenant(ctx, tenantID).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists active transactions, newest first
func (r *GormTransactionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ledger.TransactionFilter) ([]ledger.Transaction, error) {
	query := r.activeForTenant(ctx, tenantID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var txModels []models.TransactionModel
	if err := query.Order("created_at DESC").Find(&txModels).Error; err != nil {
		return nil, err
	}
	txs := make([]ledger.Transaction, len(txModels))
	for i := range txModels {
		txs[i] = *txModels[i].ToDomain()
	}
	return txs, nil
}

// FindOpenInPeriod selects active transactions created in [from, to)
func (r *GormTransactionRepository) FindOpenInPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]ledger.Transaction, error) {
	var txModels []models.TransactionModel
	if err := r.activeForTenant(ctx, tenantID).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at ASC").
		Find(&txModels).Error; err != nil {
		return nil, err
	}
	txs := make([]ledger.Transaction, len(txModels))
	for i := range txModels {
		txs[i] = *txModels[i].ToDomain()
	}
	return txs, nil
}

// SumByGroup aggregates active transaction amounts by (type, category, status)
func (r *GormTransactionRepository) SumByGroup(ctx context.Context, tenantID uuid.UUID) ([]ledger.GroupedSum, error) {
	var sums []ledger.GroupedSum
	if err := r.activeForTenant(ctx, tenantID).
		Select("type, category, status, SUM(amount) AS total").
		Group("type, category, status").
		Order("type, category, status").
		Scan(&sums).Error; err != nil {
		return nil, err
	}
	return sums, nil
}
