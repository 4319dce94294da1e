package persistence

import (
	"context"
	"errors"

	"github.com/advoga/backend/internal/domain/matter"
	"github.com/advoga/backend/internal/domain/shared"
	"github.com/advoga/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// recentMovementLimit caps how many movements a case listing carries
const recentMovementLimit = 5

// GormCaseRepository implements matter.CaseRepository using GORM
type GormCaseRepository struct {
	db *gorm.DB
}

// NewGormCaseRepository creates a new GormCaseRepository
func NewGormCaseRepository(db *gorm.DB) *GormCaseRepository {
	return &GormCaseRepository{db: db}
}

// Save inserts a new case
func (r *GormCaseRepository) Save(ctx context.Context, c *matter.LegalCase) error {
	model := models.LegalCaseModelFromDomain(c)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewDomainError(shared.ErrCodeAlreadyExists,
				"a case with this number is already registered")
		}
		return shared.NewPersistenceError("case insert", err)
	}
	return nil
}

// FindByIDForTenant returns a case with its recent movements, or NOT_FOUND
func (r *GormCaseRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*matter.LegalCase, error) {
	var model models.LegalCaseModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	legalCase := model.ToDomain()
	movements, err := r.recentMovements(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	legalCase.Movements = movements[id]
	return legalCase, nil
}

// FindAllForTenant lists a tenant's cases, newest first, each with its most
// recent movements attached
func (r *GormCaseRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]matter.LegalCase, error) {
	var caseModels []models.LegalCaseModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&caseModels).Error; err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(caseModels))
	for i := range caseModels {
		ids[i] = caseModels[i].ID
	}
	movements := map[uuid.UUID][]matter.CaseMovement{}
	if len(ids) > 0 {
		var err error
		if movements, err = r.recentMovements(ctx, ids); err != nil {
			return nil, err
		}
	}

	cases := make([]matter.LegalCase, len(caseModels))
	for i := range caseModels {
		c := caseModels[i].ToDomain()
		c.Movements = movements[c.ID]
		cases[i] = *c
	}
	return cases, nil
}

// FindByIDs loads cases by primary key for reference denormalization
func (r *GormCaseRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]matter.LegalCase, error) {
	result := make(map[uuid.UUID]matter.LegalCase, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var caseModels []models.LegalCaseModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&caseModels).Error; err != nil {
		return nil, err
	}
	for i := range caseModels {
		result[caseModels[i].ID] = *caseModels[i].ToDomain()
	}
	return result, nil
}

// UpdateSyncResult persists registry metadata and the sync timestamp
func (r *GormCaseRepository) UpdateSyncResult(ctx context.Context, c *matter.LegalCase) error {
	result := r.db.WithContext(ctx).
		Model(&models.LegalCaseModel{}).
		Where("id = ? AND tenant_id = ?", c.ID, c.TenantID).
		Updates(map[string]any{
			"court":         c.Court,
			"ruling_body":   c.RulingBody,
			"process_class": c.ProcessClass,
			"filed_at":      c.FiledAt,
			"synced_at":     c.SyncedAt,
			"updated_at":    c.UpdatedAt,
		})
	if result.Error != nil {
		return shared.NewPersistenceError("case sync update", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// AppendMovements inserts movements, silently skipping rows that collide on
// the (case_id, code, occurred_at) unique key. Returns the number inserted.
func (r *GormCaseRepository) AppendMovements(ctx context.Context, caseID uuid.UUID, movements []matter.CaseMovement) (int, error) {
	if len(movements) == 0 {
		return 0, nil
	}
	batch := make([]*models.CaseMovementModel, len(movements))
	for i := range movements {
		batch[i] = models.CaseMovementModelFromDomain(movements[i])
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&batch)
	if result.Error != nil {
		return 0, shared.NewPersistenceError("movement append", result.Error)
	}
	return int(result.RowsAffected), nil
}

// recentMovements loads the newest movements per case, capped per case
func (r *GormCaseRepository) recentMovements(ctx context.Context, caseIDs []uuid.UUID) (map[uuid.UUID][]matter.CaseMovement, error) {
	var movementModels []models.CaseMovementModel
	if err := r.db.WithContext(ctx).
		Where("case_id IN ?", caseIDs).
		Order("occurred_at DESC").
		Find(&movementModels).Error; err != nil {
		return nil, err
	}

	grouped := make(map[uuid.UUID][]matter.CaseMovement, len(caseIDs))
	for i := range movementModels {
		caseID := movementModels[i].CaseID
		if len(grouped[caseID]) >= recentMovementLimit {
			continue
		}
		grouped[caseID] = append(grouped[caseID], movementModels[i].ToDomain())
	}
	return grouped, nil
}
