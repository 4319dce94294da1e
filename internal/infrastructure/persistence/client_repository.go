package persistence

import (
	"context"
	"errors"

	"github.com/advoga/backend/internal/domain/matter"
	"github.com/advoga/backend/internal/domain/shared"
	"github.com/advoga/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormClientRepository implements matter.ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// Save inserts a new client
func (r *GormClientRepository) Save(ctx context.Context, c *matter.Client) error {
	model := models.ClientModelFromDomain(c)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return shared.NewPersistenceError("client insert", err)
	}
	return nil
}

// FindByIDForTenant returns a client or NOT_FOUND
func (r *GormClientRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*matter.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists a tenant's clients ordered by name
func (r *GormClientRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]matter.Client, error) {
	var clientModels []models.ClientModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&clientModels).Error; err != nil {
		return nil, err
	}
	clients := make([]matter.Client, len(clientModels))
	for i := range clientModels {
		clients[i] = *clientModels[i].ToDomain()
	}
	return clients, nil
}

// FindByIDs loads clients by primary key for reference denormalization
func (r *GormClientRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]matter.Client, error) {
	result := make(map[uuid.UUID]matter.Client, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var clientModels []models.ClientModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&clientModels).Error; err != nil {
		return nil, err
	}
	for i := range clientModels {
		result[clientModels[i].ID] = *clientModels[i].ToDomain()
	}
	return result, nil
}
