package models

import (
	"time"

	"github.com/advoga/backend/internal/domain/matter"
	"github.com/google/uuid"
)

// LegalCaseModel is the persistence model for the LegalCase aggregate root
type LegalCaseModel struct {
	TenantAggregateModel
	CaseNumber   string            `gorm:"type:varchar(30);not null;index"`
	Title        string            `gorm:"type:varchar(300);not null"`
	Area         string            `gorm:"type:varchar(50)"`
	Phase        string            `gorm:"type:varchar(50)"`
	Status       matter.CaseStatus `gorm:"type:varchar(20);not null;index"`
	Court        string            `gorm:"type:varchar(100)"`
	RulingBody   string            `gorm:"type:varchar(200)"`
	ProcessClass string            `gorm:"type:varchar(200)"`
	FiledAt      *time.Time
	SyncedAt     *time.Time
	ClientID     *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (LegalCaseModel) TableName() string {
	return "legal_cases"
}

// ToDomain converts the persistence model to a domain LegalCase
func (m *LegalCaseModel) ToDomain() *matter.LegalCase {
	c := &matter.LegalCase{
		CaseNumber:   m.CaseNumber,
		Title:        m.Title,
		Area:         m.Area,
		Phase:        m.Phase,
		Status:       m.Status,
		Court:        m.Court,
		RulingBody:   m.RulingBody,
		ProcessClass: m.ProcessClass,
		FiledAt:      m.FiledAt,
		SyncedAt:     m.SyncedAt,
		ClientID:     m.ClientID,
	}
	m.PopulateTenantAggregateRoot(&c.TenantAggregateRoot)
	return c
}

// LegalCaseModelFromDomain converts a domain LegalCase to its persistence model
func LegalCaseModelFromDomain(c *matter.LegalCase) *LegalCaseModel {
	m := &LegalCaseModel{
		CaseNumber:   c.CaseNumber,
		Title:        c.Title,
		Area:         c.Area,
		Phase:        c.Phase,
		Status:       c.Status,
		Court:        c.Court,
		RulingBody:   c.RulingBody,
		ProcessClass: c.ProcessClass,
		FiledAt:      c.FiledAt,
		SyncedAt:     c.SyncedAt,
		ClientID:     c.ClientID,
	}
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	return m
}

// CaseMovementModel is the persistence model for court movements. The unique
// index on (case_id, code, occurred_at) lets re-syncs insert with
// conflict-skip instead of deduplicating in application code.
type CaseMovementModel struct {
	BaseModel
	CaseID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_movement_case_code_time,priority:1"`
	Code       int       `gorm:"not null;uniqueIndex:idx_movement_case_code_time,priority:2"`
	Name       string    `gorm:"type:varchar(300);not null"`
	OccurredAt time.Time `gorm:"not null;uniqueIndex:idx_movement_case_code_time,priority:3"`
}

// TableName returns the table name for GORM
func (CaseMovementModel) TableName() string {
	return "case_movements"
}

// ToDomain converts the persistence model to a domain CaseMovement
func (m *CaseMovementModel) ToDomain() matter.CaseMovement {
	return matter.CaseMovement{
		BaseEntity: m.BaseModel.ToDomain(),
		CaseID:     m.CaseID,
		Code:       m.Code,
		Name:       m.Name,
		OccurredAt: m.OccurredAt,
	}
}

// CaseMovementModelFromDomain converts a domain CaseMovement to its persistence model
func CaseMovementModelFromDomain(mv matter.CaseMovement) *CaseMovementModel {
	m := &CaseMovementModel{
		CaseID:     mv.CaseID,
		Code:       mv.Code,
		Name:       mv.Name,
		OccurredAt: mv.OccurredAt,
	}
	m.FromDomainBaseEntity(mv.BaseEntity)
	return m
}

// ClientModel is the persistence model for the Client aggregate root
type ClientModel struct {
	TenantAggregateModel
	Name     string              `gorm:"type:varchar(200);not null"`
	Document string              `gorm:"type:varchar(30);index"`
	Type     matter.ClientType   `gorm:"type:varchar(20);not null"`
	Email    string              `gorm:"type:varchar(200)"`
	Phone    string              `gorm:"type:varchar(30)"`
	Address  string              `gorm:"type:varchar(500)"`
	Status   matter.ClientStatus `gorm:"type:varchar(20);not null;index"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client
func (m *ClientModel) ToDomain() *matter.Client {
	c := &matter.Client{
		Name:     m.Name,
		Document: m.Document,
		Type:     m.Type,
		Email:    m.Email,
		Phone:    m.Phone,
		Address:  m.Address,
		Status:   m.Status,
	}
	m.PopulateTenantAggregateRoot(&c.TenantAggregateRoot)
	return c
}

// ClientModelFromDomain converts a domain Client to its persistence model
func ClientModelFromDomain(c *matter.Client) *ClientModel {
	m := &ClientModel{
		Name:     c.Name,
		Document: c.Document,
		Type:     c.Type,
		Email:    c.Email,
		Phone:    c.Phone,
		Address:  c.Address,
		Status:   c.Status,
	}
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	return m
}
