package matter

import (
	"strings"
	"time"

	"github.com/advoga/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CaseStatus represents the lifecycle state of a legal case
type CaseStatus string

const (
	CaseStatusActive    CaseStatus = "ACTIVE"
	CaseStatusSuspended CaseStatus = "SUSPENDED"
	CaseStatusClosed    CaseStatus = "CLOSED"
)

// IsValid checks if the case status is valid
func (s CaseStatus) IsValid() bool {
	switch s {
	case CaseStatusActive, CaseStatusSuspended, CaseStatusClosed:
		return true
	}
	return false
}

func (s CaseStatus) String() string {
	return string(s)
}

// LegalCase is a tenant-scoped legal matter identified by its national
// registry number. Registry metadata (court, ruling body, class, movements)
// is filled in by the synchronization worker; SyncedAt records the last
// successful fetch.
type LegalCase struct {
	shared.TenantAggregateRoot
	CaseNumber   string
	Title        string
	Area         string
	Phase        string
	Status       CaseStatus
	Court        string
	RulingBody   string
	ProcessClass string
	FiledAt      *time.Time
	SyncedAt     *time.Time
	ClientID     *uuid.UUID
	Movements    []CaseMovement
}

// CaseMovement is one procedural step recorded by the court registry.
// The (CaseID, Code, OccurredAt) triple is unique so re-syncing the same
// case never duplicates a movement.
type CaseMovement struct {
	shared.BaseEntity
	CaseID     uuid.UUID
	Code       int
	Name       string
	OccurredAt time.Time
}

// NewLegalCase creates a new legal case for a tenant
func NewLegalCase(tenantID uuid.UUID, caseNumber, title, area string, clientID *uuid.UUID) (*LegalCase, error) {
	caseNumber = strings.TrimSpace(caseNumber)
	if caseNumber == "" {
		return nil, shared.NewValidationError("case_number", "case number is required")
	}
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewValidationError("title", "title is required")
	}

	return &LegalCase{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CaseNumber:          caseNumber,
		Title:               strings.TrimSpace(title),
		Area:                strings.TrimSpace(area),
		Status:              CaseStatusActive,
		ClientID:            clientID,
	}, nil
}

// NewCaseMovement creates a movement entry for a case
func NewCaseMovement(caseID uuid.UUID, code int, name string, occurredAt time.Time) CaseMovement {
	return CaseMovement{
		BaseEntity: shared.NewBaseEntity(),
		CaseID:     caseID,
		Code:       code,
		Name:       name,
		OccurredAt: occurredAt,
	}
}

// ApplySyncResult merges registry metadata fetched by the sync worker
func (c *LegalCase) ApplySyncResult(court, rulingBody, processClass string, filedAt *time.Time, syncedAt time.Time) {
	if court != "" {
		c.Court = court
	}
	if rulingBody != "" {
		c.RulingBody = rulingBody
	}
	if processClass != "" {
		c.ProcessClass = processClass
	}
	if filedAt != nil {
		c.FiledAt = filedAt
	}
	c.SyncedAt = &syncedAt
	c.UpdatedAt = syncedAt
}
