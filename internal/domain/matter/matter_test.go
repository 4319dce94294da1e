package matter

import (
	"testing"
	"time"

	"github.com/advoga/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLegalCase(t *testing.T) {
	tenantID := uuid.New()
	clientID := uuid.New()

	t.Run("creates an active case", func(t *testing.T) {
		c, err := NewLegalCase(tenantID, "0001234-56.2024.8.26.0100", "Silva v. Acme", "Civil", &clientID)
		require.NoError(t, err)
		assert.Equal(t, tenantID, c.TenantID)
		assert.Equal(t, CaseStatusActive, c.Status)
		assert.Nil(t, c.SyncedAt)
	})

	t.Run("requires a case number", func(t *testing.T) {
		_, err := NewLegalCase(tenantID, "  ", "Silva v. Acme", "Civil", nil)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "case_number", domainErr.Field)
	})

	t.Run("requires a title", func(t *testing.T) {
		_, err := NewLegalCase(tenantID, "0001234-56.2024.8.26.0100", "", "Civil", nil)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "title", domainErr.Field)
	})
}

func TestApplySyncResult(t *testing.T) {
	c, err := NewLegalCase(uuid.New(), "0001234-56.2024.8.26.0100", "Silva v. Acme", "Civil", nil)
	require.NoError(t, err)

	filedAt := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	syncedAt := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	c.ApplySyncResult("TJSP", "1st Civil Chamber", "Execution", &filedAt, syncedAt)

	assert.Equal(t, "TJSP", c.Court)
	assert.Equal(t, "1st Civil Chamber", c.RulingBody)
	assert.Equal(t, "Execution", c.ProcessClass)
	require.NotNil(t, c.FiledAt)
	assert.Equal(t, filedAt, *c.FiledAt)
	require.NotNil(t, c.SyncedAt)
	assert.Equal(t, syncedAt, *c.SyncedAt)

	t.Run("blank fields do not clobber existing metadata", func(t *testing.T) {
		later := syncedAt.Add(time.Hour)
		c.ApplySyncResult("", "", "", nil, later)
		assert.Equal(t, "TJSP", c.Court)
		assert.Equal(t, filedAt, *c.FiledAt)
		assert.Equal(t, later, *c.SyncedAt)
	})
}

func TestNewClient(t *testing.T) {
	tenantID := uuid.New()

	t.Run("defaults to an active individual", func(t *testing.T) {
		c, err := NewClient(tenantID, "Maria Silva", "123.456.789-00", "")
		require.NoError(t, err)
		assert.Equal(t, ClientTypeIndividual, c.Type)
		assert.Equal(t, ClientStatusActive, c.Status)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		_, err := NewClient(tenantID, "", "", ClientTypeIndividual)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "name", domainErr.Field)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewClient(tenantID, "Acme Ltda", "12.345.678/0001-00", "PARTNERSHIP")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "type", domainErr.Field)
	})
}
