package ledger

import (
	"context"
	"testing"

	"github.com/advoga/backend/internal/domain/matter"
	"github.com/advoga/backend/internal/infrastructure/persistence"
	"github.com/advoga/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// serviceFixture wires the ledger services against a throwaway sqlite database
type serviceFixture struct {
	transactions *TransactionService
	settlements  *SettlementService
	periods      *PeriodService
	caseRepo     matter.CaseRepository
	clientRepo   matter.ClientRepository
	tenantID     uuid.UUID
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.TransactionModel{},
		&models.ReportSnapshotModel{},
		&models.LegalCaseModel{},
		&models.CaseMovementModel{},
		&models.ClientModel{},
	))
	// Mirrors the unique keys the schema migration creates in postgres.
	require.NoError(t, db.Exec(
		"CREATE UNIQUE INDEX idx_report_tenant_period ON report_snapshots(tenant_id, month, year)").Error)
	require.NoError(t, db.Exec(
		"CREATE UNIQUE INDEX idx_case_tenant_number ON legal_cases(tenant_id, case_number)").Error)

	txRepo := persistence.NewGormTransactionRepository(db)
	snapshotRepo := persistence.NewGormReportSnapshotRepository(db)
	caseRepo := persistence.NewGormCaseRepository(db)
	clientRepo := persistence.NewGormClientRepository(db)

	return &serviceFixture{
		transactions: NewTransactionService(txRepo, caseRepo, clientRepo),
		settlements:  NewSettlementService(txRepo, caseRepo),
		periods:      NewPeriodService(txRepo, snapshotRepo),
		caseRepo:     caseRepo,
		clientRepo:   clientRepo,
		tenantID:     uuid.New(),
	}
}

func (f *serviceFixture) newClient(t *testing.T, name string) *matter.Client {
	t.Helper()
	client, err := matter.NewClient(f.tenantID, name, "123.456.789-00", matter.ClientTypeIndividual)
	require.NoError(t, err)
	require.NoError(t, f.clientRepo.Save(context.Background(), client))
	return client
}

func (f *serviceFixture) newCase(t *testing.T, caseNumber string, clientID *uuid.UUID) *matter.LegalCase {
	t.Helper()
	legalCase, err := matter.NewLegalCase(f.tenantID, caseNumber, "Silva v. Acme", "Civil", clientID)
	require.NoError(t, err)
	require.NoError(t, f.caseRepo.Save(context.Background(), legalCase))
	return legalCase
}
