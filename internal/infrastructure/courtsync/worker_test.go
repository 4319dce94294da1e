package courtsync

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/advoga/backend/internal/domain/matter"
	"github.com/advoga/backend/internal/infrastructure/cache"
	"github.com/advoga/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubFetcher struct {
	mu       sync.Mutex
	failures int
	outcome  *matter.SyncOutcome
	calls    int
}

func (f *stubFetcher) FetchCase(ctx context.Context, caseNumber string) (*matter.SyncOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("registry timeout")
	}
	return f.outcome, nil
}

type stubCaseRepo struct {
	mu        sync.Mutex
	legalCase *matter.LegalCase
	appended  []matter.CaseMovement
	synced    chan struct{}
}

func (r *stubCaseRepo) Save(ctx context.Context, c *matter.LegalCase) error { return nil }

func (r *stubCaseRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*matter.LegalCase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *r.legalCase
	return &c, nil
}

func (r *stubCaseRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]matter.LegalCase, error) {
	return nil, nil
}

func (r *stubCaseRepo) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]matter.LegalCase, error) {
	return nil, nil
}

func (r *stubCaseRepo) UpdateSyncResult(ctx context.Context, c *matter.LegalCase) error {
	r.mu.Lock()
	r.legalCase = c
	r.mu.Unlock()
	return nil
}

func (r *stubCaseRepo) AppendMovements(ctx context.Context, caseID uuid.UUID, movements []matter.CaseMovement) (int, error) {
	r.mu.Lock()
	r.appended = append(r.appended, movements...)
	r.mu.Unlock()
	close(r.synced)
	return len(movements), nil
}

func newWorkerFixture(t *testing.T, fetcher Fetcher, repo *stubCaseRepo, queueSize int) *Worker {
	t.Helper()
	guard := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = guard.Close() })

	return NewWorker(&config.CourtSyncConfig{
		QueueSize:  queueSize,
		Workers:    1,
		MaxRetries: 2,
		RetryDelay: time.Millisecond,
		GuardTTL:   time.Minute,
	}, fetcher, repo, guard, zap.NewNop())
}

func TestWorkerProcessesSync(t *testing.T) {
	tenantID := uuid.New()
	legalCase, err := matter.NewLegalCase(tenantID, "0001234-56.2024.8.26.0100", "Silva v. Acme", "Civil", nil)
	require.NoError(t, err)

	filedAt := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	fetcher := &stubFetcher{
		failures: 1, // first attempt fails, the retry succeeds
		outcome: &matter.SyncOutcome{
			Court:        "TJSP",
			RulingBody:   "1st Chamber",
			ProcessClass: "Execution",
			FiledAt:      &filedAt,
			Movements: []matter.CaseMovement{
				matter.NewCaseMovement(uuid.Nil, 26, "Distribution", filedAt),
			},
		},
	}
	repo := &stubCaseRepo{legalCase: legalCase, synced: make(chan struct{})}
	worker := newWorkerFixture(t, fetcher, repo, 4)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker.Start(ctx)

	enqueued, err := worker.Enqueue(ctx, Job{TenantID: tenantID, CaseID: legalCase.ID})
	require.NoError(t, err)
	assert.True(t, enqueued)

	// While the sync is pending or in flight, duplicates collapse.
	dup, err := worker.Enqueue(ctx, Job{TenantID: tenantID, CaseID: legalCase.ID})
	require.NoError(t, err)
	assert.False(t, dup)

	select {
	case <-repo.synced:
	case <-time.After(5 * time.Second):
		t.Fatal("sync did not complete")
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.Equal(t, 2, fetcher.calls)
	assert.Equal(t, "TJSP", repo.legalCase.Court)
	require.NotNil(t, repo.legalCase.SyncedAt)
	require.Len(t, repo.appended, 1)
	assert.Equal(t, legalCase.ID, repo.appended[0].CaseID, "worker must stamp the case ID on fetched movements")
}

func TestWorkerEnqueueQueueFull(t *testing.T) {
	repo := &stubCaseRepo{synced: make(chan struct{})}
	worker := newWorkerFixture(t, &stubFetcher{}, repo, 1)
	ctx := context.Background()

	// Worker not started: the queue fills up.
	first, err := worker.Enqueue(ctx, Job{TenantID: uuid.New(), CaseID: uuid.New()})
	require.NoError(t, err)
	assert.True(t, first)

	overflowCase := uuid.New()
	second, err := worker.Enqueue(ctx, Job{TenantID: uuid.New(), CaseID: overflowCase})
	assert.Error(t, err)
	assert.False(t, second)

	// The dropped job's guard was released, so the same case can be retried.
	held, err := worker.guard.IsProcessed(ctx, overflowCase.String())
	require.NoError(t, err)
	assert.False(t, held)
}
