package courtsync

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/advoga/backend/internal/domain/matter"
	"github.com/advoga/backend/internal/domain/shared"
	"github.com/advoga/backend/internal/infrastructure/config"
	"github.com/advoga/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Fetcher is the registry access the worker depends on
type Fetcher interface {
	FetchCase(ctx context.Context, caseNumber string) (*matter.SyncOutcome, error)
}

// Job identifies one case to synchronize
type Job struct {
	TenantID uuid.UUID
	CaseID   uuid.UUID
}

// Worker synchronizes cases against the court registry in the background.
// Requests are queued on a bounded channel; while a case's sync is in flight
// (or within the guard TTL) duplicate requests collapse into the running one.
type Worker struct {
	fetcher    Fetcher
	caseRepo   matter.CaseRepository
	guard      shared.IdempotencyStore
	log        *zap.Logger
	queue      chan Job
	workers    int
	maxRetries int
	retryDelay time.Duration
	guardTTL   time.Duration
	wg         sync.WaitGroup
	startOnce  sync.Once
}

// NewWorker creates a new sync worker
func NewWorker(
	cfg *config.CourtSyncConfig,
	fetcher Fetcher,
	caseRepo matter.CaseRepository,
	guard shared.IdempotencyStore,
	log *zap.Logger,
) *Worker {
	return &Worker{
		fetcher:    fetcher,
		caseRepo:   caseRepo,
		guard:      guard,
		log:        log.Named("courtsync"),
		queue:      make(chan Job, cfg.QueueSize),
		workers:    cfg.Workers,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		guardTTL:   cfg.GuardTTL,
	}
}

// Start launches the worker goroutines. They drain the queue until ctx is
// cancelled; Wait blocks until all of them have stopped.
func (w *Worker) Start(ctx context.Context) {
	w.startOnce.Do(func() {
		for i := 0; i < w.workers; i++ {
			w.wg.Add(1)
			go w.run(ctx)
		}
	})
}

// Wait blocks until every worker goroutine has exited
func (w *Worker) Wait() {
	w.wg.Wait()
}

// Enqueue schedules a case sync. Returns false when the request was dropped,
// either because a sync for the case is already pending or the queue is full.
func (w *Worker) Enqueue(ctx context.Context, job Job) (bool, error) {
	fresh, err := w.guard.MarkProcessed(ctx, job.CaseID.String(), w.guardTTL)
	if err != nil {
		return false, err
	}
	if !fresh {
		return false, nil
	}

	select {
	case w.queue <- job:
		return true, nil
	default:
		// Queue full; free the guard so a later request can try again.
		if releaseErr := w.guard.Release(ctx, job.CaseID.String()); releaseErr != nil {
			w.log.Warn("failed to release sync guard", zap.Error(releaseErr))
		}
		return false, shared.NewDomainError(shared.ErrCodePersistence, "sync queue is full")
	}
}

func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-w.queue:
			w.process(ctx, job)
		}
	}
}

func (w *Worker) process(ctx context.Context, job Job) {
	log := logger.WithLogger(ctx, w.log).With(
		zap.String("tenant_id", job.TenantID.String()),
		zap.String("case_id", job.CaseID.String()),
	)

	defer func() {
		if err := w.guard.Release(ctx, job.CaseID.String()); err != nil {
			log.Warn("failed to release sync guard", zap.Error(err))
		}
	}()

	legalCase, err := w.caseRepo.FindByIDForTenant(ctx, job.TenantID, job.CaseID)
	if err != nil {
		log.Warn("case vanished before sync", zap.Error(err))
		return
	}

	var outcome *matter.SyncOutcome
	for attempt := 1; ; attempt++ {
		outcome, err = w.fetcher.FetchCase(ctx, legalCase.CaseNumber)
		if err == nil {
			break
		}
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && domainErr.Code != shared.ErrCodePersistence {
			// Validation and not-found outcomes never improve with retries.
			log.Warn("registry rejected the case", zap.Error(err))
			return
		}
		if attempt > w.maxRetries {
			log.Error("registry fetch failed, giving up",
				zap.Int("attempts", attempt), zap.Error(err))
			return
		}
		log.Warn("registry fetch failed, retrying",
			zap.Int("attempt", attempt), zap.Error(err))
		select {
		case <-ctx.Done():
			return
		case <-time.After(w.retryDelay * time.Duration(attempt)):
		}
	}

	legalCase.ApplySyncResult(outcome.Court, outcome.RulingBody, outcome.ProcessClass,
		outcome.FiledAt, time.Now().UTC())
	if err := w.caseRepo.UpdateSyncResult(ctx, legalCase); err != nil {
		log.Error("failed to persist sync result", zap.Error(err))
		return
	}

	movements := make([]matter.CaseMovement, len(outcome.Movements))
	for i, mv := range outcome.Movements {
		mv.CaseID = legalCase.ID
		movements[i] = mv
	}
	inserted, err := w.caseRepo.AppendMovements(ctx, legalCase.ID, movements)
	if err != nil {
		log.Error("failed to append movements", zap.Error(err))
		return
	}
	log.Info("case synchronized",
		zap.Int("movements_fetched", len(movements)),
		zap.Int("movements_new", inserted))
}
