// Package worker drains the achievement evaluation queue.
package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"gamehub/internal/pkg/lock"
	"gamehub/internal/repository"
)

// Evaluator runs a best-effort achievement evaluation for one user.
type Evaluator interface {
	EvaluateAndUnlock(ctx context.Context, userID int64)
}

// Queue hands out pending evaluation jobs.
type Queue interface {
	DequeueBatch(ctx context.Context, limit int) ([]repository.EvalJob, error)
}

// Worker polls the evaluation queue and evaluates each dequeued user. Jobs
// are claimed destructively, so a job lost to a crash is simply re-created
// by the user's next action; evaluation is idempotent either way.
type Worker struct {
	queue        Queue
	evaluator    Evaluator
	userLock     *lock.UserLock
	pollInterval time.Duration
	batchSize    int

	done chan struct{}
}

// New creates a new Worker instance.
func New(queue Queue, evaluator Evaluator, userLock *lock.UserLock, pollInterval time.Duration, batchSize int) *Worker {
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 32
	}
	return &Worker{
		queue:        queue,
		evaluator:    evaluator,
		userLock:     userLock,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		done:         make(chan struct{}),
	}
}

// Run polls until the context is cancelled. It blocks; callers start it in
// a goroutine and cancel the context to stop.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	log.Info().
		Dur("poll_interval", w.pollInterval).
		Int("batch_size", w.batchSize).
		Msg("Evaluation worker started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Evaluation worker stopped")
			return
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

// Done is closed once Run has returned.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

// drain dequeues and evaluates batches until the queue is empty or the
// context ends.
func (w *Worker) drain(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		jobs, err := w.queue.DequeueBatch(ctx, w.batchSize)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to dequeue evaluation jobs")
			return
		}
		if len(jobs) == 0 {
			return
		}

		for _, job := range jobs {
			w.evaluate(ctx, job)
		}
	}
}

func (w *Worker) evaluate(ctx context.Context, job repository.EvalJob) {
	// Serialize per user within this process; the catalog's idempotent
	// unlock covers races across processes.
	w.userLock.Lock(job.UserID)
	defer w.userLock.Unlock(job.UserID)

	start := time.Now()
	w.evaluator.EvaluateAndUnlock(ctx, job.UserID)

	log.Debug().
		Int64("user_id", job.UserID).
		Str("reason", job.Reason).
		Str("job_id", job.ID.String()).
		Dur("took", time.Since(start)).
		Msg("Evaluated achievements")
}
