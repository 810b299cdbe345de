package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EvalJob is a pending achievement evaluation for one user. The host app
// enqueues one whenever a relevant user action happens (friend added, game
// bought or sold, review posted, ...).
type EvalJob struct {
	ID         uuid.UUID `db:"id"`
	UserID     int64     `db:"user_id"`
	Reason     string    `db:"reason"`
	EnqueuedAt time.Time `db:"enqueued_at"`
}

// EvalQueueRepository persists the evaluation queue. At most one pending
// job exists per user: re-enqueueing coalesces into the existing row, since
// one evaluation covers every category anyway.
type EvalQueueRepository struct {
	pool *pgxpool.Pool
}

// NewEvalQueueRepository creates a new EvalQueueRepository instance.
func NewEvalQueueRepository(pool *pgxpool.Pool) *EvalQueueRepository {
	return &EvalQueueRepository{pool: pool}
}

// Enqueue schedules an evaluation for the user. Reason is informational
// only and ends up in worker logs.
func (r *EvalQueueRepository) Enqueue(ctx context.Context, userID int64, reason string) error {
	const query = `
		INSERT INTO achievement_eval_queue (id, user_id, reason, enqueued_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET reason = EXCLUDED.reason, enqueued_at = NOW()
	`

	_, err := r.pool.Exec(ctx, query, uuid.New(), userID, reason)
	if err != nil {
		return fmt.Errorf("failed to enqueue evaluation: %w", err)
	}

	return nil
}

// DequeueBatch atomically claims up to limit pending jobs, oldest first.
// SKIP LOCKED lets multiple workers drain the queue without contending.
func (r *EvalQueueRepository) DequeueBatch(ctx context.Context, limit int) ([]EvalJob, error) {
	const query = `
		DELETE FROM achievement_eval_queue
		WHERE user_id IN (
			SELECT user_id FROM achievement_eval_queue
			ORDER BY enqueued_at
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, user_id, reason, enqueued_at
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to dequeue evaluations: %w", err)
	}
	defer rows.Close()

	var jobs []EvalJob
	for rows.Next() {
		var job EvalJob
		if err := rows.Scan(&job.ID, &job.UserID, &job.Reason, &job.EnqueuedAt); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation job: %w", err)
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating evaluation jobs: %w", err)
	}

	return jobs, nil
}

// PendingCount returns the number of queued evaluations.
func (r *EvalQueueRepository) PendingCount(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM achievement_eval_queue`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count queued evaluations: %w", err)
	}
	return n, nil
}
