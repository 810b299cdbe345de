package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrUserNotFound is returned by metric lookups that require the user row.
var ErrUserNotFound = errors.New("user not found")

// MetricsRepository reads the per-user account metrics the tier evaluation
// is based on. Each getter is a single bounded query; a missing count row
// is simply zero.
type MetricsRepository struct {
	pool *pgxpool.Pool
}

// NewMetricsRepository creates a new MetricsRepository instance.
func NewMetricsRepository(pool *pgxpool.Pool) *MetricsRepository {
	return &MetricsRepository{pool: pool}
}

// GetFriendCount returns how many friendships the user holds.
func (r *MetricsRepository) GetFriendCount(ctx context.Context, userID int64) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM friendships WHERE user_id = $1`, userID, "friend count")
}

// GetOwnedGamesCount returns how many games are in the user's collection.
func (r *MetricsRepository) GetOwnedGamesCount(ctx context.Context, userID int64) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM game_ownership WHERE user_id = $1`, userID, "owned games count")
}

// GetSoldGamesCount returns how many games the user has sold.
func (r *MetricsRepository) GetSoldGamesCount(ctx context.Context, userID int64) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM game_sales WHERE seller_id = $1`, userID, "sold games count")
}

// GetReviewsGivenCount returns how many reviews the user has written.
func (r *MetricsRepository) GetReviewsGivenCount(ctx context.Context, userID int64) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM reviews WHERE reviewer_id = $1`, userID, "reviews given count")
}

// GetReviewsReceivedCount returns how many reviews the user has received.
func (r *MetricsRepository) GetReviewsReceivedCount(ctx context.Context, userID int64) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM reviews WHERE recipient_id = $1`, userID, "reviews received count")
}

// GetPostCount returns how many posts the user has made.
func (r *MetricsRepository) GetPostCount(ctx context.Context, userID int64) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM posts WHERE author_id = $1`, userID, "post count")
}

// GetYearsOfActivity returns the number of completed years since the
// account was created. Returns ErrUserNotFound for an unknown user.
func (r *MetricsRepository) GetYearsOfActivity(ctx context.Context, userID int64) (int, error) {
	const query = `
		SELECT EXTRACT(YEAR FROM AGE(NOW(), created_at))::int
		FROM users
		WHERE id = $1
	`

	var years int
	err := r.pool.QueryRow(ctx, query, userID).Scan(&years)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to get years of activity: %w", err)
	}

	return years, nil
}

// IsDeveloper reports whether the user is a registered developer.
// Returns ErrUserNotFound for an unknown user.
func (r *MetricsRepository) IsDeveloper(ctx context.Context, userID int64) (bool, error) {
	const query = `SELECT is_developer FROM users WHERE id = $1`

	var developer bool
	err := r.pool.QueryRow(ctx, query, userID).Scan(&developer)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrUserNotFound
		}
		return false, fmt.Errorf("failed to get developer flag: %w", err)
	}

	return developer, nil
}

func (r *MetricsRepository) count(ctx context.Context, query string, userID int64, what string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, query, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to get %s: %w", what, err)
	}
	return n, nil
}
