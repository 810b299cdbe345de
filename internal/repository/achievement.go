// Package repository provides data access layer implementations.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gamehub/internal/model"
)

// Common errors for repository operations.
var (
	ErrAchievementNotFound  = errors.New("achievement not found")
	ErrUnlockRecordNotFound = errors.New("unlock record not found")
)

// AchievementRepository handles the achievement catalog and per-user unlock
// records. The user_achievements primary key on (user_id, achievement_id)
// is what makes unlocking at-most-once; callers never need to check first.
type AchievementRepository struct {
	pool *pgxpool.Pool
}

// NewAchievementRepository creates a new AchievementRepository instance.
func NewAchievementRepository(pool *pgxpool.Pool) *AchievementRepository {
	return &AchievementRepository{pool: pool}
}

// GetAchievementIDByName looks up a catalog id by its canonical name.
// Returns ErrAchievementNotFound if no entry carries the name.
func (r *AchievementRepository) GetAchievementIDByName(ctx context.Context, name string) (int64, error) {
	const query = `SELECT id FROM achievements WHERE name = $1`

	var id int64
	err := r.pool.QueryRow(ctx, query, name).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrAchievementNotFound
		}
		return 0, fmt.Errorf("failed to get achievement id by name: %w", err)
	}

	return id, nil
}

// GetAchievementPoints returns the point value of a catalog entry.
// Returns ErrAchievementNotFound if the id is not in the catalog.
func (r *AchievementRepository) GetAchievementPoints(ctx context.Context, achievementID int64) (int, error) {
	const query = `SELECT points FROM achievements WHERE id = $1`

	var points int
	err := r.pool.QueryRow(ctx, query, achievementID).Scan(&points)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrAchievementNotFound
		}
		return 0, fmt.Errorf("failed to get achievement points: %w", err)
	}

	return points, nil
}

// IsAchievementUnlocked reports whether the user holds an unlock record for
// the achievement.
func (r *AchievementRepository) IsAchievementUnlocked(ctx context.Context, userID, achievementID int64) (bool, error) {
	const query = `
		SELECT EXISTS(
			SELECT 1 FROM user_achievements
			WHERE user_id = $1 AND achievement_id = $2
		)
	`

	var unlocked bool
	err := r.pool.QueryRow(ctx, query, userID, achievementID).Scan(&unlocked)
	if err != nil {
		return false, fmt.Errorf("failed to check unlock state: %w", err)
	}

	return unlocked, nil
}

// UnlockAchievement records that the user earned the achievement. Inserting
// an already-held pair is a silent no-op, so concurrent evaluations of the
// same user cannot produce duplicate records.
func (r *AchievementRepository) UnlockAchievement(ctx context.Context, userID, achievementID int64) error {
	const query = `
		INSERT INTO user_achievements (user_id, achievement_id, unlocked_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, achievement_id) DO NOTHING
	`

	_, err := r.pool.Exec(ctx, query, userID, achievementID)
	if err != nil {
		return fmt.Errorf("failed to unlock achievement: %w", err)
	}

	return nil
}

// GetAllAchievements returns the full catalog.
func (r *AchievementRepository) GetAllAchievements(ctx context.Context) ([]model.Achievement, error) {
	const query = `
		SELECT id, name, category, description, points, icon_url
		FROM achievements
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get achievements: %w", err)
	}
	defer rows.Close()

	return scanAchievements(rows)
}

// GetUnlockRecordsForUser returns the user's raw unlock records.
func (r *AchievementRepository) GetUnlockRecordsForUser(ctx context.Context, userID int64) ([]model.UnlockRecord, error) {
	const query = `
		SELECT user_id, achievement_id, unlocked_at
		FROM user_achievements
		WHERE user_id = $1
		ORDER BY unlocked_at
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get unlock records: %w", err)
	}
	defer rows.Close()

	var records []model.UnlockRecord
	for rows.Next() {
		var rec model.UnlockRecord
		if err := rows.Scan(&rec.UserID, &rec.AchievementID, &rec.UnlockedAt); err != nil {
			return nil, fmt.Errorf("failed to scan unlock record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating unlock records: %w", err)
	}

	return records, nil
}

// GetUnlockedAchievementsForUser returns the catalog entries the user has
// unlocked.
func (r *AchievementRepository) GetUnlockedAchievementsForUser(ctx context.Context, userID int64) ([]model.Achievement, error) {
	const query = `
		SELECT a.id, a.name, a.category, a.description, a.points, a.icon_url
		FROM achievements a
		JOIN user_achievements ua ON ua.achievement_id = a.id
		WHERE ua.user_id = $1
		ORDER BY ua.unlocked_at
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get unlocked achievements: %w", err)
	}
	defer rows.Close()

	return scanAchievements(rows)
}

// GetAchievementsWithStatusForUser returns every catalog entry annotated
// with the user's unlock state.
func (r *AchievementRepository) GetAchievementsWithStatusForUser(ctx context.Context, userID int64) ([]model.AchievementWithStatus, error) {
	const query = `
		SELECT a.id, a.name, a.category, a.description, a.points, a.icon_url, ua.unlocked_at
		FROM achievements a
		LEFT JOIN user_achievements ua
			ON ua.achievement_id = a.id AND ua.user_id = $1
		ORDER BY a.id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get achievements with status: %w", err)
	}
	defer rows.Close()

	var result []model.AchievementWithStatus
	for rows.Next() {
		var item model.AchievementWithStatus
		var unlockedAt *time.Time
		err := rows.Scan(
			&item.Achievement.ID,
			&item.Achievement.Name,
			&item.Achievement.Category,
			&item.Achievement.Description,
			&item.Achievement.Points,
			&item.Achievement.IconURL,
			&unlockedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan achievement status: %w", err)
		}
		item.Unlocked = unlockedAt != nil
		item.UnlockedAt = unlockedAt
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating achievement statuses: %w", err)
	}

	return result, nil
}

// GetUnlockedDataForAchievement returns the name, description and unlock
// time of one unlocked achievement. Returns ErrUnlockRecordNotFound when
// the user has not unlocked it.
func (r *AchievementRepository) GetUnlockedDataForAchievement(ctx context.Context, userID, achievementID int64) (*model.UnlockedAchievementData, error) {
	const query = `
		SELECT a.name, a.description, ua.unlocked_at
		FROM achievements a
		JOIN user_achievements ua ON ua.achievement_id = a.id
		WHERE ua.user_id = $1 AND a.id = $2
	`

	var data model.UnlockedAchievementData
	err := r.pool.QueryRow(ctx, query, userID, achievementID).Scan(
		&data.Name,
		&data.Description,
		&data.UnlockedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUnlockRecordNotFound
		}
		return nil, fmt.Errorf("failed to get unlocked achievement data: %w", err)
	}

	return &data, nil
}

// RemoveAchievement deletes the user's unlock record for the achievement.
func (r *AchievementRepository) RemoveAchievement(ctx context.Context, userID, achievementID int64) error {
	const query = `
		DELETE FROM user_achievements
		WHERE user_id = $1 AND achievement_id = $2
	`

	_, err := r.pool.Exec(ctx, query, userID, achievementID)
	if err != nil {
		return fmt.Errorf("failed to remove achievement: %w", err)
	}

	return nil
}

// InsertAchievements inserts catalog entries and returns them with their
// assigned ids.
func (r *AchievementRepository) InsertAchievements(ctx context.Context, achievements []model.Achievement) ([]model.Achievement, error) {
	const query = `
		INSERT INTO achievements (name, category, description, points, icon_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	inserted := make([]model.Achievement, 0, len(achievements))
	for _, a := range achievements {
		err := r.pool.QueryRow(ctx, query, a.Name, a.Category, a.Description, a.Points, a.IconURL).Scan(&a.ID)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert achievement %s: %w", a.Name, err)
		}
		inserted = append(inserted, a)
	}

	return inserted, nil
}

// UpdateAchievementIconURL backfills the icon location of a catalog entry.
func (r *AchievementRepository) UpdateAchievementIconURL(ctx context.Context, achievementID int64, iconURL string) error {
	const query = `UPDATE achievements SET icon_url = $2 WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, achievementID, iconURL)
	if err != nil {
		return fmt.Errorf("failed to update achievement icon: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrAchievementNotFound
	}

	return nil
}

// IsAchievementsTableEmpty reports whether the catalog has been seeded yet.
func (r *AchievementRepository) IsAchievementsTableEmpty(ctx context.Context) (bool, error) {
	const query = `SELECT NOT EXISTS(SELECT 1 FROM achievements)`

	var empty bool
	err := r.pool.QueryRow(ctx, query).Scan(&empty)
	if err != nil {
		return false, fmt.Errorf("failed to check achievements table: %w", err)
	}

	return empty, nil
}

func scanAchievements(rows pgx.Rows) ([]model.Achievement, error) {
	var achievements []model.Achievement
	for rows.Next() {
		var a model.Achievement
		err := rows.Scan(&a.ID, &a.Name, &a.Category, &a.Description, &a.Points, &a.IconURL)
		if err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		achievements = append(achievements, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating achievements: %w", err)
	}

	return achievements, nil
}
