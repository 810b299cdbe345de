// Package service provides business logic implementations.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"gamehub/internal/model"
	"gamehub/internal/repository"
	"gamehub/internal/tiers"
)

// Common errors for achievement operations.
var (
	// ErrAchievementNotUnlocked is returned when points are requested for an
	// achievement the user has not unlocked, or one no longer in the catalog.
	ErrAchievementNotUnlocked = errors.New("achievement not unlocked or does not exist")
)

// MetricsProvider supplies the per-user account metrics tier evaluation is
// based on.
type MetricsProvider interface {
	GetFriendCount(ctx context.Context, userID int64) (int, error)
	GetOwnedGamesCount(ctx context.Context, userID int64) (int, error)
	GetSoldGamesCount(ctx context.Context, userID int64) (int, error)
	GetReviewsGivenCount(ctx context.Context, userID int64) (int, error)
	GetReviewsReceivedCount(ctx context.Context, userID int64) (int, error)
	GetYearsOfActivity(ctx context.Context, userID int64) (int, error)
	GetPostCount(ctx context.Context, userID int64) (int, error)
	IsDeveloper(ctx context.Context, userID int64) (bool, error)
}

// AchievementCatalog stores achievement definitions and per-user unlock
// records. UnlockAchievement must be idempotent: inserting an already-held
// pair is a silent no-op enforced by the store, not the caller.
type AchievementCatalog interface {
	GetAchievementIDByName(ctx context.Context, name string) (int64, error)
	GetAchievementPoints(ctx context.Context, achievementID int64) (int, error)
	IsAchievementUnlocked(ctx context.Context, userID, achievementID int64) (bool, error)
	UnlockAchievement(ctx context.Context, userID, achievementID int64) error
	GetAllAchievements(ctx context.Context) ([]model.Achievement, error)
	GetUnlockRecordsForUser(ctx context.Context, userID int64) ([]model.UnlockRecord, error)
	GetUnlockedAchievementsForUser(ctx context.Context, userID int64) ([]model.Achievement, error)
	GetAchievementsWithStatusForUser(ctx context.Context, userID int64) ([]model.AchievementWithStatus, error)
	GetUnlockedDataForAchievement(ctx context.Context, userID, achievementID int64) (*model.UnlockedAchievementData, error)
	RemoveAchievement(ctx context.Context, userID, achievementID int64) error
	InsertAchievements(ctx context.Context, achievements []model.Achievement) ([]model.Achievement, error)
	UpdateAchievementIconURL(ctx context.Context, achievementID int64, iconURL string) error
	IsAchievementsTableEmpty(ctx context.Context) (bool, error)
}

// AchievementService evaluates which achievements a user qualifies for and
// performs the idempotent unlocks, plus the read operations backing the
// achievements UI.
type AchievementService struct {
	metrics MetricsProvider
	catalog AchievementCatalog
	iconURL func(name string) string
}

// NewAchievementService creates a new AchievementService instance.
// iconURL builds the icon location for an achievement name during seeding.
func NewAchievementService(metrics MetricsProvider, catalog AchievementCatalog, iconURL func(name string) string) *AchievementService {
	return &AchievementService{
		metrics: metrics,
		catalog: catalog,
		iconURL: iconURL,
	}
}

// metricReader pairs a category with the metric lookup that feeds it.
type metricReader struct {
	category string
	read     func(ctx context.Context, userID int64) (int, error)
}

func (s *AchievementService) metricReaders() []metricReader {
	return []metricReader{
		{model.CategoryFriendships, s.metrics.GetFriendCount},
		{model.CategoryOwnedGames, s.metrics.GetOwnedGamesCount},
		{model.CategorySoldGames, s.metrics.GetSoldGamesCount},
		{model.CategoryReviewsGiven, s.metrics.GetReviewsGivenCount},
		{model.CategoryReviewsReceived, s.metrics.GetReviewsReceivedCount},
		{model.CategoryYearsOfActivity, s.metrics.GetYearsOfActivity},
		{model.CategoryPosts, s.metrics.GetPostCount},
		{model.CategoryDeveloper, s.developerCount},
	}
}

// developerCount adapts the boolean developer flag to the counted shape the
// resolver expects.
func (s *AchievementService) developerCount(ctx context.Context, userID int64) (int, error) {
	developer, err := s.metrics.IsDeveloper(ctx, userID)
	if err != nil {
		return 0, err
	}
	if developer {
		return tiers.DeveloperCount, nil
	}
	return 0, nil
}

// EvaluateAndUnlock evaluates every category for the user and unlocks each
// satisfied achievement. Evaluation is best-effort: a failure in one
// category is logged and skipped without blocking the others, and the call
// never reports an error to its caller. Unlock idempotence is enforced by
// the catalog, so repeated or concurrent evaluations are safe.
func (s *AchievementService) EvaluateAndUnlock(ctx context.Context, userID int64) {
	for _, reader := range s.metricReaders() {
		if err := s.evaluateCategory(ctx, userID, reader); err != nil {
			log.Warn().
				Err(err).
				Int64("user_id", userID).
				Str("category", reader.category).
				Msg("Category evaluation skipped")
		}
	}
}

// evaluateCategory evaluates a single category: read the metric, resolve
// the tier name, look up its id, unlock. A metric below every tier or a
// name missing from the catalog is a normal outcome, not an error.
func (s *AchievementService) evaluateCategory(ctx context.Context, userID int64, reader metricReader) error {
	count, err := reader.read(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to read metric: %w", err)
	}

	name, ok := tiers.Resolve(reader.category, count)
	if !ok {
		return nil
	}

	achievementID, err := s.catalog.GetAchievementIDByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrAchievementNotFound) {
			return nil
		}
		return fmt.Errorf("failed to resolve achievement %s: %w", name, err)
	}

	if err := s.catalog.UnlockAchievement(ctx, userID, achievementID); err != nil {
		return fmt.Errorf("failed to unlock achievement %s: %w", name, err)
	}

	return nil
}

// GetAllAchievements returns the full catalog.
func (s *AchievementService) GetAllAchievements(ctx context.Context) ([]model.Achievement, error) {
	achievements, err := s.catalog.GetAllAchievements(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve achievements: %w", err)
	}
	return achievements, nil
}

// GetAchievementsForUser returns the user's raw unlock records.
func (s *AchievementService) GetAchievementsForUser(ctx context.Context, userID int64) ([]model.UnlockRecord, error) {
	records, err := s.catalog.GetUnlockRecordsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve achievements for user: %w", err)
	}
	return records, nil
}

// GetUnlockedAchievementsForUser returns the catalog entries the user has
// unlocked.
func (s *AchievementService) GetUnlockedAchievementsForUser(ctx context.Context, userID int64) ([]model.Achievement, error) {
	achievements, err := s.catalog.GetUnlockedAchievementsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve unlocked achievements for user: %w", err)
	}
	return achievements, nil
}

// GetAchievementsWithStatusForUser returns every catalog entry annotated
// with the user's unlock state.
func (s *AchievementService) GetAchievementsWithStatusForUser(ctx context.Context, userID int64) ([]model.AchievementWithStatus, error) {
	achievements, err := s.catalog.GetAchievementsWithStatusForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve achievements with status for user: %w", err)
	}
	return achievements, nil
}

// GetUnlockedDataForAchievement returns the unlock details of one unlocked
// achievement.
func (s *AchievementService) GetUnlockedDataForAchievement(ctx context.Context, userID, achievementID int64) (*model.UnlockedAchievementData, error) {
	data, err := s.catalog.GetUnlockedDataForAchievement(ctx, userID, achievementID)
	if err != nil {
		if errors.Is(err, repository.ErrUnlockRecordNotFound) {
			return nil, ErrAchievementNotUnlocked
		}
		return nil, fmt.Errorf("failed to retrieve unlocked achievement data: %w", err)
	}
	return data, nil
}

// GetGroupedAchievementsForUser returns the user's full achievement list
// partitioned into display categories.
func (s *AchievementService) GetGroupedAchievementsForUser(ctx context.Context, userID int64) (model.GroupedAchievements, error) {
	achievements, err := s.catalog.GetAchievementsWithStatusForUser(ctx, userID)
	if err != nil {
		return model.GroupedAchievements{}, fmt.Errorf("failed grouping achievements for user: %w", err)
	}
	return model.GroupByCategory(achievements), nil
}

// GetPointsForUnlockedAchievement returns the achievement's point value only
// if the user has unlocked it and it still exists in the catalog. The dual
// check keeps a lingering unlock record of a removed catalog entry from
// awarding points.
func (s *AchievementService) GetPointsForUnlockedAchievement(ctx context.Context, userID, achievementID int64) (int, error) {
	unlocked, err := s.catalog.IsAchievementUnlocked(ctx, userID, achievementID)
	if err != nil {
		return 0, fmt.Errorf("failed to check unlock state: %w", err)
	}
	if !unlocked {
		return 0, ErrAchievementNotUnlocked
	}

	points, err := s.catalog.GetAchievementPoints(ctx, achievementID)
	if err != nil {
		if errors.Is(err, repository.ErrAchievementNotFound) {
			return 0, ErrAchievementNotUnlocked
		}
		return 0, fmt.Errorf("failed to retrieve achievement points: %w", err)
	}

	return points, nil
}

// RemoveAchievement deletes the user's unlock record. Unlike evaluation
// this is a direct admin action, so storage failure is surfaced.
func (s *AchievementService) RemoveAchievement(ctx context.Context, userID, achievementID int64) error {
	if err := s.catalog.RemoveAchievement(ctx, userID, achievementID); err != nil {
		return fmt.Errorf("failed to remove achievement: %w", err)
	}
	return nil
}

// InitializeAchievements seeds the catalog on first startup and backfills
// icon URLs. It runs opportunistically: every failure is logged and
// swallowed, and a non-empty catalog makes it a no-op.
func (s *AchievementService) InitializeAchievements(ctx context.Context) {
	empty, err := s.catalog.IsAchievementsTableEmpty(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Could not check achievement catalog, skipping seeding")
		return
	}
	if !empty {
		return
	}

	inserted, err := s.catalog.InsertAchievements(ctx, model.SeedAchievements())
	if err != nil {
		// Entries inserted before the failure still get their icons below.
		log.Warn().Err(err).Int("inserted", len(inserted)).Msg("Achievement seeding incomplete")
	}

	for _, a := range inserted {
		if err := s.catalog.UpdateAchievementIconURL(ctx, a.ID, s.iconURL(a.Name)); err != nil {
			log.Warn().Err(err).Str("achievement", a.Name).Msg("Icon backfill failed")
		}
	}

	log.Info().Int("count", len(inserted)).Msg("Achievement catalog seeded")
}
