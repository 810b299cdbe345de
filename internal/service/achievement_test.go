package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamehub/internal/model"
)

const testUserID int64 = 7

func newTestService(metrics *fakeMetrics, catalog *fakeCatalog) *AchievementService {
	return NewAchievementService(metrics, catalog, testIconURL)
}

func TestEvaluateAndUnlock_UnlocksEarnedTiers(t *testing.T) {
	metrics := &fakeMetrics{friends: 5, soldGames: 10, developer: true}
	catalog := seededFakeCatalog()
	svc := newTestService(metrics, catalog)

	svc.EvaluateAndUnlock(context.Background(), testUserID)

	assert.Equal(t, []string{"DEVELOPER", "FRIENDSHIP2", "SOLDGAMES3"}, catalog.unlockedNames(testUserID))
}

func TestEvaluateAndUnlock_ValuesBetweenTiersResolveDown(t *testing.T) {
	// 7 friends meets the tier at 5 but not the one at 10.
	metrics := &fakeMetrics{friends: 7}
	catalog := seededFakeCatalog()
	svc := newTestService(metrics, catalog)

	svc.EvaluateAndUnlock(context.Background(), testUserID)

	assert.Equal(t, []string{"FRIENDSHIP2"}, catalog.unlockedNames(testUserID))
}

func TestEvaluateAndUnlock_ZeroMetricsUnlockNothing(t *testing.T) {
	metrics := &fakeMetrics{}
	catalog := seededFakeCatalog()
	svc := newTestService(metrics, catalog)

	svc.EvaluateAndUnlock(context.Background(), testUserID)

	assert.Empty(t, catalog.unlockedNames(testUserID))
	assert.Zero(t, catalog.lookupCalls, "no tier matched, so no catalog lookup should happen")
}

func TestEvaluateAndUnlock_Idempotent(t *testing.T) {
	metrics := &fakeMetrics{friends: 12, posts: 50, years: 2}
	catalog := seededFakeCatalog()
	svc := newTestService(metrics, catalog)

	svc.EvaluateAndUnlock(context.Background(), testUserID)
	first := catalog.unlockedNames(testUserID)
	require.Equal(t, []string{"ACTIVITY2", "FRIENDSHIP3", "POSTS4"}, first)

	svc.EvaluateAndUnlock(context.Background(), testUserID)
	assert.Equal(t, first, catalog.unlockedNames(testUserID))
	assert.Len(t, catalog.unlocks, 3, "re-evaluation must not add records")
}

func TestEvaluateAndUnlock_IsolatesMetricFailures(t *testing.T) {
	metrics := &fakeMetrics{
		friends:      5,
		reviewsGiven: 50,
		developer:    true,
		errs: map[string]error{
			model.CategoryPosts: errors.New("posts table unavailable"),
		},
	}
	catalog := seededFakeCatalog()
	svc := newTestService(metrics, catalog)

	// Must not panic or propagate; the other categories still unlock.
	svc.EvaluateAndUnlock(context.Background(), testUserID)

	assert.Equal(t, []string{"DEVELOPER", "FRIENDSHIP2", "REVIEW4"}, catalog.unlockedNames(testUserID))
}

func TestEvaluateAndUnlock_IsolatesUnlockFailures(t *testing.T) {
	metrics := &fakeMetrics{friends: 1}
	catalog := seededFakeCatalog()
	catalog.failUnlock = errors.New("constraint violation")
	svc := newTestService(metrics, catalog)

	svc.EvaluateAndUnlock(context.Background(), testUserID)

	assert.Empty(t, catalog.unlockedNames(testUserID))
}

func TestEvaluateAndUnlock_MissingCatalogEntryIsNotAnError(t *testing.T) {
	metrics := &fakeMetrics{friends: 100}
	// Catalog without the FRIENDSHIP5 entry the resolver will produce.
	catalog := newFakeCatalog(model.Achievement{Name: "DEVELOPER", Category: model.CategoryDeveloper})
	svc := newTestService(metrics, catalog)

	svc.EvaluateAndUnlock(context.Background(), testUserID)

	assert.Empty(t, catalog.unlockedNames(testUserID))
	assert.Zero(t, catalog.unlockCalls)
}

func TestGetPointsForUnlockedAchievement(t *testing.T) {
	ctx := context.Background()
	catalog := seededFakeCatalog()
	svc := newTestService(&fakeMetrics{}, catalog)

	id, err := catalog.GetAchievementIDByName(ctx, "FRIENDSHIP3")
	require.NoError(t, err)

	// Locked: domain error, not a storage one.
	_, err = svc.GetPointsForUnlockedAchievement(ctx, testUserID, id)
	assert.ErrorIs(t, err, ErrAchievementNotUnlocked)

	require.NoError(t, catalog.UnlockAchievement(ctx, testUserID, id))

	points, err := svc.GetPointsForUnlockedAchievement(ctx, testUserID, id)
	require.NoError(t, err)
	assert.Equal(t, 5, points)
}

func TestGetPointsForUnlockedAchievement_StaleUnlockRecord(t *testing.T) {
	ctx := context.Background()
	catalog := seededFakeCatalog()
	svc := newTestService(&fakeMetrics{}, catalog)

	// Unlock record exists but the catalog entry is gone.
	const removedID int64 = 9999
	require.NoError(t, catalog.UnlockAchievement(ctx, testUserID, removedID))

	_, err := svc.GetPointsForUnlockedAchievement(ctx, testUserID, removedID)
	assert.ErrorIs(t, err, ErrAchievementNotUnlocked)
}

func TestGetPointsForUnlockedAchievement_StorageFailure(t *testing.T) {
	catalog := seededFakeCatalog()
	catalog.failReads = errors.New("connection refused")
	svc := newTestService(&fakeMetrics{}, catalog)

	_, err := svc.GetPointsForUnlockedAchievement(context.Background(), testUserID, 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAchievementNotUnlocked)
}

func TestGetUnlockedDataForAchievement(t *testing.T) {
	ctx := context.Background()
	catalog := seededFakeCatalog()
	svc := newTestService(&fakeMetrics{}, catalog)

	id, err := catalog.GetAchievementIDByName(ctx, "OWNEDGAMES1")
	require.NoError(t, err)

	_, err = svc.GetUnlockedDataForAchievement(ctx, testUserID, id)
	assert.ErrorIs(t, err, ErrAchievementNotUnlocked)

	require.NoError(t, catalog.UnlockAchievement(ctx, testUserID, id))

	data, err := svc.GetUnlockedDataForAchievement(ctx, testUserID, id)
	require.NoError(t, err)
	assert.Equal(t, "OWNEDGAMES1", data.Name)
	assert.False(t, data.UnlockedAt.IsZero())
}

func TestGetGroupedAchievementsForUser(t *testing.T) {
	ctx := context.Background()
	catalog := seededFakeCatalog()
	svc := newTestService(&fakeMetrics{friends: 10}, catalog)

	svc.EvaluateAndUnlock(ctx, testUserID)

	grouped, err := svc.GetGroupedAchievementsForUser(ctx, testUserID)
	require.NoError(t, err)

	assert.Len(t, grouped.AllAchievements, len(model.SeedAchievements()))
	assert.Len(t, grouped.Friendships, 5)
	assert.Len(t, grouped.OwnedGames, 4)
	assert.Len(t, grouped.Developer, 1)

	var unlocked int
	for _, a := range grouped.Friendships {
		if a.Unlocked {
			unlocked++
			require.NotNil(t, a.UnlockedAt)
		}
	}
	assert.Equal(t, 1, unlocked)
}

func TestGetGroupedAchievementsForUser_StorageFailure(t *testing.T) {
	catalog := seededFakeCatalog()
	catalog.failReads = errors.New("connection refused")
	svc := newTestService(&fakeMetrics{}, catalog)

	_, err := svc.GetGroupedAchievementsForUser(context.Background(), testUserID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "grouping achievements")
}

func TestRemoveAchievement_SurfacesFailure(t *testing.T) {
	ctx := context.Background()
	catalog := seededFakeCatalog()
	svc := newTestService(&fakeMetrics{}, catalog)

	require.NoError(t, catalog.UnlockAchievement(ctx, testUserID, 1))
	require.NoError(t, svc.RemoveAchievement(ctx, testUserID, 1))
	assert.Empty(t, catalog.unlockedNames(testUserID))

	catalog.failReads = errors.New("connection refused")
	assert.Error(t, svc.RemoveAchievement(ctx, testUserID, 1))
}

func TestInitializeAchievements(t *testing.T) {
	ctx := context.Background()
	catalog := newFakeCatalog()
	svc := newTestService(&fakeMetrics{}, catalog)

	svc.InitializeAchievements(ctx)

	all, err := catalog.GetAllAchievements(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(model.SeedAchievements()))
	for _, a := range all {
		assert.Equal(t, testIconURL(a.Name), a.IconURL)
	}

	// Second run is a no-op on a seeded catalog.
	svc.InitializeAchievements(ctx)
	all, err = catalog.GetAllAchievements(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(model.SeedAchievements()))
}

func TestInitializeAchievements_PartialIconFailure(t *testing.T) {
	ctx := context.Background()
	catalog := newFakeCatalog()
	catalog.failIconNames = map[string]error{"SOLDGAMES2": errors.New("cdn timeout")}
	svc := newTestService(&fakeMetrics{}, catalog)

	// Must not panic; every other entry still gets its icon.
	svc.InitializeAchievements(ctx)

	all, err := catalog.GetAllAchievements(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(model.SeedAchievements()))
	for _, a := range all {
		if a.Name == "SOLDGAMES2" {
			assert.Empty(t, a.IconURL)
			continue
		}
		assert.Equal(t, testIconURL(a.Name), a.IconURL)
	}
}

func TestGetAchievementsForUser_ReturnsUnlockRecords(t *testing.T) {
	ctx := context.Background()
	catalog := seededFakeCatalog()
	svc := newTestService(&fakeMetrics{ownedGames: 5}, catalog)

	svc.EvaluateAndUnlock(ctx, testUserID)

	records, err := svc.GetAchievementsForUser(ctx, testUserID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, testUserID, records[0].UserID)
}
