package service

import (
	"context"
	"sort"
	"time"

	"gamehub/internal/model"
	"gamehub/internal/repository"
)

// fakeMetrics is an in-memory MetricsProvider with per-metric error
// injection.
type fakeMetrics struct {
	friends         int
	ownedGames      int
	soldGames       int
	reviewsGiven    int
	reviewsReceived int
	years           int
	posts           int
	developer       bool

	errs map[string]error // keyed by category
}

func (f *fakeMetrics) metric(category string, value int) (int, error) {
	if err := f.errs[category]; err != nil {
		return 0, err
	}
	return value, nil
}

func (f *fakeMetrics) GetFriendCount(_ context.Context, _ int64) (int, error) {
	return f.metric(model.CategoryFriendships, f.friends)
}

func (f *fakeMetrics) GetOwnedGamesCount(_ context.Context, _ int64) (int, error) {
	return f.metric(model.CategoryOwnedGames, f.ownedGames)
}

func (f *fakeMetrics) GetSoldGamesCount(_ context.Context, _ int64) (int, error) {
	return f.metric(model.CategorySoldGames, f.soldGames)
}

func (f *fakeMetrics) GetReviewsGivenCount(_ context.Context, _ int64) (int, error) {
	return f.metric(model.CategoryReviewsGiven, f.reviewsGiven)
}

func (f *fakeMetrics) GetReviewsReceivedCount(_ context.Context, _ int64) (int, error) {
	return f.metric(model.CategoryReviewsReceived, f.reviewsReceived)
}

func (f *fakeMetrics) GetYearsOfActivity(_ context.Context, _ int64) (int, error) {
	return f.metric(model.CategoryYearsOfActivity, f.years)
}

func (f *fakeMetrics) GetPostCount(_ context.Context, _ int64) (int, error) {
	return f.metric(model.CategoryPosts, f.posts)
}

func (f *fakeMetrics) IsDeveloper(_ context.Context, _ int64) (bool, error) {
	if err := f.errs[model.CategoryDeveloper]; err != nil {
		return false, err
	}
	return f.developer, nil
}

type unlockKey struct {
	userID        int64
	achievementID int64
}

// fakeCatalog is an in-memory AchievementCatalog. Unlocking is idempotent
// the same way the store is: inserting a held pair is a no-op.
type fakeCatalog struct {
	achievements []model.Achievement
	unlocks      map[unlockKey]time.Time

	nextID        int64
	lookupCalls   int
	unlockCalls   int
	failUnlock    error
	failReads     error
	failIconNames map[string]error
}

func newFakeCatalog(achievements ...model.Achievement) *fakeCatalog {
	c := &fakeCatalog{
		unlocks: make(map[unlockKey]time.Time),
		nextID:  1,
	}
	for _, a := range achievements {
		a.ID = c.nextID
		c.nextID++
		c.achievements = append(c.achievements, a)
	}
	return c
}

// seededFakeCatalog returns a fake catalog holding the full seed.
func seededFakeCatalog() *fakeCatalog {
	return newFakeCatalog(model.SeedAchievements()...)
}

func (c *fakeCatalog) byID(id int64) (model.Achievement, bool) {
	for _, a := range c.achievements {
		if a.ID == id {
			return a, true
		}
	}
	return model.Achievement{}, false
}

func (c *fakeCatalog) GetAchievementIDByName(_ context.Context, name string) (int64, error) {
	c.lookupCalls++
	if c.failReads != nil {
		return 0, c.failReads
	}
	for _, a := range c.achievements {
		if a.Name == name {
			return a.ID, nil
		}
	}
	return 0, repository.ErrAchievementNotFound
}

func (c *fakeCatalog) GetAchievementPoints(_ context.Context, achievementID int64) (int, error) {
	if c.failReads != nil {
		return 0, c.failReads
	}
	if a, ok := c.byID(achievementID); ok {
		return a.Points, nil
	}
	return 0, repository.ErrAchievementNotFound
}

func (c *fakeCatalog) IsAchievementUnlocked(_ context.Context, userID, achievementID int64) (bool, error) {
	if c.failReads != nil {
		return false, c.failReads
	}
	_, ok := c.unlocks[unlockKey{userID, achievementID}]
	return ok, nil
}

func (c *fakeCatalog) UnlockAchievement(_ context.Context, userID, achievementID int64) error {
	c.unlockCalls++
	if c.failUnlock != nil {
		return c.failUnlock
	}
	key := unlockKey{userID, achievementID}
	if _, held := c.unlocks[key]; !held {
		c.unlocks[key] = time.Now()
	}
	return nil
}

func (c *fakeCatalog) GetAllAchievements(_ context.Context) ([]model.Achievement, error) {
	if c.failReads != nil {
		return nil, c.failReads
	}
	return append([]model.Achievement(nil), c.achievements...), nil
}

func (c *fakeCatalog) GetUnlockRecordsForUser(_ context.Context, userID int64) ([]model.UnlockRecord, error) {
	if c.failReads != nil {
		return nil, c.failReads
	}
	var records []model.UnlockRecord
	for key, at := range c.unlocks {
		if key.userID == userID {
			records = append(records, model.UnlockRecord{
				UserID:        key.userID,
				AchievementID: key.achievementID,
				UnlockedAt:    at,
			})
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].AchievementID < records[j].AchievementID
	})
	return records, nil
}

func (c *fakeCatalog) GetUnlockedAchievementsForUser(_ context.Context, userID int64) ([]model.Achievement, error) {
	if c.failReads != nil {
		return nil, c.failReads
	}
	var unlocked []model.Achievement
	for _, a := range c.achievements {
		if _, ok := c.unlocks[unlockKey{userID, a.ID}]; ok {
			unlocked = append(unlocked, a)
		}
	}
	return unlocked, nil
}

func (c *fakeCatalog) GetAchievementsWithStatusForUser(_ context.Context, userID int64) ([]model.AchievementWithStatus, error) {
	if c.failReads != nil {
		return nil, c.failReads
	}
	var result []model.AchievementWithStatus
	for _, a := range c.achievements {
		item := model.AchievementWithStatus{Achievement: a}
		if at, ok := c.unlocks[unlockKey{userID, a.ID}]; ok {
			at := at
			item.Unlocked = true
			item.UnlockedAt = &at
		}
		result = append(result, item)
	}
	return result, nil
}

func (c *fakeCatalog) GetUnlockedDataForAchievement(_ context.Context, userID, achievementID int64) (*model.UnlockedAchievementData, error) {
	if c.failReads != nil {
		return nil, c.failReads
	}
	at, ok := c.unlocks[unlockKey{userID, achievementID}]
	if !ok {
		return nil, repository.ErrUnlockRecordNotFound
	}
	a, ok := c.byID(achievementID)
	if !ok {
		return nil, repository.ErrUnlockRecordNotFound
	}
	return &model.UnlockedAchievementData{
		Name:        a.Name,
		Description: a.Description,
		UnlockedAt:  at,
	}, nil
}

func (c *fakeCatalog) RemoveAchievement(_ context.Context, userID, achievementID int64) error {
	if c.failReads != nil {
		return c.failReads
	}
	delete(c.unlocks, unlockKey{userID, achievementID})
	return nil
}

func (c *fakeCatalog) InsertAchievements(_ context.Context, achievements []model.Achievement) ([]model.Achievement, error) {
	inserted := make([]model.Achievement, 0, len(achievements))
	for _, a := range achievements {
		a.ID = c.nextID
		c.nextID++
		c.achievements = append(c.achievements, a)
		inserted = append(inserted, a)
	}
	return inserted, nil
}

func (c *fakeCatalog) UpdateAchievementIconURL(_ context.Context, achievementID int64, iconURL string) error {
	for i, a := range c.achievements {
		if a.ID == achievementID {
			if err := c.failIconNames[a.Name]; err != nil {
				return err
			}
			c.achievements[i].IconURL = iconURL
			return nil
		}
	}
	return repository.ErrAchievementNotFound
}

func (c *fakeCatalog) IsAchievementsTableEmpty(_ context.Context) (bool, error) {
	if c.failReads != nil {
		return false, c.failReads
	}
	return len(c.achievements) == 0, nil
}

// unlockedNames returns the names a user has unlocked, sorted.
func (c *fakeCatalog) unlockedNames(userID int64) []string {
	var names []string
	for _, a := range c.achievements {
		if _, ok := c.unlocks[unlockKey{userID, a.ID}]; ok {
			names = append(names, a.Name)
		}
	}
	sort.Strings(names)
	return names
}

func testIconURL(name string) string {
	return "https://icons.test/" + name + ".svg"
}
