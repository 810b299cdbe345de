// Package model defines the data models for the achievements engine.
package model

import "time"

// Achievement is an immutable catalog entry. Name is the stable identifier
// used for tier lookups; it never changes after seeding.
type Achievement struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Category    string `db:"category"`
	Description string `db:"description"`
	Points      int    `db:"points"`
	IconURL     string `db:"icon_url"`
}

// AchievementWithStatus combines a catalog entry with a user's unlock state.
// UnlockedAt is nil while the achievement is still locked.
type AchievementWithStatus struct {
	Achievement Achievement
	Unlocked    bool
	UnlockedAt  *time.Time
}

// UnlockRecord relates a user and an achievement with the unlock time.
// At most one record exists per (UserID, AchievementID) pair.
type UnlockRecord struct {
	UserID        int64     `db:"user_id"`
	AchievementID int64     `db:"achievement_id"`
	UnlockedAt    time.Time `db:"unlocked_at"`
}

// UnlockedAchievementData is the read model for a single unlocked
// achievement: what it is and when the user earned it.
type UnlockedAchievementData struct {
	Name        string
	Description string
	UnlockedAt  time.Time
}

// Achievement categories. These are a closed set: every catalog entry
// carries exactly one of them.
const (
	CategoryFriendships     = "Friendships"
	CategoryOwnedGames      = "Owned Games"
	CategorySoldGames       = "Sold Games"
	CategoryReviewsGiven    = "Number of Reviews Given"
	CategoryReviewsReceived = "Number of Reviews Received"
	CategoryYearsOfActivity = "Years of Activity"
	CategoryPosts           = "Number of Posts"
	CategoryDeveloper       = "Developer"
)

// Categories returns all achievement categories in display order.
func Categories() []string {
	return []string{
		CategoryFriendships,
		CategoryOwnedGames,
		CategorySoldGames,
		CategoryReviewsGiven,
		CategoryReviewsReceived,
		CategoryYearsOfActivity,
		CategoryPosts,
		CategoryDeveloper,
	}
}

// GroupedAchievements partitions a user's achievement list by category for
// presentation. AllAchievements always holds the full unfiltered input.
type GroupedAchievements struct {
	AllAchievements []AchievementWithStatus
	Friendships     []AchievementWithStatus
	OwnedGames      []AchievementWithStatus
	SoldGames       []AchievementWithStatus
	ReviewsGiven    []AchievementWithStatus
	ReviewsReceived []AchievementWithStatus
	YearsOfActivity []AchievementWithStatus
	Posts           []AchievementWithStatus
	Developer       []AchievementWithStatus
}

// GroupByCategory partitions achievements into per-category buckets by exact
// category match. Entries with an unrecognized category stay only in
// AllAchievements; categories originate from the catalog, so in practice
// that bucket loss never happens.
func GroupByCategory(achievements []AchievementWithStatus) GroupedAchievements {
	grouped := GroupedAchievements{AllAchievements: achievements}
	for _, a := range achievements {
		switch a.Achievement.Category {
		case CategoryFriendships:
			grouped.Friendships = append(grouped.Friendships, a)
		case CategoryOwnedGames:
			grouped.OwnedGames = append(grouped.OwnedGames, a)
		case CategorySoldGames:
			grouped.SoldGames = append(grouped.SoldGames, a)
		case CategoryReviewsGiven:
			grouped.ReviewsGiven = append(grouped.ReviewsGiven, a)
		case CategoryReviewsReceived:
			grouped.ReviewsReceived = append(grouped.ReviewsReceived, a)
		case CategoryYearsOfActivity:
			grouped.YearsOfActivity = append(grouped.YearsOfActivity, a)
		case CategoryPosts:
			grouped.Posts = append(grouped.Posts, a)
		case CategoryDeveloper:
			grouped.Developer = append(grouped.Developer, a)
		}
	}
	return grouped
}
