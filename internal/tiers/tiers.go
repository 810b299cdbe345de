// Package tiers maps account metrics to canonical achievement names.
//
// Each counted category has an ordered tier table evaluated highest
// threshold first; a count earns the highest tier whose minimum it meets.
// Years of Activity is exact-match instead of at-least, and Developer is a
// single tier keyed on the boolean flag.
package tiers

import "gamehub/internal/model"

// tier is a minimum count and the achievement name it earns.
type tier struct {
	min  int
	name string
}

// Tables are ordered highest threshold first; Resolve returns the first
// tier met.
var (
	friendshipTiers = []tier{
		{100, "FRIENDSHIP5"},
		{50, "FRIENDSHIP4"},
		{10, "FRIENDSHIP3"},
		{5, "FRIENDSHIP2"},
		{1, "FRIENDSHIP1"},
	}
	ownedGamesTiers = []tier{
		{50, "OWNEDGAMES4"},
		{10, "OWNEDGAMES3"},
		{5, "OWNEDGAMES2"},
		{1, "OWNEDGAMES1"},
	}
	soldGamesTiers = []tier{
		{50, "SOLDGAMES4"},
		{10, "SOLDGAMES3"},
		{5, "SOLDGAMES2"},
		{1, "SOLDGAMES1"},
	}
	reviewsGivenTiers = []tier{
		{50, "REVIEW4"},
		{10, "REVIEW3"},
		{5, "REVIEW2"},
		{1, "REVIEW1"},
	}
	reviewsReceivedTiers = []tier{
		{50, "REVIEWR4"},
		{10, "REVIEWR3"},
		{5, "REVIEWR2"},
		{1, "REVIEWR1"},
	}
	postsTiers = []tier{
		{50, "POSTS4"},
		{10, "POSTS3"},
		{5, "POSTS2"},
		{1, "POSTS1"},
	}
)

// Exact-match table: activity tiers are earned per completed year, not
// "at least".
var activityTiers = map[int]string{
	1: "ACTIVITY1",
	2: "ACTIVITY2",
	3: "ACTIVITY3",
	4: "ACTIVITY4",
}

// DeveloperCount is the conventional count passed for a true developer flag.
const DeveloperCount = 1

// Resolve returns the canonical achievement name the count earns in the
// given category, or ok=false when no tier is met. Unknown categories
// resolve to no match rather than an error.
func Resolve(category string, count int) (string, bool) {
	switch category {
	case model.CategoryFriendships:
		return resolveMin(friendshipTiers, count)
	case model.CategoryOwnedGames:
		return resolveMin(ownedGamesTiers, count)
	case model.CategorySoldGames:
		return resolveMin(soldGamesTiers, count)
	case model.CategoryReviewsGiven:
		return resolveMin(reviewsGivenTiers, count)
	case model.CategoryReviewsReceived:
		return resolveMin(reviewsReceivedTiers, count)
	case model.CategoryYearsOfActivity:
		name, ok := activityTiers[count]
		return name, ok
	case model.CategoryPosts:
		return resolveMin(postsTiers, count)
	case model.CategoryDeveloper:
		if count == DeveloperCount {
			return "DEVELOPER", true
		}
		return "", false
	default:
		return "", false
	}
}

func resolveMin(table []tier, count int) (string, bool) {
	for _, t := range table {
		if count >= t.min {
			return t.name, true
		}
	}
	return "", false
}
