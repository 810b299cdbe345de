package model

// SeedAchievements returns the fixed catalog inserted on first startup.
// Names are the canonical tier identifiers the resolver produces; they must
// never be renamed once a deployment has unlock records referencing them.
//
// Tier counts are deliberately uneven: Friendships goes to five tiers while
// the other counted categories stop at four.
func SeedAchievements() []Achievement {
	return []Achievement{
		{Name: "FRIENDSHIP1", Category: CategoryFriendships, Description: "You made a friend, you get a point", Points: 1},
		{Name: "FRIENDSHIP2", Category: CategoryFriendships, Description: "You made 5 friends, you get 3 points", Points: 3},
		{Name: "FRIENDSHIP3", Category: CategoryFriendships, Description: "You made 10 friends, you get 5 points", Points: 5},
		{Name: "FRIENDSHIP4", Category: CategoryFriendships, Description: "You made 50 friends, you get 10 points", Points: 10},
		{Name: "FRIENDSHIP5", Category: CategoryFriendships, Description: "You made 100 friends, you get 15 points", Points: 15},

		{Name: "OWNEDGAMES1", Category: CategoryOwnedGames, Description: "You own 1 game, you get a point", Points: 1},
		{Name: "OWNEDGAMES2", Category: CategoryOwnedGames, Description: "You own 5 games, you get 3 points", Points: 3},
		{Name: "OWNEDGAMES3", Category: CategoryOwnedGames, Description: "You own 10 games, you get 5 points", Points: 5},
		{Name: "OWNEDGAMES4", Category: CategoryOwnedGames, Description: "You own 50 games, you get 10 points", Points: 10},

		{Name: "SOLDGAMES1", Category: CategorySoldGames, Description: "You sold 1 game, you get a point", Points: 1},
		{Name: "SOLDGAMES2", Category: CategorySoldGames, Description: "You sold 5 games, you get 3 points", Points: 3},
		{Name: "SOLDGAMES3", Category: CategorySoldGames, Description: "You sold 10 games, you get 5 points", Points: 5},
		{Name: "SOLDGAMES4", Category: CategorySoldGames, Description: "You sold 50 games, you get 10 points", Points: 10},

		{Name: "REVIEW1", Category: CategoryReviewsGiven, Description: "You gave 1 review, you get a point", Points: 1},
		{Name: "REVIEW2", Category: CategoryReviewsGiven, Description: "You gave 5 reviews, you get 3 points", Points: 3},
		{Name: "REVIEW3", Category: CategoryReviewsGiven, Description: "You gave 10 reviews, you get 5 points", Points: 5},
		{Name: "REVIEW4", Category: CategoryReviewsGiven, Description: "You gave 50 reviews, you get 10 points", Points: 10},

		{Name: "REVIEWR1", Category: CategoryReviewsReceived, Description: "You got 1 review, you get a point", Points: 1},
		{Name: "REVIEWR2", Category: CategoryReviewsReceived, Description: "You got 5 reviews, you get 3 points", Points: 3},
		{Name: "REVIEWR3", Category: CategoryReviewsReceived, Description: "You got 10 reviews, you get 5 points", Points: 5},
		{Name: "REVIEWR4", Category: CategoryReviewsReceived, Description: "You got 50 reviews, you get 10 points", Points: 10},

		{Name: "ACTIVITY1", Category: CategoryYearsOfActivity, Description: "You have been active for 1 year, you get a point", Points: 1},
		{Name: "ACTIVITY2", Category: CategoryYearsOfActivity, Description: "You have been active for 2 years, you get 3 points", Points: 3},
		{Name: "ACTIVITY3", Category: CategoryYearsOfActivity, Description: "You have been active for 3 years, you get 5 points", Points: 5},
		{Name: "ACTIVITY4", Category: CategoryYearsOfActivity, Description: "You have been active for 4 years, you get 10 points", Points: 10},

		{Name: "POSTS1", Category: CategoryPosts, Description: "You made 1 post, you get a point", Points: 1},
		{Name: "POSTS2", Category: CategoryPosts, Description: "You made 5 posts, you get 3 points", Points: 3},
		{Name: "POSTS3", Category: CategoryPosts, Description: "You made 10 posts, you get 5 points", Points: 5},
		{Name: "POSTS4", Category: CategoryPosts, Description: "You made 50 posts, you get 10 points", Points: 10},

		{Name: "DEVELOPER", Category: CategoryDeveloper, Description: "You are a developer, you get 10 points", Points: 10},
	}
}
