package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Migrate creates the schema. Every statement is idempotent so this runs
// unconditionally at startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	migrations := []struct {
		name string
		sql  string
	}{
		{"users", `
			CREATE TABLE IF NOT EXISTS users (
				id BIGSERIAL PRIMARY KEY,
				username VARCHAR(255) NOT NULL UNIQUE,
				is_developer BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
		`},
		{"friendships", `
			CREATE TABLE IF NOT EXISTS friendships (
				user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				friend_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				PRIMARY KEY (user_id, friend_id)
			);
		`},
		{"game_ownership", `
			CREATE TABLE IF NOT EXISTS game_ownership (
				user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				game_id BIGINT NOT NULL,
				acquired_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				PRIMARY KEY (user_id, game_id)
			);
		`},
		{"game_sales", `
			CREATE TABLE IF NOT EXISTS game_sales (
				id BIGSERIAL PRIMARY KEY,
				seller_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				game_id BIGINT NOT NULL,
				sold_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_game_sales_seller ON game_sales(seller_id);
		`},
		{"reviews", `
			CREATE TABLE IF NOT EXISTS reviews (
				id BIGSERIAL PRIMARY KEY,
				reviewer_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				recipient_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_reviews_reviewer ON reviews(reviewer_id);
			CREATE INDEX IF NOT EXISTS idx_reviews_recipient ON reviews(recipient_id);
		`},
		{"posts", `
			CREATE TABLE IF NOT EXISTS posts (
				id BIGSERIAL PRIMARY KEY,
				author_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_posts_author ON posts(author_id);
		`},
		{"achievements", `
			CREATE TABLE IF NOT EXISTS achievements (
				id BIGSERIAL PRIMARY KEY,
				name VARCHAR(100) NOT NULL UNIQUE,
				category VARCHAR(100) NOT NULL,
				description TEXT NOT NULL,
				points INT NOT NULL DEFAULT 0,
				icon_url TEXT NOT NULL DEFAULT ''
			);
		`},
		{"user_achievements", `
			CREATE TABLE IF NOT EXISTS user_achievements (
				user_id BIGINT NOT NULL,
				achievement_id BIGINT NOT NULL REFERENCES achievements(id) ON DELETE CASCADE,
				unlocked_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				PRIMARY KEY (user_id, achievement_id)
			);
		`},
		{"achievement_eval_queue", `
			CREATE TABLE IF NOT EXISTS achievement_eval_queue (
				id UUID NOT NULL,
				user_id BIGINT PRIMARY KEY,
				reason VARCHAR(100) NOT NULL DEFAULT '',
				enqueued_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_eval_queue_enqueued ON achievement_eval_queue(enqueued_at);
		`},
	}

	for _, m := range migrations {
		if _, err := pool.Exec(ctx, m.sql); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.name, err)
		}
		log.Debug().Str("migration", m.name).Msg("Migration applied")
	}

	log.Info().Int("count", len(migrations)).Msg("All migrations completed")
	return nil
}
