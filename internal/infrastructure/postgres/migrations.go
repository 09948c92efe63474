package postgres

import (
	"context"
	"fmt"
)

// migrations is the ordered DDL the pipeline needs. Statements use IF NOT
// EXISTS so applying them on every worker start is harmless.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS channels (
		id UUID PRIMARY KEY,
		external_id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		url TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT 'main',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS videos (
		id UUID PRIMARY KEY,
		external_id TEXT NOT NULL UNIQUE,
		channel_id UUID NOT NULL REFERENCES channels(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		thumbnail_url TEXT NOT NULL DEFAULT '',
		summary TEXT NOT NULL,
		watch_url TEXT NOT NULL,
		published_at TIMESTAMPTZ NOT NULL,
		fetched_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		duration_seconds INTEGER
	)`,
	`CREATE INDEX IF NOT EXISTS videos_channel_published_idx
		ON videos (channel_id, published_at DESC)`,
	`CREATE TABLE IF NOT EXISTS pending_videos (
		id UUID PRIMARY KEY,
		external_id TEXT NOT NULL UNIQUE,
		channel_id UUID NOT NULL,
		title TEXT NOT NULL,
		thumbnail_url TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		watch_url TEXT NOT NULL,
		published_at TIMESTAMPTZ NOT NULL,
		duration_seconds INTEGER,
		retry_count INTEGER NOT NULL DEFAULT 0,
		added_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS pending_videos_added_idx
		ON pending_videos (added_at ASC)`,
}

// Migrate applies the schema. Callers run it once at startup.
func (c *Client) Migrate(ctx context.Context) error {
	for i, stmt := range migrations {
		if _, err := c.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
