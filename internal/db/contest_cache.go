package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// DefaultContestCacheTTL bounds how long a cached contest listing is
// considered fresh.
const DefaultContestCacheTTL = time.Hour

// GetCachedListing returns the cached payload for a key if one exists,
// regardless of age. Callers decide freshness against their own TTL so a
// stale entry can still serve as a fallback when every source is down.
func (db *DB) GetCachedListing(ctx context.Context, key string) (*CachedListing, error) {
	var l CachedListing
	err := db.pool.QueryRow(ctx,
		`SELECT key, payload, fetched_at FROM contest_cache WHERE key = $1`, key,
	).Scan(&l.Key, &l.Payload, &l.FetchedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached listing: %w", err)
	}
	return &l, nil
}

// PutCachedListing upserts the payload for a key, stamping it as fetched now.
func (db *DB) PutCachedListing(ctx context.Context, key string, payload []byte) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO contest_cache (key, payload, fetched_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET payload = $2, fetched_at = NOW()`,
		key, payload,
	)
	if err != nil {
		return fmt.Errorf("failed to cache listing: %w", err)
	}
	return nil
}
