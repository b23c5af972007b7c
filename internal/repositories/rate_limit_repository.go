package repositories

import (
	"context"
	"time"
)

// RateLimitRepository backs the password-reset throttle with a counter
// row per key (email or IP) that resets each window.
type RateLimitRepository interface {
	// Increment bumps the counter for key within the current window and
	// returns the new count.
	Increment(ctx context.Context, key string, windowStart time.Time) (int, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type rateLimitRepo struct {
	db DB
}

func NewRateLimitRepository(db DB) RateLimitRepository {
	return &rateLimitRepo{db: db}
}

func (r *rateLimitRepo) Increment(ctx context.Context, key string, windowStart time.Time) (int, error) {
	row := r.db.QueryRow(ctx, `
        INSERT INTO reset_rate_limits (key, window_start, count)
        VALUES ($1,$2,1)
        ON CONFLICT (key) DO UPDATE
        SET count = CASE
                WHEN reset_rate_limits.window_start < EXCLUDED.window_start THEN 1
                ELSE reset_rate_limits.count + 1
            END,
            window_start = GREATEST(reset_rate_limits.window_start, EXCLUDED.window_start)
        RETURNING count
    `, key, windowStart)

	var count int
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *rateLimitRepo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM reset_rate_limits WHERE window_start < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
