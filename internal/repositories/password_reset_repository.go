package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
)

// PasswordResetCode is internal to the reset flow; only the code hash
// is stored.
type PasswordResetCode struct {
	CodeHash  string
	UserID    uuid.UUID
	ExpiresAt time.Time
	CreatedAt time.Time
}

type PasswordResetRepository interface {
	Create(ctx context.Context, c *PasswordResetCode) error
	// Consume atomically fetches and deletes a code so it is single-use.
	Consume(ctx context.Context, codeHash string) (*PasswordResetCode, error)
	DeleteForUser(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type passwordResetRepo struct {
	db DB
}

func NewPasswordResetRepository(db DB) PasswordResetRepository {
	return &passwordResetRepo{db: db}
}

func (r *passwordResetRepo) Create(ctx context.Context, c *PasswordResetCode) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO password_reset_codes (code_hash, user_id, expires_at, created_at)
        VALUES ($1,$2,$3,NOW())
    `, c.CodeHash, c.UserID, c.ExpiresAt)
	return err
}

func (r *passwordResetRepo) Consume(ctx context.Context, codeHash string) (*PasswordResetCode, error) {
	row := r.db.QueryRow(ctx, `
        DELETE FROM password_reset_codes
        WHERE code_hash=$1
        RETURNING code_hash, user_id, expires_at, created_at
    `, codeHash)

	var c PasswordResetCode
	err := row.Scan(&c.CodeHash, &c.UserID, &c.ExpiresAt, &c.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *passwordResetRepo) DeleteForUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM password_reset_codes WHERE user_id=$1`, userID)
	return err
}

func (r *passwordResetRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM password_reset_codes WHERE expires_at < $1`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
