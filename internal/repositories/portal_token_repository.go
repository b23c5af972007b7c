package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/binbird1-hash/binbird-backend/internal/models"
)

type PortalTokenRepository interface {
	Create(ctx context.Context, t *models.PortalToken) error
	GetByHash(ctx context.Context, hash string) (*models.PortalToken, error)
	TouchLastUsed(ctx context.Context, hash string) error
	RevokeForClient(ctx context.Context, clientID uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type portalTokenRepo struct {
	db DB
}

func NewPortalTokenRepository(db DB) PortalTokenRepository {
	return &portalTokenRepo{db: db}
}

func (r *portalTokenRepo) Create(ctx context.Context, t *models.PortalToken) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO client_portal_tokens (token_hash, client_id, expires_at, created_at)
        VALUES ($1,$2,$3,NOW())
    `, t.TokenHash, t.ClientID, t.ExpiresAt)
	return err
}

func (r *portalTokenRepo) GetByHash(ctx context.Context, hash string) (*models.PortalToken, error) {
	row := r.db.QueryRow(ctx, `
        SELECT token_hash, client_id, expires_at, last_used_at, created_at
        FROM client_portal_tokens
        WHERE token_hash=$1
    `, hash)

	var t models.PortalToken
	err := row.Scan(&t.TokenHash, &t.ClientID, &t.ExpiresAt, &t.LastUsedAt, &t.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *portalTokenRepo) TouchLastUsed(ctx context.Context, hash string) error {
	_, err := r.db.Exec(ctx, `
        UPDATE client_portal_tokens SET last_used_at=NOW() WHERE token_hash=$1
    `, hash)
	return err
}

func (r *portalTokenRepo) RevokeForClient(ctx context.Context, clientID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
        DELETE FROM client_portal_tokens WHERE client_id=$1
    `, clientID)
	return err
}

func (r *portalTokenRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
        DELETE FROM client_portal_tokens WHERE expires_at < $1
    `, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
