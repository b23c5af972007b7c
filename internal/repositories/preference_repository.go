package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/binbird1-hash/binbird-backend/internal/models"
)

type PreferenceRepository interface {
	// Upsert writes the client's proof-photo preference, last write wins.
	Upsert(ctx context.Context, p *models.ProofPhotoPreference) error
	GetByClientID(ctx context.Context, clientID uuid.UUID) (*models.ProofPhotoPreference, error)
}

type preferenceRepo struct {
	db DB
}

func NewPreferenceRepository(db DB) PreferenceRepository {
	return &preferenceRepo{db: db}
}

func (r *preferenceRepo) Upsert(ctx context.Context, p *models.ProofPhotoPreference) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO proof_photo_preferences (client_id, enabled, delivery, updated_at)
        VALUES ($1,$2,$3,NOW())
        ON CONFLICT (client_id) DO UPDATE
        SET enabled=EXCLUDED.enabled, delivery=EXCLUDED.delivery, updated_at=NOW()
    `, p.ClientID, p.Enabled, p.Delivery)
	return err
}

func (r *preferenceRepo) GetByClientID(ctx context.Context, clientID uuid.UUID) (*models.ProofPhotoPreference, error) {
	row := r.db.QueryRow(ctx, `
        SELECT client_id, enabled, delivery, updated_at
        FROM proof_photo_preferences
        WHERE client_id=$1
    `, clientID)

	var p models.ProofPhotoPreference
	err := row.Scan(&p.ClientID, &p.Enabled, &p.Delivery, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
