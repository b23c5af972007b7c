package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/binbird1-hash/binbird-backend/internal/models"
)

type PropertyRequestRepository interface {
	Create(ctx context.Context, p *models.PropertyRequest) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.PropertyRequest, error)
	ListByStatus(ctx context.Context, status models.RequestStatusType) ([]*models.PropertyRequest, error)
	ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]*models.PropertyRequest, error)

	// MarkDecided flips a pending request. Returns pgx.ErrNoRows if the
	// request was already decided — approvals must not race each other.
	MarkDecided(ctx context.Context, id uuid.UUID, status models.RequestStatusType, approverID uuid.UUID, at time.Time) error
}

type propertyRequestRepo struct {
	db DB
}

func NewPropertyRequestRepository(db DB) PropertyRequestRepository {
	return &propertyRequestRepo{db: db}
}

func (r *propertyRequestRepo) Create(ctx context.Context, p *models.PropertyRequest) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO property_requests (
            id, requester_id, address, suburb, state, postcode,
            collection_day, notes, status, created_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NOW())
    `,
		p.ID, p.RequesterID, p.Address, p.Suburb, p.State, p.Postcode,
		p.CollectionDay, p.Notes, p.Status,
	)
	return err
}

func (r *propertyRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.PropertyRequest, error) {
	row := r.db.QueryRow(ctx, baseSelectRequest()+" WHERE id=$1", id)
	return scanRequest(row)
}

func (r *propertyRequestRepo) ListByStatus(ctx context.Context, status models.RequestStatusType) ([]*models.PropertyRequest, error) {
	return r.list(ctx, baseSelectRequest()+" WHERE status=$1 ORDER BY created_at", status)
}

func (r *propertyRequestRepo) ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]*models.PropertyRequest, error) {
	return r.list(ctx, baseSelectRequest()+" WHERE requester_id=$1 ORDER BY created_at DESC", requesterID)
}

func (r *propertyRequestRepo) MarkDecided(
	ctx context.Context,
	id uuid.UUID,
	status models.RequestStatusType,
	approverID uuid.UUID,
	at time.Time,
) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE property_requests
        SET status=$1, approver_id=$2, decided_at=$3
        WHERE id=$4 AND status=$5
    `, status, approverID, at, id, models.RequestStatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyRequestRepo) list(ctx context.Context, sql string, args ...interface{}) ([]*models.PropertyRequest, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.PropertyRequest
	for rows.Next() {
		p, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func baseSelectRequest() string {
	return `
        SELECT
            id, requester_id, address, suburb, state, postcode,
            collection_day, notes, status, approver_id, decided_at, created_at
        FROM property_requests
    `
}

func scanRequest(row pgx.Row) (*models.PropertyRequest, error) {
	var p models.PropertyRequest
	err := row.Scan(
		&p.ID, &p.RequesterID, &p.Address, &p.Suburb, &p.State, &p.Postcode,
		&p.CollectionDay, &p.Notes, &p.Status, &p.ApproverID, &p.DecidedAt, &p.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
