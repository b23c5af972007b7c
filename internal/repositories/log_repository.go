package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/binbird1-hash/binbird-backend/internal/models"
)

type LogRepository interface {
	Create(ctx context.Context, l *models.CollectionLog) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.CollectionLog, error)
	GetByJobID(ctx context.Context, jobID uuid.UUID) (*models.CollectionLog, error)
	ListByClientID(ctx context.Context, clientID uuid.UUID, limit int) ([]*models.CollectionLog, error)

	Delete(ctx context.Context, id uuid.UUID) error
}

type logRepo struct {
	db DB
}

func NewLogRepository(db DB) LogRepository {
	return &logRepo{db: db}
}

func (r *logRepo) Create(ctx context.Context, l *models.CollectionLog) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO collection_logs (
            id, job_id, photo_key, latitude, longitude, accuracy_m,
            notes, completed_at, created_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW())
    `,
		l.ID, l.JobID, l.PhotoKey, l.Latitude, l.Longitude, l.AccuracyM,
		l.Notes, l.CompletedAt,
	)
	return err
}

func (r *logRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.CollectionLog, error) {
	row := r.db.QueryRow(ctx, baseSelectLog()+" WHERE l.id=$1", id)
	return scanLog(row)
}

func (r *logRepo) GetByJobID(ctx context.Context, jobID uuid.UUID) (*models.CollectionLog, error) {
	row := r.db.QueryRow(ctx, baseSelectLog()+" WHERE l.job_id=$1", jobID)
	return scanLog(row)
}

// ListByClientID joins through jobs since logs only reference jobs.
func (r *logRepo) ListByClientID(ctx context.Context, clientID uuid.UUID, limit int) ([]*models.CollectionLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx, baseSelectLog()+`
        JOIN jobs j ON j.id = l.job_id
        WHERE j.client_id=$1
        ORDER BY l.completed_at DESC
        LIMIT $2
    `, clientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.CollectionLog
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *logRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM collection_logs WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectLog() string {
	return `
        SELECT
            l.id, l.job_id, l.photo_key, l.latitude, l.longitude,
            l.accuracy_m, l.notes, l.completed_at, l.created_at
        FROM collection_logs l
    `
}

func scanLog(row pgx.Row) (*models.CollectionLog, error) {
	var l models.CollectionLog
	err := row.Scan(
		&l.ID, &l.JobID, &l.PhotoKey, &l.Latitude, &l.Longitude,
		&l.AccuracyM, &l.Notes, &l.CompletedAt, &l.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}
