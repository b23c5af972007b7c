package repositories

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/binbird1-hash/binbird-backend/internal/models"
)

type JobRepository interface {
	Create(ctx context.Context, j *models.Job) error
	CreateIfNotExists(ctx context.Context, j *models.Job) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	ListForDate(ctx context.Context, date time.Time) ([]*models.Job, error)
	ListForStaff(ctx context.Context, staffID uuid.UUID, from, to time.Time) ([]*models.Job, error)
	ListForClient(ctx context.Context, clientID uuid.UUID, limit int) ([]*models.Job, error)

	// DeleteUncompletedForDate is the destructive half of regeneration:
	// completed jobs on the date are left untouched.
	DeleteUncompletedForDate(ctx context.Context, date time.Time) (int64, error)

	UpdateIfVersion(ctx context.Context, j *models.Job, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Job) error) error
}

type jobRepo struct {
	*BaseVersionedRepo[*models.Job]
	db DB
}

func NewJobRepository(db DB) JobRepository {
	r := &jobRepo{db: db}
	r.BaseVersionedRepo = NewBaseRepo(db, baseSelectJob()+" WHERE id=$1", scanJob)
	return r
}

func (r *jobRepo) Create(ctx context.Context, j *models.Job) error {
	return r.insert(ctx, j, "")
}

func (r *jobRepo) CreateIfNotExists(ctx context.Context, j *models.Job) error {
	return r.insert(ctx, j, " ON CONFLICT (client_id, service_date, job_type) DO NOTHING")
}

func (r *jobRepo) insert(ctx context.Context, j *models.Job, conflictClause string) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO jobs (
            id, account_id, client_id, address, latitude, longitude,
            job_type, bins_summary, day_label, service_date,
            assigned_staff_id, completed_at,
            created_at, updated_at, row_version
        ) VALUES (
            $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12, NOW(), NOW(), 1
        )`+conflictClause,
		j.ID, j.AccountID, j.ClientID, j.Address, j.Latitude, j.Longitude,
		j.JobType, j.BinsSummary, j.DayLabel, j.ServiceDate.Format("2006-01-02"),
		j.AssignedStaffID, j.CompletedAt,
	)
	return err
}

func (r *jobRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *jobRepo) ListForDate(ctx context.Context, date time.Time) ([]*models.Job, error) {
	return r.list(ctx,
		baseSelectJob()+" WHERE service_date=$1 ORDER BY job_type, address",
		date.Format("2006-01-02"))
}

func (r *jobRepo) ListForStaff(ctx context.Context, staffID uuid.UUID, from, to time.Time) ([]*models.Job, error) {
	var (
		qb   strings.Builder
		args []interface{}
		idx  = 1
	)
	qb.WriteString(baseSelectJob())
	qb.WriteString(" WHERE assigned_staff_id=$")
	qb.WriteString(strconv.Itoa(idx))
	args = append(args, staffID)
	idx++

	qb.WriteString(" AND service_date >= $")
	qb.WriteString(strconv.Itoa(idx))
	args = append(args, from.Format("2006-01-02"))
	idx++

	qb.WriteString(" AND service_date <= $")
	qb.WriteString(strconv.Itoa(idx))
	args = append(args, to.Format("2006-01-02"))

	qb.WriteString(" ORDER BY service_date, job_type, address")
	return r.list(ctx, qb.String(), args...)
}

func (r *jobRepo) ListForClient(ctx context.Context, clientID uuid.UUID, limit int) ([]*models.Job, error) {
	if limit <= 0 {
		limit = 50
	}
	return r.list(ctx,
		baseSelectJob()+" WHERE client_id=$1 ORDER BY service_date DESC LIMIT $2",
		clientID, limit)
}

func (r *jobRepo) DeleteUncompletedForDate(ctx context.Context, date time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM jobs WHERE service_date=$1 AND completed_at IS NULL`,
		date.Format("2006-01-02"))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *jobRepo) UpdateIfVersion(ctx context.Context, j *models.Job, expected int64) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `
        UPDATE jobs SET
            assigned_staff_id=$1, completed_at=$2, bins_summary=$3,
            updated_at=NOW(), row_version=row_version+1
        WHERE id=$4 AND row_version=$5
    `,
		j.AssignedStaffID, j.CompletedAt, j.BinsSummary,
		j.ID, expected,
	)
}

func (r *jobRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Job) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *jobRepo) list(ctx context.Context, sql string, args ...interface{}) ([]*models.Job, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func baseSelectJob() string {
	return `
        SELECT
            id, account_id, client_id, address, latitude, longitude,
            job_type, bins_summary, day_label, service_date,
            assigned_staff_id, completed_at,
            created_at, updated_at, row_version
        FROM jobs
    `
}

func scanJob(row pgx.Row) (*models.Job, error) {
	var j models.Job
	err := row.Scan(
		&j.ID, &j.AccountID, &j.ClientID, &j.Address, &j.Latitude, &j.Longitude,
		&j.JobType, &j.BinsSummary, &j.DayLabel, &j.ServiceDate,
		&j.AssignedStaffID, &j.CompletedAt,
		&j.CreatedAt, &j.UpdatedAt, &j.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &j, nil
}
