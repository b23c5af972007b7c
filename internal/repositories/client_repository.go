package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/binbird1-hash/binbird-backend/internal/models"
)

type ClientRepository interface {
	Create(ctx context.Context, c *models.Client) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	ListByAccountID(ctx context.Context, accountID uuid.UUID) ([]*models.Client, error)
	ListByAssignedStaff(ctx context.Context, staffID uuid.UUID) ([]*models.Client, error)
	ListActive(ctx context.Context) ([]*models.Client, error)
	ListAll(ctx context.Context) ([]*models.Client, error)

	Update(ctx context.Context, c *models.Client) error
	UpdateIfVersion(ctx context.Context, c *models.Client, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Client) error) error

	Delete(ctx context.Context, id uuid.UUID) error
}

type clientRepo struct {
	*BaseVersionedRepo[*models.Client]
	db DB
}

func NewClientRepository(db DB) ClientRepository {
	r := &clientRepo{db: db}
	r.BaseVersionedRepo = NewBaseRepo(db, baseSelectClient()+" WHERE id=$1", scanClient)
	return r
}

func (r *clientRepo) Create(ctx context.Context, c *models.Client) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO clients (
            id, account_id, name, address, suburb, state, postcode,
            latitude, longitude, time_zone,
            collection_day, put_bins_out_day,
            red_frequency, red_flip,
            yellow_frequency, yellow_flip,
            green_frequency, green_flip,
            assigned_staff_id, skip_holidays, active,
            created_at, updated_at, row_version
        ) VALUES (
            $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,
            $13,$14,$15,$16,$17,$18,$19,$20,$21,
            NOW(), NOW(), 1
        )
    `,
		c.ID, c.AccountID, c.Name, c.Address, c.Suburb, c.State, c.Postcode,
		c.Latitude, c.Longitude, c.TimeZone,
		c.CollectionDay, c.PutBinsOutDay,
		c.RedBin.Frequency, c.RedBin.Flip,
		c.YellowBin.Frequency, c.YellowBin.Flip,
		c.GreenBin.Frequency, c.GreenBin.Flip,
		c.AssignedStaffID, c.SkipHolidays, c.Active,
	)
	return err
}

func (r *clientRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *clientRepo) ListByAccountID(ctx context.Context, accountID uuid.UUID) ([]*models.Client, error) {
	return r.list(ctx, baseSelectClient()+" WHERE account_id=$1 ORDER BY created_at", accountID)
}

func (r *clientRepo) ListByAssignedStaff(ctx context.Context, staffID uuid.UUID) ([]*models.Client, error) {
	return r.list(ctx, baseSelectClient()+" WHERE assigned_staff_id=$1 AND active ORDER BY suburb, address", staffID)
}

func (r *clientRepo) ListActive(ctx context.Context) ([]*models.Client, error) {
	return r.list(ctx, baseSelectClient()+" WHERE active ORDER BY created_at")
}

func (r *clientRepo) ListAll(ctx context.Context) ([]*models.Client, error) {
	return r.list(ctx, baseSelectClient()+" ORDER BY created_at")
}

func (r *clientRepo) list(ctx context.Context, sql string, args ...interface{}) ([]*models.Client, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *clientRepo) Update(ctx context.Context, c *models.Client) error {
	_, err := r.update(ctx, c, false, 0)
	return err
}

func (r *clientRepo) UpdateIfVersion(ctx context.Context, c *models.Client, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, c, true, expected)
}

func (r *clientRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Client) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *clientRepo) update(ctx context.Context, c *models.Client, check bool, expected int64) (pgconn.CommandTag, error) {
	sql := `
        UPDATE clients SET
            name=$1, address=$2, suburb=$3, state=$4, postcode=$5,
            latitude=$6, longitude=$7, time_zone=$8,
            collection_day=$9, put_bins_out_day=$10,
            red_frequency=$11, red_flip=$12,
            yellow_frequency=$13, yellow_flip=$14,
            green_frequency=$15, green_flip=$16,
            assigned_staff_id=$17, skip_holidays=$18, active=$19,
            updated_at=NOW()
    `
	args := []interface{}{
		c.Name, c.Address, c.Suburb, c.State, c.Postcode,
		c.Latitude, c.Longitude, c.TimeZone,
		c.CollectionDay, c.PutBinsOutDay,
		c.RedBin.Frequency, c.RedBin.Flip,
		c.YellowBin.Frequency, c.YellowBin.Flip,
		c.GreenBin.Frequency, c.GreenBin.Flip,
		c.AssignedStaffID, c.SkipHolidays, c.Active,
	}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$20 AND row_version=$21`
		args = append(args, c.ID, expected)
	} else {
		sql += ` WHERE id=$20`
		args = append(args, c.ID)
	}
	return r.db.Exec(ctx, sql, args...)
}

func (r *clientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectClient() string {
	return `
        SELECT
            id, account_id, name, address, suburb, state, postcode,
            latitude, longitude, time_zone,
            collection_day, put_bins_out_day,
            red_frequency, red_flip,
            yellow_frequency, yellow_flip,
            green_frequency, green_flip,
            assigned_staff_id, skip_holidays, active,
            created_at, updated_at, row_version
        FROM clients
    `
}

func scanClient(row pgx.Row) (*models.Client, error) {
	var c models.Client
	err := row.Scan(
		&c.ID, &c.AccountID, &c.Name, &c.Address, &c.Suburb, &c.State, &c.Postcode,
		&c.Latitude, &c.Longitude, &c.TimeZone,
		&c.CollectionDay, &c.PutBinsOutDay,
		&c.RedBin.Frequency, &c.RedBin.Flip,
		&c.YellowBin.Frequency, &c.YellowBin.Flip,
		&c.GreenBin.Frequency, &c.GreenBin.Flip,
		&c.AssignedStaffID, &c.SkipHolidays, &c.Active,
		&c.CreatedAt, &c.UpdatedAt, &c.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
