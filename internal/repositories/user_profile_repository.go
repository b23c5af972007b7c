package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/binbird1-hash/binbird-backend/internal/models"
)

type UserProfileRepository interface {
	Create(ctx context.Context, u *models.UserProfile) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.UserProfile, error)
	GetByEmail(ctx context.Context, email string) (*models.UserProfile, error)
	ListByRole(ctx context.Context, role string) ([]*models.UserProfile, error)

	UpdateIfVersion(ctx context.Context, u *models.UserProfile, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.UserProfile) error) error
	SetPasswordHash(ctx context.Context, id uuid.UUID, hash string) error

	Delete(ctx context.Context, id uuid.UUID) error
}

type userProfileRepo struct {
	*BaseVersionedRepo[*models.UserProfile]
	db DB
}

func NewUserProfileRepository(db DB) UserProfileRepository {
	r := &userProfileRepo{db: db}
	r.BaseVersionedRepo = NewBaseRepo(db, baseSelectProfile()+" WHERE id=$1", scanProfile)
	return r
}

func (r *userProfileRepo) Create(ctx context.Context, u *models.UserProfile) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO user_profiles (
            id, email, phone, full_name, role, password_hash,
            created_at, updated_at, row_version
        ) VALUES ($1, LOWER($2), $3, $4, $5, $6, NOW(), NOW(), 1)
    `,
		u.ID, u.Email, u.Phone, u.FullName, u.Role, u.PasswordHash,
	)
	return err
}

func (r *userProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.UserProfile, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *userProfileRepo) GetByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	row := r.db.QueryRow(ctx, baseSelectProfile()+" WHERE email=LOWER($1)", email)
	return scanProfile(row)
}

func (r *userProfileRepo) ListByRole(ctx context.Context, role string) ([]*models.UserProfile, error) {
	rows, err := r.db.Query(ctx, baseSelectProfile()+" WHERE role=$1 ORDER BY full_name", role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.UserProfile
	for rows.Next() {
		u, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *userProfileRepo) UpdateIfVersion(ctx context.Context, u *models.UserProfile, expected int64) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `
        UPDATE user_profiles SET
            email=LOWER($1), phone=$2, full_name=$3, role=$4,
            updated_at=NOW(), row_version=row_version+1
        WHERE id=$5 AND row_version=$6
    `,
		u.Email, u.Phone, u.FullName, u.Role, u.ID, expected,
	)
}

func (r *userProfileRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.UserProfile) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *userProfileRepo) SetPasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE user_profiles SET password_hash=$1, updated_at=NOW() WHERE id=$2
    `, hash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userProfileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM user_profiles WHERE id=$1`, id)
	return err
}

func baseSelectProfile() string {
	return `
        SELECT
            id, email, phone, full_name, role, password_hash,
            created_at, updated_at, row_version
        FROM user_profiles
    `
}

func scanProfile(row pgx.Row) (*models.UserProfile, error) {
	var u models.UserProfile
	err := row.Scan(
		&u.ID, &u.Email, &u.Phone, &u.FullName, &u.Role, &u.PasswordHash,
		&u.CreatedAt, &u.UpdatedAt, &u.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
