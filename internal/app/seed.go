package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"

	"github.com/binbird1-hash/binbird-backend/internal/models"
	"github.com/binbird1-hash/binbird-backend/internal/repositories"
	"github.com/binbird1-hash/binbird-backend/internal/utils"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Sentinel IDs so seeding is idempotent across restarts.
var (
	seedAdminID  = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	seedStaffID  = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	seedOwnerID  = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	seedClientID = uuid.MustParse("44444444-4444-4444-4444-444444444444")
)

// SeedTestData loads a small demo data set for local development:
// one admin, one staff member, one client account with a serviced
// property. Gated behind the seed_db_with_test_data flag.
func SeedTestData(
	ctx context.Context,
	profileRepo repositories.UserProfileRepository,
	clientRepo repositories.ClientRepository,
) error {
	if existing, err := profileRepo.GetByID(ctx, seedAdminID); err != nil {
		return fmt.Errorf("check existing seed admin: %w", err)
	} else if existing != nil {
		utils.Logger.Info("Seed data already present; skipping seeding")
		return nil
	}

	hash, err := utils.HashPassword("password123!")
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	profiles := []*models.UserProfile{
		{ID: seedAdminID, Email: "admin@binbird.test", FullName: "Ava Admin", Role: string(utils.RoleAdmin), PasswordHash: hash},
		{ID: seedStaffID, Email: "staff@binbird.test", Phone: "+61400000001", FullName: "Sam Staff", Role: string(utils.RoleStaff), PasswordHash: hash},
		{ID: seedOwnerID, Email: "client@binbird.test", Phone: "+61400000002", FullName: "Chris Client", Role: string(utils.RoleClient), PasswordHash: hash},
	}
	for _, p := range profiles {
		if err := profileRepo.Create(ctx, p); err != nil && !isUniqueViolation(err) {
			return fmt.Errorf("seed profile %s: %w", p.Email, err)
		}
	}

	staffID := seedStaffID
	client := &models.Client{
		ID:        seedClientID,
		AccountID: seedOwnerID,

		Name:     "Chris Client",
		Address:  "14 Wattle Street",
		Suburb:   "Surry Hills",
		State:    "NSW",
		Postcode: "2010",

		Latitude:  -33.8845,
		Longitude: 151.2116,
		TimeZone:  "Australia/Sydney",

		CollectionDay: "Tuesday",
		PutBinsOutDay: "Mon",

		RedBin:    models.BinConfig{Frequency: models.FreqWeekly},
		YellowBin: models.BinConfig{Frequency: models.FreqFortnightly},
		GreenBin:  models.BinConfig{Frequency: models.FreqFortnightly, Flip: true},

		AssignedStaffID: &staffID,
		SkipHolidays:    true,
		Active:          true,
	}
	if err := clientRepo.Create(ctx, client); err != nil && !isUniqueViolation(err) {
		return fmt.Errorf("seed client: %w", err)
	}

	utils.Logger.Info("Seeded test data successfully")
	return nil
}
