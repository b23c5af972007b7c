package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/binbird1-hash/binbird-backend/internal/dtos"
	"github.com/binbird1-hash/binbird-backend/internal/models"
	"github.com/binbird1-hash/binbird-backend/internal/repositories"
	"github.com/binbird1-hash/binbird-backend/internal/utils"
)

// ClientService owns the serviced-property records the admin portal
// manages. Coordinates and timezone are resolved at create time so job
// generation and GPS checks never need the geocoder on the hot path.
type ClientService struct {
	clientRepo repositories.ClientRepository
	tokenRepo  repositories.PortalTokenRepository
	geocoder   *GeocodeService
}

func NewClientService(
	clientRepo repositories.ClientRepository,
	tokenRepo repositories.PortalTokenRepository,
	geocoder *GeocodeService,
) *ClientService {
	return &ClientService{clientRepo: clientRepo, tokenRepo: tokenRepo, geocoder: geocoder}
}

func (s *ClientService) Create(ctx context.Context, in *dtos.CreateClientRequest) (*models.Client, error) {
	lat, lng := in.Latitude, in.Longitude
	if lat == 0 && lng == 0 && s.geocoder.Enabled() {
		fullAddress := fmt.Sprintf("%s, %s %s %s, Australia", in.Address, in.Suburb, in.State, in.Postcode)
		gLat, gLng, err := s.geocoder.Geocode(ctx, fullAddress)
		if err != nil {
			return nil, utils.NewAppError(
				http.StatusBadGateway, utils.ErrCodeExternalServiceFailure, "Failed to geocode address", err,
			)
		}
		lat, lng = gLat, gLng
	}

	tz := DefaultTimeZone
	if lat != 0 || lng != 0 {
		tz = s.geocoder.TimeZoneFor(lat, lng)
	}

	client := &models.Client{
		ID:        uuid.New(),
		AccountID: in.AccountID,

		Name:     strings.TrimSpace(in.Name),
		Address:  strings.TrimSpace(in.Address),
		Suburb:   strings.TrimSpace(in.Suburb),
		State:    strings.TrimSpace(in.State),
		Postcode: strings.TrimSpace(in.Postcode),

		Latitude:  lat,
		Longitude: lng,
		TimeZone:  tz,

		CollectionDay: strings.TrimSpace(in.CollectionDay),
		PutBinsOutDay: strings.TrimSpace(in.PutBinsOutDay),

		RedBin:    in.RedBin.Model(),
		YellowBin: in.YellowBin.Model(),
		GreenBin:  in.GreenBin.Model(),

		AssignedStaffID: in.AssignedStaffID,
		SkipHolidays:    in.SkipHolidays,
		Active:          true,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to create client", err)
	}
	return s.Get(ctx, client.ID)
}

func (s *ClientService) Get(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to load client", err)
	}
	if client == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found", utils.ErrNotFound)
	}
	return client, nil
}

func (s *ClientService) ListAll(ctx context.Context) ([]*models.Client, error) {
	clients, err := s.clientRepo.ListAll(ctx)
	if err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to list clients", err)
	}
	return clients, nil
}

func (s *ClientService) ListForAccount(ctx context.Context, accountID uuid.UUID) ([]*models.Client, error) {
	clients, err := s.clientRepo.ListByAccountID(ctx, accountID)
	if err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to list clients", err)
	}
	return clients, nil
}

// Update applies only the fields present in the request, under the
// optimistic-lock retry loop.
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, in *dtos.UpdateClientRequest) (*models.Client, error) {
	err := s.clientRepo.UpdateWithRetry(ctx, id, func(c *models.Client) error {
		applyClientUpdate(c, in)
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found", err)
		}
		return nil, utils.NewAppError(
			http.StatusConflict, utils.ErrCodeRowVersionConflict, "Client was modified concurrently, try again", err,
		)
	}
	return s.Get(ctx, id)
}

func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	// Outstanding portal tokens die with the client.
	if err := s.tokenRepo.RevokeForClient(ctx, id); err != nil {
		return utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to delete client", err)
	}
	if err := s.clientRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found", err)
		}
		return utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to delete client", err)
	}
	return nil
}

func applyClientUpdate(c *models.Client, in *dtos.UpdateClientRequest) {
	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Address != nil {
		c.Address = strings.TrimSpace(*in.Address)
	}
	if in.Suburb != nil {
		c.Suburb = strings.TrimSpace(*in.Suburb)
	}
	if in.State != nil {
		c.State = strings.TrimSpace(*in.State)
	}
	if in.Postcode != nil {
		c.Postcode = strings.TrimSpace(*in.Postcode)
	}
	if in.Latitude != nil {
		c.Latitude = *in.Latitude
	}
	if in.Longitude != nil {
		c.Longitude = *in.Longitude
	}
	if in.TimeZone != nil {
		c.TimeZone = *in.TimeZone
	}
	if in.CollectionDay != nil {
		c.CollectionDay = strings.TrimSpace(*in.CollectionDay)
	}
	if in.PutBinsOutDay != nil {
		c.PutBinsOutDay = strings.TrimSpace(*in.PutBinsOutDay)
	}
	if in.RedBin != nil {
		c.RedBin = in.RedBin.Model()
	}
	if in.YellowBin != nil {
		c.YellowBin = in.YellowBin.Model()
	}
	if in.GreenBin != nil {
		c.GreenBin = in.GreenBin.Model()
	}
	if in.AssignedStaffID != nil {
		c.AssignedStaffID = in.AssignedStaffID
	}
	if in.SkipHolidays != nil {
		c.SkipHolidays = *in.SkipHolidays
	}
	if in.Active != nil {
		c.Active = *in.Active
	}
}
