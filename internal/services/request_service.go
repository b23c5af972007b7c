package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/binbird1-hash/binbird-backend/internal/dtos"
	"github.com/binbird1-hash/binbird-backend/internal/models"
	"github.com/binbird1-hash/binbird-backend/internal/repositories"
	"github.com/binbird1-hash/binbird-backend/internal/utils"
)

// Default bin schedule for properties created from an approved request.
// Matches the common NSW council pattern: general waste weekly,
// recycling and garden organics on alternating fortnights.
var defaultRequestBins = struct {
	Red, Yellow, Green dtos.BinConfigDTO
}{
	Red:    dtos.BinConfigDTO{Frequency: string(models.FreqWeekly)},
	Yellow: dtos.BinConfigDTO{Frequency: string(models.FreqFortnightly)},
	Green:  dtos.BinConfigDTO{Frequency: string(models.FreqFortnightly), Flip: true},
}

// RequestService handles the client-submitted "service my address"
// queue. Approval materializes a Client row owned by the requester.
type RequestService struct {
	requestRepo   repositories.PropertyRequestRepository
	profileRepo   repositories.UserProfileRepository
	clientService *ClientService
	notifier      *NotificationService
}

func NewRequestService(
	requestRepo repositories.PropertyRequestRepository,
	profileRepo repositories.UserProfileRepository,
	clientService *ClientService,
	notifier *NotificationService,
) *RequestService {
	return &RequestService{
		requestRepo:   requestRepo,
		profileRepo:   profileRepo,
		clientService: clientService,
		notifier:      notifier,
	}
}

func (s *RequestService) Submit(ctx context.Context, requesterID uuid.UUID, in *dtos.SubmitPropertyRequestRequest) (*models.PropertyRequest, error) {
	req := &models.PropertyRequest{
		ID:          uuid.New(),
		RequesterID: requesterID,

		Address:  in.Address,
		Suburb:   in.Suburb,
		State:    in.State,
		Postcode: in.Postcode,

		CollectionDay: in.CollectionDay,
		Notes:         in.Notes,
		Status:        models.RequestStatusPending,
	}
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to submit request", err)
	}
	return req, nil
}

func (s *RequestService) ListByStatus(ctx context.Context, status models.RequestStatusType) ([]*models.PropertyRequest, error) {
	reqs, err := s.requestRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to list requests", err)
	}
	return reqs, nil
}

func (s *RequestService) ListMine(ctx context.Context, requesterID uuid.UUID) ([]*models.PropertyRequest, error) {
	reqs, err := s.requestRepo.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to list requests", err)
	}
	return reqs, nil
}

// Approve flips a pending request and creates the serviced property.
// The decided-state guard in the repository makes double approvals a
// 409 instead of a duplicate client.
func (s *RequestService) Approve(ctx context.Context, id, approverID uuid.UUID) (*models.Client, error) {
	req, err := s.loadPending(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.requestRepo.MarkDecided(ctx, id, models.RequestStatusApproved, approverID, time.Now()); err != nil {
		return nil, s.decideError(err)
	}

	requester, err := s.profileRepo.GetByID(ctx, req.RequesterID)
	if err != nil || requester == nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to load requester", err)
	}

	client, err := s.clientService.Create(ctx, &dtos.CreateClientRequest{
		AccountID: req.RequesterID,
		Name:      requester.FullName,
		Address:   req.Address,
		Suburb:    req.Suburb,
		State:     req.State,
		Postcode:  req.Postcode,

		CollectionDay: req.CollectionDay,

		RedBin:    defaultRequestBins.Red,
		YellowBin: defaultRequestBins.Yellow,
		GreenBin:  defaultRequestBins.Green,
	})
	if err != nil {
		return nil, err
	}

	s.notifyDecision(requester, req, true)
	return client, nil
}

func (s *RequestService) Reject(ctx context.Context, id, approverID uuid.UUID) error {
	req, err := s.loadPending(ctx, id)
	if err != nil {
		return err
	}

	if err := s.requestRepo.MarkDecided(ctx, id, models.RequestStatusRejected, approverID, time.Now()); err != nil {
		return s.decideError(err)
	}

	if requester, pErr := s.profileRepo.GetByID(ctx, req.RequesterID); pErr == nil && requester != nil {
		s.notifyDecision(requester, req, false)
	}
	return nil
}

func (s *RequestService) loadPending(ctx context.Context, id uuid.UUID) (*models.PropertyRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to load request", err)
	}
	if req == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Request not found", utils.ErrNotFound)
	}
	return req, nil
}

func (s *RequestService) decideError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return utils.NewAppError(http.StatusConflict, utils.ErrCodeConflict, "Request was already decided", err)
	}
	return utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to decide request", err)
}

// notifyDecision tells the requester by email and SMS. Best effort.
func (s *RequestService) notifyDecision(requester *models.UserProfile, req *models.PropertyRequest, approved bool) {
	address := fmt.Sprintf("%s, %s %s %s", req.Address, req.Suburb, req.State, req.Postcode)

	var subject, line string
	if approved {
		subject = "Your BinBird service request was approved"
		line = fmt.Sprintf("Good news! We'll be looking after the bins at %s from now on.", address)
	} else {
		subject = "Update on your BinBird service request"
		line = fmt.Sprintf("Unfortunately we can't service %s right now. Reply to this email if you'd like to talk it through.", address)
	}

	html := fmt.Sprintf(noticeEmailHTML, subject, "<p>"+line+"</p>", time.Now().Year())
	if err := s.notifier.SendEmail(requester.FullName, requester.Email, subject, line, html); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to email request decision to %s", requester.ID)
	}
	if err := s.notifier.SendSMS(requester.Phone, subject+": "+line); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to SMS request decision to %s", requester.ID)
	}
}
