package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/binbird1-hash/binbird-backend/internal/dtos"
	"github.com/binbird1-hash/binbird-backend/internal/models"
	"github.com/binbird1-hash/binbird-backend/internal/repositories"
	"github.com/binbird1-hash/binbird-backend/internal/schedule"
	"github.com/binbird1-hash/binbird-backend/internal/utils"
)

const (
	portalTokenLength = 48
	portalTokenTTL    = 30 * 24 * time.Hour

	portalPhotoURLTTL = 15 * time.Minute
)

// PortalService backs the passwordless client portal: admins issue
// opaque tokens, clients read their week's bins, proof logs, and photo
// preferences with them.
type PortalService struct {
	clientRepo  repositories.ClientRepository
	profileRepo repositories.UserProfileRepository
	tokenRepo   repositories.PortalTokenRepository
	logRepo     repositories.LogRepository
	prefRepo    repositories.PreferenceRepository
	photoStore  ProofPhotoStore
	notifier    *NotificationService
	appURL      string
}

func NewPortalService(
	clientRepo repositories.ClientRepository,
	profileRepo repositories.UserProfileRepository,
	tokenRepo repositories.PortalTokenRepository,
	logRepo repositories.LogRepository,
	prefRepo repositories.PreferenceRepository,
	photoStore ProofPhotoStore,
	notifier *NotificationService,
	appURL string,
) *PortalService {
	return &PortalService{
		clientRepo:  clientRepo,
		profileRepo: profileRepo,
		tokenRepo:   tokenRepo,
		logRepo:     logRepo,
		prefRepo:    prefRepo,
		photoStore:  photoStore,
		notifier:    notifier,
		appURL:      appURL,
	}
}

// IssueToken mints a portal token for a client and sends the invite.
// The raw token appears once in the response and the invite; only its
// hash is stored.
func (s *PortalService) IssueToken(ctx context.Context, in *dtos.IssuePortalTokenRequest) (string, time.Time, error) {
	client, err := s.clientRepo.GetByID(ctx, in.ClientID)
	if err != nil {
		return "", time.Time{}, utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to load client", err)
	}
	if client == nil {
		return "", time.Time{}, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found", utils.ErrNotFound)
	}

	if in.RevokeExisting {
		if err := s.tokenRepo.RevokeForClient(ctx, in.ClientID); err != nil {
			return "", time.Time{}, utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to revoke tokens", err)
		}
	}

	raw := utils.RandomString(portalTokenLength)
	expiresAt := time.Now().Add(portalTokenTTL)
	token := &models.PortalToken{
		TokenHash: utils.HashToken(raw),
		ClientID:  in.ClientID,
		ExpiresAt: expiresAt,
	}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return "", time.Time{}, utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to issue token", err)
	}

	s.sendInvite(ctx, client, raw, expiresAt)
	return raw, expiresAt, nil
}

// Summary is the portal landing view for the token's client.
func (s *PortalService) Summary(ctx context.Context, clientID uuid.UUID) (*dtos.PortalSummaryResponse, error) {
	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to load client", err)
	}
	if client == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found", utils.ErrNotFound)
	}

	now := time.Now()
	if loc, lErr := time.LoadLocation(client.TimeZone); lErr == nil {
		now = now.In(loc)
	}

	return &dtos.PortalSummaryResponse{
		ClientName:    client.Name,
		Address:       fmt.Sprintf("%s, %s %s %s", client.Address, client.Suburb, client.State, client.Postcode),
		CollectionDay: client.CollectionDay,
		PutBinsOutDay: client.PutBinsOutDay,
		BinsThisWeek:  schedule.BinsSummary(client, now),
	}, nil
}

// Logs returns the client's completed collections with short-lived
// photo links. A presign failure drops the link, not the entry.
func (s *PortalService) Logs(ctx context.Context, clientID uuid.UUID, limit int) (*dtos.PortalLogsResponse, error) {
	logs, err := s.logRepo.ListByClientID(ctx, clientID, limit)
	if err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to list logs", err)
	}

	out := &dtos.PortalLogsResponse{Results: make([]dtos.PortalLogEntry, 0, len(logs))}
	for _, l := range logs {
		entry := dtos.PortalLogEntry{
			LogID:       l.ID,
			CompletedAt: l.CompletedAt,
			Notes:       l.Notes,
		}
		if url, pErr := s.photoStore.PresignPhoto(ctx, l.PhotoKey, portalPhotoURLTTL); pErr == nil {
			entry.PhotoURL = url
		} else {
			utils.Logger.WithError(pErr).Warnf("Failed to presign portal photo for log %s", l.ID)
		}
		out.Results = append(out.Results, entry)
	}
	out.Total = len(out.Results)
	return out, nil
}

// GetPreference returns the client's proof-photo preference, defaulting
// to disabled when none has been set.
func (s *PortalService) GetPreference(ctx context.Context, clientID uuid.UUID) (*dtos.PhotoPreferenceResponse, error) {
	pref, err := s.prefRepo.GetByClientID(ctx, clientID)
	if err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to load preference", err)
	}
	if pref == nil {
		return &dtos.PhotoPreferenceResponse{
			ClientID: clientID,
			Enabled:  false,
			Delivery: string(models.ProofDeliveryPortal),
		}, nil
	}
	return &dtos.PhotoPreferenceResponse{
		ClientID: pref.ClientID,
		Enabled:  pref.Enabled,
		Delivery: string(pref.Delivery),
	}, nil
}

// SetPreference upserts the proof-photo preference. Last write wins.
func (s *PortalService) SetPreference(ctx context.Context, clientID uuid.UUID, in *dtos.UpdatePhotoPreferenceRequest) (*dtos.PhotoPreferenceResponse, error) {
	pref := &models.ProofPhotoPreference{
		ClientID: clientID,
		Enabled:  *in.Enabled,
		Delivery: models.ProofDeliveryChannel(in.Delivery),
	}
	if err := s.prefRepo.Upsert(ctx, pref); err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to save preference", err)
	}
	return &dtos.PhotoPreferenceResponse{
		ClientID: clientID,
		Enabled:  pref.Enabled,
		Delivery: string(pref.Delivery),
	}, nil
}

func (s *PortalService) sendInvite(ctx context.Context, client *models.Client, rawToken string, expiresAt time.Time) {
	account, err := s.profileRepo.GetByID(ctx, client.AccountID)
	if err != nil || account == nil {
		utils.Logger.WithError(err).Warnf("Failed to load account for portal invite, client %s", client.ID)
		return
	}

	link := fmt.Sprintf("%s/portal?token=%s", s.appURL, rawToken)
	subject := "Your BinBird client portal link"
	plain := fmt.Sprintf(
		"View your bin schedule and proof photos here: %s\nThe link expires on %s.",
		link, expiresAt.Format("2 Jan 2006"),
	)
	body := fmt.Sprintf(
		`<p>View your bin schedule and proof photos for <strong>%s</strong>.</p>
      <div class="button-container"><a href="%s" class="button">Open your portal</a></div>
      <p>The link expires on %s.</p>`,
		client.Address, link, expiresAt.Format("2 Jan 2006"),
	)
	html := fmt.Sprintf(noticeEmailHTML, subject, body, time.Now().Year())
	if err := s.notifier.SendEmail(account.FullName, account.Email, subject, plain, html); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to email portal invite for client %s", client.ID)
	}
	if err := s.notifier.SendSMS(account.Phone, "Your BinBird portal link: "+link); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to SMS portal invite for client %s", client.ID)
	}
}
