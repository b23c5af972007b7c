package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/binbird1-hash/binbird-backend/internal/config"
	"github.com/binbird1-hash/binbird-backend/internal/dtos"
	"github.com/binbird1-hash/binbird-backend/internal/models"
	"github.com/binbird1-hash/binbird-backend/internal/repositories"
	"github.com/binbird1-hash/binbird-backend/internal/utils"
)

// proofPhotoURLTTL bounds how long an emailed proof link stays live.
const proofPhotoURLTTL = 72 * time.Hour

// ProofPhotoStore is the slice of storage.PhotoStore the services need.
type ProofPhotoStore interface {
	UploadPhoto(ctx context.Context, body io.Reader, objectKey string) (string, error)
	PresignPhoto(ctx context.Context, objectKey string, expires time.Duration) (string, error)
	DeletePhoto(ctx context.Context, objectKey string) error
}

type JobService struct {
	cfg         *config.Config
	jobRepo     repositories.JobRepository
	clientRepo  repositories.ClientRepository
	profileRepo repositories.UserProfileRepository
	logRepo     repositories.LogRepository
	prefRepo    repositories.PreferenceRepository
	photoStore  ProofPhotoStore
	openaiSvc   *OpenAIService
	notifier    *NotificationService
}

func NewJobService(
	cfg *config.Config,
	jobRepo repositories.JobRepository,
	clientRepo repositories.ClientRepository,
	profileRepo repositories.UserProfileRepository,
	logRepo repositories.LogRepository,
	prefRepo repositories.PreferenceRepository,
	photoStore ProofPhotoStore,
	openaiSvc *OpenAIService,
	notifier *NotificationService,
) *JobService {
	return &JobService{
		cfg:         cfg,
		jobRepo:     jobRepo,
		clientRepo:  clientRepo,
		profileRepo: profileRepo,
		logRepo:     logRepo,
		prefRepo:    prefRepo,
		photoStore:  photoStore,
		openaiSvc:   openaiSvc,
		notifier:    notifier,
	}
}

// ListMyJobs returns the staff member's run sheet for the date range,
// defaulting to today.
func (s *JobService) ListMyJobs(ctx context.Context, staffID uuid.UUID, from, to time.Time) ([]*models.Job, error) {
	if from.IsZero() {
		from = time.Now()
	}
	if to.IsZero() {
		to = from
	}
	jobs, err := s.jobRepo.ListForStaff(ctx, staffID, from, to)
	if err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to list your jobs", err)
	}
	return jobs, nil
}

// ListForDate is the admin view of a day's run sheet.
func (s *JobService) ListForDate(ctx context.Context, date time.Time) ([]*models.Job, error) {
	jobs, err := s.jobRepo.ListForDate(ctx, date)
	if err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to list jobs", err)
	}
	return jobs, nil
}

// CompleteJob closes out a job with a GPS-verified proof photo:
// validate the fix, check the staff member is at the property, upload
// the photo, optionally run the AI photo check, write the log row, and
// flip completed_at under the optimistic-lock loop.
func (s *JobService) CompleteJob(
	ctx context.Context,
	staffID uuid.UUID,
	in *dtos.CompleteJobRequest,
	photo []byte,
) (*models.Job, *models.CollectionLog, error) {

	job, err := s.jobRepo.GetByID(ctx, in.JobID)
	if err != nil {
		return nil, nil, utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to load job", err)
	}
	if job == nil {
		return nil, nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Job not found", utils.ErrNotFound)
	}
	if job.AssignedStaffID == nil || *job.AssignedStaffID != staffID {
		return nil, nil, utils.NewAppError(http.StatusForbidden, utils.ErrCodeUnauthorized, "Job is not assigned to you", nil)
	}
	if job.Completed() {
		return nil, nil, utils.NewAppError(http.StatusConflict, utils.ErrCodeConflict, "Job is already completed", nil)
	}
	if len(photo) == 0 {
		return nil, nil, utils.NewAppError(http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Proof photo is required", nil)
	}

	if code, msg := utils.ValidateLocationData(in.Lat, in.Lng, in.Accuracy, in.Timestamp, in.IsMock); code != "" {
		return nil, nil, utils.NewAppError(http.StatusBadRequest, code, msg, nil)
	}
	if !utils.WithinCompletionRadius(in.Lat, in.Lng, job.Latitude, job.Longitude) {
		return nil, nil, utils.NewAppError(
			http.StatusBadRequest, utils.ErrCodeLocationTooFar,
			fmt.Sprintf("You must be within %.0fm of the property to complete this job", utils.CompletionRadiusMeters),
			nil,
		)
	}

	if s.cfg.LDFlag_OpenAIPhotoVerification {
		result, aiErr := s.openaiSvc.VerifyBinPhoto(ctx, photo, streetNumber(job.Address))
		if aiErr != nil {
			// The AI check is advisory; an outage must not block the run.
			utils.Logger.WithError(aiErr).Warn("Bin photo verification unavailable, accepting photo")
		} else if !result.BinVisible {
			return nil, nil, utils.NewAppError(
				http.StatusBadRequest, utils.ErrCodePhotoRejected,
				"No bin visible in the photo. Please retake it showing the bins.", nil,
			)
		}
	}

	photoKey := fmt.Sprintf("proof/%s/%s.jpg", job.ID, uuid.NewString())
	if _, err := s.photoStore.UploadPhoto(ctx, bytes.NewReader(photo), photoKey); err != nil {
		return nil, nil, utils.NewAppError(
			http.StatusBadGateway, utils.ErrCodeExternalServiceFailure, "Failed to store proof photo", err,
		)
	}

	completedAt := time.Now()
	log := &models.CollectionLog{
		ID:          uuid.New(),
		JobID:       job.ID,
		PhotoKey:    photoKey,
		Latitude:    in.Lat,
		Longitude:   in.Lng,
		AccuracyM:   in.Accuracy,
		Notes:       in.Notes,
		CompletedAt: completedAt,
	}
	if err := s.logRepo.Create(ctx, log); err != nil {
		return nil, nil, utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to record completion", err)
	}

	err = s.jobRepo.UpdateWithRetry(ctx, job.ID, func(j *models.Job) error {
		if j.Completed() {
			return utils.ErrNoRowsUpdated
		}
		j.CompletedAt = &completedAt
		return nil
	})
	if err != nil {
		// The completion lost; this attempt's log row and photo would
		// otherwise be orphaned.
		s.discardCompletionArtifacts(ctx, log)
		if errors.Is(err, utils.ErrNoRowsUpdated) {
			return nil, nil, utils.NewAppError(http.StatusConflict, utils.ErrCodeConflict, "Job is already completed", err)
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Job not found", err)
		}
		return nil, nil, utils.NewAppError(
			http.StatusConflict, utils.ErrCodeRowVersionConflict, "Job was modified concurrently, try again", err,
		)
	}

	s.deliverProofPhoto(ctx, job, log)

	updated, err := s.jobRepo.GetByID(ctx, job.ID)
	if err != nil || updated == nil {
		updated = job
		updated.CompletedAt = &completedAt
	}
	return updated, log, nil
}

// PresignLogPhoto returns a short-lived URL for a stored proof photo.
func (s *JobService) PresignLogPhoto(ctx context.Context, logID uuid.UUID, ttl time.Duration) (string, time.Time, error) {
	log, err := s.logRepo.GetByID(ctx, logID)
	if err != nil {
		return "", time.Time{}, utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to load log", err)
	}
	if log == nil {
		return "", time.Time{}, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Log not found", utils.ErrNotFound)
	}

	url, err := s.photoStore.PresignPhoto(ctx, log.PhotoKey, ttl)
	if err != nil {
		return "", time.Time{}, utils.NewAppError(
			http.StatusBadGateway, utils.ErrCodeExternalServiceFailure, "Failed to presign photo", err,
		)
	}
	return url, time.Now().Add(ttl), nil
}

// DeleteLog removes a collection log and its stored photo.
func (s *JobService) DeleteLog(ctx context.Context, logID uuid.UUID) error {
	log, err := s.logRepo.GetByID(ctx, logID)
	if err != nil {
		return utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to load log", err)
	}
	if log == nil {
		return utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Log not found", utils.ErrNotFound)
	}

	if err := s.logRepo.Delete(ctx, logID); err != nil {
		return utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to delete log", err)
	}
	if err := s.photoStore.DeletePhoto(ctx, log.PhotoKey); err != nil {
		// The row is gone; an orphaned object is only a storage leak.
		utils.Logger.WithError(err).Warnf("Failed to delete photo object %s", log.PhotoKey)
	}
	return nil
}

// ListLogsForClient is the admin log browser, scoped to one property.
func (s *JobService) ListLogsForClient(ctx context.Context, clientID uuid.UUID, limit int) ([]*models.CollectionLog, error) {
	logs, err := s.logRepo.ListByClientID(ctx, clientID, limit)
	if err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to list logs", err)
	}
	return logs, nil
}

// discardCompletionArtifacts removes the log row and stored photo from
// a completion attempt that lost the update race. The winning attempt's
// log is untouched.
func (s *JobService) discardCompletionArtifacts(ctx context.Context, log *models.CollectionLog) {
	if err := s.logRepo.Delete(ctx, log.ID); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to remove superseded log %s", log.ID)
	}
	if err := s.photoStore.DeletePhoto(ctx, log.PhotoKey); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to remove superseded photo %s", log.PhotoKey)
	}
}

// deliverProofPhoto emails the presigned proof photo when the client
// has opted in. Best effort: a delivery failure never unwinds the
// completed job.
func (s *JobService) deliverProofPhoto(ctx context.Context, job *models.Job, log *models.CollectionLog) {
	pref, err := s.prefRepo.GetByClientID(ctx, job.ClientID)
	if err != nil {
		utils.Logger.WithError(err).Warn("Failed to load photo preference, skipping proof delivery")
		return
	}
	if pref == nil || !pref.Enabled || pref.Delivery != models.ProofDeliveryEmail {
		return
	}

	client, err := s.clientRepo.GetByID(ctx, job.ClientID)
	if err != nil || client == nil {
		utils.Logger.WithError(err).Warn("Failed to load client for proof delivery")
		return
	}
	account, err := s.profileRepo.GetByID(ctx, client.AccountID)
	if err != nil || account == nil {
		utils.Logger.WithError(err).Warn("Failed to load account for proof delivery")
		return
	}

	url, err := s.photoStore.PresignPhoto(ctx, log.PhotoKey, proofPhotoURLTTL)
	if err != nil {
		utils.Logger.WithError(err).Warn("Failed to presign proof photo for delivery")
		return
	}

	subject := fmt.Sprintf("Bins done at %s", client.Address)
	plain := fmt.Sprintf(
		"Your bins at %s were taken care of at %s.\n\nProof photo: %s",
		client.Address, log.CompletedAt.Format("3:04 PM, Mon 2 Jan"), url,
	)
	body := fmt.Sprintf(
		`<p>Your bins at <strong>%s</strong> were taken care of at %s.</p>
      <div class="button-container"><a href="%s" class="button">View proof photo</a></div>`,
		client.Address, log.CompletedAt.Format("3:04 PM, Mon 2 Jan"), url,
	)
	html := fmt.Sprintf(noticeEmailHTML, subject, body, time.Now().Year())
	if err := s.notifier.SendEmail(account.FullName, account.Email, subject, plain, html); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to deliver proof photo for job %s", job.ID)
	}
}

// streetNumber extracts the leading house number from an address line
// for the AI photo check.
func streetNumber(address string) string {
	fields := strings.Fields(address)
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimSuffix(fields[0], ",")
}
