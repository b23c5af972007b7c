package services

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/binbird1-hash/binbird-backend/internal/config"
	"github.com/binbird1-hash/binbird-backend/internal/dtos"
	"github.com/binbird1-hash/binbird-backend/internal/models"
	"github.com/binbird1-hash/binbird-backend/internal/repositories"
	"github.com/binbird1-hash/binbird-backend/internal/utils"
)

// Stubs embed the repository interfaces so only the methods a test path
// touches need implementing.

type stubJobRepo struct {
	repositories.JobRepository
	job       *models.Job
	updateErr error
	updated   bool
}

func (r *stubJobRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	return r.job, nil
}

func (r *stubJobRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Job) error) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if err := mutate(r.job); err != nil {
		return err
	}
	r.updated = true
	return nil
}

type stubLogRepo struct {
	repositories.LogRepository
	created []*models.CollectionLog
	deleted []uuid.UUID
}

func (r *stubLogRepo) Create(ctx context.Context, l *models.CollectionLog) error {
	r.created = append(r.created, l)
	return nil
}

func (r *stubLogRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.deleted = append(r.deleted, id)
	return nil
}

type stubPrefRepo struct {
	repositories.PreferenceRepository
}

func (r *stubPrefRepo) GetByClientID(ctx context.Context, clientID uuid.UUID) (*models.ProofPhotoPreference, error) {
	return nil, nil
}

type fakePhotoStore struct {
	uploaded []string
	deleted  []string
}

func (f *fakePhotoStore) UploadPhoto(ctx context.Context, body io.Reader, objectKey string) (string, error) {
	f.uploaded = append(f.uploaded, objectKey)
	return objectKey, nil
}

func (f *fakePhotoStore) PresignPhoto(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	return "https://photos.example/" + objectKey, nil
}

func (f *fakePhotoStore) DeletePhoto(ctx context.Context, objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func completionFixture() (uuid.UUID, *models.Job, *dtos.CompleteJobRequest) {
	staffID := uuid.New()
	job := &models.Job{
		ID:              uuid.New(),
		ClientID:        uuid.New(),
		Address:         "14 Wattle Street",
		Latitude:        -33.8845,
		Longitude:       151.2116,
		JobType:         models.JobPutOut,
		AssignedStaffID: &staffID,
	}
	req := &dtos.CompleteJobRequest{
		JobID:     job.ID,
		Lat:       job.Latitude,
		Lng:       job.Longitude,
		Accuracy:  5,
		Timestamp: time.Now().UnixMilli(),
	}
	return staffID, job, req
}

func TestCompleteJobWritesLogAndCompletes(t *testing.T) {
	staffID, job, req := completionFixture()
	jobRepo := &stubJobRepo{job: job}
	logRepo := &stubLogRepo{}
	store := &fakePhotoStore{}

	svc := NewJobService(&config.Config{}, jobRepo, nil, nil, logRepo, &stubPrefRepo{}, store, nil, nil)

	updated, log, err := svc.CompleteJob(context.Background(), staffID, req, []byte("jpeg-bytes"))
	require.NoError(t, err)
	require.True(t, jobRepo.updated)
	require.NotNil(t, updated.CompletedAt)

	require.Len(t, logRepo.created, 1)
	require.Equal(t, []string{log.PhotoKey}, store.uploaded)
	require.Empty(t, logRepo.deleted)
	require.Empty(t, store.deleted)
}

func TestCompleteJobDiscardsArtifactsWhenUpdateLoses(t *testing.T) {
	staffID, job, req := completionFixture()
	jobRepo := &stubJobRepo{job: job, updateErr: utils.ErrNoRowsUpdated}
	logRepo := &stubLogRepo{}
	store := &fakePhotoStore{}

	svc := NewJobService(&config.Config{}, jobRepo, nil, nil, logRepo, &stubPrefRepo{}, store, nil, nil)

	_, _, err := svc.CompleteJob(context.Background(), staffID, req, []byte("jpeg-bytes"))
	require.Error(t, err)

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, http.StatusConflict, appErr.StatusCode)

	// The losing attempt must not leave a log row or stored photo behind.
	require.Len(t, logRepo.created, 1)
	require.Equal(t, []uuid.UUID{logRepo.created[0].ID}, logRepo.deleted)
	require.Len(t, store.uploaded, 1)
	require.Equal(t, store.uploaded, store.deleted)
}

func TestCompleteJobRejectsUnassignedStaff(t *testing.T) {
	_, job, req := completionFixture()
	jobRepo := &stubJobRepo{job: job}

	svc := NewJobService(&config.Config{}, jobRepo, nil, nil, &stubLogRepo{}, &stubPrefRepo{}, &fakePhotoStore{}, nil, nil)

	_, _, err := svc.CompleteJob(context.Background(), uuid.New(), req, []byte("jpeg-bytes"))

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, http.StatusForbidden, appErr.StatusCode)
}
