package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/binbird1-hash/binbird-backend/internal/dtos"
	"github.com/binbird1-hash/binbird-backend/internal/middleware"
	"github.com/binbird1-hash/binbird-backend/internal/services"
	"github.com/binbird1-hash/binbird-backend/internal/utils"
)

var jobsValidate = validator.New()

// Proof photos are phone camera JPEGs, well under this.
const maxPhotoUploadBytes = 15 << 20

type JobsController struct {
	jobService        *services.JobService
	generationService *services.JobGenerationService
}

func NewJobsController(
	jobService *services.JobService,
	generationService *services.JobGenerationService,
) *JobsController {
	return &JobsController{jobService: jobService, generationService: generationService}
}

// GET /api/v1/jobs/my?from=2006-01-02&to=2006-01-02
func (c *JobsController) ListMyJobsHandler(w http.ResponseWriter, r *http.Request) {
	staffID, ok := contextUserID(r)
	if !ok {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "No userID in context", nil)
		return
	}

	from, err := parseDateParam(r, "from")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid 'from' date, expected YYYY-MM-DD", nil, err)
		return
	}
	to, err := parseDateParam(r, "to")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid 'to' date, expected YYYY-MM-DD", nil, err)
		return
	}

	jobs, err := c.jobService.ListMyJobs(r.Context(), staffID, from, to)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ListJobsResponse{Results: jobs, Total: len(jobs)})
}

// POST /api/v1/jobs/complete
//
// Multipart form: metadata fields plus the proof photo as the "photo"
// file part.
func (c *JobsController) CompleteJobHandler(w http.ResponseWriter, r *http.Request) {
	staffID, ok := contextUserID(r)
	if !ok {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "No userID in context", nil)
		return
	}

	if err := r.ParseMultipartForm(maxPhotoUploadBytes); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid multipart form", nil, err)
		return
	}

	req, err := completeRequestFromForm(r)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
		return
	}
	if err := jobsValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	photo, err := readPhotoPart(r)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Proof photo is required", nil, err)
		return
	}

	job, log, err := c.jobService.CompleteJob(r.Context(), staffID, req, photo)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.CompleteJobResponse{Job: job, Log: log})
}

// GET /api/v1/admin/jobs?date=2006-01-02
func (c *JobsController) AdminListJobsHandler(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateParam(r, "date")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid 'date', expected YYYY-MM-DD", nil, err)
		return
	}
	if date.IsZero() {
		date = time.Now()
	}

	jobs, err := c.jobService.ListForDate(r.Context(), date)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ListJobsResponse{Results: jobs, Total: len(jobs)})
}

// POST /api/v1/admin/jobs/generate
func (c *JobsController) GenerateJobsHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.GenerateJobsRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request", nil, err)
			return
		}
		if err := jobsValidate.Struct(req); err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
			return
		}
	}

	if req.Date == "" {
		if err := c.generationService.RunDailyGeneration(r.Context()); err != nil {
			utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Job generation failed", nil, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, dtos.GenerateJobsResponse{})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid 'date', expected YYYY-MM-DD", nil, err)
		return
	}
	deleted, created, err := c.generationService.GenerateForDate(r.Context(), date)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Job generation failed", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.GenerateJobsResponse{
		Date:    req.Date,
		Deleted: deleted,
		Created: created,
	})
}

func completeRequestFromForm(r *http.Request) (*dtos.CompleteJobRequest, error) {
	jobID, err := uuid.Parse(r.FormValue("job_id"))
	if err != nil {
		return nil, errInvalidField("job_id", err)
	}
	lat, err := strconv.ParseFloat(r.FormValue("lat"), 64)
	if err != nil {
		return nil, errInvalidField("lat", err)
	}
	lng, err := strconv.ParseFloat(r.FormValue("lng"), 64)
	if err != nil {
		return nil, errInvalidField("lng", err)
	}
	accuracy, err := strconv.ParseFloat(r.FormValue("accuracy"), 64)
	if err != nil {
		return nil, errInvalidField("accuracy", err)
	}
	timestamp, err := strconv.ParseInt(r.FormValue("timestamp"), 10, 64)
	if err != nil {
		return nil, errInvalidField("timestamp", err)
	}
	isMock, _ := strconv.ParseBool(r.FormValue("is_mock"))

	return &dtos.CompleteJobRequest{
		JobID:     jobID,
		Lat:       lat,
		Lng:       lng,
		Accuracy:  accuracy,
		Timestamp: timestamp,
		IsMock:    isMock,
		Notes:     r.FormValue("notes"),
	}, nil
}

func errInvalidField(name string, err error) error {
	return fmt.Errorf("invalid %q field: %w", name, err)
}

func readPhotoPart(r *http.Request) ([]byte, error) {
	file, _, err := r.FormFile("photo")
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(io.LimitReader(file, maxPhotoUploadBytes))
}

// parseDateParam returns the zero time when the query param is absent.
func parseDateParam(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", raw)
}

func contextUserID(r *http.Request) (uuid.UUID, bool) {
	raw, ok := r.Context().Value(middleware.ContextKeyUserID).(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
