package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/binbird1-hash/binbird-backend/internal/dtos"
	"github.com/binbird1-hash/binbird-backend/internal/services"
	"github.com/binbird1-hash/binbird-backend/internal/utils"
)

const (
	defaultLogListLimit = 50
	maxLogListLimit     = 500

	adminPhotoURLTTL = 15 * time.Minute
)

type LogsController struct {
	jobService *services.JobService
}

func NewLogsController(jobService *services.JobService) *LogsController {
	return &LogsController{jobService: jobService}
}

// GET /api/v1/admin/logs?client_id=...&limit=...
func (c *LogsController) ListLogsHandler(w http.ResponseWriter, r *http.Request) {
	clientID, err := uuid.Parse(r.URL.Query().Get("client_id"))
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "A valid client_id is required", nil, err)
		return
	}

	limit := defaultLogListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, pErr := strconv.Atoi(raw)
		if pErr != nil || n < 1 {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid limit", nil, pErr)
			return
		}
		if n > maxLogListLimit {
			n = maxLogListLimit
		}
		limit = n
	}

	logs, err := c.jobService.ListLogsForClient(r.Context(), clientID, limit)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.LogListResponse{Results: logs, Total: len(logs)})
}

// GET /api/v1/admin/logs/{id}/photo
func (c *LogsController) GetLogPhotoHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	url, expiresAt, err := c.jobService.PresignLogPhoto(r.Context(), id, adminPhotoURLTTL)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.PhotoURLResponse{URL: url, ExpiresAt: expiresAt})
}

// DELETE /api/v1/admin/logs/{id}
func (c *LogsController) DeleteLogHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := c.jobService.DeleteLog(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Log deleted"})
}
