package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/binbird1-hash/binbird-backend/internal/dtos"
	"github.com/binbird1-hash/binbird-backend/internal/middleware"
	"github.com/binbird1-hash/binbird-backend/internal/services"
	"github.com/binbird1-hash/binbird-backend/internal/utils"
)

var portalValidate = validator.New()

const portalLogListLimit = 20

// PortalController serves the passwordless client portal. Every handler
// is scoped to the client resolved from the portal token by the
// middleware; no client id is ever taken from the request.
type PortalController struct {
	portalService *services.PortalService
}

func NewPortalController(portalService *services.PortalService) *PortalController {
	return &PortalController{portalService: portalService}
}

// GET /api/v1/portal/summary
func (c *PortalController) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	clientID, ok := portalClientID(r)
	if !ok {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeInvalidPortalToken, "No client in context", nil)
		return
	}

	summary, err := c.portalService.Summary(r.Context(), clientID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, summary)
}

// GET /api/v1/portal/logs?limit=...
func (c *PortalController) LogsHandler(w http.ResponseWriter, r *http.Request) {
	clientID, ok := portalClientID(r)
	if !ok {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeInvalidPortalToken, "No client in context", nil)
		return
	}

	limit := portalLogListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n < portalLogListLimit {
			limit = n
		}
	}

	logs, err := c.portalService.Logs(r.Context(), clientID, limit)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, logs)
}

// GET /api/v1/portal/photo-preferences
func (c *PortalController) GetPhotoPreferenceHandler(w http.ResponseWriter, r *http.Request) {
	clientID, ok := portalClientID(r)
	if !ok {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeInvalidPortalToken, "No client in context", nil)
		return
	}

	pref, err := c.portalService.GetPreference(r.Context(), clientID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, pref)
}

// PUT /api/v1/portal/photo-preferences
func (c *PortalController) SetPhotoPreferenceHandler(w http.ResponseWriter, r *http.Request) {
	clientID, ok := portalClientID(r)
	if !ok {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeInvalidPortalToken, "No client in context", nil)
		return
	}

	var req dtos.UpdatePhotoPreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request", nil, err)
		return
	}
	if err := portalValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	pref, err := c.portalService.SetPreference(r.Context(), clientID, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, pref)
}

func portalClientID(r *http.Request) (uuid.UUID, bool) {
	id, ok := r.Context().Value(middleware.ContextKeyPortalClientID).(uuid.UUID)
	return id, ok
}
