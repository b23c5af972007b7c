package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/binbird1-hash/binbird-backend/internal/dtos"
	"github.com/binbird1-hash/binbird-backend/internal/services"
	"github.com/binbird1-hash/binbird-backend/internal/utils"
)

var clientsValidate = validator.New()

type ClientsController struct {
	clientService *services.ClientService
	portalService *services.PortalService
}

func NewClientsController(
	clientService *services.ClientService,
	portalService *services.PortalService,
) *ClientsController {
	return &ClientsController{clientService: clientService, portalService: portalService}
}

// POST /api/v1/admin/clients
func (c *ClientsController) CreateClientHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request", nil, err)
		return
	}
	if err := clientsValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	client, err := c.clientService.Create(r.Context(), &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, client)
}

// GET /api/v1/admin/clients
func (c *ClientsController) ListClientsHandler(w http.ResponseWriter, r *http.Request) {
	clients, err := c.clientService.ListAll(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ClientListResponse{Results: clients, Total: len(clients)})
}

// GET /api/v1/my/clients
//
// The signed-in client account's own serviced properties.
func (c *ClientsController) ListMyClientsHandler(w http.ResponseWriter, r *http.Request) {
	accountID, ok := contextUserID(r)
	if !ok {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "No userID in context", nil)
		return
	}

	clients, err := c.clientService.ListForAccount(r.Context(), accountID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ClientListResponse{Results: clients, Total: len(clients)})
}

// GET /api/v1/admin/clients/{id}
func (c *ClientsController) GetClientHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	client, err := c.clientService.Get(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, client)
}

// PATCH /api/v1/admin/clients/{id}
func (c *ClientsController) UpdateClientHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request", nil, err)
		return
	}
	if req.RedBin != nil {
		if err := clientsValidate.Struct(req.RedBin); err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
			return
		}
	}
	if req.YellowBin != nil {
		if err := clientsValidate.Struct(req.YellowBin); err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
			return
		}
	}
	if req.GreenBin != nil {
		if err := clientsValidate.Struct(req.GreenBin); err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
			return
		}
	}

	client, err := c.clientService.Update(r.Context(), id, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, client)
}

// DELETE /api/v1/admin/clients/{id}
func (c *ClientsController) DeleteClientHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := c.clientService.Delete(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Client deleted"})
}

// POST /api/v1/admin/portal-tokens
func (c *ClientsController) IssuePortalTokenHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.IssuePortalTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request", nil, err)
		return
	}
	if err := clientsValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	token, expiresAt, err := c.portalService.IssueToken(r.Context(), &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.IssuePortalTokenResponse{Token: token, ExpiresAt: expiresAt})
}

// PUT /api/v1/admin/clients/{id}/photo-preferences
func (c *ClientsController) SetPhotoPreferenceHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.UpdatePhotoPreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request", nil, err)
		return
	}
	if err := clientsValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	// Preference rows reference the client, so surface a clean 404 first.
	if _, err := c.clientService.Get(r.Context(), id); err != nil {
		utils.HandleAppError(w, err)
		return
	}

	pref, err := c.portalService.SetPreference(r.Context(), id, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, pref)
}

// pathID parses the {id} route variable, writing the error response
// itself so handlers can early-return.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid id", nil, err)
		return uuid.Nil, false
	}
	return id, true
}
