package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/binbird1-hash/binbird-backend/internal/dtos"
	"github.com/binbird1-hash/binbird-backend/internal/models"
	"github.com/binbird1-hash/binbird-backend/internal/services"
	"github.com/binbird1-hash/binbird-backend/internal/utils"
)

var requestsValidate = validator.New()

type RequestsController struct {
	requestService *services.RequestService
}

func NewRequestsController(requestService *services.RequestService) *RequestsController {
	return &RequestsController{requestService: requestService}
}

// POST /api/v1/requests
func (c *RequestsController) SubmitRequestHandler(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := contextUserID(r)
	if !ok {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "No userID in context", nil)
		return
	}

	var req dtos.SubmitPropertyRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request", nil, err)
		return
	}
	if err := requestsValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	created, err := c.requestService.Submit(r.Context(), requesterID, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, created)
}

// GET /api/v1/requests
func (c *RequestsController) ListMyRequestsHandler(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := contextUserID(r)
	if !ok {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "No userID in context", nil)
		return
	}

	reqs, err := c.requestService.ListMine(r.Context(), requesterID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.PropertyRequestListResponse{Results: reqs, Total: len(reqs)})
}

// GET /api/v1/admin/requests?status=pending
func (c *RequestsController) AdminListRequestsHandler(w http.ResponseWriter, r *http.Request) {
	status := models.RequestStatusType(r.URL.Query().Get("status"))
	if status == "" {
		status = models.RequestStatusPending
	}
	switch status {
	case models.RequestStatusPending, models.RequestStatusApproved, models.RequestStatusRejected:
	default:
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid status filter", nil)
		return
	}

	reqs, err := c.requestService.ListByStatus(r.Context(), status)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.PropertyRequestListResponse{Results: reqs, Total: len(reqs)})
}

// POST /api/v1/admin/requests/{id}/approve
func (c *RequestsController) ApproveRequestHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	approverID, ok := contextUserID(r)
	if !ok {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "No userID in context", nil)
		return
	}

	client, err := c.requestService.Approve(r.Context(), id, approverID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, client)
}

// POST /api/v1/admin/requests/{id}/reject
func (c *RequestsController) RejectRequestHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	approverID, ok := contextUserID(r)
	if !ok {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "No userID in context", nil)
		return
	}

	if err := c.requestService.Reject(r.Context(), id, approverID); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Request rejected"})
}
