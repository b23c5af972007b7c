package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/binbird1-hash/binbird-backend/internal/config"
	"github.com/binbird1-hash/binbird-backend/internal/dtos"
	"github.com/binbird1-hash/binbird-backend/internal/middleware"
	"github.com/binbird1-hash/binbird-backend/internal/services"
	"github.com/binbird1-hash/binbird-backend/internal/utils"
)

var accountValidate = validator.New()

type AccountController struct {
	accountService *services.AccountService
	cfg            *config.Config
}

func NewAccountController(accountService *services.AccountService, cfg *config.Config) *AccountController {
	return &AccountController{accountService: accountService, cfg: cfg}
}

// POST /api/v1/auth/login
//
// Web portals get the token as an HttpOnly cookie; the staff app gets
// it in the body and sends it back as a Bearer header.
func (c *AccountController) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request", nil, err)
		return
	}
	if err := accountValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	platform := utils.GetClientPlatform(r)
	clientID := utils.GetClientIdentifier(r, platform)

	token, profile, err := c.accountService.Login(r.Context(), req.Email, req.Password, clientID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	resp := dtos.LoginResponse{
		User: profile,
		Role: string(utils.NormalizeRole(profile.Role)),
	}
	if utils.IsMobile(platform) {
		resp.AccessToken = token
	} else {
		middleware.SetAccessCookie(w, token, c.cfg.AccessTokenExpiry, c.cfg.LDFlag_CORSHighSecurity)
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// POST /api/v1/auth/logout
func (c *AccountController) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	platform := utils.GetClientPlatform(r)
	if !utils.IsMobile(platform) {
		middleware.ClearAccessCookie(w, c.cfg.LDFlag_CORSHighSecurity)
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Logged out"})
}

// GET /api/v1/me
func (c *AccountController) MeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserID).(string)
	if !ok {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "No userID in context", nil)
		return
	}

	profile, err := c.accountService.Me(r.Context(), userID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, profile)
}

// POST /api/v1/auth/password-reset/request
func (c *AccountController) PasswordResetRequestHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.PasswordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request", nil, err)
		return
	}
	if err := accountValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	clientID := utils.GetClientIdentifier(r, utils.PlatformWeb)
	if err := c.accountService.RequestPasswordReset(r.Context(), req.Email, clientID.Value); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	// Same body whether or not the account exists.
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{
		Message: "If that email is registered, a reset code has been sent.",
	})
}

// POST /api/v1/auth/password-reset/confirm
func (c *AccountController) PasswordResetConfirmHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.PasswordResetConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request", nil, err)
		return
	}
	if err := accountValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	if err := c.accountService.ConfirmPasswordReset(r.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Password updated"})
}
