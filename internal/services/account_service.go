package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/binbird1-hash/binbird-backend/internal/config"
	"github.com/binbird1-hash/binbird-backend/internal/middleware"
	"github.com/binbird1-hash/binbird-backend/internal/models"
	"github.com/binbird1-hash/binbird-backend/internal/repositories"
	"github.com/binbird1-hash/binbird-backend/internal/utils"
)

const (
	resetCodeLength = 6
	resetCodeTTL    = 15 * time.Minute

	// Reset requests allowed per key (email or IP) per hour window.
	resetRateLimitMax    = 5
	resetRateLimitWindow = time.Hour
)

type AccountService struct {
	cfg         *config.Config
	profileRepo repositories.UserProfileRepository
	resetRepo   repositories.PasswordResetRepository
	rateRepo    repositories.RateLimitRepository
	notifier    *NotificationService
}

func NewAccountService(
	cfg *config.Config,
	profileRepo repositories.UserProfileRepository,
	resetRepo repositories.PasswordResetRepository,
	rateRepo repositories.RateLimitRepository,
	notifier *NotificationService,
) *AccountService {
	return &AccountService{
		cfg:         cfg,
		profileRepo: profileRepo,
		resetRepo:   resetRepo,
		rateRepo:    rateRepo,
		notifier:    notifier,
	}
}

// Login verifies the credentials and issues an RSA-signed access token
// bound to the caller's IP (web) or device ID (staff app).
func (s *AccountService) Login(
	ctx context.Context,
	email, password string,
	clientIdentifier utils.ClientIdentifier,
) (string, *models.UserProfile, error) {

	profile, err := s.profileRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Login failed", err)
	}
	if profile == nil || !utils.CheckPasswordHash(password, profile.PasswordHash) {
		return "", nil, utils.NewAppError(
			http.StatusUnauthorized, utils.ErrCodeInvalidCredentials, "Invalid email or password", utils.ErrInvalidCredentials,
		)
	}

	token, err := s.issueAccessToken(profile, clientIdentifier)
	if err != nil {
		return "", nil, utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Login failed", err)
	}
	return token, profile, nil
}

// Me returns the caller's own profile.
func (s *AccountService) Me(ctx context.Context, userID string) (*models.UserProfile, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.NewAppError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid subject", err)
	}
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to load profile", err)
	}
	if profile == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Profile not found", utils.ErrNotFound)
	}
	return profile, nil
}

// RequestPasswordReset emails a short-lived numeric code. Unknown
// addresses are answered identically so the endpoint cannot be used to
// enumerate accounts. Both the email and the requesting IP are rate
// limited.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email, requestIP string) error {
	windowStart := time.Now().Truncate(resetRateLimitWindow)

	for _, key := range []string{
		"email:" + strings.ToLower(strings.TrimSpace(email)),
		"ip:" + requestIP,
	} {
		count, err := s.rateRepo.Increment(ctx, key, windowStart)
		if err != nil {
			return utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Password reset failed", err)
		}
		if count > resetRateLimitMax {
			return utils.NewAppError(
				http.StatusTooManyRequests, utils.ErrCodeRateLimitExceeded,
				"Too many reset requests. Try again later.", utils.ErrRateLimitExceeded,
			)
		}
	}

	profile, err := s.profileRepo.GetByEmail(ctx, email)
	if err != nil {
		return utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Password reset failed", err)
	}
	if profile == nil {
		utils.Logger.Infof("Password reset requested for unknown email")
		return nil
	}

	// Any previous code for this user is superseded.
	if err := s.resetRepo.DeleteForUser(ctx, profile.ID); err != nil {
		return utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Password reset failed", err)
	}

	code := utils.RandomNumericString(resetCodeLength)
	record := &repositories.PasswordResetCode{
		CodeHash:  utils.HashToken(code),
		UserID:    profile.ID,
		ExpiresAt: time.Now().Add(resetCodeTTL),
	}
	if err := s.resetRepo.Create(ctx, record); err != nil {
		return utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Password reset failed", err)
	}

	subject := "Your BinBird password reset code"
	plain := fmt.Sprintf("Your password reset code is %s. It expires in %d minutes.", code, int(resetCodeTTL.Minutes()))
	html := fmt.Sprintf(codeEmailHTML,
		"Password reset",
		fmt.Sprintf("Use this code to reset your password. It expires in %d minutes.", int(resetCodeTTL.Minutes())),
		code,
		time.Now().Year(),
	)
	if err := s.notifier.SendEmail(profile.FullName, profile.Email, subject, plain, html); err != nil {
		return utils.NewAppError(
			http.StatusBadGateway, utils.ErrCodeExternalServiceFailure, "Failed to send reset email", err,
		)
	}
	return nil
}

// ConfirmPasswordReset consumes the emailed code and sets a new
// password. Codes are single-use; expired or mismatched codes fail.
func (s *AccountService) ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error {
	profile, err := s.profileRepo.GetByEmail(ctx, email)
	if err != nil {
		return utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Password reset failed", err)
	}

	record, err := s.resetRepo.Consume(ctx, utils.HashToken(code))
	if err != nil {
		return utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Password reset failed", err)
	}
	if record == nil || profile == nil || record.UserID != profile.ID || time.Now().After(record.ExpiresAt) {
		return utils.NewAppError(
			http.StatusUnauthorized, utils.ErrCodeInvalidCredentials, "Invalid or expired reset code", utils.ErrInvalidCredentials,
		)
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Password reset failed", err)
	}
	if err := s.profileRepo.SetPasswordHash(ctx, profile.ID, hash); err != nil {
		return utils.NewAppError(http.StatusInternalServerError, utils.ErrCodeInternal, "Password reset failed", err)
	}
	return nil
}

func (s *AccountService) issueAccessToken(profile *models.UserProfile, clientIdentifier utils.ClientIdentifier) (string, error) {
	claims := jwt.MapClaims{
		"iss":  middleware.TokenIssuer,
		"sub":  profile.ID.String(),
		"exp":  time.Now().Add(s.cfg.AccessTokenExpiry).Unix(),
		"iat":  time.Now().Unix(),
		"jti":  uuid.NewString(),
		"role": string(utils.NormalizeRole(profile.Role)),
	}
	switch clientIdentifier.Type {
	case utils.ClientIDTypeIP:
		claims["ip"] = clientIdentifier.Value
	case utils.ClientIDTypeDeviceID:
		claims["device_id"] = clientIdentifier.Value
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(s.cfg.RSAPrivateKey)
}
