package services

import (
	"context"
	"time"

	"github.com/binbird1-hash/binbird-backend/internal/repositories"
	"github.com/binbird1-hash/binbird-backend/internal/utils"
)

// CleanupService purges short-lived credential rows so the tables stay
// bounded: expired portal tokens, expired reset codes, and stale
// rate-limit windows.
type CleanupService struct {
	tokenRepo repositories.PortalTokenRepository
	resetRepo repositories.PasswordResetRepository
	rateRepo  repositories.RateLimitRepository
}

func NewCleanupService(
	tokenRepo repositories.PortalTokenRepository,
	resetRepo repositories.PasswordResetRepository,
	rateRepo repositories.RateLimitRepository,
) *CleanupService {
	return &CleanupService{tokenRepo: tokenRepo, resetRepo: resetRepo, rateRepo: rateRepo}
}

func (s *CleanupService) PurgeExpiredCredentials(ctx context.Context) error {
	now := time.Now()

	tokens, err := s.tokenRepo.DeleteExpired(ctx, now)
	if err != nil {
		return err
	}
	codes, err := s.resetRepo.DeleteExpired(ctx, now)
	if err != nil {
		return err
	}
	if tokens > 0 || codes > 0 {
		utils.Logger.Infof("Purged %d expired portal tokens, %d expired reset codes", tokens, codes)
	}
	return nil
}

func (s *CleanupService) PurgeStaleRateLimits(ctx context.Context) error {
	// Anything older than two windows can never influence a decision.
	cutoff := time.Now().Add(-2 * time.Hour)
	n, err := s.rateRepo.DeleteBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if n > 0 {
		utils.Logger.Debugf("Purged %d stale rate-limit rows", n)
	}
	return nil
}
