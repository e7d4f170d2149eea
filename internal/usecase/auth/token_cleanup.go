package auth

import (
	"context"
	"time"

	"food-delivery-backend/internal/logger"

	"go.uber.org/zap"
)

// StartTokenCleanupJob removes used and expired password reset tokens until ctx is done.
func (s *Service) StartTokenCleanupJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("Token cleanup job started",
		zap.Duration("interval", interval),
	)

	s.cleanupStaleTokens(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Token cleanup job stopped")
			return
		case <-ticker.C:
			s.cleanupStaleTokens(ctx)
		}
	}
}

func (s *Service) cleanupStaleTokens(ctx context.Context) {
	deleted, err := s.userRepo.DeleteStaleResetTokens(ctx, s.now())
	if err != nil {
		logger.Error("Failed to delete stale reset tokens", zap.Error(err))
		return
	}

	logger.Debug("Stale reset tokens cleaned up",
		zap.Int64("deleted", deleted),
	)
}
