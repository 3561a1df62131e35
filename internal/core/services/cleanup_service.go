package services

import (
	"context"
	"log"
	"time"

	"lifelink-registry/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CleanupService purges expired refresh tokens on a daily schedule
type CleanupService struct {
	refreshTokenRepo repositories.RefreshTokenRepository
	cron             *cron.Cron
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(refreshTokenRepo repositories.RefreshTokenRepository) *CleanupService {
	return &CleanupService{
		refreshTokenRepo: refreshTokenRepo,
		cron:             cron.New(),
	}
}

// Start schedules the daily purge (03:30)
func (s *CleanupService) Start() {
	s.cron.AddFunc("30 3 * * *", s.purgeExpiredTokens)
	s.cron.Start()
	log.Println("🚀 CleanupService started (daily token purge at 03:30)")
}

// Stop stops the scheduler
func (s *CleanupService) Stop() {
	s.cron.Stop()
	log.Println("🛑 CleanupService stopped")
}

func (s *CleanupService) purgeExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := s.refreshTokenRepo.DeleteExpired(ctx)
	if err != nil {
		log.Printf("⚠️ Token purge failed: %v", err)
		return
	}

	if deleted > 0 {
		log.Printf("✅ Purged %d expired refresh tokens", deleted)
	}
}
