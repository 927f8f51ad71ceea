package services

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"foodlink-admin/internal/adapters/persistence/repositories"
)

// CleanupService purges expired and revoked session rows on a schedule so the
// durable store does not accumulate dead credentials.
type CleanupService struct {
	repo repositories.SessionRepository
	cron *cron.Cron
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(repo repositories.SessionRepository) *CleanupService {
	return &CleanupService{
		repo: repo,
		cron: cron.New(),
	}
}

// Start schedules the hourly session sweep
func (s *CleanupService) Start() {
	if _, err := s.cron.AddFunc("@hourly", s.sweep); err != nil {
		log.Printf("❌ Failed to schedule session sweep: %v", err)
		return
	}
	s.cron.Start()
	log.Println("🚀 Session cleanup service started (hourly sweep)")
}

// Stop stops the scheduler, waiting for a running sweep to finish
func (s *CleanupService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Session cleanup service stopped")
}

func (s *CleanupService) sweep() {
	purged, err := s.repo.DeleteExpired(context.Background())
	if err != nil {
		log.Printf("❌ Session sweep error: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("🧹 Session sweep: purged %d expired sessions", purged)
	}
}
