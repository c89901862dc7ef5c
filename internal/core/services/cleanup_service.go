package services

import (
	"context"
	"log"

	"staffhub/internal/adapters/persistence/repositories"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// CleanupService drops employee partitions whose owning admin no longer
// exists. The reset flow deletes all admin rows but cannot drop their
// partitions in the same statement, so orphans are swept periodically.
type CleanupService struct {
	adminRepo    repositories.AdminRepository
	employeeRepo repositories.EmployeeRepository
	cron         *cron.Cron
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(
	adminRepo repositories.AdminRepository,
	employeeRepo repositories.EmployeeRepository,
) *CleanupService {
	return &CleanupService{
		adminRepo:    adminRepo,
		employeeRepo: employeeRepo,
		cron:         cron.New(),
	}
}

// Start schedules the hourly sweep
func (s *CleanupService) Start() {
	if _, err := s.cron.AddFunc("@hourly", s.SweepOrphanedPartitions); err != nil {
		log.Printf("❌ Failed to schedule partition sweep: %v", err)
		return
	}
	s.cron.Start()
	log.Println("🚀 CleanupService started (hourly partition sweep)")
}

// Stop stops the scheduler
func (s *CleanupService) Stop() {
	s.cron.Stop()
	log.Println("🛑 CleanupService stopped")
}

// SweepOrphanedPartitions drops every partition without an owning admin
func (s *CleanupService) SweepOrphanedPartitions() {
	ctx := context.Background()

	partitions, err := s.employeeRepo.ListPartitions(ctx)
	if err != nil {
		log.Printf("❌ Partition sweep: list partitions error: %v", err)
		return
	}

	admins, err := s.adminRepo.List(ctx)
	if err != nil {
		log.Printf("❌ Partition sweep: list admins error: %v", err)
		return
	}

	owned := make(map[uuid.UUID]struct{}, len(admins))
	for _, admin := range admins {
		owned[admin.ID] = struct{}{}
	}

	for _, adminID := range partitions {
		if _, ok := owned[adminID]; ok {
			continue
		}
		if err := s.employeeRepo.DropPartition(ctx, adminID); err != nil {
			log.Printf("❌ Partition sweep: drop partition for %s error: %v", adminID, err)
			continue
		}
		log.Printf("🧹 Dropped orphaned partition for admin %s", adminID)
	}
}
