package services

import (
	"log"

	"teknikservis-backend/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReconcileService repairs the invariant broken by the non-atomic customer
// cascade delete: repairs whose customer record is gone. The sweep runs
// nightly and is also exposed to admins for on-demand runs.
type ReconcileService struct {
	db *gorm.DB
}

func NewReconcileService(db *gorm.DB) *ReconcileService {
	return &ReconcileService{db: db}
}

// SweepOrphanedRepairs deletes repairs with a dangling customer_id and
// returns how many were removed.
func (s *ReconcileService) SweepOrphanedRepairs() (int64, error) {
	result := s.db.Where(
		"customer_id NOT IN (?)",
		s.db.Session(&gorm.Session{NewDB: true}).
			Model(&models.Customer{}).
			Select("id"),
	).Delete(&models.Repair{})
	return result.RowsAffected, result.Error
}

// StartScheduler runs the sweep every night at 3 AM.
func (s *ReconcileService) StartScheduler() *cron.Cron {
	c := cron.New()

	c.AddFunc("0 3 * * *", func() {
		count, err := s.SweepOrphanedRepairs()
		if err != nil {
			log.Printf("Orphaned repair sweep failed: %v", err)
			return
		}
		if count > 0 {
			log.Printf("Orphaned repair sweep removed %d repairs", count)
		}
	})

	c.Start()
	log.Println("Reconciliation scheduler started")
	return c
}
