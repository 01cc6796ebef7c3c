package logging

import (
	"log/slog"
	"time"

	"github.com/sorofreja/playerdev-backend/internal/models"
	"gorm.io/gorm"
)

// Sweeper is anything that can evict expired sessions. Satisfied by
// the session service.
type Sweeper interface {
	SweepExpired() (int64, error)
}

// StartCleanup runs an hourly goroutine that deletes system_logs older
// than 30 days and evicts expired session rows.
func StartCleanup(db *gorm.DB, sessions Sweeper, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cutoff := time.Now().AddDate(0, 0, -30)
				result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
				if result.Error != nil {
					slog.Error("log cleanup failed", "error", result.Error)
				} else if result.RowsAffected > 0 {
					slog.Info("log cleanup completed", "deleted", result.RowsAffected)
				}

				if n, err := sessions.SweepExpired(); err != nil {
					slog.Error("session sweep failed", "error", err)
				} else if n > 0 {
					slog.Info("expired sessions evicted", "deleted", n)
				}
			case <-done:
				return
			}
		}
	}()
}
