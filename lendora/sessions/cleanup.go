package sessions

import (
	"context"
	"time"

	"codeberg.org/lendora/server/internal/logger"
)

// drops revocation entries whose tokens have expired
type Purger interface {
	Purge(ctx context.Context) (int, error)
}

// handles periodic purging of expired revocations
type CleanupService struct {
	purger        Purger
	checkInterval time.Duration
}

// creates a new cleanup service
func NewCleanupService(purger Purger, checkInterval time.Duration) *CleanupService {
	return &CleanupService{
		purger:        purger,
		checkInterval: checkInterval,
	}
}

// begins the cleanup background loop; returns when ctx is done
func (s *CleanupService) Start(ctx context.Context) {
	logger.Info("starting revocation cleanup service", "check_interval", s.checkInterval)

	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("revocation cleanup service stopped")
			return
		case <-ticker.C:
			s.purge(ctx)
		}
	}
}

func (s *CleanupService) purge(ctx context.Context) {
	removed, err := s.purger.Purge(ctx)
	if err != nil {
		logger.ErrorErr(err, "failed to purge expired revocations")
		return
	}

	if removed > 0 {
		logger.Debug("purged expired revocations", "count", removed)
	}
}
