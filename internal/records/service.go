// Package records keeps a read-through cache of the day's time records,
// refreshed after every successful stop.
package records

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/olejniktut/dc-landscaping/internal/domain"
	"github.com/olejniktut/dc-landscaping/pkg/logger"
	"github.com/olejniktut/dc-landscaping/pkg/retry"
)

// RecordsGateway is the slice of the backend the cache needs
type RecordsGateway interface {
	ListTodayRecords(ctx context.Context) ([]domain.TimeRecord, error)
}

// Service caches today's records
type Service struct {
	mu    sync.RWMutex
	today []domain.TimeRecord
	gw    RecordsGateway
	retry *retry.Config
	log   *logger.Logger
}

// New creates the cache. The refresh is an idempotent read, so transient
// failures are retried with a short backoff.
func New(gw RecordsGateway, log *logger.Logger) *Service {
	return &Service{
		gw:  gw,
		log: log,
		retry: &retry.Config{
			MaxAttempts:     3,
			InitialInterval: 200 * time.Millisecond,
			Multiplier:      2.0,
		},
	}
}

// RefreshToday re-reads the day's records from the backend
func (s *Service) RefreshToday(ctx context.Context) error {
	var fetched []domain.TimeRecord
	err := retry.Do(ctx, s.retry, func(ctx context.Context) error {
		list, err := s.gw.ListTodayRecords(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrSessionExpired) || errors.Is(err, domain.ErrNotAuthenticated) {
				return retry.Permanent(err)
			}
			return err
		}
		fetched = list
		return nil
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.today = fetched
	s.mu.Unlock()
	s.log.Debug("today records refreshed", zap.Int("count", len(fetched)))
	return nil
}

// Today returns the cached records from the last refresh
func (s *Service) Today() []domain.TimeRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.TimeRecord, len(s.today))
	copy(out, s.today)
	return out
}
