package reports

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/barberbot-br/BookingCore/internal/domain"
)

const (
	// cacheTTL bounds how stale a served report can be. Popularity moves
	// slowly, so a short TTL keeps the bookings table off the hot path
	// without anyone noticing the lag.
	cacheTTL = 5 * time.Minute

	defaultReportDays = 30
)

// ServiceCount is one row of the popularity report
type ServiceCount struct {
	ServiceType string `json:"serviceType"`
	Count       int    `json:"count"`
}

// TopServicesResponse is the popularity report DTO
type TopServicesResponse struct {
	FromDayKey string         `json:"fromDayKey"`
	ToDayKey   string         `json:"toDayKey"`
	Services   []ServiceCount `json:"services"`
}

type cacheEntry struct {
	response  *TopServicesResponse
	expiresAt time.Time
}

// Service computes the service-type popularity report over a day-key range,
// with a small TTL cache keyed by the range.
type Service struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

// NewService creates a new report service instance
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		cache:        make(map[string]cacheEntry),
	}
}

// TopServices returns non-cancelled booking counts per service type in the
// [fromDayKey, toDayKey) range, most popular first. Empty bounds default to
// the last 30 days.
func (s *Service) TopServices(ctx context.Context, fromDayKey, toDayKey string) (*TopServicesResponse, error) {
	now := s.timeProvider.Now()
	if fromDayKey == "" {
		fromDayKey = now.AddDate(0, 0, -defaultReportDays).Format(domain.DateFormat)
	}
	if toDayKey == "" {
		toDayKey = now.AddDate(0, 0, 1).Format(domain.DateFormat)
	}
	if _, err := time.Parse(domain.DateFormat, fromDayKey); err != nil {
		return nil, fmt.Errorf("%w: invalid from day %q", ErrInvalidInput, fromDayKey)
	}
	if _, err := time.Parse(domain.DateFormat, toDayKey); err != nil {
		return nil, fmt.Errorf("%w: invalid to day %q", ErrInvalidInput, toDayKey)
	}
	if fromDayKey >= toDayKey {
		return nil, fmt.Errorf("%w: from day %s must precede to day %s", ErrInvalidInput, fromDayKey, toDayKey)
	}

	key := fromDayKey + ".." + toDayKey

	if cached := s.lookup(key, now); cached != nil {
		s.logger.Info("TopServices: cache hit for range %s", key)
		return cached, nil
	}

	counts, err := s.bookingRepo.CountServiceTypes(ctx, fromDayKey, toDayKey)
	if err != nil {
		s.logger.Error("TopServices: repository error for range %s: %v", key, err)
		return nil, fmt.Errorf("%w: TopServices - repository error: %v", ErrInternal, err)
	}

	services := make([]ServiceCount, 0, len(counts))
	for serviceType, count := range counts {
		services = append(services, ServiceCount{ServiceType: serviceType, Count: count})
	}
	sort.Slice(services, func(i, j int) bool {
		if services[i].Count != services[j].Count {
			return services[i].Count > services[j].Count
		}
		return services[i].ServiceType < services[j].ServiceType
	})

	resp := &TopServicesResponse{
		FromDayKey: fromDayKey,
		ToDayKey:   toDayKey,
		Services:   services,
	}

	s.mu.Lock()
	s.cache[key] = cacheEntry{response: resp, expiresAt: now.Add(cacheTTL)}
	s.mu.Unlock()

	s.logger.Info("TopServices: computed report for range %s, %d service types", key, len(services))
	return resp, nil
}

func (s *Service) lookup(key string, now time.Time) *TopServicesResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.cache[key]
	if !ok || now.After(entry.expiresAt) {
		return nil
	}
	return entry.response
}
