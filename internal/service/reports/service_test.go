package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingRepo struct {
	counts map[string]int
	calls  int
}

func (f *fakeBookingRepo) CountServiceTypes(_ context.Context, _, _ string) (map[string]int, error) {
	f.calls++
	return f.counts, nil
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newService(counts map[string]int, now time.Time) (*Service, *fakeBookingRepo) {
	repo := &fakeBookingRepo{counts: counts}
	svc := NewService(repo, noopLogger{})
	svc.timeProvider = fixedTime{t: now}
	return svc, repo
}

func TestTopServices_SortedByPopularity(t *testing.T) {
	svc, _ := newService(map[string]int{
		"corte":       12,
		"barba":       20,
		"sobrancelha": 12,
	}, time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC))

	resp, err := svc.TopServices(context.Background(), "2024-02-01", "2024-03-01")
	require.NoError(t, err)

	require.Len(t, resp.Services, 3)
	assert.Equal(t, ServiceCount{ServiceType: "barba", Count: 20}, resp.Services[0])
	// Ties break alphabetically for a stable order
	assert.Equal(t, ServiceCount{ServiceType: "corte", Count: 12}, resp.Services[1])
	assert.Equal(t, ServiceCount{ServiceType: "sobrancelha", Count: 12}, resp.Services[2])
}

func TestTopServices_CachePerRange(t *testing.T) {
	now := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
	svc, repo := newService(map[string]int{"corte": 1}, now)

	_, err := svc.TopServices(context.Background(), "2024-02-01", "2024-03-01")
	require.NoError(t, err)
	_, err = svc.TopServices(context.Background(), "2024-02-01", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls, "second identical query must hit the cache")

	// A different range misses the cache
	_, err = svc.TopServices(context.Background(), "2024-01-01", "2024-02-01")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)

	// An expired entry is recomputed
	svc.timeProvider = fixedTime{t: now.Add(cacheTTL + time.Second)}
	_, err = svc.TopServices(context.Background(), "2024-02-01", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 3, repo.calls)
}

func TestTopServices_DefaultRange(t *testing.T) {
	now := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
	svc, _ := newService(map[string]int{}, now)

	resp, err := svc.TopServices(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-03", resp.FromDayKey)
	assert.Equal(t, "2024-03-05", resp.ToDayKey)
}

func TestTopServices_InvalidRange(t *testing.T) {
	svc, _ := newService(map[string]int{}, time.Now())

	_, err := svc.TopServices(context.Background(), "01/02/2024", "2024-03-01")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.TopServices(context.Background(), "2024-03-01", "2024-02-01")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
