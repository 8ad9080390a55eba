package records

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olejniktut/dc-landscaping/internal/domain"
	"github.com/olejniktut/dc-landscaping/pkg/logger"
)

// mockGateway implements RecordsGateway
type mockGateway struct {
	calls   int
	errs    []error
	records []domain.TimeRecord
}

func (m *mockGateway) ListTodayRecords(ctx context.Context) ([]domain.TimeRecord, error) {
	m.calls++
	if len(m.errs) > 0 {
		err := m.errs[0]
		m.errs = m.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return m.records, nil
}

func TestService_RefreshToday(t *testing.T) {
	gw := &mockGateway{records: []domain.TimeRecord{{ID: 1}, {ID: 2}}}
	svc := New(gw, logger.NewNop())

	require.NoError(t, svc.RefreshToday(context.Background()))
	assert.Len(t, svc.Today(), 2)
	assert.Equal(t, 1, gw.calls)
}

func TestService_RefreshRetriesTransientFailure(t *testing.T) {
	gw := &mockGateway{
		errs:    []error{errors.New("connection reset"), nil},
		records: []domain.TimeRecord{{ID: 7}},
	}
	svc := New(gw, logger.NewNop())

	require.NoError(t, svc.RefreshToday(context.Background()))
	assert.Equal(t, 2, gw.calls)
	assert.Len(t, svc.Today(), 1)
}

func TestService_ExpiredSessionIsNotRetried(t *testing.T) {
	gw := &mockGateway{errs: []error{domain.ErrSessionExpired}}
	svc := New(gw, logger.NewNop())

	err := svc.RefreshToday(context.Background())
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.Equal(t, 1, gw.calls, "an expired session cannot heal on retry")
}

func TestService_FailedRefreshKeepsCache(t *testing.T) {
	gw := &mockGateway{records: []domain.TimeRecord{{ID: 1}}}
	svc := New(gw, logger.NewNop())
	require.NoError(t, svc.RefreshToday(context.Background()))

	gw.errs = []error{domain.ErrNotAuthenticated}
	require.Error(t, svc.RefreshToday(context.Background()))
	assert.Len(t, svc.Today(), 1, "stale cache beats an empty one")
}

func TestService_TodayReturnsCopy(t *testing.T) {
	gw := &mockGateway{records: []domain.TimeRecord{{ID: 1, PropertyID: 5}}}
	svc := New(gw, logger.NewNop())
	require.NoError(t, svc.RefreshToday(context.Background()))

	got := svc.Today()
	got[0].PropertyID = 999
	assert.Equal(t, int64(5), svc.Today()[0].PropertyID)
}
