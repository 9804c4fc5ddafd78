package operating

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
	"github.com/daiki-lova/Privateskytour-sub000/pkg/ptr"
	"github.com/daiki-lova/Privateskytour-sub000/pkg/types"
)

type fakeConfigRepo struct {
	cfg     *domain.OperatingConfig
	updated []*domain.OperatingConfig
}

func (f *fakeConfigRepo) Get(_ context.Context) (*domain.OperatingConfig, error) {
	copied := *f.cfg
	return &copied, nil
}

func (f *fakeConfigRepo) Update(_ context.Context, cfg *domain.OperatingConfig) error {
	copied := *cfg
	f.updated = append(f.updated, &copied)
	f.cfg = &copied
	return nil
}

type fakeAuditRepo struct {
	entries []*domain.AuditLogEntry
}

func (f *fakeAuditRepo) Append(_ context.Context, entry *domain.AuditLogEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *fakeConfigRepo, *fakeAuditRepo) {
	repo := &fakeConfigRepo{cfg: &domain.OperatingConfig{
		ID:          1,
		FlightTimes: []types.TimeString{"09:00", "10:00"},
		UpdatedAt:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}}
	audit := &fakeAuditRepo{}
	svc := NewService(repo, audit, fakeTxManager{}, nopLogger{})
	return svc, repo, audit
}

func TestUpdate_HolidayMode(t *testing.T) {
	svc, repo, audit := newTestService()

	resp, err := svc.Update(context.Background(), &UpdateConfigRequest{
		Actor:       "op-1",
		HolidayMode: ptr.Ptr(true),
	})

	require.NoError(t, err)
	assert.True(t, resp.HolidayMode)
	assert.Equal(t, []string{"09:00", "10:00"}, resp.FlightTimes, "allow-list untouched")

	require.Len(t, repo.updated, 1)
	assert.Equal(t, "op-1", repo.updated[0].UpdatedBy)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, "operating.update", audit.entries[0].Action)
}

func TestUpdate_FlightTimesSortedAndDeduped(t *testing.T) {
	svc, _, _ := newTestService()

	times := []string{"14:00", "09:00", "14:00", "11:30"}
	resp, err := svc.Update(context.Background(), &UpdateConfigRequest{
		Actor:       "op-1",
		FlightTimes: &times,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "11:30", "14:00"}, resp.FlightTimes)
}

func TestUpdate_RejectsInvalidTime(t *testing.T) {
	svc, repo, _ := newTestService()

	times := []string{"09:00", "25:00"}
	_, err := svc.Update(context.Background(), &UpdateConfigRequest{
		Actor:       "op-1",
		FlightTimes: &times,
	})

	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, repo.updated)
}

func TestUpdate_RejectsEmptyAllowList(t *testing.T) {
	svc, _, _ := newTestService()

	times := []string{}
	_, err := svc.Update(context.Background(), &UpdateConfigRequest{
		Actor:       "op-1",
		FlightTimes: &times,
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_NothingToUpdate(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Update(context.Background(), &UpdateConfigRequest{Actor: "op-1"})
	require.ErrorIs(t, err, ErrInvalidInput)
}
