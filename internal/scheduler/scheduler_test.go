package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockBackfiller struct {
	mock.Mock
}

func (m *mockBackfiller) Backfill(ctx context.Context, batch int) (int, error) {
	args := m.Called(ctx, batch)
	return args.Int(0), args.Error(1)
}

func TestStart_EmptyScheduleIsDisabled(t *testing.T) {
	b := new(mockBackfiller)
	s := NewService(b, "", 10)

	assert.NoError(t, s.Start())
	assert.Empty(t, s.cron.Entries())
	s.Stop()
}

func TestStart_InvalidSchedule(t *testing.T) {
	s := NewService(new(mockBackfiller), "not a schedule", 10)
	assert.Error(t, s.Start())
}

func TestStart_RegistersJob(t *testing.T) {
	s := NewService(new(mockBackfiller), "0 */5 * * * *", 10)
	assert.NoError(t, s.Start())
	assert.Len(t, s.cron.Entries(), 1)
	s.Stop()
}

func TestRun_PassesBatchSize(t *testing.T) {
	b := new(mockBackfiller)
	b.On("Backfill", mock.Anything, 25).Return(3, nil).Once()
	b.On("Backfill", mock.Anything, 25).Return(0, errors.New("store down")).Once()

	s := NewService(b, "@every 1m", 25)
	s.run()
	s.run()

	b.AssertExpectations(t)
}
