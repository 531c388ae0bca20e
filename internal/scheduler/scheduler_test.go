package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isufellowship/attendance-bot/internal/apperror"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestNew_ParsesFireTime(t *testing.T) {
	s, err := New("21:00", func(context.Context, time.Time) error { return nil }, testLogger())
	require.NoError(t, err)
	assert.Equal(t, 21, s.hour)
	assert.Equal(t, 0, s.minute)
}

func TestNew_RejectsBadFireTime(t *testing.T) {
	for _, bad := range []string{"", "25:00", "9pm", "21:00:00"} {
		_, err := New(bad, func(context.Context, time.Time) error { return nil }, testLogger())
		require.Error(t, err, "fire time %q should be rejected", bad)
		assert.True(t, errors.Is(err, apperror.ErrValidation))
	}
}

func TestNextFire_LaterToday(t *testing.T) {
	now := time.Date(2026, 8, 29, 9, 0, 0, 0, time.Local)
	next := nextFire(now, 21, 0)

	assert.Equal(t, time.Date(2026, 8, 29, 21, 0, 0, 0, time.Local), next)
}

func TestNextFire_Tomorrow(t *testing.T) {
	now := time.Date(2026, 8, 29, 22, 30, 0, 0, time.Local)
	next := nextFire(now, 21, 0)

	assert.Equal(t, time.Date(2026, 8, 30, 21, 0, 0, 0, time.Local), next)
}

func TestNextFire_ExactlyAtFireTime(t *testing.T) {
	// Firing exactly at the configured instant schedules the next day,
	// never a zero-length wait loop.
	now := time.Date(2026, 8, 29, 21, 0, 0, 0, time.Local)
	next := nextFire(now, 21, 0)

	assert.Equal(t, time.Date(2026, 8, 30, 21, 0, 0, 0, time.Local), next)
}

func TestNextFire_MonthBoundary(t *testing.T) {
	now := time.Date(2026, 8, 31, 23, 0, 0, 0, time.Local)
	next := nextFire(now, 21, 0)

	assert.Equal(t, time.Date(2026, 9, 1, 21, 0, 0, 0, time.Local), next)
}

func TestRun_StopsOnCancel(t *testing.T) {
	s, err := New("23:59", func(context.Context, time.Time) error { return nil }, testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after context cancellation")
	}
}
