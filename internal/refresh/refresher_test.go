package refresh

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Interval(t *testing.T) {
	_, err := New(-time.Second, 0, func(context.Context) error { return nil }, nil)
	assert.Error(t, err)

	var calls atomic.Int32
	r, err := New(0, 0, func(context.Context) error {
		calls.Add(1)
		return nil
	}, nil)
	require.NoError(t, err)
	r.Start()
	defer r.Stop()

	require.NoError(t, r.RunNow(context.Background()))
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, r.Status().NextRun.IsZero())
}

func TestRefresher_RunsOnInterval(t *testing.T) {
	var calls atomic.Int32
	r, err := New(20*time.Millisecond, time.Second, func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		calls.Add(1)
		return nil
	}, nil)
	require.NoError(t, err)

	r.Start()
	defer r.Stop()

	require.Eventually(t, func() bool { return calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 20*time.Millisecond, r.Status().Interval)
}

func TestRefresher_RunNowRecordsError(t *testing.T) {
	boom := errors.New("server offline")
	r, err := New(time.Hour, 0, func(context.Context) error { return boom }, nil)
	require.NoError(t, err)
	r.Start()
	defer r.Stop()

	assert.ErrorIs(t, r.RunNow(context.Background()), boom)

	st := r.Status()
	assert.False(t, st.LastRun.IsZero())
	assert.False(t, st.Running)
	assert.ErrorIs(t, st.LastErr, boom)
	assert.WithinDuration(t, time.Now().Add(time.Hour), st.NextRun, time.Minute)
}

func TestRefresher_RunNowWhileRunning(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var calls atomic.Int32
	r, err := New(time.Hour, 0, func(context.Context) error {
		calls.Add(1)
		close(started)
		<-release
		return nil
	}, nil)
	require.NoError(t, err)
	defer r.Stop()

	done := make(chan error, 1)
	go func() { done <- r.RunNow(context.Background()) }()
	<-started

	assert.True(t, r.Status().Running)
	assert.ErrorIs(t, r.RunNow(context.Background()), ErrAlreadyRunning)
	close(release)

	require.NoError(t, <-done)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRefresher_RunNowAppliesTimeout(t *testing.T) {
	r, err := New(0, 20*time.Millisecond, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, r.RunNow(context.Background()), context.DeadlineExceeded)
}
