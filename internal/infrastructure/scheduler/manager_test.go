package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

func TestSchedulerManager_RunsSLAJobImmediately(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNopLogger())
	require.NoError(t, err)

	var calls atomic.Int32
	done := make(chan struct{}, 1)
	job := BatchJobFunc(func(ctx context.Context) (int, error) {
		if calls.Add(1) == 1 {
			done <- struct{}{}
		}
		return 2, nil
	})

	require.NoError(t, m.RegisterSLAJobs(job, time.Hour))
	require.Len(t, m.Jobs(), 1)
	assert.Equal(t, "sla-overdue-check", m.Jobs()[0].Name())

	m.Start()
	m.Start()
	assert.True(t, m.IsStarted())

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("SLA job did not run")
	}

	require.NoError(t, m.Stop())
	assert.False(t, m.IsStarted())
	require.NoError(t, m.Stop())
	assert.Equal(t, int32(1), calls.Load())
}
