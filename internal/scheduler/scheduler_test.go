package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRevalidator struct {
	calls atomic.Int32
}

func (c *countingRevalidator) RevalidateAll(ctx context.Context) int {
	c.calls.Add(1)
	return 0
}

func TestRevalidationRuns(t *testing.T) {
	s := New()
	rv := &countingRevalidator{}
	require.NoError(t, s.AddRevalidation("@every 1s", rv, time.Second))

	s.Start()
	assert.Eventually(t, func() bool { return rv.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
	s.Stop()
}

func TestRevalidationDisabled(t *testing.T) {
	s := New()
	rv := &countingRevalidator{}
	require.NoError(t, s.AddRevalidation("", rv, 0))
	assert.Empty(t, s.sched.Entries())
}

func TestRevalidationRejectsBadSpec(t *testing.T) {
	assert.Error(t, New().AddRevalidation("every now and then", &countingRevalidator{}, 0))
}
