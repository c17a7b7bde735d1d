package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd_RejectsBadSchedule(t *testing.T) {
	s := New(time.UTC, time.Second)

	err := s.Add("reminders", "every morning", func(ctx context.Context) error { return nil })
	assert.Error(t, err)

	_, ok := s.Next("reminders")
	assert.False(t, ok)
}

func TestNext_UsesLocation(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	s := New(loc, time.Second)
	require.NoError(t, s.Add("reminders", "0 0 9 * * *", func(ctx context.Context) error { return nil }))

	s.Start()
	defer s.Stop()

	next, ok := s.Next("reminders")
	require.True(t, ok)
	local := next.In(loc)
	assert.Equal(t, 9, local.Hour())
	assert.Equal(t, 0, local.Minute())
}

func TestTaskRuns(t *testing.T) {
	s := New(time.UTC, time.Second)
	ran := make(chan struct{}, 1)
	require.NoError(t, s.Add("tick", "* * * * * *", func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}))

	s.Start()
	defer s.Stop()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("task did not run")
	}
}
