package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	calls int
	err   error
}

func (f *fakeSender) SendDueReminders(ctx context.Context) (int, error) {
	f.calls++
	return 3, f.err
}

func TestScheduler_AddJobRejectsBadSpec(t *testing.T) {
	s := NewScheduler(time.UTC)
	err := s.AddJob("bad", "every day", func(ctx context.Context) error { return nil })
	assert.Error(t, err)
	assert.Empty(t, s.Jobs())
}

func TestReminderJobs_RegisterDefaultSpec(t *testing.T) {
	s := NewScheduler(time.UTC)
	sender := &fakeSender{}
	require.NoError(t, NewReminderJobs(sender).RegisterJobs(s, ""))

	jobs := s.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, DefaultReminderSpec, jobs[0].Spec)

	s.RunOnce(context.Background())
	assert.Equal(t, 1, sender.calls)
}

func TestScheduler_NextActivation(t *testing.T) {
	s := NewScheduler(time.UTC)
	require.NoError(t, NewReminderJobs(&fakeSender{}).RegisterJobs(s, "30 5 * * *"))
	s.Start()
	defer s.Stop()

	next := s.Next("send_due_vacation_reminders")
	require.False(t, next.IsZero())
	assert.Equal(t, 5, next.Hour())
	assert.Equal(t, 30, next.Minute())
	assert.True(t, s.Next("unknown").IsZero())
}

func TestReminderJobs_PropagatesError(t *testing.T) {
	sender := &fakeSender{err: errors.New("db down")}
	err := NewReminderJobs(sender).SendDueReminders(context.Background())
	assert.Error(t, err)
}
