package cron

import (
	"context"
	"log/slog"
)

// DefaultReminderSpec runs the reminder job every day at 06:00.
const DefaultReminderSpec = "0 6 * * *"

// ReminderSender is implemented by the reminder service.
type ReminderSender interface {
	SendDueReminders(ctx context.Context) (int, error)
}

type ReminderJobs struct {
	reminders ReminderSender
}

func NewReminderJobs(reminders ReminderSender) *ReminderJobs {
	return &ReminderJobs{reminders: reminders}
}

// RegisterJobs schedules the daily reminder delivery. An empty spec uses
// DefaultReminderSpec.
func (j *ReminderJobs) RegisterJobs(scheduler *Scheduler, spec string) error {
	if spec == "" {
		spec = DefaultReminderSpec
	}
	return scheduler.AddJob("send_due_vacation_reminders", spec, j.SendDueReminders)
}

func (j *ReminderJobs) SendDueReminders(ctx context.Context) error {
	slog.Info("Cron: Starting vacation reminder job")
	sent, err := j.reminders.SendDueReminders(ctx)
	if err != nil {
		return err
	}
	slog.Info("Cron: Vacation reminder job finished", "sent", sent)
	return nil
}
