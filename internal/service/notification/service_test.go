package notification

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/notification"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	mu    sync.Mutex
	items []*notification.Notification
	err   error
}

func (m *memRepo) Create(ctx context.Context, n *notification.Notification) error {
	return m.CreateBatch(ctx, []*notification.Notification{n})
}

func (m *memRepo) CreateBatch(ctx context.Context, ns []*notification.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.items = append(m.items, ns...)
	return nil
}

func (m *memRepo) ListScheduled(ctx context.Context, recipientID string, from, to time.Time, unreadOnly bool) ([]*notification.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*notification.Notification
	for _, n := range m.items {
		if n.RecipientID != recipientID || n.ScheduledFor.Before(from) || n.ScheduledFor.After(to) {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledFor.Before(out[j].ScheduledFor) })
	return out, nil
}

func (m *memRepo) MarkAsRead(ctx context.Context, id string, recipientID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.items {
		if n.ID == id && n.RecipientID == recipientID {
			n.IsRead = true
			return nil
		}
	}
	return notification.ErrNotificationNotFound
}

func (m *memRepo) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

var testNow = time.Date(2024, 12, 16, 6, 0, 0, 0, time.UTC)

func day(d int) time.Time { return time.Date(2024, 12, d, 0, 0, 0, 0, time.UTC) }

func newTestService(repo *memRepo, cfg Config) (*service, *sse.Hub[notification.NotificationResponse]) {
	hub := sse.NewHub[notification.NotificationResponse](10)
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = time.Hour
	}
	return newService(repo, hub, cfg, func() time.Time { return testNow }), hub
}

func reminderRequest(recipient string, scheduled time.Time) notification.CreateNotificationRequest {
	return notification.CreateNotificationRequest{
		RecipientID:    recipient,
		Type:           notification.TypeVacationReminder,
		ReminderID:     "r-1",
		LeaveRequestID: "lr-1",
		Title:          "Urlaubserinnerung - 7 Tage vorher",
		Message:        "Urlaub vom 23.12.2024 bis 30.12.2024",
		EmployeeName:   "Max Mustermann",
		VacationStart:  day(23),
		VacationEnd:    day(30),
		ScheduledFor:   scheduled,
	}
}

func TestService_QueueFlushedOnStop(t *testing.T) {
	repo := &memRepo{}
	svc, hub := newTestService(repo, Config{WorkerCount: 1})
	events, cleanup := hub.Subscribe("2")
	defer cleanup()

	require.NoError(t, svc.QueueBulkNotification(context.Background(), []notification.CreateNotificationRequest{
		reminderRequest("2", day(16)),
		reminderRequest("2", day(17)),
	}))
	svc.Stop()
	svc.Stop()

	assert.Equal(t, 2, repo.len())
	require.Len(t, events, 2)
	first := <-events
	assert.Equal(t, "notification", first.Event)
	assert.Equal(t, "2024-12-23", first.Data.VacationDates.StartDate)
	assert.NotEmpty(t, first.Data.ID)
}

func TestService_BatchSizeTriggersFlush(t *testing.T) {
	repo := &memRepo{}
	svc, _ := newTestService(repo, Config{WorkerCount: 1, BatchSize: 2})
	defer svc.Stop()

	require.NoError(t, svc.QueueNotification(context.Background(), reminderRequest("2", day(16))))
	require.NoError(t, svc.QueueNotification(context.Background(), reminderRequest("2", day(16))))
	assert.Eventually(t, func() bool { return repo.len() == 2 }, time.Second, 10*time.Millisecond)
}

func TestService_DirectInsertAfterStop(t *testing.T) {
	repo := &memRepo{}
	svc, _ := newTestService(repo, Config{WorkerCount: 1})
	svc.Stop()

	require.NoError(t, svc.QueueNotification(context.Background(), reminderRequest("2", day(16))))
	assert.Equal(t, 1, repo.len())

	repo.err = errors.New("db down")
	err := svc.QueueBulkNotification(context.Background(), []notification.CreateNotificationRequest{reminderRequest("2", day(16))})
	assert.True(t, errors.Is(err, notification.ErrQueueFull))
}

func TestService_QueueConcurrentWithStopLosesNothing(t *testing.T) {
	for round := 0; round < 20; round++ {
		repo := &memRepo{}
		svc, _ := newTestService(repo, Config{WorkerCount: 2, BatchSize: 1000, QueueSize: 1000})

		const senders, perSender = 8, 25
		var wg sync.WaitGroup
		for i := 0; i < senders; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < perSender; j++ {
					assert.NoError(t, svc.QueueNotification(context.Background(), reminderRequest("2", day(16))))
				}
			}()
		}
		svc.Stop()
		wg.Wait()

		require.Equal(t, senders*perSender, repo.len(), "round %d", round)
	}
}

func TestService_QueueCancelledContext(t *testing.T) {
	repo := &memRepo{}
	svc, _ := newTestService(repo, Config{WorkerCount: 1})
	defer svc.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, svc.QueueNotification(ctx, reminderRequest("2", day(16))), context.Canceled)
}

func TestService_UpcomingAndAlerts(t *testing.T) {
	repo := &memRepo{}
	svc, _ := newTestService(repo, Config{WorkerCount: 1})
	ctx := context.Background()

	require.NoError(t, svc.QueueBulkNotification(ctx, []notification.CreateNotificationRequest{
		reminderRequest("2", day(28)),
		reminderRequest("2", day(16)),
		reminderRequest("2", day(20)),
		reminderRequest("2", day(15)),
		reminderRequest("3", day(16)),
	}))
	svc.Stop()

	upcoming, err := svc.GetUpcoming(ctx, "2")
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "2024-12-16", upcoming[0].ScheduledFor)
	assert.Equal(t, "2024-12-20", upcoming[1].ScheduledFor)

	require.NoError(t, svc.MarkAsRead(ctx, "2", upcoming[0].ID))
	upcoming, err = svc.GetUpcoming(ctx, "2")
	require.NoError(t, err)
	assert.Len(t, upcoming, 1)

	alerts, err := svc.GetVacationAlerts(ctx, "2", 0)
	require.NoError(t, err)
	require.Len(t, alerts, 3)
	assert.Equal(t, "2024-12-28", alerts[2].ScheduledFor)
	assert.True(t, alerts[0].IsRead)

	err = svc.MarkAsRead(ctx, "3", alerts[1].ID)
	assert.True(t, errors.Is(err, notification.ErrNotificationNotFound))
}

func TestService_Subscribe(t *testing.T) {
	repo := &memRepo{}
	svc, hub := newTestService(repo, Config{WorkerCount: 1})
	defer svc.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	events, cleanup := svc.Subscribe(ctx, "2")
	defer cleanup()

	hub.Publish("2", sse.Event[notification.NotificationResponse]{Event: "notification", Data: notification.NotificationResponse{ID: "n-1"}})
	select {
	case ev := <-events:
		assert.Equal(t, "n-1", ev.Data.ID)
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}

	cancel()
	select {
	case _, open := <-events:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("stream not closed after cancel")
	}
}
