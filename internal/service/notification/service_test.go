package notification

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KurtMante/clinic-BE/internal/model"
	"github.com/KurtMante/clinic-BE/pkg/logger"
)

type fakeNotificationRepo struct {
	created []*model.Notification
	err     error
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	if f.err != nil {
		return f.err
	}
	n.ID = uuid.New()
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotificationRepo) GetPendingWithLock(context.Context, int) ([]*model.Notification, error) {
	return nil, nil
}

func (f *fakeNotificationRepo) UpdateStatus(context.Context, uuid.UUID, model.NotificationStatus, *string) error {
	return nil
}

func (f *fakeNotificationRepo) DeleteSentBefore(context.Context, time.Time) (int64, error) {
	return 0, nil
}

type fakeBroker struct {
	published []string
	err       error
}

func (f *fakeBroker) Publish(_ context.Context, channel string, _ interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, channel)
	return nil
}

func (f *fakeBroker) Subscribe(context.Context, string) (<-chan []byte, error) {
	return nil, nil
}

func (f *fakeBroker) Close() error { return nil }

func phonePtr(s string) *string { return &s }

func TestNotifyQueuesPerChannel(t *testing.T) {
	repo := &fakeNotificationRepo{}
	broker := &fakeBroker{}
	svc := NewService(repo, broker, logger.NewLogger(nil))

	patient := &model.Patient{
		ID:    1,
		Email: "ana@example.com",
		Phone: phonePtr("+15551234567"),
	}
	svc.Notify(context.Background(), patient, "Appointment Accepted", "see you soon")

	require.Len(t, repo.created, 2)
	channels := map[model.NotificationChannel]string{}
	for _, n := range repo.created {
		channels[n.Channel] = n.Recipient
	}
	assert.Equal(t, "ana@example.com", channels[model.NotificationChannelEmail])
	assert.Equal(t, "+15551234567", channels[model.NotificationChannelSMS])

	require.Len(t, broker.published, 1)
	assert.Equal(t, "notifications", broker.published[0])
}

func TestNotifySkipsMissingContacts(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewService(repo, &fakeBroker{}, logger.NewLogger(nil))

	svc.Notify(context.Background(), &model.Patient{ID: 1, Email: "ana@example.com"}, "s", "b")
	require.Len(t, repo.created, 1)
	assert.Equal(t, model.NotificationChannelEmail, repo.created[0].Channel)

	repo.created = nil
	svc.Notify(context.Background(), &model.Patient{ID: 2}, "s", "b")
	assert.Empty(t, repo.created)
}

func TestNotifyNeverPanicsOrRaises(t *testing.T) {
	repo := &fakeNotificationRepo{err: fmt.Errorf("db down")}
	broker := &fakeBroker{err: fmt.Errorf("redis down")}
	svc := NewService(repo, broker, logger.NewLogger(nil))

	// Fire-and-forget: downstream failures are swallowed.
	assert.NotPanics(t, func() {
		svc.Notify(context.Background(), &model.Patient{
			ID: 1, Email: "ana@example.com", Phone: phonePtr("+15551234567"),
		}, "s", "b")
	})

	assert.NotPanics(t, func() {
		svc.Notify(context.Background(), nil, "s", "b")
	})
}
