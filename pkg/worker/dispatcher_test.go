package worker

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
	"github.com/KurtMante/clinic-BE/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("worker_test")

type fakeNotificationRepo struct {
	pending  []*model.Notification
	statuses map[uuid.UUID]model.NotificationStatus
	errors   map[uuid.UUID]string
}

func newFakeNotificationRepo(pending ...*model.Notification) *fakeNotificationRepo {
	return &fakeNotificationRepo{
		pending:  pending,
		statuses: make(map[uuid.UUID]model.NotificationStatus),
		errors:   make(map[uuid.UUID]string),
	}
}

func (f *fakeNotificationRepo) Create(context.Context, *model.Notification) error { return nil }

func (f *fakeNotificationRepo) GetPendingWithLock(_ context.Context, limit int) ([]*model.Notification, error) {
	if len(f.pending) > limit {
		return f.pending[:limit], nil
	}
	return f.pending, nil
}

func (f *fakeNotificationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.NotificationStatus, lastError *string) error {
	f.statuses[id] = status
	if lastError != nil {
		f.errors[id] = *lastError
	}
	return nil
}

func (f *fakeNotificationRepo) DeleteSentBefore(context.Context, time.Time) (int64, error) {
	return 0, nil
}

type fakeEmail struct {
	sent  []string
	calls int
	err   error
}

func (f *fakeEmail) Send(_ context.Context, to, _, _ string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

type fakeSMS struct {
	sent []string
	err  error
}

func (f *fakeSMS) Send(_ context.Context, to, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

func pendingNotification(channel model.NotificationChannel, recipient string) *model.Notification {
	return &model.Notification{
		ID:        uuid.New(),
		PatientID: 1,
		Channel:   channel,
		Recipient: recipient,
		Subject:   "Appointment Accepted",
		Body:      "see you soon",
		Status:    model.NotificationStatusPending,
	}
}

func TestProcessBatchDeliversByChannel(t *testing.T) {
	emailN := pendingNotification(model.NotificationChannelEmail, "ana@example.com")
	smsN := pendingNotification(model.NotificationChannelSMS, "+15551234567")
	repo := newFakeNotificationRepo(emailN, smsN)
	emailSvc := &fakeEmail{}
	smsSvc := &fakeSMS{}

	d := NewDispatcher(repo, emailSvc, smsSvc, DispatcherConfig{}, logger.NewLogger(nil), testMetrics)

	require.NoError(t, d.processBatch(context.Background()))

	assert.Equal(t, []string{"ana@example.com"}, emailSvc.sent)
	assert.Equal(t, []string{"+15551234567"}, smsSvc.sent)
	assert.Equal(t, model.NotificationStatusSent, repo.statuses[emailN.ID])
	assert.Equal(t, model.NotificationStatusSent, repo.statuses[smsN.ID])
}

func TestDispatchMarksRetryingThenFailed(t *testing.T) {
	n := pendingNotification(model.NotificationChannelEmail, "ana@example.com")
	repo := newFakeNotificationRepo(n)
	emailSvc := &fakeEmail{err: fmt.Errorf("smtp: connection refused")}

	d := NewDispatcher(repo, emailSvc, &fakeSMS{}, DispatcherConfig{
		MaxRetries: 3,
	}, logger.NewLogger(nil), testMetrics)

	err := d.dispatch(context.Background(), n)
	require.Error(t, err)
	assert.Equal(t, model.NotificationStatusRetrying, repo.statuses[n.ID])
	assert.Contains(t, repo.errors[n.ID], "connection refused")

	// Once retries are exhausted the row is parked as FAILED.
	n.RetryCount = 2
	err = d.dispatch(context.Background(), n)
	require.Error(t, err)
	assert.Equal(t, model.NotificationStatusFailed, repo.statuses[n.ID])
}

func TestDispatchSingleGatewayAttemptPerClaim(t *testing.T) {
	n := pendingNotification(model.NotificationChannelEmail, "ana@example.com")
	repo := newFakeNotificationRepo(n)
	emailSvc := &fakeEmail{err: fmt.Errorf("smtp: connection refused")}

	d := NewDispatcher(repo, emailSvc, &fakeSMS{}, DispatcherConfig{
		MaxRetries: 3,
	}, logger.NewLogger(nil), testMetrics)

	// The retry budget lives in retry_count across poll cycles. A single
	// claim must hit the gateway exactly once, not MaxRetries times.
	require.Error(t, d.dispatch(context.Background(), n))
	assert.Equal(t, 1, emailSvc.calls)
	assert.Equal(t, model.NotificationStatusRetrying, repo.statuses[n.ID])

	n.RetryCount = 1
	require.Error(t, d.dispatch(context.Background(), n))
	assert.Equal(t, 2, emailSvc.calls)
}

func TestDispatchUnsupportedChannel(t *testing.T) {
	n := pendingNotification(model.NotificationChannelInApp, "ana")
	repo := newFakeNotificationRepo(n)

	d := NewDispatcher(repo, &fakeEmail{}, &fakeSMS{}, DispatcherConfig{}, logger.NewLogger(nil), testMetrics)

	err := d.dispatch(context.Background(), n)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported channel")
}

func TestBatchSizeRespected(t *testing.T) {
	var pending []*model.Notification
	for i := 0; i < 5; i++ {
		pending = append(pending, pendingNotification(model.NotificationChannelEmail, fmt.Sprintf("p%d@example.com", i)))
	}
	repo := newFakeNotificationRepo(pending...)
	emailSvc := &fakeEmail{}

	d := NewDispatcher(repo, emailSvc, &fakeSMS{}, DispatcherConfig{
		BatchSize:  2,
	}, logger.NewLogger(nil), testMetrics)

	require.NoError(t, d.processBatch(context.Background()))
	assert.Len(t, emailSvc.sent, 2)
}
