package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/bookwise/bookwise/internal/entity"
	"github.com/bookwise/bookwise/internal/service"
	"github.com/bookwise/bookwise/pkg/notifier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfileRepo struct {
	profile *entity.Profile
}

func (r *fakeProfileRepo) Create(context.Context, *entity.Profile) error { return nil }

func (r *fakeProfileRepo) GetByUserID(context.Context, string) (*entity.Profile, error) {
	if r.profile == nil {
		return nil, entity.ErrProfileNotFound
	}
	return r.profile, nil
}

func (r *fakeProfileRepo) Update(context.Context, *entity.Profile) error { return nil }

type deliveryOutcome struct {
	notificationID string
	delivered      bool
	errorMessage   string
}

// recordingNotificationService captures RecordDeliveryResult calls.
type recordingNotificationService struct {
	fakeNotificationService
	outcomes []deliveryOutcome
}

func (s *recordingNotificationService) RecordDeliveryResult(_ context.Context, id string, delivered bool, errorMessage string) error {
	s.outcomes = append(s.outcomes, deliveryOutcome{id, delivered, errorMessage})
	return nil
}

type fakeSender struct {
	sentTo []string
	err    error
}

func (s *fakeSender) Send(_ context.Context, address, _, _ string) error {
	if s.err != nil {
		return s.err
	}
	s.sentTo = append(s.sentTo, address)
	return nil
}

func dispatchTaskBytes(t *testing.T, channel entity.NotificationChannel) []byte {
	t.Helper()
	body, err := json.Marshal(&service.DispatchTask{
		NotificationID: "notification-1",
		UserID:         "user-1",
		BookingID:      "booking-1",
		EventType:      entity.EventBookingConfirmation,
		Channel:        channel,
		Subject:        "Booking Confirmed",
		Message:        "Your booking has been received.",
	})
	require.NoError(t, err)
	return body
}

func TestHandleTaskDeliversEmail(t *testing.T) {
	sender := &fakeSender{}
	notifications := &recordingNotificationService{}
	w := NewDeliveryWorker(
		notifications,
		&fakeProfileRepo{profile: &entity.Profile{UserID: "user-1", Email: "user@example.com"}},
		map[entity.NotificationChannel]notifier.Sender{entity.ChannelEmail: sender},
		5*time.Second,
	)

	require.NoError(t, w.HandleTask(dispatchTaskBytes(t, entity.ChannelEmail)))

	assert.Equal(t, []string{"user@example.com"}, sender.sentTo)
	require.Len(t, notifications.outcomes, 1)
	assert.Equal(t, "notification-1", notifications.outcomes[0].notificationID)
	assert.True(t, notifications.outcomes[0].delivered)
	assert.Empty(t, notifications.outcomes[0].errorMessage)
}

func TestHandleTaskRecordsSendFailure(t *testing.T) {
	sender := &fakeSender{err: fmt.Errorf("gateway timeout")}
	notifications := &recordingNotificationService{}
	w := NewDeliveryWorker(
		notifications,
		&fakeProfileRepo{profile: &entity.Profile{UserID: "user-1", Email: "user@example.com"}},
		map[entity.NotificationChannel]notifier.Sender{entity.ChannelEmail: sender},
		5*time.Second,
	)

	require.NoError(t, w.HandleTask(dispatchTaskBytes(t, entity.ChannelEmail)))

	require.Len(t, notifications.outcomes, 1)
	assert.False(t, notifications.outcomes[0].delivered)
	assert.Contains(t, notifications.outcomes[0].errorMessage, "gateway timeout")
}

func TestHandleTaskMissingPhoneIsRecordedFailure(t *testing.T) {
	notifications := &recordingNotificationService{}
	w := NewDeliveryWorker(
		notifications,
		&fakeProfileRepo{profile: &entity.Profile{UserID: "user-1", Email: "user@example.com"}},
		map[entity.NotificationChannel]notifier.Sender{entity.ChannelSMS: &fakeSender{}},
		5*time.Second,
	)

	require.NoError(t, w.HandleTask(dispatchTaskBytes(t, entity.ChannelSMS)))

	require.Len(t, notifications.outcomes, 1)
	assert.False(t, notifications.outcomes[0].delivered)
	assert.Contains(t, notifications.outcomes[0].errorMessage, "no phone number")
}

func TestHandleTaskPushUsesUserID(t *testing.T) {
	sender := &fakeSender{}
	notifications := &recordingNotificationService{}
	w := NewDeliveryWorker(
		notifications,
		&fakeProfileRepo{},
		map[entity.NotificationChannel]notifier.Sender{entity.ChannelPush: sender},
		5*time.Second,
	)

	require.NoError(t, w.HandleTask(dispatchTaskBytes(t, entity.ChannelPush)))

	assert.Equal(t, []string{"user-1"}, sender.sentTo)
	require.Len(t, notifications.outcomes, 1)
	assert.True(t, notifications.outcomes[0].delivered)
}

func TestHandleTaskMalformedMessageIsDropped(t *testing.T) {
	notifications := &recordingNotificationService{}
	w := NewDeliveryWorker(notifications, &fakeProfileRepo{}, nil, 5*time.Second)

	require.NoError(t, w.HandleTask([]byte("not json")))

	assert.Empty(t, notifications.outcomes)
}
