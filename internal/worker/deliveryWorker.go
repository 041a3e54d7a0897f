package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	repository "github.com/bookwise/bookwise/internal/database/postgres"
	"github.com/bookwise/bookwise/internal/entity"
	"github.com/bookwise/bookwise/internal/service"
	"github.com/bookwise/bookwise/pkg/notifier"

	"github.com/sirupsen/logrus"
)

// DeliveryWorker consumes dispatch tasks and performs the actual channel
// sends. Delivery is off the lifecycle's critical path: whatever happens here
// is written to the dispatch record and goes no further.
type DeliveryWorker struct {
	notifications service.NotificationService
	profileRepo   repository.ProfileRepository
	senders       map[entity.NotificationChannel]notifier.Sender
	sendTimeout   time.Duration
}

func NewDeliveryWorker(
	notifications service.NotificationService,
	profileRepo repository.ProfileRepository,
	senders map[entity.NotificationChannel]notifier.Sender,
	sendTimeout time.Duration,
) *DeliveryWorker {
	return &DeliveryWorker{
		notifications: notifications,
		profileRepo:   profileRepo,
		senders:       senders,
		sendTimeout:   sendTimeout,
	}
}

// HandleTask processes one queued dispatch task. The returned error is always
// nil: a failed send is a recorded outcome, not a message to be retried by
// the broker.
func (w *DeliveryWorker) HandleTask(message []byte) error {
	var task service.DispatchTask
	if err := json.Unmarshal(message, &task); err != nil {
		logrus.Errorf("Failed to decode dispatch task: %v", err)
		return nil // malformed, do not requeue
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.sendTimeout)
	defer cancel()

	err := w.deliver(ctx, &task)

	delivered := err == nil
	errorMessage := ""
	if err != nil {
		errorMessage = err.Error()
		logrus.WithFields(logrus.Fields{
			"notification_id": task.NotificationID,
			"channel":         task.Channel,
		}).Warnf("Delivery failed: %v", err)
	}

	recordCtx, recordCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer recordCancel()
	if err := w.notifications.RecordDeliveryResult(recordCtx, task.NotificationID, delivered, errorMessage); err != nil {
		logrus.Errorf("Failed to record delivery result for notification %s: %v", task.NotificationID, err)
	}

	return nil
}

func (w *DeliveryWorker) deliver(ctx context.Context, task *service.DispatchTask) error {
	sender, ok := w.senders[task.Channel]
	if !ok {
		return fmt.Errorf("no sender configured for channel %s", task.Channel)
	}

	address, err := w.resolveAddress(ctx, task)
	if err != nil {
		return err
	}

	return sender.Send(ctx, address, task.Subject, task.Message)
}

// resolveAddress picks the contact point for the channel from the user's
// profile. Push delivery is keyed by user id; the gateway owns the device
// token mapping.
func (w *DeliveryWorker) resolveAddress(ctx context.Context, task *service.DispatchTask) (string, error) {
	switch task.Channel {
	case entity.ChannelPush:
		return task.UserID, nil
	case entity.ChannelEmail, entity.ChannelSMS:
		profile, err := w.profileRepo.GetByUserID(ctx, task.UserID)
		if err != nil {
			return "", fmt.Errorf("failed to load profile for user %s: %w", task.UserID, err)
		}
		if task.Channel == entity.ChannelEmail {
			if profile.Email == "" {
				return "", fmt.Errorf("no email address on file for user %s", task.UserID)
			}
			return profile.Email, nil
		}
		if profile.Phone == "" {
			return "", fmt.Errorf("no phone number on file for user %s", task.UserID)
		}
		return profile.Phone, nil
	default:
		return "", fmt.Errorf("unknown channel %s", task.Channel)
	}
}
