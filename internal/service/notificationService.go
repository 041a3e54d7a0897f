package service

import (
	"context"
	"fmt"

	repository "github.com/bookwise/bookwise/internal/database/postgres"
	redisdb "github.com/bookwise/bookwise/internal/database/redis"
	"github.com/bookwise/bookwise/internal/entity"

	"github.com/sirupsen/logrus"
)

type notificationService struct {
	notificationRepo repository.NotificationRepository
	preferenceRepo   repository.PreferenceRepository
	cache            *redisdb.CacheRepository
	queue            TaskPublisher
}

// NewNotificationService creates a new NotificationService instance. Cache and
// queue may be nil; capture then degrades to direct repository writes with the
// records left for a later delivery attempt.
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	preferenceRepo repository.PreferenceRepository,
	cache *redisdb.CacheRepository,
	queue TaskPublisher,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		preferenceRepo:   preferenceRepo,
		cache:            cache,
		queue:            queue,
	}
}

// loadPreferences reads the user's flags, cache first. A user who has never
// touched preferences gets the defaults.
func (s *notificationService) loadPreferences(ctx context.Context, userID string) (*entity.NotificationPreferences, error) {
	if s.cache != nil {
		if prefs, err := s.cache.GetPreferences(ctx, userID); err == nil {
			return prefs, nil
		}
	}

	prefs, err := s.preferenceRepo.GetByUserID(ctx, userID)
	if err == entity.ErrPreferencesNotFound {
		return entity.DefaultPreferences(userID), nil
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetPreferences(ctx, prefs); err != nil {
			logrus.Debugf("Failed to cache preferences for user %s: %v", userID, err)
		}
	}
	return prefs, nil
}

// NotifyBookingEvent captures dispatch intents for a booking event. One
// record per approved channel, delivered=false, then a queue task per record.
// An empty channel set writes nothing.
func (s *notificationService) NotifyBookingEvent(ctx context.Context, booking *entity.Booking, event entity.NotificationEvent) error {
	prefs, err := s.loadPreferences(ctx, booking.UserID)
	if err != nil {
		return fmt.Errorf("failed to load notification preferences: %w", err)
	}

	channels := prefs.ApprovedChannels(event)
	if len(channels) == 0 {
		return nil
	}

	subject, message := composeBookingMessage(booking, event)
	return s.capture(ctx, booking.UserID, booking.ID, event, channels, subject, message)
}

// SendPromotion runs a promotional_offer through the gate. Promotions are
// opt-in; the default flags suppress them entirely.
func (s *notificationService) SendPromotion(ctx context.Context, userID, subject, message string) error {
	prefs, err := s.loadPreferences(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load notification preferences: %w", err)
	}

	channels := prefs.ApprovedChannels(entity.EventPromotionalOffer)
	if len(channels) == 0 {
		return nil
	}

	return s.capture(ctx, userID, "", entity.EventPromotionalOffer, channels, subject, message)
}

func (s *notificationService) capture(
	ctx context.Context,
	userID, bookingID string,
	event entity.NotificationEvent,
	channels []entity.NotificationChannel,
	subject, message string,
) error {
	for _, channel := range channels {
		record := &entity.Notification{
			UserID:    userID,
			BookingID: bookingID,
			EventType: event,
			Channel:   channel,
			Subject:   subject,
			Message:   message,
		}

		if err := s.notificationRepo.Create(ctx, record); err != nil {
			// A failed record on one channel must not block the others.
			logrus.Errorf("Failed to record %s notification for user %s: %v", channel, userID, err)
			continue
		}

		if s.queue == nil {
			continue
		}

		task := &DispatchTask{
			NotificationID: record.ID,
			UserID:         userID,
			BookingID:      bookingID,
			EventType:      event,
			Channel:        channel,
			Subject:        subject,
			Message:        message,
		}
		if err := s.queue.Publish(ctx, task); err != nil {
			logrus.Errorf("Failed to enqueue %s delivery for notification %s: %v", channel, record.ID, err)
		}
	}
	return nil
}

// RecordDeliveryResult writes the outcome of one delivery attempt.
func (s *notificationService) RecordDeliveryResult(ctx context.Context, notificationID string, delivered bool, errorMessage string) error {
	return s.notificationRepo.SetDeliveryResult(ctx, notificationID, delivered, errorMessage)
}

func (s *notificationService) GetUserNotifications(ctx context.Context, actor *entity.Identity) ([]*entity.Notification, error) {
	if actor == nil || actor.UserID == "" {
		return nil, entity.ErrAuthenticationRequired
	}
	return s.notificationRepo.GetByUserID(ctx, actor.UserID)
}

func composeBookingMessage(booking *entity.Booking, event entity.NotificationEvent) (subject, message string) {
	when := booking.BookingDate.Format("Jan 2, 2006 at 3:04 PM")

	switch event {
	case entity.EventBookingConfirmation:
		subject = "Booking Confirmed"
		message = fmt.Sprintf("Your booking for %s on %s (%d minutes) has been received.",
			booking.ServiceName, when, booking.DurationMinutes)
	case entity.EventBookingCancellation:
		subject = "Booking Cancelled"
		message = fmt.Sprintf("Your booking for %s on %s has been cancelled.",
			booking.ServiceName, when)
	case entity.EventBookingReminder:
		subject = "Upcoming Booking Reminder"
		message = fmt.Sprintf("Reminder: your booking for %s is scheduled on %s.",
			booking.ServiceName, when)
	default:
		subject = "Notification"
		message = fmt.Sprintf("Update for your booking %s.", booking.ID)
	}
	return subject, message
}
