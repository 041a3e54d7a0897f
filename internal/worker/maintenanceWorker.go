package worker

import (
	"context"
	"time"

	repository "github.com/bookwise/bookwise/internal/database/postgres"
	"github.com/bookwise/bookwise/internal/entity"
	"github.com/bookwise/bookwise/internal/service"

	"github.com/sirupsen/logrus"
)

// BookingMaintenanceWorker is the timer collaborator behind reminders and
// completion. Each tick it fires booking_reminder intents for confirmed
// bookings inside the reminder window and completes confirmed bookings whose
// slot has ended.
type BookingMaintenanceWorker struct {
	bookings       service.BookingService
	notifications  service.NotificationService
	bookingRepo    repository.BookingRepository
	notifRepo      repository.NotificationRepository
	interval       time.Duration
	reminderWindow time.Duration
}

func NewBookingMaintenanceWorker(
	bookings service.BookingService,
	notifications service.NotificationService,
	bookingRepo repository.BookingRepository,
	notifRepo repository.NotificationRepository,
	interval time.Duration,
	reminderWindow time.Duration,
) *BookingMaintenanceWorker {
	return &BookingMaintenanceWorker{
		bookings:       bookings,
		notifications:  notifications,
		bookingRepo:    bookingRepo,
		notifRepo:      notifRepo,
		interval:       interval,
		reminderWindow: reminderWindow,
	}
}

func (w *BookingMaintenanceWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Info("Booking maintenance worker started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Booking maintenance worker stopped")
			return
		case <-ticker.C:
			w.runReminderPass(ctx)
			w.runCompletionPass(ctx)
		}
	}
}

// runReminderPass enqueues reminder intents for upcoming confirmed bookings.
// The dispatch log is the de-duplication source: a booking that already has a
// booking_reminder record is skipped.
func (w *BookingMaintenanceWorker) runReminderPass(ctx context.Context) {
	now := time.Now()
	upcoming, err := w.bookingRepo.GetConfirmedStartingBetween(ctx, now, now.Add(w.reminderWindow))
	if err != nil {
		logrus.Errorf("Failed to query upcoming bookings: %v", err)
		return
	}

	sent := 0
	for _, booking := range upcoming {
		select {
		case <-ctx.Done():
			return
		default:
		}

		exists, err := w.notifRepo.ExistsForBookingEvent(ctx, booking.ID, entity.EventBookingReminder)
		if err != nil {
			logrus.Errorf("Failed to check reminder state for booking %s: %v", booking.ID, err)
			continue
		}
		if exists {
			continue
		}

		if err := w.notifications.NotifyBookingEvent(ctx, booking, entity.EventBookingReminder); err != nil {
			logrus.Errorf("Failed to enqueue reminder for booking %s: %v", booking.ID, err)
			continue
		}
		sent++
	}

	if sent > 0 {
		logrus.Infof("Reminder pass enqueued %d reminders", sent)
	}
}

// runCompletionPass moves confirmed bookings whose slot ended to completed.
func (w *BookingMaintenanceWorker) runCompletionPass(ctx context.Context) {
	ended, err := w.bookingRepo.GetConfirmedEndedBefore(ctx, time.Now())
	if err != nil {
		logrus.Errorf("Failed to query ended bookings: %v", err)
		return
	}

	completed := 0
	for _, booking := range ended {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := w.bookings.Complete(ctx, booking.ID); err != nil {
			// A lost race (cancelled in the meantime) is fine; anything else
			// is worth a log line.
			if err != entity.ErrInvalidTransition {
				logrus.Errorf("Failed to complete booking %s: %v", booking.ID, err)
			}
			continue
		}
		completed++
	}

	if completed > 0 {
		logrus.Infof("Completion pass finished %d bookings", completed)
	}
}
