package service

import (
	"context"
	"fmt"

	repository "github.com/bookwise/bookwise/internal/database/postgres"
	redisdb "github.com/bookwise/bookwise/internal/database/redis"
	"github.com/bookwise/bookwise/internal/entity"

	"github.com/sirupsen/logrus"
)

type profileService struct {
	profileRepo    repository.ProfileRepository
	preferenceRepo repository.PreferenceRepository
	cache          *redisdb.CacheRepository
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(
	profileRepo repository.ProfileRepository,
	preferenceRepo repository.PreferenceRepository,
	cache *redisdb.CacheRepository,
) ProfileService {
	return &profileService{
		profileRepo:    profileRepo,
		preferenceRepo: preferenceRepo,
		cache:          cache,
	}
}

// provision creates the profile row and default preferences the first time an
// identity shows up. Both inserts are idempotent.
func (s *profileService) provision(ctx context.Context, actor *entity.Identity) error {
	profile := &entity.Profile{
		UserID: actor.UserID,
		Email:  actor.Email,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return err
	}
	return s.preferenceRepo.Create(ctx, entity.DefaultPreferences(actor.UserID))
}

func (s *profileService) GetProfile(ctx context.Context, actor *entity.Identity) (*entity.Profile, error) {
	if actor == nil || actor.UserID == "" {
		return nil, entity.ErrAuthenticationRequired
	}

	profile, err := s.profileRepo.GetByUserID(ctx, actor.UserID)
	if err == entity.ErrProfileNotFound {
		if err := s.provision(ctx, actor); err != nil {
			return nil, fmt.Errorf("failed to provision profile: %w", err)
		}
		return s.profileRepo.GetByUserID(ctx, actor.UserID)
	}
	return profile, err
}

func (s *profileService) UpdateProfile(ctx context.Context, actor *entity.Identity, req *UpdateProfileRequest) (*entity.Profile, error) {
	profile, err := s.GetProfile(ctx, actor)
	if err != nil {
		return nil, err
	}

	profile.FullName = req.FullName
	profile.Phone = req.Phone
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	logrus.WithField("user_id", actor.UserID).Info("Profile updated")
	return profile, nil
}

func (s *profileService) GetPreferences(ctx context.Context, actor *entity.Identity) (*entity.NotificationPreferences, error) {
	if actor == nil || actor.UserID == "" {
		return nil, entity.ErrAuthenticationRequired
	}

	prefs, err := s.preferenceRepo.GetByUserID(ctx, actor.UserID)
	if err == entity.ErrPreferencesNotFound {
		if err := s.provision(ctx, actor); err != nil {
			return nil, fmt.Errorf("failed to provision preferences: %w", err)
		}
		return s.preferenceRepo.GetByUserID(ctx, actor.UserID)
	}
	return prefs, err
}

func (s *profileService) UpdatePreferences(ctx context.Context, actor *entity.Identity, req *UpdatePreferencesRequest) (*entity.NotificationPreferences, error) {
	prefs, err := s.GetPreferences(ctx, actor)
	if err != nil {
		return nil, err
	}

	prefs.EmailEnabled = req.EmailEnabled
	prefs.SMSEnabled = req.SMSEnabled
	prefs.PushEnabled = req.PushEnabled
	prefs.BookingConfirmations = req.BookingConfirmations
	prefs.BookingCancellations = req.BookingCancellations
	prefs.BookingReminders = req.BookingReminders
	prefs.PromotionalOffers = req.PromotionalOffers

	if err := s.preferenceRepo.Update(ctx, prefs); err != nil {
		return nil, err
	}

	// The gate must see the new flags on the next event.
	if s.cache != nil {
		if err := s.cache.DeletePreferences(ctx, actor.UserID); err != nil {
			logrus.Debugf("Failed to invalidate preference cache for user %s: %v", actor.UserID, err)
		}
	}

	logrus.WithField("user_id", actor.UserID).Info("Notification preferences updated")
	return prefs, nil
}
