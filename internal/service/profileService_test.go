package service

import (
	"context"
	"testing"

	"github.com/bookwise/bookwise/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfileRepo struct {
	profiles map[string]*entity.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*entity.Profile)}
}

func (r *fakeProfileRepo) Create(_ context.Context, p *entity.Profile) error {
	if _, ok := r.profiles[p.UserID]; ok {
		return nil
	}
	copied := *p
	r.profiles[p.UserID] = &copied
	return nil
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*entity.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, entity.ErrProfileNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProfileRepo) Update(_ context.Context, p *entity.Profile) error {
	copied := *p
	r.profiles[p.UserID] = &copied
	return nil
}

func TestGetProfileProvisionsOnFirstSight(t *testing.T) {
	profileRepo := newFakeProfileRepo()
	prefRepo := newFakePreferenceRepo()
	svc := NewProfileService(profileRepo, prefRepo, nil)
	actor := &entity.Identity{UserID: "user-1", Email: "user@example.com"}

	profile, err := svc.GetProfile(context.Background(), actor)

	require.NoError(t, err)
	assert.Equal(t, "user-1", profile.UserID)
	assert.Equal(t, "user@example.com", profile.Email)

	// Defaults were provisioned alongside the profile.
	prefs, err := prefRepo.GetByUserID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, prefs.EmailEnabled)
	assert.False(t, prefs.PromotionalOffers)
}

func TestGetPreferencesProvisionsDefaults(t *testing.T) {
	svc := NewProfileService(newFakeProfileRepo(), newFakePreferenceRepo(), nil)

	prefs, err := svc.GetPreferences(context.Background(), &entity.Identity{UserID: "user-1", Email: "user@example.com"})

	require.NoError(t, err)
	assert.Equal(t, "user-1", prefs.UserID)
	assert.True(t, prefs.BookingReminders)
	assert.False(t, prefs.SMSEnabled)
}

func TestUpdateProfile(t *testing.T) {
	profileRepo := newFakeProfileRepo()
	svc := NewProfileService(profileRepo, newFakePreferenceRepo(), nil)
	actor := &entity.Identity{UserID: "user-1", Email: "user@example.com"}

	profile, err := svc.UpdateProfile(context.Background(), actor, &UpdateProfileRequest{
		FullName: "Ada Lovelace",
		Phone:    "+15550100",
	})

	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", profile.FullName)
	assert.Equal(t, "+15550100", profile.Phone)

	stored, err := profileRepo.GetByUserID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", stored.FullName)
}

func TestUpdatePreferences(t *testing.T) {
	prefRepo := newFakePreferenceRepo()
	svc := NewProfileService(newFakeProfileRepo(), prefRepo, nil)
	actor := &entity.Identity{UserID: "user-1", Email: "user@example.com"}

	prefs, err := svc.UpdatePreferences(context.Background(), actor, &UpdatePreferencesRequest{
		EmailEnabled:         false,
		SMSEnabled:           true,
		PushEnabled:          false,
		BookingConfirmations: true,
		BookingCancellations: false,
		BookingReminders:     true,
		PromotionalOffers:    true,
	})

	require.NoError(t, err)
	assert.False(t, prefs.EmailEnabled)
	assert.True(t, prefs.SMSEnabled)
	assert.True(t, prefs.PromotionalOffers)

	stored, err := prefRepo.GetByUserID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, stored.SMSEnabled)
	assert.False(t, stored.BookingCancellations)
}

func TestProfileOperationsRequireAuth(t *testing.T) {
	svc := NewProfileService(newFakeProfileRepo(), newFakePreferenceRepo(), nil)

	_, err := svc.GetProfile(context.Background(), nil)
	assert.ErrorIs(t, err, entity.ErrAuthenticationRequired)

	_, err = svc.GetPreferences(context.Background(), &entity.Identity{})
	assert.ErrorIs(t, err, entity.ErrAuthenticationRequired)
}
