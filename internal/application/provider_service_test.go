package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/harshachandimal/vehicle-service-ecosystem/internal/domain"
	providerDomain "github.com/harshachandimal/vehicle-service-ecosystem/internal/domain/provider"
)

func newProviderFixture(t *testing.T) (*ProviderService, *fakeProviderRepo, uuid.UUID) {
	t.Helper()
	repo := newFakeProviderRepo()
	userID := uuid.New()

	profile, err := providerDomain.NewProfile(userID, "Joe's Garage", providerDomain.CategoryGarage, "12 High St", "Colombo", "Colombo", "", "REG-001")
	require.NoError(t, err)
	require.NoError(t, repo.SaveProfile(context.Background(), profile))

	return NewProviderService(repo, zap.NewNop()), repo, userID
}

func TestUpsertProfileUpdatesExisting(t *testing.T) {
	svc, _, userID := newProviderFixture(t)

	dto, err := svc.UpsertProfile(context.Background(), userID, UpdateProfileRequest{
		BusinessName: "Joe's Auto Care",
		Category:     "DETAILER",
	})
	require.NoError(t, err)

	assert.Equal(t, "Joe's Auto Care", dto.BusinessName)
	assert.Equal(t, "DETAILER", dto.Category)
	assert.Equal(t, "12 High St", dto.StreetAddress, "untouched fields survive")
}

func TestUpsertProfileCreatesWhenMissing(t *testing.T) {
	svc, repo, _ := newProviderFixture(t)

	// An account without a profile (registered outside the business flow)
	// gets one created on first PUT.
	newcomer := uuid.New()
	dto, err := svc.UpsertProfile(context.Background(), newcomer, UpdateProfileRequest{
		BusinessName: "Fresh Wheels",
		Category:     "CARRIER",
		City:         "Kandy",
	})
	require.NoError(t, err)
	assert.Equal(t, newcomer, dto.UserID)
	assert.Equal(t, "Fresh Wheels", dto.BusinessName)

	stored, err := repo.FindProfileByUserID(context.Background(), newcomer)
	require.NoError(t, err)
	assert.Equal(t, dto.ID, stored.ID())
}

func TestUpsertProfileCreateRequiresBusinessName(t *testing.T) {
	svc, _, _ := newProviderFixture(t)

	var ve *domain.ValidationError
	_, err := svc.UpsertProfile(context.Background(), uuid.New(), UpdateProfileRequest{Category: "GARAGE"})
	assert.ErrorAs(t, err, &ve)
}

func TestServiceCatalog(t *testing.T) {
	svc, _, userID := newProviderFixture(t)

	item, err := svc.AddService(context.Background(), userID, AddServiceRequest{
		Name: "Full service", PriceCents: 15000, Description: "includes oil and filters",
	})
	require.NoError(t, err)

	profile, err := svc.GetOwnProfile(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, profile.Services, 1)
	assert.Equal(t, item.ID, profile.Services[0].ID)

	// Public lookup serves the same catalog.
	public, err := svc.GetProfile(context.Background(), profile.ID)
	require.NoError(t, err)
	assert.Len(t, public.Services, 1)

	require.NoError(t, svc.RemoveService(context.Background(), userID, item.ID))

	profile, err = svc.GetOwnProfile(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, profile.Services)
}

func TestRemoveServiceOwnership(t *testing.T) {
	svc, repo, userID := newProviderFixture(t)

	item, err := svc.AddService(context.Background(), userID, AddServiceRequest{
		Name: "Wash", PriceCents: 2000,
	})
	require.NoError(t, err)

	// A second provider cannot remove the first one's catalog entry.
	otherID := uuid.New()
	otherProfile, err := providerDomain.NewProfile(otherID, "Rival Garage", providerDomain.CategoryGarage, "", "", "", "", "")
	require.NoError(t, err)
	require.NoError(t, repo.SaveProfile(context.Background(), otherProfile))

	var fe *domain.ForbiddenError
	err = svc.RemoveService(context.Background(), otherID, item.ID)
	assert.ErrorAs(t, err, &fe)
}

func TestAddServiceValidation(t *testing.T) {
	svc, _, userID := newProviderFixture(t)

	var ve *domain.ValidationError
	_, err := svc.AddService(context.Background(), userID, AddServiceRequest{
		Name: "Wash", PriceCents: -1,
	})
	assert.ErrorAs(t, err, &ve)
}
