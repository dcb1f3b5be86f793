package services_test

import (
	"context"
	"testing"
	"time"

	"vinspect/internal/config"
	"vinspect/internal/models"
	"vinspect/internal/services"
	"vinspect/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type authFixture struct {
	service       services.AuthService
	inspectorRepo *fakeInspectorRepo
	cache         *fakeCache
	security      *config.SecurityConfig
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	inspectorRepo := newFakeInspectorRepo()
	cache := newFakeCache()
	security := &config.SecurityConfig{
		JWTSecret:         "test-secret",
		PasswordMinLength: 8,
		MaxLoginAttempts:  3,
		LoginLockoutTime:  15 * time.Minute,
	}

	return &authFixture{
		service:       services.NewAuthService(inspectorRepo, cache, security, newTestLogger()),
		inspectorRepo: inspectorRepo,
		cache:         cache,
		security:      security,
	}
}

func (f *authFixture) register(t *testing.T) *services.AuthResponse {
	t.Helper()
	response, err := f.service.RegisterInspector(context.Background(), &services.RegisterInspectorRequest{
		Email:         "Paula.Reyes@vinspect.test",
		FirstName:     "Paula",
		LastName:      "Reyes",
		Password:      "s3cret-pass",
		Role:          models.InspectorRoleSenior,
		LicenseNumber: "lic-2002",
	})
	require.NoError(t, err)
	return response
}

// TestRegisterInspector_normalizesAndIssuesTokens verifies registration
// canonicalizes lookup keys and returns a usable token pair.
func TestRegisterInspector_normalizesAndIssuesTokens(t *testing.T) {
	fixture := newAuthFixture(t)

	response := fixture.register(t)

	assert.Equal(t, "paula.reyes@vinspect.test", response.Inspector.Email)
	assert.Equal(t, "LIC-2002", response.Inspector.LicenseNumber)
	assert.Equal(t, "Bearer", response.TokenType)
	require.NotEmpty(t, response.AccessToken)

	claims, err := fixture.service.ValidateToken(context.Background(), response.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, response.Inspector.ID, claims.UserID)
	assert.Equal(t, string(models.InspectorRoleSenior), claims.Role)
}

func TestRegisterInspector_duplicateEmailConflict(t *testing.T) {
	fixture := newAuthFixture(t)
	fixture.register(t)

	_, err := fixture.service.RegisterInspector(context.Background(), &services.RegisterInspectorRequest{
		Email:         "paula.reyes@vinspect.test",
		FirstName:     "Paula",
		LastName:      "Duplicate",
		Password:      "another-pass",
		Role:          models.InspectorRoleJunior,
		LicenseNumber: "LIC-3003",
	})

	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.ErrorKindConflict))
}

func TestLogin_success(t *testing.T) {
	fixture := newAuthFixture(t)
	fixture.register(t)

	response, err := fixture.service.Login(context.Background(), &services.LoginRequest{
		Email:    "PAULA.REYES@vinspect.test",
		Password: "s3cret-pass",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, response.AccessToken)
	assert.NotEmpty(t, response.RefreshToken)
}

func TestLogin_wrongPassword(t *testing.T) {
	fixture := newAuthFixture(t)
	fixture.register(t)

	_, err := fixture.service.Login(context.Background(), &services.LoginRequest{
		Email:    "paula.reyes@vinspect.test",
		Password: "wrong-pass",
	})

	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.ErrorKindUnauthorized))
	assert.Contains(t, err.Error(), utils.ErrInvalidCredentials)
}

// TestLogin_lockoutAfterRepeatedFailures verifies the account locks after the
// configured number of failed attempts, and stays locked even with the
// correct password.
func TestLogin_lockoutAfterRepeatedFailures(t *testing.T) {
	fixture := newAuthFixture(t)
	fixture.register(t)

	for i := 0; i < fixture.security.MaxLoginAttempts; i++ {
		_, err := fixture.service.Login(context.Background(), &services.LoginRequest{
			Email:    "paula.reyes@vinspect.test",
			Password: "wrong-pass",
		})
		require.Error(t, err)
	}

	_, err := fixture.service.Login(context.Background(), &services.LoginRequest{
		Email:    "paula.reyes@vinspect.test",
		Password: "s3cret-pass",
	})

	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.ErrorKindUnauthorized))
	assert.Contains(t, err.Error(), utils.ErrAccountLocked)
}

func TestLogin_inactiveInspectorRejected(t *testing.T) {
	fixture := newAuthFixture(t)
	response := fixture.register(t)

	_, err := fixture.service.SetInspectorStatus(context.Background(), response.Inspector.ID, models.InspectorStatusInactive)
	require.NoError(t, err)

	_, err = fixture.service.Login(context.Background(), &services.LoginRequest{
		Email:    "paula.reyes@vinspect.test",
		Password: "s3cret-pass",
	})

	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.ErrorKindUnauthorized))
}

// TestLogout_revokesToken verifies a logged-out access token stops validating
// even though its signature and expiry are still good.
func TestLogout_revokesToken(t *testing.T) {
	fixture := newAuthFixture(t)
	response := fixture.register(t)

	_, err := fixture.service.ValidateToken(context.Background(), response.AccessToken)
	require.NoError(t, err)

	require.NoError(t, fixture.service.Logout(context.Background(), response.AccessToken))

	_, err = fixture.service.ValidateToken(context.Background(), response.AccessToken)
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.ErrorKindUnauthorized))
}

func TestRefreshToken_issuesNewPair(t *testing.T) {
	fixture := newAuthFixture(t)
	response := fixture.register(t)

	pair, err := fixture.service.RefreshToken(context.Background(), response.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	_, err = fixture.service.RefreshToken(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.ErrorKindUnauthorized))
}

func TestChangePassword_flow(t *testing.T) {
	fixture := newAuthFixture(t)
	response := fixture.register(t)

	err := fixture.service.ChangePassword(context.Background(), response.Inspector.ID, &services.ChangePasswordRequest{
		CurrentPassword: "wrong-pass",
		NewPassword:     "brand-new-pass",
	})
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.ErrorKindUnauthorized))

	err = fixture.service.ChangePassword(context.Background(), response.Inspector.ID, &services.ChangePasswordRequest{
		CurrentPassword: "s3cret-pass",
		NewPassword:     "brand-new-pass",
	})
	require.NoError(t, err)

	_, err = fixture.service.Login(context.Background(), &services.LoginRequest{
		Email:    "paula.reyes@vinspect.test",
		Password: "brand-new-pass",
	})
	require.NoError(t, err)
}

func TestUpdateInspectorRole_invalidRole(t *testing.T) {
	fixture := newAuthFixture(t)
	response := fixture.register(t)

	_, err := fixture.service.UpdateInspectorRole(context.Background(), response.Inspector.ID, models.InspectorRole("intern"))
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.ErrorKindValidation))

	updated, err := fixture.service.UpdateInspectorRole(context.Background(), response.Inspector.ID, models.InspectorRoleSupervisor)
	require.NoError(t, err)
	assert.True(t, updated.CanSupervise())
}

func TestGetInspector_notFound(t *testing.T) {
	fixture := newAuthFixture(t)

	_, err := fixture.service.GetInspector(context.Background(), primitive.NewObjectID())
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.ErrorKindNotFound))
}
