package services

import (
	"context"
	"testing"

	"github.com/anietieasuquo/vending-machine/internal/adapters/persistence/models"
	"github.com/anietieasuquo/vending-machine/internal/config"
	"github.com/anietieasuquo/vending-machine/internal/core/domain"
	"github.com/anietieasuquo/vending-machine/internal/pkg/jwt"
	"github.com/anietieasuquo/vending-machine/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(store *fakeStore) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.AccessTokenMins = 15
	return NewAuthService(
		&fakeUserRepository{store: store},
		&fakeRoleRepository{store: store},
		cfg,
	)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	role := store.addRole(models.Role{Name: "Buyer"})
	hashed, err := password.Hash("secret1")
	require.NoError(t, err)
	user := store.addUser(models.User{Username: "alice01", Password: hashed, RoleID: role.ID})
	service := newAuthService(store)

	out, err := service.Login(context.Background(), &LoginInput{Username: "alice01", Password: "secret1"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer", out.TokenType)
	assert.Equal(t, 15*60, out.ExpiresIn)
	require.NotNil(t, out.User)
	assert.Equal(t, user.ID, out.User.ID)

	claims, err := jwt.ValidateAccessToken(out.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice01", claims.Username)
	assert.Equal(t, "Buyer", claims.Role)
	assert.False(t, claims.IsAdmin)
}

func TestLoginAdminClaim(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	role := store.addRole(models.Role{Name: "Admin", IsAdmin: true})
	hashed, err := password.Hash("secret1")
	require.NoError(t, err)
	store.addUser(models.User{Username: "admin01", Password: hashed, RoleID: role.ID, IsAdmin: true})
	service := newAuthService(store)

	out, err := service.Login(context.Background(), &LoginInput{Username: "admin01", Password: "secret1"})
	require.NoError(t, err)

	claims, err := jwt.ValidateAccessToken(out.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
}

func TestLoginRejections(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	role := store.addRole(models.Role{Name: "Buyer"})
	hashed, err := password.Hash("secret1")
	require.NoError(t, err)
	store.addUser(models.User{Username: "alice01", Password: hashed, RoleID: role.ID})
	service := newAuthService(store)
	ctx := context.Background()

	_, err = service.Login(ctx, &LoginInput{Username: "", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = service.Login(ctx, &LoginInput{Username: "alice01", Password: ""})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// Unknown user and wrong password are indistinguishable to the caller
	_, err = service.Login(ctx, &LoginInput{Username: "ghost", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrAuthentication)

	_, err = service.Login(ctx, &LoginInput{Username: "alice01", Password: "wrong-pass"})
	assert.ErrorIs(t, err, domain.ErrAuthentication)
}
