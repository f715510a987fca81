package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentnest/server/internal/database"
	"rentnest/server/internal/models"
)

func newTestService(t *testing.T, revoked RevocationStore) *Service {
	t.Helper()

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations())

	logger := logrus.New()
	return NewService(db, "test-secret", time.Hour, revoked, logger)
}

func TestSignUpAndSignIn(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	account, err := svc.SignUp(ctx, "anna@example.com", "hunter22", "Anna", models.RoleLandlord)
	require.NoError(t, err)
	assert.Equal(t, models.RoleLandlord, account.Role)
	assert.Equal(t, models.VerificationNotStarted, account.VerificationStatus)
	assert.NotEqual(t, "hunter22", account.PasswordHash)

	token, signedIn, err := svc.SignIn(ctx, "anna@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, account.ID, signedIn.ID)
	assert.NotEmpty(t, token)

	_, _, err = svc.SignIn(ctx, "anna@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.SignIn(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignUp_Rejections(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "anna@example.com", "pw", "Anna", "superuser")
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = svc.SignUp(ctx, "anna@example.com", "pw", "Anna", models.RoleTenant)
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, "anna@example.com", "pw2", "Other Anna", models.RoleLandlord)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestBootstrap_FailsOpenToLoggedOut(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	assert.Nil(t, svc.Bootstrap(ctx, ""))
	assert.Nil(t, svc.Bootstrap(ctx, "not-a-token"))

	// token signed with a different secret
	other := NewService(nil, "other-secret", time.Hour, nil, logrus.New())
	foreign, err := other.mintToken("some-account")
	require.NoError(t, err)
	assert.Nil(t, svc.Bootstrap(ctx, foreign))
}

func TestBootstrap_ResolvesAccount(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	account, err := svc.SignUp(ctx, "tim@example.com", "pw", "Tim", models.RoleTenant)
	require.NoError(t, err)
	token, _, err := svc.SignIn(ctx, "tim@example.com", "pw")
	require.NoError(t, err)

	got := svc.Bootstrap(ctx, token)
	require.NotNil(t, got)
	assert.Equal(t, account.ID, got.ID)
}

func TestSignOut_RevokesToken(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisRevocationStoreWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	svc := newTestService(t, store)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "eva@example.com", "pw", "Eva", models.RoleTenant)
	require.NoError(t, err)
	token, _, err := svc.SignIn(ctx, "eva@example.com", "pw")
	require.NoError(t, err)

	require.NotNil(t, svc.Bootstrap(ctx, token))
	svc.SignOut(ctx, token)
	assert.Nil(t, svc.Bootstrap(ctx, token), "revoked token must read as logged out")

	// second sign-in mints a fresh, unrevoked token
	token2, _, err := svc.SignIn(ctx, "eva@example.com", "pw")
	require.NoError(t, err)
	assert.NotNil(t, svc.Bootstrap(ctx, token2))
}
