package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarchuk/filesmanager/internal/apperr"
	"github.com/dmarchuk/filesmanager/internal/cache"
	"github.com/dmarchuk/filesmanager/internal/queue"
	"github.com/dmarchuk/filesmanager/internal/repository/memory"
	"github.com/dmarchuk/filesmanager/internal/session"
)

func newAuthService() (*AuthService, *queue.MockEnqueuer) {
	q := &queue.MockEnqueuer{}
	return NewAuthService(memory.NewUsers(), session.NewStore(cache.NewMemory()), q), q
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "secret")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	assert.EqualError(t, err, "Missing email")

	_, err = svc.Register(ctx, "bob@dylan.com", "")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	assert.EqualError(t, err, "Missing password")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "bob@dylan.com", "toto1234!")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "bob@dylan.com", "other")
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.EqualError(t, err, "Already exist")
}

func TestRegisterEnqueuesWelcomeJob(t *testing.T) {
	svc, q := newAuthService()

	user, err := svc.Register(context.Background(), "bob@dylan.com", "toto1234!")
	require.NoError(t, err)

	require.Len(t, q.Welcomes, 1)
	assert.Equal(t, user.ID.Hex(), q.Welcomes[0].UserID)
}

func TestLoginIssuesResolvableSession(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "bob@dylan.com", "toto1234!")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "bob@dylan.com", "toto1234!")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, err := svc.UserFromToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
	assert.Equal(t, "bob@dylan.com", resolved.Email)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "bob@dylan.com", "toto1234!")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "bob@dylan.com", "wrong")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = svc.Login(ctx, "nobody@dylan.com", "toto1234!")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestPasswordsAreStoredHashed(t *testing.T) {
	svc, _ := newAuthService()

	user, err := svc.Register(context.Background(), "bob@dylan.com", "toto1234!")
	require.NoError(t, err)

	assert.NotEqual(t, "toto1234!", user.Password)
	assert.True(t, VerifyPassword("toto1234!", user.Password))
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "bob@dylan.com", "toto1234!")
	require.NoError(t, err)
	token, err := svc.Login(ctx, "bob@dylan.com", "toto1234!")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))

	_, err = svc.UserFromToken(ctx, token)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	// A second logout with the dead token is rejected.
	assert.ErrorIs(t, svc.Logout(ctx, token), apperr.ErrUnauthorized)
}
