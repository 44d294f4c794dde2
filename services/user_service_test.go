package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fastcard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterCreatesPendingAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	view, err := env.users.Register(ctx, RegistrationRequest{
		Username: "alice",
		Email:    " A@X.com ",
		Password: "password1",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", view.Username)
	assert.Equal(t, "a@x.com", view.Email)
	assert.False(t, view.IsActivated)
	assert.Equal(t, models.RoleUser, view.Role)
	assert.Nil(t, view.BusinessCard)

	stored, err := env.db.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "password1", stored.Password)
	assert.True(t, env.hasher.Verify("password1", stored.Password))
	assert.NotEmpty(t, stored.ActivationLink)

	env.mailer.AssertCalled(t, "SendActivationMail", mock.Anything, "a@x.com", testLinkPrefix+stored.ActivationLink)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, password := range []string{"", "1234567", "short"} {
		_, err := env.users.Register(ctx, RegistrationRequest{
			Username: "alice",
			Email:    "a@x.com",
			Password: password,
		})
		assert.ErrorIs(t, err, ErrPasswordTooShort)
		assert.Equal(t, KindBadRequest, KindOf(err))
	}

	users, err := env.db.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
	env.mailer.AssertNotCalled(t, "SendActivationMail", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterRejectsTooLongPassword(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.Register(context.Background(), RegistrationRequest{
		Username: "alice",
		Email:    "a@x.com",
		Password: strings.Repeat("p", MaxPasswordLength+1),
	})
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.Register(ctx, RegistrationRequest{Username: "alice", Email: "not-an-email", Password: "password1"})
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = env.users.Register(ctx, RegistrationRequest{Username: "  ", Email: "a@x.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrInvalidUsername)
}

func TestRegisterConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.Register(ctx, RegistrationRequest{Username: "alice", Email: "a@x.com", Password: "password1"})
	require.NoError(t, err)

	_, err = env.users.Register(ctx, RegistrationRequest{Username: "alice", Email: "other@x.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.Equal(t, KindConflict, KindOf(err))

	_, err = env.users.Register(ctx, RegistrationRequest{Username: "bob", Email: "A@x.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, KindConflict, KindOf(err))

	users, err := env.db.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestRegisterMailFailureKeepsAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	failing := &mockMailer{}
	failing.On("SendActivationMail", mock.Anything, "a@x.com", mock.Anything).Return(errors.New("smtp down"))
	users := NewUserService(env.db, env.hasher, env.tokens, env.newActivation(failing))

	_, err := users.Register(ctx, RegistrationRequest{Username: "alice", Email: "a@x.com", Password: "password1"})
	require.Error(t, err)
	assert.Equal(t, KindInternal, KindOf(err))
	assert.NotContains(t, err.(*Error).Message, "smtp")

	_, err = env.db.GetUserByUsername(ctx, "alice")
	assert.NoError(t, err)
	failing.AssertExpectations(t)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.Register(ctx, RegistrationRequest{Username: "alice", Email: "a@x.com", Password: "password1"})
	require.NoError(t, err)

	_, err = env.users.Login(ctx, LoginRequest{Email: "nobody@x.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = env.users.Login(ctx, LoginRequest{Email: "a@x.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrIncorrectPassword)
	assert.Equal(t, KindUnauthorized, KindOf(err))

	_, err = env.users.Login(ctx, LoginRequest{Email: "a@x.com"})
	assert.Equal(t, KindBadRequest, KindOf(err))

	// вход не требует активации
	resp, err := env.users.Login(ctx, LoginRequest{Email: "A@x.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "USER", resp.Message)

	claims, err := env.tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.False(t, claims.IsActivated)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestActivateOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.Register(ctx, RegistrationRequest{Username: "alice", Email: "a@x.com", Password: "password1"})
	require.NoError(t, err)
	stored, err := env.db.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)

	view, err := env.users.Activate(ctx, stored.ActivationLink)
	require.NoError(t, err)
	assert.True(t, view.IsActivated)

	_, err = env.users.Activate(ctx, stored.ActivationLink)
	assert.ErrorIs(t, err, ErrAlreadyActivated)
	assert.Equal(t, KindBadRequest, KindOf(err))

	after, err := env.db.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, after.IsActivated)
	assert.Equal(t, stored.ActivationLink, after.ActivationLink)
}

func TestActivateUnknownLink(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.Activate(ctx, "missing")
	assert.ErrorIs(t, err, ErrActivationLinkNotFound)

	_, err = env.users.Activate(ctx, "")
	assert.ErrorIs(t, err, ErrActivationLinkNotFound)
}

func TestRefreshAndCheckToken(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice", models.RoleUser, true)

	resp, err := env.users.Refresh(claimsOf(user))
	require.NoError(t, err)
	assert.Equal(t, "GOOD", resp.Message)
	assert.NoError(t, env.users.CheckToken(resp.Token))

	assert.ErrorIs(t, env.users.CheckToken(""), ErrTokenRequired)

	err = env.users.CheckToken("not.a.token")
	assert.Equal(t, KindForbidden, KindOf(err))
}

func TestGetByIDAndList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice", models.RoleUser, true)
	env.createUser(t, "bob", models.RoleUser, false)
	card := env.createCard(t, alice, true)

	view, err := env.users.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, view.BusinessCard)
	assert.Equal(t, card.ID, view.BusinessCard.ID)

	_, err = env.users.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)

	views, err := env.users.List(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "alice", views[0].Username)
	assert.Equal(t, "bob", views[1].Username)
}

func TestRegisterMultibyteUsername(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	view, err := env.users.Register(ctx, RegistrationRequest{
		Username: strings.Repeat("и", 30),
		Email:    "cyr@x.com",
		Password: "password1",
	})
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("и", 30), view.Username)

	// граница в 50 символов, а не байт
	_, err = env.users.Register(ctx, RegistrationRequest{
		Username: strings.Repeat("ж", 50),
		Email:    "limit@x.com",
		Password: "password1",
	})
	require.NoError(t, err)

	_, err = env.users.Register(ctx, RegistrationRequest{
		Username: strings.Repeat("ж", 51),
		Email:    "over@x.com",
		Password: "password1",
	})
	assert.ErrorIs(t, err, ErrInvalidUsername)
}
