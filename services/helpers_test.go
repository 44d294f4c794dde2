package services

import (
	"context"
	"strconv"
	"testing"
	"time"

	"fastcard/database"
	"fastcard/database/dbtest"
	"fastcard/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testLinkPrefix = "http://localhost:8080/api/v1/user/activate/"

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendActivationMail(ctx context.Context, to, link string) error {
	args := m.Called(ctx, to, link)
	return args.Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendApplication(ctx context.Context, fullName, phoneNumber, username string) error {
	args := m.Called(ctx, fullName, phoneNumber, username)
	return args.Error(0)
}

type testEnv struct {
	db           *database.Database
	mailer       *mockMailer
	notifier     *mockNotifier
	hasher       *PasswordHasher
	tokens       *TokenService
	users        *UserService
	cards        *CardService
	applications *ApplicationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		db:       dbtest.New(t),
		mailer:   &mockMailer{},
		notifier: &mockNotifier{},
		hasher:   NewPasswordHasher(bcrypt.MinCost),
		tokens:   NewTokenService("test-secret", 48*time.Hour),
	}
	env.mailer.On("SendActivationMail", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	env.notifier.On("SendApplication", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	env.users = NewUserService(env.db, env.hasher, env.tokens, env.newActivation(env.mailer))
	env.cards = NewCardService(env.db, func(id uint) string {
		return "http://localhost:8080/api/v1/business-cards/" + uitoa(id)
	})
	env.applications = NewApplicationService(env.db, env.notifier, "RU")
	return env
}

func (env *testEnv) newActivation(mailer ActivationMailer) *ActivationWorkflow {
	return NewActivationWorkflow(env.db, mailer, func(link string) string {
		return testLinkPrefix + link
	})
}

// createUser сохраняет пользователя напрямую, минуя регистрацию
func (env *testEnv) createUser(t *testing.T, username string, role models.Role, activated bool) *models.User {
	t.Helper()

	hash, err := env.hasher.Hash("password1")
	require.NoError(t, err)

	user := &models.User{
		Username:       username,
		Email:          username + "@x.com",
		Password:       hash,
		ActivationLink: uuid.NewString(),
		IsActivated:    activated,
		Role:           role,
	}
	require.NoError(t, env.db.CreateUser(context.Background(), user))
	return user
}

func (env *testEnv) createCard(t *testing.T, owner *models.User, activated bool) *models.BusinessCard {
	t.Helper()

	card := &models.BusinessCard{
		UserID:      owner.ID,
		HTML:        "<h1>" + owner.Username + "</h1>",
		CSS:         "h1 { color: red; }",
		IsActivated: activated,
	}
	require.NoError(t, env.db.DB.WithContext(context.Background()).Create(card).Error)
	return card
}

func claimsOf(user *models.User) *Claims {
	claims := ClaimsFor(user)
	return &claims
}

func uitoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
