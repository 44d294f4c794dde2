package seeders

import (
	"context"
	"testing"

	"fastcard/database"
	"fastcard/database/dbtest"
	"fastcard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

var admin = AdminAccount{Username: "root", Email: "root@x.com", Password: "supersecret"}

func TestSeedAdminCreatesActivatedAdmin(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	require.NoError(t, SeedAdmin(ctx, db, plainHasher{}, admin))

	user, err := db.GetUserByUsername(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.True(t, user.IsActivated)
	assert.Equal(t, "hashed:supersecret", user.Password)

	// повторный запуск ничего не меняет
	require.NoError(t, SeedAdmin(ctx, db, plainHasher{}, admin))
	users, err := db.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestSeedAdminPromotesOwnAccount(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	require.NoError(t, db.CreateUser(ctx, &models.User{
		Username:       "root",
		Email:          "root@x.com",
		Password:       "old-hash",
		ActivationLink: "link",
	}))

	require.NoError(t, SeedAdmin(ctx, db, plainHasher{}, admin))

	user, err := db.GetUserByUsername(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.True(t, user.IsActivated)
	// пароль берется из конфигурации
	assert.Equal(t, "hashed:supersecret", user.Password)
}

func TestSeedAdminRefusesForeignAccount(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	// username администратора заранее занял обычный пользователь
	require.NoError(t, db.CreateUser(ctx, &models.User{
		Username:       "root",
		Email:          "evil@x.com",
		Password:       "attacker-hash",
		ActivationLink: "link",
	}))

	err := SeedAdmin(ctx, db, plainHasher{}, admin)
	assert.ErrorIs(t, err, ErrAdminUsernameTaken)

	user, err := db.GetUserByUsername(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.False(t, user.IsActivated)
	assert.Equal(t, "attacker-hash", user.Password)
}

func TestSeedAdminNormalizesEmail(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	mixedCase := AdminAccount{Username: "root", Email: " Root@X.com ", Password: "supersecret"}
	require.NoError(t, SeedAdmin(ctx, db, plainHasher{}, mixedCase))

	user, err := db.GetUserByEmail(ctx, "root@x.com")
	require.NoError(t, err)
	assert.Equal(t, "root", user.Username)

	// повторный запуск находит ту же учетную запись
	require.NoError(t, SeedAdmin(ctx, db, plainHasher{}, mixedCase))
}

func TestSeedAdminEmailTakenByAnotherUser(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	require.NoError(t, db.CreateUser(ctx, &models.User{
		Username:       "someone",
		Email:          "root@x.com",
		Password:       "hash",
		ActivationLink: "link",
	}))

	err := SeedAdmin(ctx, db, plainHasher{}, admin)
	assert.ErrorIs(t, err, database.ErrDuplicate)
}
