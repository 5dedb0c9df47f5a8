package database

import (
	"context"
	"testing"

	"totobot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetUser(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	user := &models.User{
		TelegramID:   100,
		Login:        "ivan",
		PasswordHash: "hash",
		PasswordSalt: "salt",
		Email:        "ivan@example.com",
		Phone:        "+79991234567",
		FullName:     "Иван Петров",
	}
	require.NoError(t, db.CreateUser(ctx, user))
	assert.NotZero(t, user.ID)

	got, err := db.GetUserByTelegramID(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, "ivan", got.Login)
	assert.Equal(t, "ivan@example.com", got.Email)
	assert.Equal(t, "+79991234567", got.Phone)
	assert.False(t, got.IsBanned)

	byID, err := db.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, got.TelegramID, byID.TelegramID)

	_, err = db.GetUserByTelegramID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateUserDuplicates(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	seedUser(t, db, 1, "taken", "+79990000001")

	dup := &models.User{
		TelegramID: 2, Login: "taken", PasswordHash: "h", PasswordSalt: "s",
		Phone: "+79990000002", FullName: "Другой",
	}
	assert.ErrorIs(t, db.CreateUser(ctx, dup), ErrDuplicateLogin)

	dup = &models.User{
		TelegramID: 3, Login: "other", PasswordHash: "h", PasswordSalt: "s",
		Phone: "+79990000001", FullName: "Третий",
	}
	assert.ErrorIs(t, db.CreateUser(ctx, dup), ErrDuplicatePhone)

	// Частичной строки после отказа не остается
	_, err := db.GetUserByTelegramID(ctx, 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEmptyEmailIsNotUnique(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	// Два пользователя без email не конфликтуют по UNIQUE
	seedUser(t, db, 1, "first", "+79990000001")
	seedUser(t, db, 2, "second", "+79990000002")
}

func TestGetUserByIdentifier(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	user := &models.User{
		TelegramID: 7, Login: "lookup", PasswordHash: "h", PasswordSalt: "s",
		Email: "lookup@example.com", Phone: "+79997654321", FullName: "Кто-то",
	}
	require.NoError(t, db.CreateUser(ctx, user))

	for _, identifier := range []string{"lookup", "lookup@example.com", "+79997654321"} {
		got, err := db.GetUserByIdentifier(ctx, identifier)
		require.NoError(t, err, identifier)
		assert.Equal(t, int64(7), got.TelegramID)
	}
}

func TestSetBanned(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	seedUser(t, db, 50, "banme", "+79990000050")

	require.NoError(t, db.SetBanned(ctx, 50, true))
	got, _ := db.GetUserByTelegramID(ctx, 50)
	assert.True(t, got.IsBanned)

	require.NoError(t, db.SetBanned(ctx, 50, false))
	got, _ = db.GetUserByTelegramID(ctx, 50)
	assert.False(t, got.IsBanned)

	assert.ErrorIs(t, db.SetBanned(ctx, 999, true), ErrNotFound)
}

func TestUpdateUserField(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	seedUser(t, db, 60, "oldlogin", "+79990000060")
	seedUser(t, db, 61, "neighbor", "+79990000061")

	require.NoError(t, db.UpdateUserField(ctx, 60, models.FieldLogin, "newlogin"))
	got, _ := db.GetUserByTelegramID(ctx, 60)
	assert.Equal(t, "newlogin", got.Login)

	require.NoError(t, db.UpdateUserField(ctx, 60, models.FieldFullName, "Новое Имя"))
	got, _ = db.GetUserByTelegramID(ctx, 60)
	assert.Equal(t, "Новое Имя", got.FullName)

	// Чужой логин занят
	assert.ErrorIs(t, db.UpdateUserField(ctx, 60, models.FieldLogin, "neighbor"), ErrDuplicateLogin)

	assert.ErrorIs(t, db.UpdateUserField(ctx, 999, models.FieldLogin, "ghost"), ErrNotFound)
}

func TestIsFieldTaken(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	seedUser(t, db, 70, "owner", "+79990000070")

	taken, err := db.IsFieldTaken(ctx, models.FieldLogin, "owner", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	// Собственная строка исключается
	taken, err = db.IsFieldTaken(ctx, models.FieldLogin, "owner", 70)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = db.IsFieldTaken(ctx, models.FieldPhone, "+79990000070", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	_, err = db.IsFieldTaken(ctx, models.FieldFullName, "x", 0)
	assert.Error(t, err)
}

func TestGetAllUsers(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	seedUser(t, db, 1, "a", "+79990000001")
	seedUser(t, db, 2, "b", "+79990000002")

	users, err := db.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
