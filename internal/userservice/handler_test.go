package userservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abrabant/brabantapi/internal/common"
)

func setupTestEnvironment(t *testing.T) (*UserService, func() error) {
	db := common.TestDB("file://../../migrations", t)

	cleanup := func() error {
		_, err := db.Exec("DELETE FROM user_account")
		return err
	}

	return NewUserService(db), cleanup
}

func validCreateRequest() *CreateUserRequest {
	return &CreateUserRequest{
		Email:    "testuser@example.com",
		Username: "testuser",
		Password: "Pa55word!",
	}
}

func TestCreateUser(t *testing.T) {
	s, cleanup := setupTestEnvironment(t)

	t.Run("valid user", func(t *testing.T) {
		defer cleanup()

		user, err := s.CreateUser(context.Background(), validCreateRequest())
		assert.NoError(t, err)
		assert.Greater(t, user.ID, 0)
		assert.False(t, user.AccountCreationTs.IsZero())
	})

	t.Run("invalid email", func(t *testing.T) {
		defer cleanup()

		req := validCreateRequest()
		req.Email = "not-an-email"

		_, err := s.CreateUser(context.Background(), req)
		assert.Equal(t, common.ValidationError{Errors: map[string]string{"email": "must be a valid email address"}}, err)
	})

	t.Run("weak password", func(t *testing.T) {
		defer cleanup()

		req := validCreateRequest()
		req.Password = "password"

		_, err := s.CreateUser(context.Background(), req)
		assert.Error(t, err)
		assert.IsType(t, common.ValidationError{}, err)
	})

	t.Run("duplicate email", func(t *testing.T) {
		defer cleanup()

		_, err := s.CreateUser(context.Background(), validCreateRequest())
		assert.NoError(t, err)

		req := validCreateRequest()
		req.Username = "otheruser"

		_, err = s.CreateUser(context.Background(), req)
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("duplicate username", func(t *testing.T) {
		defer cleanup()

		_, err := s.CreateUser(context.Background(), validCreateRequest())
		assert.NoError(t, err)

		req := validCreateRequest()
		req.Email = "other@example.com"

		_, err = s.CreateUser(context.Background(), req)
		assert.ErrorIs(t, err, ErrDuplicateUsername)
	})
}

func TestGetUser(t *testing.T) {
	s, cleanup := setupTestEnvironment(t)
	defer cleanup()

	created, err := s.CreateUser(context.Background(), validCreateRequest())
	assert.NoError(t, err)

	byID, err := s.GetUserByID(context.Background(), created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "testuser", byID.Username)

	byEmail, err := s.GetUserByEmail(context.Background(), "testuser@example.com")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byUsername, err := s.GetUserByUsername(context.Background(), "testuser")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, byUsername.ID)

	_, err = s.GetUserByID(context.Background(), created.ID+1000)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetUsers(t *testing.T) {
	s, cleanup := setupTestEnvironment(t)
	defer cleanup()

	_, err := s.CreateUser(context.Background(), validCreateRequest())
	assert.NoError(t, err)

	users, err := s.GetUsers(context.Background(), 0)
	assert.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestRemoveUser(t *testing.T) {
	s, cleanup := setupTestEnvironment(t)

	t.Run("deactivate keeps the row", func(t *testing.T) {
		defer cleanup()

		created, err := s.CreateUser(context.Background(), validCreateRequest())
		assert.NoError(t, err)

		removed, err := s.RemoveUser(context.Background(), created.ID, true)
		assert.NoError(t, err)
		assert.True(t, removed)

		user, err := s.GetUserByID(context.Background(), created.ID)
		assert.NoError(t, err)
		assert.False(t, user.IsActivated)
	})

	t.Run("hard delete removes the row", func(t *testing.T) {
		defer cleanup()

		created, err := s.CreateUser(context.Background(), validCreateRequest())
		assert.NoError(t, err)

		removed, err := s.RemoveUser(context.Background(), created.ID, false)
		assert.NoError(t, err)
		assert.True(t, removed)

		_, err = s.GetUserByID(context.Background(), created.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		removed, err = s.RemoveUser(context.Background(), created.ID, false)
		assert.NoError(t, err)
		assert.False(t, removed)
	})
}
