package userservice

import (
	"context"
	"database/sql"

	"github.com/abrabant/brabantapi/internal/common"
)

func NewUserService(db *sql.DB) *UserService {
	return &UserService{m: newUserModel(db)}
}

type CreateUserRequest struct {
	Email      string `json:"email"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	PictureURI string `json:"picture_uri"`
}

// CreateUser registers a new user account. The password is hashed before
// the row is written; the plain text never reaches storage.
func (s *UserService) CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error) {
	v := common.NewValidator()
	validateEmail(v, req.Email)
	validateUsername(v, req.Username)
	validatePassword(v, req.Password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Email:      req.Email,
		Username:   req.Username,
		PictureURI: req.PictureURI,
	}

	if err := u.Password.set(req.Password); err != nil {
		return nil, err
	}

	if err := s.m.insert(ctx, &u); err != nil {
		return nil, err
	}

	return &u, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (*User, error) {
	v := common.NewValidator()
	validateInt(v, id, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getByID(ctx, id)
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	v := common.NewValidator()
	validateEmail(v, email)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getByEmail(ctx, email)
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getByUsername(ctx, username)
}

// GetUsers returns a bounded listing. Default limit is 100.
func (s *UserService) GetUsers(ctx context.Context, limit int) ([]UserPreview, error) {
	if limit < 1 {
		limit = 100
	}

	return s.m.getUsers(ctx, limit)
}

// RemoveUser deactivates the account by default; a hard delete is opt-in.
// Returns whether a row was actually affected.
func (s *UserService) RemoveUser(ctx context.Context, id int, onlyDeactivate bool) (bool, error) {
	v := common.NewValidator()
	validateInt(v, id, "user_id")
	if !v.Valid() {
		return false, v.ValidationError()
	}

	if onlyDeactivate {
		return s.m.deactivate(ctx, id)
	}

	return s.m.delete(ctx, id)
}
