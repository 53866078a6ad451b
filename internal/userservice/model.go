package userservice

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var (
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrDuplicateEmail    = errors.New("duplicate email")
	ErrNotFound          = errors.New("user not found")
)

func newUserModel(db *sql.DB) *UserModel {
	return &UserModel{db: db}
}

func (m *UserModel) insert(ctx context.Context, u *User) error {
	query := `
		INSERT INTO user_account (email, username, password, picture_uri, account_creation_ts)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING user_id, account_creation_ts`

	args := []any{
		u.Email,
		u.Username,
		string(u.Password.hash),
		u.PictureURI,
		time.Now(),
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.AccountCreationTs)
	if err != nil {
		switch {
		case err.Error() == "pq: duplicate key value violates unique constraint \"user_account_username_key\"":
			return ErrDuplicateUsername
		case err.Error() == "pq: duplicate key value violates unique constraint \"user_account_email_key\"":
			return ErrDuplicateEmail
		default:
			return err
		}
	}
	return nil
}

func (m *UserModel) getBy(ctx context.Context, column string, value any) (*User, error) {
	// column is one of the fixed lookup keys below, never caller input.
	query := `
		SELECT user_id, email, username, role, is_email_verified, is_activated,
			COALESCE(firstname, ''), COALESCE(lastname, ''), COALESCE(picture_uri, ''),
			account_creation_ts, last_login_ts
		FROM user_account
		WHERE ` + column + ` = $1`

	var u User
	err := m.db.QueryRowContext(ctx, query, value).Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.Role,
		&u.IsEmailVerified,
		&u.IsActivated,
		&u.Firstname,
		&u.Lastname,
		&u.PictureURI,
		&u.AccountCreationTs,
		&u.LastLoginTs,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

func (m *UserModel) getByID(ctx context.Context, id int) (*User, error) {
	return m.getBy(ctx, "user_id", id)
}

func (m *UserModel) getByEmail(ctx context.Context, email string) (*User, error) {
	return m.getBy(ctx, "email", email)
}

func (m *UserModel) getByUsername(ctx context.Context, username string) (*User, error) {
	return m.getBy(ctx, "username", username)
}

func (m *UserModel) getUsers(ctx context.Context, limit int) ([]UserPreview, error) {
	query := `
		SELECT user_id, email, username, COALESCE(picture_uri, ''), role
		FROM user_account
		ORDER BY user_id
		LIMIT $1`

	rows, err := m.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []UserPreview
	for rows.Next() {
		var u UserPreview
		err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.PictureURI, &u.Role)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// deactivate flips is_activated off without removing the row.
func (m *UserModel) deactivate(ctx context.Context, id int) (bool, error) {
	query := `
		UPDATE user_account
		SET is_activated = false
		WHERE user_id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

func (m *UserModel) delete(ctx context.Context, id int) (bool, error) {
	query := `
		DELETE FROM user_account
		WHERE user_id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}
