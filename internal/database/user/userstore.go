package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"com.martdev.newsroom/internal/util"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID             int64
	Username       string
	Email          string
	Password       string
	Role           string
	ProfilePicture *string
	CreatedAt      time.Time
}

type UserStore struct {
	DB *sql.DB
}

func (u *UserStore) CreateUser(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (username, email, password, role, profile_picture)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at
	`

	if user.Role == "" {
		user.Role = RoleUser
	}

	ctx, cancel := context.WithTimeout(ctx, util.QueryTimeoutDuration)
	defer cancel()

	if err := u.DB.QueryRowContext(ctx, query,
		user.Username, user.Email, user.Password, user.Role, user.ProfilePicture,
	).Scan(&user.ID, &user.CreatedAt); err != nil {
		switch util.UniqueViolationConstraint(err) {
		case "users_email_key":
			return util.ErrorDuplicateEmail
		case "users_username_key":
			return util.ErrorDuplicateUsername
		default:
			return err
		}
	}
	return nil
}

func (u *UserStore) GetUserByID(ctx context.Context, userID int64) (*User, error) {
	query := `
		SELECT id, username, email, password, role, profile_picture, created_at FROM users WHERE id = $1
	`
	return u.getUser(ctx, query, userID)
}

func (u *UserStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, email, password, role, profile_picture, created_at FROM users WHERE username = $1
	`
	return u.getUser(ctx, query, username)
}

// UpdateUserRole sets the role of the user with the given username.
func (u *UserStore) UpdateUserRole(ctx context.Context, username, role string) error {
	query := `
		UPDATE users SET role = $1 WHERE username = $2
	`

	ctx, cancel := context.WithTimeout(ctx, util.QueryTimeoutDuration)
	defer cancel()

	res, err := u.DB.ExecContext(ctx, query, role, username)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return util.ErrorNotFound
	}
	return nil
}

func (u *UserStore) getUser(ctx context.Context, query string, arg any) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, util.QueryTimeoutDuration)
	defer cancel()

	var user User
	var profilePicture sql.NullString
	if err := u.DB.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Password,
		&user.Role,
		&profilePicture,
		&user.CreatedAt,
	); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, util.ErrorNotFound
		default:
			return nil, err
		}
	}
	if profilePicture.Valid {
		user.ProfilePicture = &profilePicture.String
	}
	return &user, nil
}
