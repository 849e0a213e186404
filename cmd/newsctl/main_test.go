package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"com.martdev.newsroom/internal/auth/jwt"
	"com.martdev.newsroom/internal/auth/password"
	dbuser "com.martdev.newsroom/internal/database/user"
	"com.martdev.newsroom/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type MockUserAdmin struct {
	mock.Mock
}

func (m *MockUserAdmin) CreateUser(ctx context.Context, user *dbuser.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserAdmin) GetUserByUsername(ctx context.Context, username string) (*dbuser.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dbuser.User), args.Error(1)
}

func (m *MockUserAdmin) UpdateUserRole(ctx context.Context, username, role string) error {
	return m.Called(ctx, username, role).Error(0)
}

func newCLI(t *testing.T, users userAdmin) (*cli, *bytes.Buffer, *jwt.JWTAuthenticator) {
	authenticator, err := jwt.NewJWTAuthenticator("secret", "Newsroom", "Newsroom")
	require.NoError(t, err)
	out := &bytes.Buffer{}
	return &cli{
		users:  users,
		tokens: authenticator,
		ttl:    time.Minute,
		out:    out,
		logger: zaptest.NewLogger(t).Sugar(),
	}, out, authenticator
}

func TestCreateUserCommand(t *testing.T) {
	t.Run("should hash the password and print the id", func(t *testing.T) {
		users := new(MockUserAdmin)
		c, out, _ := newCLI(t, users)

		users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *dbuser.User) bool {
			return u.Username == "jfernats" &&
				u.Email == "jf@example.com" &&
				u.Role == dbuser.RoleAdmin &&
				password.ComparePasswords(u.Password, "s3cret") == nil
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*dbuser.User).ID = 42
		}).Return(nil)

		err := c.run(t.Context(), []string{"create-user",
			"-username", "jfernats", "-email", "jf@example.com", "-password", "s3cret", "-role", "admin"})
		require.NoError(t, err)
		assert.Equal(t, "42\n", out.String())
		users.AssertExpectations(t)
	})

	t.Run("should reject missing flags", func(t *testing.T) {
		users := new(MockUserAdmin)
		c, _, _ := newCLI(t, users)

		err := c.run(t.Context(), []string{"create-user", "-username", "jfernats"})
		assert.ErrorIs(t, err, errUsage)
		users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("should reject unknown roles", func(t *testing.T) {
		users := new(MockUserAdmin)
		c, _, _ := newCLI(t, users)

		err := c.run(t.Context(), []string{"create-user",
			"-username", "a", "-email", "a@example.com", "-password", "p", "-role", "editor"})
		assert.Error(t, err)
		users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("should surface duplicate users", func(t *testing.T) {
		users := new(MockUserAdmin)
		c, _, _ := newCLI(t, users)
		users.On("CreateUser", mock.Anything, mock.Anything).Return(util.ErrorDuplicateUsername)

		err := c.run(t.Context(), []string{"create-user",
			"-username", "a", "-email", "a@example.com", "-password", "p"})
		assert.ErrorIs(t, err, util.ErrorDuplicateUsername)
	})
}

func TestSetAdminCommand(t *testing.T) {
	t.Run("should promote the user", func(t *testing.T) {
		users := new(MockUserAdmin)
		c, _, _ := newCLI(t, users)
		users.On("UpdateUserRole", mock.Anything, "jfernats", dbuser.RoleAdmin).Return(nil)

		require.NoError(t, c.run(t.Context(), []string{"set-admin", "jfernats"}))
		users.AssertExpectations(t)
	})

	t.Run("should report unknown users", func(t *testing.T) {
		users := new(MockUserAdmin)
		c, _, _ := newCLI(t, users)
		users.On("UpdateUserRole", mock.Anything, "ghost", dbuser.RoleAdmin).Return(util.ErrorNotFound)

		err := c.run(t.Context(), []string{"set-admin", "ghost"})
		assert.ErrorIs(t, err, util.ErrorNotFound)
	})

	t.Run("should require a username", func(t *testing.T) {
		c, _, _ := newCLI(t, new(MockUserAdmin))

		assert.ErrorIs(t, c.run(t.Context(), []string{"set-admin"}), errUsage)
	})
}

func TestIssueTokenCommand(t *testing.T) {
	t.Run("should print a token whose subject is the user id", func(t *testing.T) {
		users := new(MockUserAdmin)
		c, out, authenticator := newCLI(t, users)
		users.On("GetUserByUsername", mock.Anything, "jfernats").Return(&dbuser.User{ID: 7, Username: "jfernats"}, nil)

		require.NoError(t, c.run(t.Context(), []string{"issue-token", "-ttl", "5m", "jfernats"}))

		token, err := authenticator.ValidateToken(strings.TrimSpace(out.String()))
		require.NoError(t, err)
		sub, err := token.Claims.GetSubject()
		require.NoError(t, err)
		assert.Equal(t, "7", sub)
	})

	t.Run("should report unknown users", func(t *testing.T) {
		users := new(MockUserAdmin)
		c, out, _ := newCLI(t, users)
		users.On("GetUserByUsername", mock.Anything, "ghost").Return(nil, util.ErrorNotFound)

		err := c.run(t.Context(), []string{"issue-token", "ghost"})
		assert.ErrorIs(t, err, util.ErrorNotFound)
		assert.Empty(t, out.String())
	})
}

func TestUnknownCommand(t *testing.T) {
	c, _, _ := newCLI(t, new(MockUserAdmin))

	assert.ErrorIs(t, c.run(t.Context(), []string{"drop-database"}), errUsage)
	assert.ErrorIs(t, c.run(t.Context(), nil), errUsage)
}
