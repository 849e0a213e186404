package user

import (
	"context"
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"com.martdev.newsroom/internal/util"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var testDB *sql.DB

func TestMain(m *testing.M) {
	ctx := context.Background()

	// 1. Start Postgres Container
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("newsroom_test"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("failed to start container: %v", err)
	}

	// 2. Get Connection String
	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("failed to get connection string: %v", err)
	}

	// 3. Connect to DB
	testDB, err = sql.Open("postgres", connStr)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}

	// 4. Run Migrations
	migrationsPath := filepath.Join("..", "..", "..", "cmd", "migrate", "migrations")

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set dialect: %v", err)
	}

	if err := goose.Up(testDB, migrationsPath); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// 5. Run Tests
	code := m.Run()

	// 6. Cleanup
	if err := pgContainer.Terminate(ctx); err != nil {
		log.Printf("failed to terminate container: %v", err)
	}

	os.Exit(code)
}

// setupTest cleans the database between tests
func setupTest(t *testing.T) {
	_, err := testDB.Exec("TRUNCATE TABLE users CASCADE")
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}

func TestUserStoreCreateUser(t *testing.T) {
	store := &UserStore{DB: testDB}
	ctx := context.Background()

	t.Run("should create a user with the default role", func(t *testing.T) {
		setupTest(t)
		user := &User{
			Username: "testuser_container",
			Email:    "container@example.com",
			Password: "hashedpassword123",
		}

		err := store.CreateUser(ctx, user)
		require.NoError(t, err)
		assert.NotZero(t, user.ID)

		savedUser, err := store.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Email, savedUser.Email)
		assert.Equal(t, RoleUser, savedUser.Role)
		assert.Nil(t, savedUser.ProfilePicture)
	})

	t.Run("should fail with duplicate email", func(t *testing.T) {
		setupTest(t)
		require.NoError(t, store.CreateUser(ctx, &User{Username: "user1", Email: "duplicate@example.com", Password: "pw1"}))

		err := store.CreateUser(ctx, &User{Username: "user2", Email: "duplicate@example.com", Password: "pw2"})
		assert.ErrorIs(t, err, util.ErrorDuplicateEmail)
	})

	t.Run("should fail with duplicate username", func(t *testing.T) {
		setupTest(t)
		require.NoError(t, store.CreateUser(ctx, &User{Username: "same", Email: "a@example.com", Password: "pw1"}))

		err := store.CreateUser(ctx, &User{Username: "same", Email: "b@example.com", Password: "pw2"})
		assert.ErrorIs(t, err, util.ErrorDuplicateUsername)
	})
}

func TestUserStoreGetUser(t *testing.T) {
	store := &UserStore{DB: testDB}
	ctx := context.Background()

	t.Run("should find a user by username", func(t *testing.T) {
		setupTest(t)
		picture := "https://cdn.example.com/me.png"
		user := &User{Username: "jfernats", Email: "j@example.com", Password: "pw", ProfilePicture: &picture}
		require.NoError(t, store.CreateUser(ctx, user))

		saved, err := store.GetUserByUsername(ctx, "jfernats")
		require.NoError(t, err)
		assert.Equal(t, user.ID, saved.ID)
		require.NotNil(t, saved.ProfilePicture)
		assert.Equal(t, picture, *saved.ProfilePicture)
	})

	t.Run("should return not found for unknown users", func(t *testing.T) {
		setupTest(t)

		_, err := store.GetUserByID(ctx, 777)
		assert.ErrorIs(t, err, util.ErrorNotFound)

		_, err = store.GetUserByUsername(ctx, "ghost")
		assert.ErrorIs(t, err, util.ErrorNotFound)
	})
}

func TestUserStoreUpdateUserRole(t *testing.T) {
	store := &UserStore{DB: testDB}
	ctx := context.Background()

	t.Run("should promote a user to admin", func(t *testing.T) {
		setupTest(t)
		user := &User{Username: "jfernats", Email: "j@example.com", Password: "pw"}
		require.NoError(t, store.CreateUser(ctx, user))

		require.NoError(t, store.UpdateUserRole(ctx, "jfernats", RoleAdmin))

		saved, err := store.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, RoleAdmin, saved.Role)
	})

	t.Run("should return not found for unknown username", func(t *testing.T) {
		setupTest(t)

		err := store.UpdateUserRole(ctx, "ghost", RoleAdmin)
		assert.ErrorIs(t, err, util.ErrorNotFound)
	})
}
