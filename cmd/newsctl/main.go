package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"com.martdev.newsroom/config"
	"com.martdev.newsroom/internal/auth/jwt"
	"com.martdev.newsroom/internal/auth/password"
	"com.martdev.newsroom/internal/database"
	dbuser "com.martdev.newsroom/internal/database/user"
	gojwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const usage = `usage: newsctl <command> [flags]

commands:
  create-user -username NAME -email EMAIL -password PASS [-role user|admin]
  set-admin USERNAME
  issue-token [-ttl DURATION] USERNAME`

type userAdmin interface {
	CreateUser(ctx context.Context, user *dbuser.User) error
	GetUserByUsername(ctx context.Context, username string) (*dbuser.User, error)
	UpdateUserRole(ctx context.Context, username, role string) error
}

type tokenIssuer interface {
	AccessClaims(userID int64, ttl time.Duration) gojwt.Claims
	GenerateToken(claims gojwt.Claims) (string, error)
}

type cli struct {
	users  userAdmin
	tokens tokenIssuer
	ttl    time.Duration
	out    io.Writer
	logger *zap.SugaredLogger
}

var errUsage = errors.New(usage)

func main() {
	logger := zap.Must(zap.NewProduction()).Sugar()
	defer logger.Sync()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	db, err := database.NewPostgreInstance(
		config.Config.DB.Addr,
		config.Config.DB.MaxOpenConns,
		config.Config.DB.MaxIdleConns,
		config.Config.DB.MaxIdleTime,
	)
	if err != nil {
		logger.Fatalf("db error - %s", err)
	}
	defer db.Close()

	jwtAuthenticator, err := jwt.NewJWTAuthenticator(
		config.Config.AuthConfig.Secret,
		config.Config.AuthConfig.Aud,
		config.Config.AuthConfig.Iss,
	)
	if err != nil {
		logger.Fatalf("auth error - %s", err)
	}

	c := &cli{
		users:  database.NewStorage(db).User,
		tokens: jwtAuthenticator,
		ttl:    config.Config.AuthConfig.Exp,
		out:    os.Stdout,
		logger: logger,
	}
	if err := c.run(context.Background(), os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		logger.Fatalf("newsctl %s: %v", os.Args[1], err)
	}
}

func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "create-user":
		return c.createUser(ctx, args[1:])
	case "set-admin":
		return c.setAdmin(ctx, args[1:])
	case "issue-token":
		return c.issueToken(ctx, args[1:])
	default:
		return errUsage
	}
}

func (c *cli) createUser(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	username := fs.String("username", "", "unique username")
	email := fs.String("email", "", "unique email address")
	plain := fs.String("password", "", "plain text password, hashed with bcrypt")
	role := fs.String("role", dbuser.RoleUser, "user or admin")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *username == "" || *email == "" || *plain == "" {
		return errUsage
	}
	if *role != dbuser.RoleUser && *role != dbuser.RoleAdmin {
		return fmt.Errorf("unknown role %q", *role)
	}

	hashed, err := password.HashPassword(*plain)
	if err != nil {
		return err
	}

	user := &dbuser.User{
		Username: *username,
		Email:    *email,
		Password: hashed,
		Role:     *role,
	}
	if err := c.users.CreateUser(ctx, user); err != nil {
		return err
	}

	c.logger.Infow("user created", "id", user.ID, "username", user.Username, "role", user.Role)
	fmt.Fprintln(c.out, user.ID)
	return nil
}

func (c *cli) setAdmin(ctx context.Context, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return errUsage
	}

	if err := c.users.UpdateUserRole(ctx, args[0], dbuser.RoleAdmin); err != nil {
		return err
	}
	c.logger.Infow("user promoted to admin", "username", args[0])
	return nil
}

func (c *cli) issueToken(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("issue-token", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	ttl := fs.Duration("ttl", c.ttl, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 1 {
		return errUsage
	}

	user, err := c.users.GetUserByUsername(ctx, fs.Arg(0))
	if err != nil {
		return err
	}

	token, err := c.tokens.GenerateToken(c.tokens.AccessClaims(user.ID, *ttl))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, token)
	return nil
}
