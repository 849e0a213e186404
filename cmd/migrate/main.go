package main

import (
	"flag"

	"com.martdev.newsroom/config"
	"com.martdev.newsroom/internal/database"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

const migrationsDir = "cmd/migrate/migrations"

func main() {
	dir := flag.String("dir", migrationsDir, "directory holding the goose migrations")
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	logger := zap.Must(zap.NewProduction()).Sugar()
	defer logger.Sync()

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

	if err := goose.SetDialect("postgres"); err != nil {
		logger.Fatalf("failed to set dialect: %v", err)
	}

	if err := goose.Run(command, db, *dir, flag.Args()[min(1, flag.NArg()):]...); err != nil {
		logger.Fatalf("goose %s: %v", command, err)
	}
	logger.Infow("migrations applied", "command", command, "dir", *dir)
}
