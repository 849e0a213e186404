package database

import (
	"database/sql"

	"com.martdev.newsroom/internal/database/news"
	"com.martdev.newsroom/internal/database/user"
)

type Storage struct {
	News *news.NewsStore
	User *user.UserStore
}

func NewStorage(db *sql.DB) Storage {
	return Storage{
		News: &news.NewsStore{DB: db},
		User: &user.UserStore{DB: db},
	}
}
