package news

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"com.martdev.newsroom/internal/util"
)

type Author struct {
	ID             int64
	Username       string
	ProfilePicture *string
}

type News struct {
	ID        int64
	Title     string
	Content   string
	Category  string
	ImageURL  *string
	CreatedAt time.Time
	AuthorID  int64
	Author    Author
}

type NewsStorer interface {
	CreateNews(context.Context, *News) error
	GetAllNews(context.Context) ([]News, error)
	GetNewsByID(ctx context.Context, newsID int64) (*News, error)
	DeleteNews(ctx context.Context, newsID int64) error
}

type NewsStore struct {
	DB *sql.DB
}

const newsColumns = `n.id, n.title, n.content, n.category, n.image_url, n.created_at, n.author_id,
	u.id, u.username, u.profile_picture`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNews(row rowScanner, news *News) error {
	var imageURL, profilePicture sql.NullString
	if err := row.Scan(
		&news.ID,
		&news.Title,
		&news.Content,
		&news.Category,
		&imageURL,
		&news.CreatedAt,
		&news.AuthorID,
		&news.Author.ID,
		&news.Author.Username,
		&profilePicture,
	); err != nil {
		return err
	}
	news.ImageURL = nullableString(imageURL)
	news.Author.ProfilePicture = nullableString(profilePicture)
	return nil
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

// CreateNews inserts the row and reads back the store-assigned id, created_at
// and author projection in one statement.
func (ns *NewsStore) CreateNews(ctx context.Context, news *News) error {
	query := `
		WITH n AS (
			INSERT INTO news (title, content, category, image_url, author_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, title, content, category, image_url, created_at, author_id
		)
		SELECT ` + newsColumns + ` FROM n JOIN users u ON u.id = n.author_id
	`

	ctx, cancel := context.WithTimeout(ctx, util.QueryTimeoutDuration)
	defer cancel()

	row := ns.DB.QueryRowContext(ctx, query,
		news.Title, news.Content, news.Category, news.ImageURL, news.AuthorID)
	if err := scanNews(row, news); err != nil {
		if util.IsForeignKeyViolation(err) {
			return util.ErrorAuthorNotFound
		}
		return err
	}
	return nil
}

func (ns *NewsStore) GetAllNews(ctx context.Context) ([]News, error) {
	query := `
		SELECT ` + newsColumns + ` FROM news n JOIN users u ON u.id = n.author_id
		ORDER BY n.created_at DESC, n.id DESC
	`

	ctx, cancel := context.WithTimeout(ctx, util.QueryTimeoutDuration)
	defer cancel()

	rows, err := ns.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	newsList := []News{}
	for rows.Next() {
		var news News
		if err := scanNews(rows, &news); err != nil {
			return nil, err
		}
		newsList = append(newsList, news)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return newsList, nil
}

func (ns *NewsStore) GetNewsByID(ctx context.Context, newsID int64) (*News, error) {
	query := `
		SELECT ` + newsColumns + ` FROM news n JOIN users u ON u.id = n.author_id
		WHERE n.id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, util.QueryTimeoutDuration)
	defer cancel()

	var news News
	if err := scanNews(ns.DB.QueryRowContext(ctx, query, newsID), &news); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, util.ErrorNotFound
		default:
			return nil, err
		}
	}
	return &news, nil
}

func (ns *NewsStore) DeleteNews(ctx context.Context, newsID int64) error {
	query := `
		DELETE FROM news WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, util.QueryTimeoutDuration)
	defer cancel()

	res, err := ns.DB.ExecContext(ctx, query, newsID)
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
