// Package sqlstore implements store.Store over database/sql for SQLite and
// PostgreSQL. Identifiers are time ordered UUIDs stored as text, so ordering
// by id lists records in insertion order.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/SergeyParamoshkin/articles/internal/model"
	"github.com/SergeyParamoshkin/articles/internal/store"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

type Store struct {
	db     *sql.DB
	driver string
}

var _ store.Store = (*Store)(nil)

func Open(driver, dsn string) (*Store, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()

		return nil, err
	}

	return &Store{db: db, driver: driver}, nil
}

func (s *Store) Initialize(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS articles (
            id TEXT PRIMARY KEY,
            title TEXT NOT NULL,
            body TEXT NOT NULL,
            author TEXT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS comments (
            id TEXT PRIMARY KEY,
            article TEXT NOT NULL,
            author TEXT NOT NULL,
            body TEXT NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_comments_article ON comments(article)`,
	}

	for _, query := range queries {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}

	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.db.Close()
}

func (s *Store) ListArticles(ctx context.Context) ([]model.Article, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, body, author FROM articles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.Article{}
	for rows.Next() {
		var a model.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.Author); err != nil {
			return nil, err
		}
		list = append(list, a)
	}

	return list, rows.Err()
}

func (s *Store) GetArticle(ctx context.Context, id string) (model.Article, bool, error) {
	if err := checkID(id, "id"); err != nil {
		return model.Article{}, false, err
	}

	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT id, title, body, author FROM articles WHERE id = ?`), id)

	return scanArticle(row)
}

func (s *Store) CreateArticle(ctx context.Context, article model.Article) (model.Article, error) {
	if err := store.ValidateArticle(article); err != nil {
		return model.Article{}, err
	}

	id, err := newID()
	if err != nil {
		return model.Article{}, err
	}
	article.ID = id

	_, err = s.db.ExecContext(ctx,
		s.rebind(`INSERT INTO articles (id, title, body, author) VALUES (?, ?, ?, ?)`),
		article.ID, article.Title, article.Body, article.Author,
	)
	if err != nil {
		return model.Article{}, err
	}

	return article, nil
}

func (s *Store) UpdateArticle(ctx context.Context, id string, patch model.ArticlePatch) (model.Article, bool, error) {
	if err := checkID(id, "id"); err != nil {
		return model.Article{}, false, err
	}

	query := `
        UPDATE articles SET
            title = COALESCE(?, title),
            body = COALESCE(?, body),
            author = COALESCE(?, author)
        WHERE id = ?
        RETURNING id, title, body, author
    `
	row := s.db.QueryRowContext(ctx, s.rebind(query),
		nullString(patch.Title),
		nullString(patch.Body),
		nullString(patch.Author),
		id,
	)

	return scanArticle(row)
}

func (s *Store) DeleteArticle(ctx context.Context, id string) (model.Article, bool, error) {
	if err := checkID(id, "id"); err != nil {
		return model.Article{}, false, err
	}

	row := s.db.QueryRowContext(ctx,
		s.rebind(`DELETE FROM articles WHERE id = ? RETURNING id, title, body, author`), id)

	return scanArticle(row)
}

func (s *Store) ListComments(ctx context.Context) ([]model.Comment, error) {
	return s.queryComments(ctx, `SELECT id, article, author, body FROM comments ORDER BY id`)
}

func (s *Store) ListCommentsByArticle(ctx context.Context, articleID string) ([]model.Comment, error) {
	if err := checkID(articleID, "article"); err != nil {
		return nil, err
	}

	return s.queryComments(ctx,
		s.rebind(`SELECT id, article, author, body FROM comments WHERE article = ? ORDER BY id`), articleID)
}

func (s *Store) queryComments(ctx context.Context, query string, args ...interface{}) ([]model.Comment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.Article, &c.Author, &c.Body); err != nil {
			return nil, err
		}
		list = append(list, c)
	}

	return list, rows.Err()
}

func (s *Store) GetComment(ctx context.Context, id string) (model.Comment, bool, error) {
	if err := checkID(id, "id"); err != nil {
		return model.Comment{}, false, err
	}

	row := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT id, article, author, body FROM comments WHERE id = ?`), id)

	return scanComment(row)
}

func (s *Store) CreateComment(ctx context.Context, comment model.Comment) (model.Comment, error) {
	if err := store.ValidateComment(comment); err != nil {
		return model.Comment{}, err
	}
	if err := checkID(comment.Article, "article"); err != nil {
		return model.Comment{}, err
	}

	id, err := newID()
	if err != nil {
		return model.Comment{}, err
	}
	comment.ID = id

	_, err = s.db.ExecContext(ctx,
		s.rebind(`INSERT INTO comments (id, article, author, body) VALUES (?, ?, ?, ?)`),
		comment.ID, comment.Article, comment.Author, comment.Body,
	)
	if err != nil {
		return model.Comment{}, err
	}

	return comment, nil
}

func (s *Store) UpdateComment(ctx context.Context, id string, patch model.CommentPatch) (model.Comment, bool, error) {
	if err := checkID(id, "id"); err != nil {
		return model.Comment{}, false, err
	}
	if patch.Article != nil {
		if err := checkID(*patch.Article, "article"); err != nil {
			return model.Comment{}, false, err
		}
	}

	query := `
        UPDATE comments SET
            article = COALESCE(?, article),
            author = COALESCE(?, author),
            body = COALESCE(?, body)
        WHERE id = ?
        RETURNING id, article, author, body
    `
	row := s.db.QueryRowContext(ctx, s.rebind(query),
		nullString(patch.Article),
		nullString(patch.Author),
		nullString(patch.Body),
		id,
	)

	return scanComment(row)
}

func (s *Store) DeleteComment(ctx context.Context, id string) (model.Comment, bool, error) {
	if err := checkID(id, "id"); err != nil {
		return model.Comment{}, false, err
	}

	row := s.db.QueryRowContext(ctx,
		s.rebind(`DELETE FROM comments WHERE id = ? RETURNING id, article, author, body`), id)

	return scanComment(row)
}

func (s *Store) DeleteCommentsByArticle(ctx context.Context, articleID string) (model.DeleteResult, error) {
	if err := checkID(articleID, "article"); err != nil {
		return model.DeleteResult{}, err
	}

	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM comments WHERE article = ?`), articleID)
	if err != nil {
		return model.DeleteResult{}, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return model.DeleteResult{}, err
	}

	return model.DeleteResult{Acknowledged: true, DeletedCount: n}, nil
}

// rebind rewrites ? placeholders into the $n form PostgreSQL expects.
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))

			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

func scanArticle(row *sql.Row) (model.Article, bool, error) {
	var a model.Article
	err := row.Scan(&a.ID, &a.Title, &a.Body, &a.Author)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Article{}, false, nil
	}
	if err != nil {
		return model.Article{}, false, err
	}

	return a, true, nil
}

func scanComment(row *sql.Row) (model.Comment, bool, error) {
	var c model.Comment
	err := row.Scan(&c.ID, &c.Article, &c.Author, &c.Body)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Comment{}, false, nil
	}
	if err != nil {
		return model.Comment{}, false, err
	}

	return c, true, nil
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

func checkID(id, path string) error {
	if _, err := uuid.Parse(id); err != nil {
		return &store.CastError{Kind: "UUID", Value: id, Path: path, Err: err}
	}

	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}

	return sql.NullString{String: *s, Valid: true}
}
