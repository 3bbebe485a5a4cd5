// Package store defines the persistence gateway used by the article and
// comment handlers. Lookups that match nothing report found == false rather
// than an error, so callers can tell "nothing matched" from "the call failed".
package store

import (
	"context"

	"github.com/SergeyParamoshkin/articles/internal/model"
)

type ArticleStore interface {
	ListArticles(ctx context.Context) ([]model.Article, error)
	GetArticle(ctx context.Context, id string) (article model.Article, found bool, err error)
	CreateArticle(ctx context.Context, article model.Article) (model.Article, error)
	UpdateArticle(ctx context.Context, id string, patch model.ArticlePatch) (article model.Article, found bool, err error)
	DeleteArticle(ctx context.Context, id string) (article model.Article, found bool, err error)
}

type CommentStore interface {
	ListComments(ctx context.Context) ([]model.Comment, error)
	ListCommentsByArticle(ctx context.Context, articleID string) ([]model.Comment, error)
	GetComment(ctx context.Context, id string) (comment model.Comment, found bool, err error)
	CreateComment(ctx context.Context, comment model.Comment) (model.Comment, error)
	UpdateComment(ctx context.Context, id string, patch model.CommentPatch) (comment model.Comment, found bool, err error)
	DeleteComment(ctx context.Context, id string) (comment model.Comment, found bool, err error)
	DeleteCommentsByArticle(ctx context.Context, articleID string) (model.DeleteResult, error)
}

// Store is a complete gateway over both collections.
type Store interface {
	ArticleStore
	CommentStore

	Initialize(ctx context.Context) error
	Close(ctx context.Context) error
}
