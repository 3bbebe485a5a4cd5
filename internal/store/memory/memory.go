// Package memory is an in-process store.Store backed by maps.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/SergeyParamoshkin/articles/internal/model"
	"github.com/SergeyParamoshkin/articles/internal/store"
)

type Store struct {
	mu       sync.RWMutex
	seq      int64
	articles map[string]entry[model.Article]
	comments map[string]entry[model.Comment]
}

// entry keeps insertion order so listings are stable.
type entry[T any] struct {
	seq int64
	val T
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		articles: map[string]entry[model.Article]{},
		comments: map[string]entry[model.Comment]{},
	}
}

func (s *Store) Initialize(ctx context.Context) error { return nil }

func (s *Store) Close(ctx context.Context) error { return nil }

func (s *Store) ListArticles(ctx context.Context) ([]model.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sorted(s.articles, func(model.Article) bool { return true }), nil
}

func (s *Store) GetArticle(ctx context.Context, id string) (model.Article, bool, error) {
	if err := checkID(id, "_id"); err != nil {
		return model.Article{}, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.articles[id]

	return e.val, ok, nil
}

func (s *Store) CreateArticle(ctx context.Context, article model.Article) (model.Article, error) {
	if err := store.ValidateArticle(article); err != nil {
		return model.Article{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	article.ID = uuid.NewString()
	s.articles[article.ID] = entry[model.Article]{seq: s.seq, val: article}

	return article, nil
}

func (s *Store) UpdateArticle(ctx context.Context, id string, patch model.ArticlePatch) (model.Article, bool, error) {
	if err := checkID(id, "_id"); err != nil {
		return model.Article{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.articles[id]
	if !ok {
		return model.Article{}, false, nil
	}
	e.val = patch.Apply(e.val)
	s.articles[id] = e

	return e.val, true, nil
}

func (s *Store) DeleteArticle(ctx context.Context, id string) (model.Article, bool, error) {
	if err := checkID(id, "_id"); err != nil {
		return model.Article{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.articles[id]
	if !ok {
		return model.Article{}, false, nil
	}
	delete(s.articles, id)

	return e.val, true, nil
}

func (s *Store) ListComments(ctx context.Context) ([]model.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sorted(s.comments, func(model.Comment) bool { return true }), nil
}

func (s *Store) ListCommentsByArticle(ctx context.Context, articleID string) ([]model.Comment, error) {
	if err := checkID(articleID, "article"); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return sorted(s.comments, func(c model.Comment) bool { return c.Article == articleID }), nil
}

func (s *Store) GetComment(ctx context.Context, id string) (model.Comment, bool, error) {
	if err := checkID(id, "_id"); err != nil {
		return model.Comment{}, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.comments[id]

	return e.val, ok, nil
}

func (s *Store) CreateComment(ctx context.Context, comment model.Comment) (model.Comment, error) {
	if err := store.ValidateComment(comment); err != nil {
		return model.Comment{}, err
	}
	if err := checkID(comment.Article, "article"); err != nil {
		return model.Comment{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	comment.ID = uuid.NewString()
	s.comments[comment.ID] = entry[model.Comment]{seq: s.seq, val: comment}

	return comment, nil
}

func (s *Store) UpdateComment(ctx context.Context, id string, patch model.CommentPatch) (model.Comment, bool, error) {
	if err := checkID(id, "_id"); err != nil {
		return model.Comment{}, false, err
	}
	if patch.Article != nil {
		if err := checkID(*patch.Article, "article"); err != nil {
			return model.Comment{}, false, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.comments[id]
	if !ok {
		return model.Comment{}, false, nil
	}
	e.val = patch.Apply(e.val)
	s.comments[id] = e

	return e.val, true, nil
}

func (s *Store) DeleteComment(ctx context.Context, id string) (model.Comment, bool, error) {
	if err := checkID(id, "_id"); err != nil {
		return model.Comment{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.comments[id]
	if !ok {
		return model.Comment{}, false, nil
	}
	delete(s.comments, id)

	return e.val, true, nil
}

func (s *Store) DeleteCommentsByArticle(ctx context.Context, articleID string) (model.DeleteResult, error) {
	if err := checkID(articleID, "article"); err != nil {
		return model.DeleteResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, e := range s.comments {
		if e.val.Article == articleID {
			delete(s.comments, id)
			n++
		}
	}

	return model.DeleteResult{Acknowledged: true, DeletedCount: n}, nil
}

func checkID(id, path string) error {
	if _, err := uuid.Parse(id); err != nil {
		return &store.CastError{Kind: "UUID", Value: id, Path: path, Err: err}
	}

	return nil
}

func sorted[T any](m map[string]entry[T], keep func(T) bool) []T {
	entries := make([]entry[T], 0, len(m))
	for _, e := range m {
		if keep(e.val) {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	list := make([]T, 0, len(entries))
	for _, e := range entries {
		list = append(list, e.val)
	}

	return list
}
