// Package storetest holds behaviour checks shared by every store.Store
// implementation.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/SergeyParamoshkin/articles/internal/model"
	"github.com/SergeyParamoshkin/articles/internal/store"
)

// Run exercises s against the gateway contract. missingID must be a well
// formed identifier that names no record; malformedID must fail to cast.
func Run(t *testing.T, newStore func(t *testing.T) store.Store, missingID, malformedID string) {
	t.Helper()

	t.Run("EmptyListings", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		articles, err := s.ListArticles(ctx)
		if err != nil {
			t.Fatalf("list articles: %v", err)
		}
		if articles == nil || len(articles) != 0 {
			t.Fatalf("expected empty non-nil list, got %#v", articles)
		}

		comments, err := s.ListCommentsByArticle(ctx, missingID)
		if err != nil {
			t.Fatalf("list comments: %v", err)
		}
		if comments == nil || len(comments) != 0 {
			t.Fatalf("expected empty non-nil list, got %#v", comments)
		}
	})

	t.Run("ArticleRoundTrip", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.CreateArticle(ctx, model.Article{Title: "Title", Body: "Body", Author: "Author"})
		if err != nil {
			t.Fatalf("create article: %v", err)
		}
		if created.ID == "" {
			t.Fatal("expected store assigned id")
		}

		got, found, err := s.GetArticle(ctx, created.ID)
		if err != nil || !found {
			t.Fatalf("get article: found=%v err=%v", found, err)
		}
		if got != created {
			t.Fatalf("got %+v, want %+v", got, created)
		}

		title := "New title"
		updated, found, err := s.UpdateArticle(ctx, created.ID, model.ArticlePatch{Title: &title})
		if err != nil || !found {
			t.Fatalf("update article: found=%v err=%v", found, err)
		}
		if updated.Title != title || updated.Body != "Body" || updated.Author != "Author" {
			t.Fatalf("unexpected update result %+v", updated)
		}

		list, err := s.ListArticles(ctx)
		if err != nil {
			t.Fatalf("list articles: %v", err)
		}
		if len(list) != 1 || list[0] != updated {
			t.Fatalf("unexpected list %+v", list)
		}

		deleted, found, err := s.DeleteArticle(ctx, created.ID)
		if err != nil || !found {
			t.Fatalf("delete article: found=%v err=%v", found, err)
		}
		if deleted != updated {
			t.Fatalf("deleted %+v, want %+v", deleted, updated)
		}

		if _, found, err := s.GetArticle(ctx, created.ID); err != nil || found {
			t.Fatalf("expected absent after delete: found=%v err=%v", found, err)
		}
	})

	t.Run("AbsentArticle", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		if _, found, err := s.GetArticle(ctx, missingID); err != nil || found {
			t.Fatalf("get: found=%v err=%v", found, err)
		}
		title := "x"
		if _, found, err := s.UpdateArticle(ctx, missingID, model.ArticlePatch{Title: &title}); err != nil || found {
			t.Fatalf("update: found=%v err=%v", found, err)
		}
		if _, found, err := s.DeleteArticle(ctx, missingID); err != nil || found {
			t.Fatalf("delete: found=%v err=%v", found, err)
		}
	})

	t.Run("ArticleValidation", func(t *testing.T) {
		s := newStore(t)

		_, err := s.CreateArticle(context.Background(), model.Article{Title: "only title"})
		var verr *store.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("MalformedID", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		var cerr *store.CastError
		if _, _, err := s.GetArticle(ctx, malformedID); !errors.As(err, &cerr) {
			t.Fatalf("get article: expected CastError, got %v", err)
		}
		if _, _, err := s.DeleteComment(ctx, malformedID); !errors.As(err, &cerr) {
			t.Fatalf("delete comment: expected CastError, got %v", err)
		}
		if _, err := s.ListCommentsByArticle(ctx, malformedID); !errors.As(err, &cerr) {
			t.Fatalf("list comments: expected CastError, got %v", err)
		}
		_, err := s.CreateComment(ctx, model.Comment{Author: "a", Body: "b", Article: malformedID})
		if !errors.As(err, &cerr) {
			t.Fatalf("create comment: expected CastError, got %v", err)
		}
	})

	t.Run("CommentLifecycle", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		article, err := s.CreateArticle(ctx, model.Article{Title: "t", Body: "b", Author: "a"})
		if err != nil {
			t.Fatalf("create article: %v", err)
		}
		other, err := s.CreateArticle(ctx, model.Article{Title: "t2", Body: "b2", Author: "a2"})
		if err != nil {
			t.Fatalf("create article: %v", err)
		}

		first, err := s.CreateComment(ctx, model.Comment{Author: "Test", Body: "first", Article: article.ID})
		if err != nil {
			t.Fatalf("create comment: %v", err)
		}
		if _, err := s.CreateComment(ctx, model.Comment{Author: "Test", Body: "second", Article: article.ID}); err != nil {
			t.Fatalf("create comment: %v", err)
		}
		kept, err := s.CreateComment(ctx, model.Comment{Author: "Test", Body: "other", Article: other.ID})
		if err != nil {
			t.Fatalf("create comment: %v", err)
		}

		got, found, err := s.GetComment(ctx, first.ID)
		if err != nil || !found {
			t.Fatalf("get comment: found=%v err=%v", found, err)
		}
		if got != first {
			t.Fatalf("got %+v, want %+v", got, first)
		}

		byArticle, err := s.ListCommentsByArticle(ctx, article.ID)
		if err != nil {
			t.Fatalf("list by article: %v", err)
		}
		if len(byArticle) != 2 {
			t.Fatalf("expected 2 comments, got %d", len(byArticle))
		}

		all, err := s.ListComments(ctx)
		if err != nil {
			t.Fatalf("list comments: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("expected 3 comments, got %d", len(all))
		}

		body := "edited"
		updated, found, err := s.UpdateComment(ctx, first.ID, model.CommentPatch{Body: &body, Article: &article.ID})
		if err != nil || !found {
			t.Fatalf("update comment: found=%v err=%v", found, err)
		}
		if updated.Body != body || updated.Author != "Test" || updated.Article != article.ID {
			t.Fatalf("unexpected update %+v", updated)
		}

		res, err := s.DeleteCommentsByArticle(ctx, article.ID)
		if err != nil {
			t.Fatalf("delete by article: %v", err)
		}
		if res.DeletedCount != 2 || !res.Acknowledged {
			t.Fatalf("unexpected delete result %+v", res)
		}

		left, err := s.ListCommentsByArticle(ctx, article.ID)
		if err != nil {
			t.Fatalf("list by article: %v", err)
		}
		if len(left) != 0 {
			t.Fatalf("expected no comments left, got %d", len(left))
		}

		deleted, found, err := s.DeleteComment(ctx, kept.ID)
		if err != nil || !found {
			t.Fatalf("delete comment: found=%v err=%v", found, err)
		}
		if deleted != kept {
			t.Fatalf("deleted %+v, want %+v", deleted, kept)
		}
		if _, found, err := s.DeleteComment(ctx, kept.ID); err != nil || found {
			t.Fatalf("second delete: found=%v err=%v", found, err)
		}
	})
}
