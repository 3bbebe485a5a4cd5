package main

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/articles/client"
	"github.com/SergeyParamoshkin/articles/internal/api"
	"github.com/SergeyParamoshkin/articles/internal/store/memory"
)

const fixtures = `[
  {"title": "Hi", "body": "First", "author": "Peter",
   "comments": [{"author": "Julia", "body": "Nice"}, {"author": "Peter", "body": "Thanks"}]},
  {"title": "sup", "body": "Second", "author": "Julia"}
]`

func TestSeed(t *testing.T) {
	srv := httptest.NewServer(api.NewRouter(memory.New(), zap.NewNop().Sugar(), nil, "/api"))
	defer srv.Close()

	c := &client.Client{Client: *srv.Client(), Addr: srv.URL, BasePath: "/api"}
	ctx := context.Background()

	st, err := seed(ctx, c, strings.NewReader(fixtures), zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if st.Articles != 2 || st.Comments != 2 {
		t.Fatalf("unexpected stats %+v", st)
	}

	articles, err := c.ListArticles(ctx)
	if err != nil {
		t.Fatalf("list articles: %v", err)
	}
	if len(articles) != 2 || articles[0].Title != "Hi" {
		t.Fatalf("unexpected articles %+v", articles)
	}

	comments, err := c.ListComments(ctx, articles[0].ID)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}
}

func TestSeedStopsOnRejectedFixture(t *testing.T) {
	srv := httptest.NewServer(api.NewRouter(memory.New(), zap.NewNop().Sugar(), nil, "/api"))
	defer srv.Close()

	c := &client.Client{Client: *srv.Client(), Addr: srv.URL, BasePath: "/api"}

	st, err := seed(context.Background(), c, strings.NewReader(`[{"title": "no body"}]`), zap.NewNop().Sugar())
	if err == nil {
		t.Fatal("expected error")
	}
	if st.Articles != 0 {
		t.Fatalf("unexpected stats %+v", st)
	}
}
