package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/articles/internal/model"
	"github.com/SergeyParamoshkin/articles/internal/store"
	"github.com/SergeyParamoshkin/articles/internal/store/memory"
)

// countingStore records how often each store method was called.
type countingStore struct {
	store.Store

	mu    sync.Mutex
	calls map[string]int
}

func newCountingStore() *countingStore {
	return &countingStore{Store: memory.New(), calls: map[string]int{}}
}

func (c *countingStore) count(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[name]++
}

func (c *countingStore) Calls(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.calls[name]
}

func (c *countingStore) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, v := range c.calls {
		n += v
	}

	return n
}

func (c *countingStore) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = map[string]int{}
}

func (c *countingStore) ListArticles(ctx context.Context) ([]model.Article, error) {
	c.count("ListArticles")
	return c.Store.ListArticles(ctx)
}

func (c *countingStore) GetArticle(ctx context.Context, id string) (model.Article, bool, error) {
	c.count("GetArticle")
	return c.Store.GetArticle(ctx, id)
}

func (c *countingStore) CreateArticle(ctx context.Context, a model.Article) (model.Article, error) {
	c.count("CreateArticle")
	return c.Store.CreateArticle(ctx, a)
}

func (c *countingStore) UpdateArticle(ctx context.Context, id string, p model.ArticlePatch) (model.Article, bool, error) {
	c.count("UpdateArticle")
	return c.Store.UpdateArticle(ctx, id, p)
}

func (c *countingStore) DeleteArticle(ctx context.Context, id string) (model.Article, bool, error) {
	c.count("DeleteArticle")
	return c.Store.DeleteArticle(ctx, id)
}

func (c *countingStore) ListComments(ctx context.Context) ([]model.Comment, error) {
	c.count("ListComments")
	return c.Store.ListComments(ctx)
}

func (c *countingStore) ListCommentsByArticle(ctx context.Context, articleID string) ([]model.Comment, error) {
	c.count("ListCommentsByArticle")
	return c.Store.ListCommentsByArticle(ctx, articleID)
}

func (c *countingStore) GetComment(ctx context.Context, id string) (model.Comment, bool, error) {
	c.count("GetComment")
	return c.Store.GetComment(ctx, id)
}

func (c *countingStore) CreateComment(ctx context.Context, cm model.Comment) (model.Comment, error) {
	c.count("CreateComment")
	return c.Store.CreateComment(ctx, cm)
}

func (c *countingStore) UpdateComment(ctx context.Context, id string, p model.CommentPatch) (model.Comment, bool, error) {
	c.count("UpdateComment")
	return c.Store.UpdateComment(ctx, id, p)
}

func (c *countingStore) DeleteComment(ctx context.Context, id string) (model.Comment, bool, error) {
	c.count("DeleteComment")
	return c.Store.DeleteComment(ctx, id)
}

func (c *countingStore) DeleteCommentsByArticle(ctx context.Context, articleID string) (model.DeleteResult, error) {
	c.count("DeleteCommentsByArticle")
	return c.Store.DeleteCommentsByArticle(ctx, articleID)
}

const missingID = "6f1c1c2e-8d0a-4bb8-9a36-3a8f0f6b6d11"

func newTestRouter(t *testing.T) (http.Handler, *countingStore) {
	t.Helper()
	st := newCountingStore()

	return NewRouter(st, zap.NewNop().Sugar(), nil, "/api"), st
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("json parse %q: %v", rec.Body.String(), err)
	}
}

func expect(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
	if message == "" {
		return
	}

	var body map[string]string
	decode(t, rec, &body)
	if body["message"] != message {
		t.Fatalf("message = %q, want %q", body["message"], message)
	}
}

func createArticle(t *testing.T, h http.Handler) model.Article {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/articles", `{"title":"Test","body":"Test","author":"Test"}`)
	expect(t, rec, http.StatusCreated, "")

	var a model.Article
	decode(t, rec, &a)

	return a
}

func createComment(t *testing.T, h http.Handler, articleID string) model.Comment {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/comments", `{"author":"Test","body":"Test","article":"`+articleID+`"}`)
	expect(t, rec, http.StatusCreated, "")

	var c model.Comment
	decode(t, rec, &c)

	return c
}

func TestListArticlesEmpty(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/articles", "")
	expect(t, rec, http.StatusOK, "")
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("expected empty list, got %s", got)
	}
}

func TestArticleRoundTrip(t *testing.T) {
	h, _ := newTestRouter(t)
	created := createArticle(t, h)
	if created.ID == "" {
		t.Fatal("expected id to be assigned")
	}

	rec := do(t, h, http.MethodGet, "/api/articles/"+created.ID, "")
	expect(t, rec, http.StatusOK, "")
	var got model.Article
	decode(t, rec, &got)
	if got != created {
		t.Fatalf("got %+v, want %+v", got, created)
	}

	rec = do(t, h, http.MethodGet, "/api/articles", "")
	var list []model.Article
	decode(t, rec, &list)
	if len(list) != 1 || list[0] != created {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestGetMissingIsNotFound(t *testing.T) {
	h, _ := newTestRouter(t)

	expect(t, do(t, h, http.MethodGet, "/api/articles/"+missingID, ""), http.StatusNotFound, "Provided article does not exists")
	expect(t, do(t, h, http.MethodGet, "/api/comments/"+missingID, ""), http.StatusNotFound, "Provided comment does not exists")
}

func TestMalformedIDIsBadRequest(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/articles/not-an-id", "")
	expect(t, rec, http.StatusBadRequest, `cast to UUID failed for value "not-an-id" at path "_id"`)
}

func TestCreateArticleValidation(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/articles", `{"title":"Test"}`)
	expect(t, rec, http.StatusBadRequest, "article validation failed: body, author is required")
}

func TestCreateArticleMalformedJSON(t *testing.T) {
	h, st := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/articles", `{"title":`)
	expect(t, rec, http.StatusBadRequest, "")
	if st.Total() != 0 {
		t.Fatalf("expected no store calls, got %d", st.Total())
	}
}

func TestUpdateArticle(t *testing.T) {
	h, _ := newTestRouter(t)
	created := createArticle(t, h)

	rec := do(t, h, http.MethodPut, "/api/articles/"+created.ID, `{"id":"`+created.ID+`","title":"Updated"}`)
	expect(t, rec, http.StatusOK, "")

	var got model.Article
	decode(t, rec, &got)
	if got.Title != "Updated" || got.Body != created.Body || got.ID != created.ID {
		t.Fatalf("unexpected update result %+v", got)
	}

	// a body without an id is accepted
	rec = do(t, h, http.MethodPut, "/api/articles/"+created.ID, `{"author":"Someone"}`)
	expect(t, rec, http.StatusOK, "")
}

func TestUpdateMismatchedIDMakesNoStoreCalls(t *testing.T) {
	h, st := newTestRouter(t)
	created := createArticle(t, h)
	comment := createComment(t, h, created.ID)
	st.Reset()

	rec := do(t, h, http.MethodPut, "/api/articles/"+created.ID, `{"id":"`+missingID+`","title":"x"}`)
	expect(t, rec, http.StatusBadRequest, "Route ID must match with the request body ID")

	rec = do(t, h, http.MethodPut, "/api/comments/"+comment.ID, `{"id":"`+missingID+`","article":"`+created.ID+`"}`)
	expect(t, rec, http.StatusBadRequest, "Route ID must match with the request body ID")

	if st.Total() != 0 {
		t.Fatalf("expected no store calls, got %v", st.calls)
	}
}

func TestUpdateMissingArticle(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodPut, "/api/articles/"+missingID, `{"title":"x"}`)
	expect(t, rec, http.StatusNotFound, "Provided article does not exists")
}

func TestDeleteArticleCascades(t *testing.T) {
	h, st := newTestRouter(t)
	created := createArticle(t, h)
	other := createArticle(t, h)
	createComment(t, h, created.ID)
	createComment(t, h, created.ID)
	createComment(t, h, other.ID)
	st.Reset()

	rec := do(t, h, http.MethodDelete, "/api/articles/"+created.ID, "")
	expect(t, rec, http.StatusOK, "")

	var body struct {
		Article  model.Article      `json:"article"`
		Comments model.DeleteResult `json:"comments"`
	}
	decode(t, rec, &body)
	if body.Article != created {
		t.Fatalf("unexpected article %+v", body.Article)
	}
	if body.Comments.DeletedCount != 2 || !body.Comments.Acknowledged {
		t.Fatalf("unexpected comments result %+v", body.Comments)
	}
	if st.Calls("DeleteArticle") != 1 || st.Calls("DeleteCommentsByArticle") != 1 {
		t.Fatalf("unexpected calls %v", st.calls)
	}

	rec = do(t, h, http.MethodGet, "/api/comments?article="+created.ID, "")
	var left []model.Comment
	decode(t, rec, &left)
	if len(left) != 0 {
		t.Fatalf("expected comments to be removed, got %d", len(left))
	}

	rec = do(t, h, http.MethodGet, "/api/comments?article="+other.ID, "")
	decode(t, rec, &left)
	if len(left) != 1 {
		t.Fatalf("expected other article's comment to stay, got %d", len(left))
	}
}

func TestDeleteMissingArticleDoesNotCascade(t *testing.T) {
	h, st := newTestRouter(t)

	rec := do(t, h, http.MethodDelete, "/api/articles/"+missingID, "")
	expect(t, rec, http.StatusNotFound, "There is no article with the provided ID")
	if st.Calls("DeleteCommentsByArticle") != 0 {
		t.Fatalf("expected no cascade, got %v", st.calls)
	}
}

func TestListCommentsRequiresArticle(t *testing.T) {
	h, st := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/comments", "")
	expect(t, rec, http.StatusBadRequest, "ArticleId must be provided")
	if st.Total() != 0 {
		t.Fatalf("expected no store calls, got %v", st.calls)
	}
}

func TestListCommentsEmpty(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/comments?article="+missingID, "")
	expect(t, rec, http.StatusOK, "")
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("expected empty list, got %s", got)
	}
}

func TestCreateCommentWithoutArticle(t *testing.T) {
	h, st := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/comments", `{"author":"Test","body":"Test"}`)
	expect(t, rec, http.StatusBadRequest, "Article must be provided")
	if st.Total() != 0 {
		t.Fatalf("expected no store calls, got %v", st.calls)
	}
}

func TestCreateCommentWithMissingArticle(t *testing.T) {
	h, st := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/comments", `{"author":"Test","body":"Test","article":"`+missingID+`"}`)
	expect(t, rec, http.StatusNotFound, "Provided article does not exists")
	if st.Calls("GetArticle") != 1 || st.Calls("CreateComment") != 0 {
		t.Fatalf("unexpected calls %v", st.calls)
	}
}

func TestCommentLifecycle(t *testing.T) {
	h, _ := newTestRouter(t)
	article := createArticle(t, h)
	created := createComment(t, h, article.ID)
	if created.Article != article.ID {
		t.Fatalf("unexpected parent %q", created.Article)
	}

	rec := do(t, h, http.MethodGet, "/api/comments/"+created.ID, "")
	expect(t, rec, http.StatusOK, "")
	var got model.Comment
	decode(t, rec, &got)
	if got != created {
		t.Fatalf("got %+v, want %+v", got, created)
	}

	rec = do(t, h, http.MethodPut, "/api/comments/"+created.ID, `{"body":"Edited","article":"`+article.ID+`"}`)
	expect(t, rec, http.StatusOK, "")
	decode(t, rec, &got)
	if got.Body != "Edited" || got.Author != "Test" {
		t.Fatalf("unexpected update %+v", got)
	}

	rec = do(t, h, http.MethodDelete, "/api/comments/"+created.ID, "")
	expect(t, rec, http.StatusOK, "")

	expect(t, do(t, h, http.MethodDelete, "/api/comments/"+created.ID, ""), http.StatusNotFound, "There is no comment with the provided ID")
}

func TestUpdateCommentChecksParent(t *testing.T) {
	h, st := newTestRouter(t)
	article := createArticle(t, h)
	created := createComment(t, h, article.ID)
	st.Reset()

	rec := do(t, h, http.MethodPut, "/api/comments/"+created.ID, `{"body":"Edited"}`)
	expect(t, rec, http.StatusBadRequest, "Article must be provided")
	if st.Total() != 0 {
		t.Fatalf("expected no store calls, got %v", st.calls)
	}

	rec = do(t, h, http.MethodPut, "/api/comments/"+created.ID, `{"body":"Edited","article":"`+missingID+`"}`)
	expect(t, rec, http.StatusNotFound, "Provided article does not exists")
	if st.Calls("UpdateComment") != 0 {
		t.Fatalf("expected no update, got %v", st.calls)
	}

	rec = do(t, h, http.MethodPut, "/api/comments/"+missingID, `{"body":"Edited","article":"`+article.ID+`"}`)
	expect(t, rec, http.StatusNotFound, "Provided comment does not exists")
}

func TestUnmatchedRoute(t *testing.T) {
	h, _ := newTestRouter(t)

	expect(t, do(t, h, http.MethodGet, "/api/users", ""), http.StatusNotFound, "Resource not found")
	expect(t, do(t, h, http.MethodPatch, "/api/articles", ""), http.StatusNotFound, "Resource not found")
}

func TestPing(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/ping", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "pong" {
		t.Fatalf("unexpected ping response %d %q", rec.Code, rec.Body.String())
	}
}

func TestEmptyBodyIsAnEmptyPayload(t *testing.T) {
	h, st := newTestRouter(t)

	expect(t, do(t, h, http.MethodPost, "/api/comments", ""), http.StatusBadRequest, "Article must be provided")
	if st.Total() != 0 {
		t.Fatalf("expected no store calls, got %v", st.calls)
	}

	expect(t, do(t, h, http.MethodPost, "/api/articles", ""), http.StatusBadRequest, "article validation failed: title, body, author is required")
}

func TestWrongFieldTypeIsBadRequest(t *testing.T) {
	h, st := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/comments", `{"author":"Test","body":"Test","article":1}`)
	expect(t, rec, http.StatusBadRequest, "Invalid value for field article")
	if st.Total() != 0 {
		t.Fatalf("expected no store calls, got %v", st.calls)
	}
}

// panicStore fails every article listing with a panic.
type panicStore struct {
	store.Store
}

func (panicStore) ListArticles(ctx context.Context) ([]model.Article, error) {
	panic("connection pool exhausted")
}

func TestPanicIsUnexpectedError(t *testing.T) {
	h := NewRouter(panicStore{Store: memory.New()}, zap.NewNop().Sugar(), nil, "/api")

	expect(t, do(t, h, http.MethodGet, "/api/articles", ""), http.StatusInternalServerError, "Unexpected error")

	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/articles")
	if err != nil {
		t.Fatalf("expected a response, got %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
}

func TestSwaggerDoc(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/swagger/doc.json", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var doc struct {
		Paths map[string]json.RawMessage `json:"paths"`
	}
	decode(t, rec, &doc)
	for _, path := range []string{"/articles", "/articles/{articleID}", "/comments", "/comments/{commentID}"} {
		if _, ok := doc.Paths[path]; !ok {
			t.Fatalf("expected %s in swagger doc, got %v", path, doc.Paths)
		}
	}
}

func TestBodyIsJSONWithoutContentType(t *testing.T) {
	h, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/articles", strings.NewReader(`{"title":"Test","body":"Test","author":"Test"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	expect(t, rec, http.StatusCreated, "")
}
