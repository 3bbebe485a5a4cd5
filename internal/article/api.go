// Package article serves the /articles resource.
package article

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/articles/internal/articlepayload"
	"github.com/SergeyParamoshkin/articles/internal/errresponse"
	"github.com/SergeyParamoshkin/articles/internal/logging"
	"github.com/SergeyParamoshkin/articles/internal/store"
)

const (
	msgNotFound      = "Provided article does not exists"
	msgDeleteMissing = "There is no article with the provided ID"
	msgIDMismatch    = "Route ID must match with the request body ID"
)

type Handler struct {
	articles store.ArticleStore
	comments store.CommentStore
}

// NewHandler wires the handler to its stores. comments is needed to remove
// the comments of a deleted article.
func NewHandler(articles store.ArticleStore, comments store.CommentStore) *Handler {
	return &Handler{articles: articles, comments: comments}
}

// Routes registers the RESTy routes for the "articles" resource.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", errresponse.Handle(h.ListArticles))    // GET /articles
	r.Post("/", errresponse.Handle(h.CreateArticle)) // POST /articles

	r.Route("/{articleID}", func(r chi.Router) {
		r.Get("/", errresponse.Handle(h.GetArticle))       // GET /articles/123
		r.Put("/", errresponse.Handle(h.UpdateArticle))    // PUT /articles/123
		r.Delete("/", errresponse.Handle(h.DeleteArticle)) // DELETE /articles/123
	})
}

func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) error {
	articles, err := h.articles.ListArticles(r.Context())
	if err != nil {
		return err
	}

	return render.RenderList(w, r, articlepayload.NewArticleListResponse(articles))
}

// GetArticle returns the specific Article.
func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) error {
	article, found, err := h.articles.GetArticle(r.Context(), chi.URLParam(r, "articleID"))
	if err != nil {
		return err
	}
	if !found {
		return errresponse.NewNotFoundError(msgNotFound)
	}

	return render.Render(w, r, articlepayload.NewArticleResponse(article))
}

// CreateArticle persists the posted Article and returns it
// back to the client as an acknowledgement.
func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) error {
	data := &articlepayload.ArticleRequest{}
	if err := errresponse.Bind(r, data); err != nil {
		return err
	}

	article, err := h.articles.CreateArticle(r.Context(), data.Article())
	if err != nil {
		return err
	}

	render.Status(r, http.StatusCreated)

	return render.Render(w, r, articlepayload.NewArticleResponse(article))
}

// UpdateArticle applies the fields sent in the body to an existing Article.
// A body id, when present, has to match the route id.
func (h *Handler) UpdateArticle(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "articleID")

	data := &articlepayload.ArticleRequest{}
	if err := errresponse.Bind(r, data); err != nil {
		return err
	}
	if data.ID != "" && data.ID != id {
		return errresponse.NewRequestError(msgIDMismatch)
	}

	article, found, err := h.articles.UpdateArticle(r.Context(), id, data.Patch())
	if err != nil {
		return err
	}
	if !found {
		return errresponse.NewNotFoundError(msgNotFound)
	}

	return render.Render(w, r, articlepayload.NewArticleResponse(article))
}

// DeleteArticle removes an Article and then every comment that references
// it. The two deletions are not atomic: if the second fails the article is
// already gone and its comments remain.
func (h *Handler) DeleteArticle(w http.ResponseWriter, r *http.Request) error {
	article, found, err := h.articles.DeleteArticle(r.Context(), chi.URLParam(r, "articleID"))
	if err != nil {
		return err
	}
	if !found {
		return errresponse.NewNotFoundError(msgDeleteMissing)
	}

	comments, err := h.comments.DeleteCommentsByArticle(r.Context(), article.ID)
	if err != nil {
		logging.FromContext(r.Context()).Errorw("article deleted but its comments were not",
			"article", article.ID, "error", err)

		return err
	}

	return render.Render(w, r, articlepayload.NewDeleteResponse(article, comments))
}
