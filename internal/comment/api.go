// Package comment serves the /comments resource. Every comment names a
// parent article, which must exist whenever the comment is written.
package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/articles/internal/commentpayload"
	"github.com/SergeyParamoshkin/articles/internal/errresponse"
	"github.com/SergeyParamoshkin/articles/internal/store"
)

const (
	msgArticleIDRequired = "ArticleId must be provided"
	msgArticleRequired   = "Article must be provided"
	msgArticleNotFound   = "Provided article does not exists"
	msgNotFound          = "Provided comment does not exists"
	msgDeleteMissing     = "There is no comment with the provided ID"
	msgIDMismatch        = "Route ID must match with the request body ID"
)

type Handler struct {
	comments store.CommentStore
	articles store.ArticleStore
}

func NewHandler(comments store.CommentStore, articles store.ArticleStore) *Handler {
	return &Handler{comments: comments, articles: articles}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", errresponse.Handle(h.ListComments))    // GET /comments?article=123
	r.Post("/", errresponse.Handle(h.CreateComment)) // POST /comments

	r.Route("/{commentID}", func(r chi.Router) {
		r.Get("/", errresponse.Handle(h.GetComment))
		r.Put("/", errresponse.Handle(h.UpdateComment))
		r.Delete("/", errresponse.Handle(h.DeleteComment))
	})
}

// ListComments lists the comments of the article named by ?article=.
func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) error {
	articleID := r.URL.Query().Get("article")
	if articleID == "" {
		return errresponse.NewRequestError(msgArticleIDRequired)
	}

	comments, err := h.comments.ListCommentsByArticle(r.Context(), articleID)
	if err != nil {
		return err
	}

	return render.RenderList(w, r, commentpayload.NewCommentListResponse(comments))
}

func (h *Handler) GetComment(w http.ResponseWriter, r *http.Request) error {
	comment, found, err := h.comments.GetComment(r.Context(), chi.URLParam(r, "commentID"))
	if err != nil {
		return err
	}
	if !found {
		return errresponse.NewNotFoundError(msgNotFound)
	}

	return render.Render(w, r, commentpayload.NewCommentResponse(comment))
}

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) error {
	data := &commentpayload.CommentRequest{}
	if err := errresponse.Bind(r, data); err != nil {
		return err
	}
	if err := h.checkParent(r, data.Article); err != nil {
		return err
	}

	comment, err := h.comments.CreateComment(r.Context(), data.Comment())
	if err != nil {
		return err
	}

	render.Status(r, http.StatusCreated)

	return render.Render(w, r, commentpayload.NewCommentResponse(comment))
}

func (h *Handler) UpdateComment(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "commentID")

	data := &commentpayload.CommentRequest{}
	if err := errresponse.Bind(r, data); err != nil {
		return err
	}
	if data.ID != "" && data.ID != id {
		return errresponse.NewRequestError(msgIDMismatch)
	}
	if err := h.checkParent(r, data.Article); err != nil {
		return err
	}

	comment, found, err := h.comments.UpdateComment(r.Context(), id, data.Patch())
	if err != nil {
		return err
	}
	if !found {
		return errresponse.NewNotFoundError(msgNotFound)
	}

	return render.Render(w, r, commentpayload.NewCommentResponse(comment))
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) error {
	comment, found, err := h.comments.DeleteComment(r.Context(), chi.URLParam(r, "commentID"))
	if err != nil {
		return err
	}
	if !found {
		return errresponse.NewNotFoundError(msgDeleteMissing)
	}

	return render.Render(w, r, commentpayload.NewCommentResponse(comment))
}

// checkParent requires a parent reference and then its existence, in that
// order, so a missing reference never costs a store round trip.
func (h *Handler) checkParent(r *http.Request, articleID string) error {
	if articleID == "" {
		return errresponse.NewRequestError(msgArticleRequired)
	}

	_, found, err := h.articles.GetArticle(r.Context(), articleID)
	if err != nil {
		return err
	}
	if !found {
		return errresponse.NewNotFoundError(msgArticleNotFound)
	}

	return nil
}
