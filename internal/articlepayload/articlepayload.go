// Package articlepayload holds the request and response payloads of the
// /articles resource.
package articlepayload

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/articles/internal/model"
)

// ArticleRequest is the request payload for Article data model. Pointer
// fields distinguish "not sent" from "sent empty", which updates rely on.
type ArticleRequest struct {
	ID     string  `json:"id,omitempty"`
	Title  *string `json:"title"`
	Body   *string `json:"body"`
	Author *string `json:"author"`
}

func (a *ArticleRequest) Bind(r *http.Request) error {
	return nil
}

// Article returns the record to create. Missing fields stay empty and are
// rejected by the store.
func (a *ArticleRequest) Article() model.Article {
	return a.Patch().Apply(model.Article{})
}

func (a *ArticleRequest) Patch() model.ArticlePatch {
	return model.ArticlePatch{Title: a.Title, Body: a.Body, Author: a.Author}
}

// ArticleResponse is the response payload for the Article data model.
type ArticleResponse struct {
	*model.Article
}

func NewArticleResponse(article model.Article) *ArticleResponse {
	return &ArticleResponse{Article: &article}
}

func (rd *ArticleResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func NewArticleListResponse(articles []model.Article) []render.Renderer {
	list := []render.Renderer{}
	for _, article := range articles {
		list = append(list, NewArticleResponse(article))
	}

	return list
}

// DeleteResponse carries the deleted article together with the outcome of
// removing its comments.
type DeleteResponse struct {
	Article  *ArticleResponse    `json:"article"`
	Comments *model.DeleteResult `json:"comments"`
}

func NewDeleteResponse(article model.Article, comments model.DeleteResult) *DeleteResponse {
	return &DeleteResponse{
		Article:  NewArticleResponse(article),
		Comments: &comments,
	}
}

func (rd *DeleteResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
