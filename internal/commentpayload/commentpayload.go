// Package commentpayload holds the request and response payloads of the
// /comments resource.
package commentpayload

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/articles/internal/model"
)

type CommentRequest struct {
	ID      string  `json:"id,omitempty"`
	Article string  `json:"article"`
	Author  *string `json:"author"`
	Body    *string `json:"body"`
}

func (c *CommentRequest) Bind(r *http.Request) error {
	return nil
}

func (c *CommentRequest) Comment() model.Comment {
	return c.Patch().Apply(model.Comment{})
}

func (c *CommentRequest) Patch() model.CommentPatch {
	p := model.CommentPatch{Author: c.Author, Body: c.Body}
	if c.Article != "" {
		article := c.Article
		p.Article = &article
	}

	return p
}

type CommentResponse struct {
	*model.Comment
}

func NewCommentResponse(comment model.Comment) *CommentResponse {
	return &CommentResponse{Comment: &comment}
}

func (rd *CommentResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func NewCommentListResponse(comments []model.Comment) []render.Renderer {
	list := []render.Renderer{}
	for _, comment := range comments {
		list = append(list, NewCommentResponse(comment))
	}

	return list
}
