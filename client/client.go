// Package client talks to the articles service over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/SergeyParamoshkin/articles/internal/model"
)

type Client struct {
	http.Client
	Addr     string
	BasePath string
}

// APIError is a non-2xx answer from the service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("articles api: %d %s", e.StatusCode, e.Message)
}

// DeleteArticleResult is the answer to DeleteArticle.
type DeleteArticleResult struct {
	Article  model.Article      `json:"article"`
	Comments model.DeleteResult `json:"comments"`
}

func (c *Client) Ping(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Addr+"/ping", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), err
}

func (c *Client) ListArticles(ctx context.Context) ([]model.Article, error) {
	var out []model.Article
	err := c.call(ctx, http.MethodGet, "/articles", nil, &out)

	return out, err
}

func (c *Client) GetArticle(ctx context.Context, id string) (model.Article, error) {
	var out model.Article
	err := c.call(ctx, http.MethodGet, "/articles/"+url.PathEscape(id), nil, &out)

	return out, err
}

func (c *Client) CreateArticle(ctx context.Context, article model.Article) (model.Article, error) {
	var out model.Article
	err := c.call(ctx, http.MethodPost, "/articles", article, &out)

	return out, err
}

func (c *Client) DeleteArticle(ctx context.Context, id string) (DeleteArticleResult, error) {
	var out DeleteArticleResult
	err := c.call(ctx, http.MethodDelete, "/articles/"+url.PathEscape(id), nil, &out)

	return out, err
}

func (c *Client) ListComments(ctx context.Context, articleID string) ([]model.Comment, error) {
	var out []model.Comment
	err := c.call(ctx, http.MethodGet, "/comments?article="+url.QueryEscape(articleID), nil, &out)

	return out, err
}

func (c *Client) CreateComment(ctx context.Context, comment model.Comment) (model.Comment, error) {
	var out model.Comment
	err := c.call(ctx, http.MethodPost, "/comments", comment, &out)

	return out, err
}

func (c *Client) call(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.Addr+c.BasePath+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)

		return &APIError{StatusCode: resp.StatusCode, Message: e.Message}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
