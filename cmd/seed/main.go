// Command seed loads fixture articles and their comments into a running
// articles service. The input is a JSON array of articles, each optionally
// carrying a "comments" array; it is streamed so large files are fine.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/bcicen/jstream"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/articles/client"
	"github.com/SergeyParamoshkin/articles/internal/model"
)

type fixture struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Author   string `json:"author"`
	Comments []struct {
		Author string `json:"author"`
		Body   string `json:"body"`
	} `json:"comments"`
}

type stats struct {
	Articles int
	Comments int
}

func main() {
	var (
		addr     = pflag.String("addr", "http://localhost:3333", "service address")
		basePath = pflag.String("base_path", "/api", "path the resources are mounted under")
		file     = pflag.String("file", "-", "fixture file, - for stdin")
		timeout  = pflag.Duration("timeout", 30*time.Second, "overall timeout")
	)
	pflag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	in := io.Reader(os.Stdin)
	if *file != "-" {
		f, err := os.Open(*file)
		if err != nil {
			sugar.Fatalw("open fixtures", "file", *file, "error", err)
		}
		defer f.Close()
		in = f
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	c := &client.Client{Client: http.Client{}, Addr: *addr, BasePath: *basePath}
	if _, err := c.Ping(ctx); err != nil {
		sugar.Fatalw("service unreachable", "addr", *addr, "error", err)
	}

	st, err := seed(ctx, c, in, sugar)
	if err != nil {
		sugar.Fatalw("seed failed", "articles", st.Articles, "comments", st.Comments, "error", err)
	}
	sugar.Infow("seed done", "articles", st.Articles, "comments", st.Comments)
}

func seed(ctx context.Context, c *client.Client, r io.Reader, logger *zap.SugaredLogger) (stats, error) {
	var st stats

	decoder := jstream.NewDecoder(r, 1)
	for mv := range decoder.Stream() {
		var fx fixture
		if err := remarshal(mv.Value, &fx); err != nil {
			return st, fmt.Errorf("fixture at offset %d: %w", mv.Offset, err)
		}

		article, err := c.CreateArticle(ctx, model.Article{Title: fx.Title, Body: fx.Body, Author: fx.Author})
		if err != nil {
			return st, fmt.Errorf("create article %q: %w", fx.Title, err)
		}
		st.Articles++
		logger.Debugw("article created", "id", article.ID, "title", article.Title)

		for _, cm := range fx.Comments {
			_, err := c.CreateComment(ctx, model.Comment{Author: cm.Author, Body: cm.Body, Article: article.ID})
			if err != nil {
				return st, fmt.Errorf("create comment on %s: %w", article.ID, err)
			}
			st.Comments++
		}
	}

	if err := decoder.Err(); err != nil {
		return st, fmt.Errorf("decode fixtures: %w", err)
	}

	return st, nil
}

// remarshal converts a decoded stream value into v.
func remarshal(value interface{}, v interface{}) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return json.Unmarshal(b, v)
}
