package model

// Comment data model. Article holds the identifier of the parent article.
type Comment struct {
	ID      string `json:"id"`
	Author  string `json:"author" validate:"required"`
	Body    string `json:"body" validate:"required"`
	Article string `json:"article" validate:"required"`
}

type CommentPatch struct {
	Author  *string
	Body    *string
	Article *string
}

func (p CommentPatch) Apply(c Comment) Comment {
	if p.Author != nil {
		c.Author = *p.Author
	}
	if p.Body != nil {
		c.Body = *p.Body
	}
	if p.Article != nil {
		c.Article = *p.Article
	}

	return c
}

// DeleteResult reports the outcome of a bulk delete.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}
