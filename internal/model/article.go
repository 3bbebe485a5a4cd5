package model

// Article data model.
type Article struct {
	ID     string `json:"id"`
	Title  string `json:"title" validate:"required"`
	Body   string `json:"body" validate:"required"`
	Author string `json:"author" validate:"required"`
}

// ArticlePatch carries the fields of an update. Nil fields are left untouched.
type ArticlePatch struct {
	Title  *string
	Body   *string
	Author *string
}

// Apply returns a copy of a with the patch fields set.
func (p ArticlePatch) Apply(a Article) Article {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Body != nil {
		a.Body = *p.Body
	}
	if p.Author != nil {
		a.Author = *p.Author
	}

	return a
}
