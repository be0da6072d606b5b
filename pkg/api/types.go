package api

import "time"

// ArticleList is the envelope returned by the articles endpoint.
type ArticleList struct {
	Data []Article `json:"data" validate:"required,dive"`
}

// Article is one knowledge base entry as served by the content API.
type Article struct {
	ID         int64     `json:"id" validate:"required"`
	DocumentID string    `json:"documentId,omitempty"`
	Title      string    `json:"title"`
	Content    []Block   `json:"content" validate:"dive"`
	Category   *Category `json:"category,omitempty"`
}

// Block is one structural unit of an article body, e.g. a paragraph or heading.
type Block struct {
	Type     string  `json:"type"`
	Children []Child `json:"children" validate:"dive"`
}

// Child is an inline, text-bearing node inside a Block.
type Child struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Category is embedded when the request asks the API to populate the relation.
type Category struct {
	ID          int64     `json:"id" validate:"required"`
	DocumentID  string    `json:"documentId"`
	Name        string    `json:"name"`
	Slug        *string   `json:"slug"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	PublishedAt time.Time `json:"publishedAt"`
}
