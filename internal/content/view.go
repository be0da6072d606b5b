package content

import "github.com/mithrel/kbreader/pkg/api"

// View is what every presenter draws for one article.
type View struct {
	ID         int64    `json:"id"`
	Title      string   `json:"title"`
	Category   string   `json:"category"`
	Paragraphs []string `json:"paragraphs"`
}

// BuildView flattens the article body. A missing category yields "".
func BuildView(a api.Article) View {
	return View{
		ID:         a.ID,
		Title:      a.Title,
		Category:   CategoryName(a.Category),
		Paragraphs: Flatten(a.Content),
	}
}

// BuildViews maps BuildView over articles, keeping order. It never returns nil.
func BuildViews(articles []api.Article) []View {
	out := make([]View, 0, len(articles))
	for _, a := range articles {
		out = append(out, BuildView(a))
	}
	return out
}

// CategoryName is the display name of c, or "" when the relation is absent.
func CategoryName(c *api.Category) string {
	if c == nil {
		return ""
	}
	return c.Name
}
