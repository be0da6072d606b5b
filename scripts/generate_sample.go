//go:build ignore

// Writes a deterministic fixture for `kbreader serve --fixture`.
package main

import (
	"encoding/json"
	"fmt"
	mrand "math/rand"
	"os"
	"time"

	"github.com/mithrel/kbreader/pkg/api"
)

var categories = []string{"Getting started", "Billing", "Accounts", "Troubleshooting"}

var words = []string{
	"open", "the", "settings", "screen", "select", "account", "tap", "save",
	"your", "changes", "apply", "after", "restart", "invoice", "payment", "device",
}

func main() {
	// Deterministic seed for reproducible output
	mr := mrand.New(mrand.NewSource(42))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	cats := make([]*api.Category, len(categories))
	for i, name := range categories {
		slug := fmt.Sprintf("cat-%02d", i+1)
		created := base.Add(time.Duration(i) * time.Hour)
		cats[i] = &api.Category{
			ID:          int64(i + 1),
			DocumentID:  fmt.Sprintf("c%07d", i+1),
			Name:        name,
			Slug:        &slug,
			CreatedAt:   created,
			UpdatedAt:   created,
			PublishedAt: created,
		}
	}

	const total = 40
	out := make([]api.Article, 0, total)
	for i := 0; i < total; i++ {
		a := api.Article{
			ID:         int64(i + 1),
			DocumentID: fmt.Sprintf("a%07d", i+1),
			Title:      fmt.Sprintf("Sample Article %02d", i+1),
			Content:    sampleBlocks(mr, 1+mr.Intn(4)),
		}
		// ~1 in 6 articles has no category
		if mr.Intn(6) != 0 {
			a.Category = cats[mr.Intn(len(cats))]
		}
		out = append(out, a)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(api.ArticleList{Data: out}); err != nil {
		panic(err)
	}
}

func sampleBlocks(r *mrand.Rand, n int) []api.Block {
	blocks := make([]api.Block, n)
	for i := range blocks {
		children := make([]api.Child, 1+r.Intn(3))
		for j := range children {
			children[j] = api.Child{Type: "text", Text: sentence(r, 3+r.Intn(8))}
		}
		blocks[i] = api.Block{Type: "paragraph", Children: children}
	}
	return blocks
}

func sentence(r *mrand.Rand, n int) string {
	s := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			s += " "
		}
		s += words[r.Intn(len(words))]
	}
	return s
}
