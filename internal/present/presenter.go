package present

import (
	"context"
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/mithrel/kbreader/internal/content"
	"github.com/mithrel/kbreader/internal/feed"
	"github.com/mithrel/kbreader/internal/present/format"
	"github.com/mithrel/kbreader/internal/present/tui"
	"github.com/mithrel/kbreader/internal/util"
)

type Mode int

const (
	ModePlain Mode = iota
	ModePretty
	ModeJSON
	ModeNDJSON
	ModeTUI
)

type Options struct {
	Mode       Mode
	JSONIndent bool
	Headers    bool
	Style      string
	WordWrap   int
	Filter     string
}

// ParseMode parses a string like "plain", "pretty", "json", "ndjson", "tui".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "plain":
		return ModePlain, true
	case "pretty":
		return ModePretty, true
	case "json":
		return ModeJSON, true
	case "ndjson":
		return ModeNDJSON, true
	case "tui":
		return ModeTUI, true
	default:
		return ModeTUI, false
	}
}

// RenderArticles writes already loaded articles in a non-interactive mode.
func RenderArticles(w io.Writer, views []content.View, opts Options) error {
	views = FilterViews(views, opts.Filter)
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONArticles(w, views, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSONArticles(w, views)
	case ModePretty:
		return format.WritePrettyArticles(w, views, opts.Style, opts.WordWrap)
	case ModeTUI:
		return errors.New("tui mode loads its own articles; use RunTUI")
	default:
		return format.WritePlainArticles(w, views, opts.Headers)
	}
}

// RunTUI opens the interactive reader; it performs its own load.
func RunTUI(ctx context.Context, f feed.Fetcher, log *logrus.Logger, opts Options) error {
	return tui.Run(ctx, tui.Options{
		Fetcher:  f,
		Log:      log,
		Style:    opts.Style,
		WordWrap: opts.WordWrap,
		Filter:   opts.Filter,
	})
}

// FilterViews keeps the views whose title fuzzy-matches query, in order.
func FilterViews(views []content.View, query string) []content.View {
	if query == "" {
		return views
	}
	titles := make([]string, len(views))
	for i, v := range views {
		titles[i] = v.Title
	}
	idx := util.MatchIndices(query, titles)
	out := make([]content.View, 0, len(idx))
	for _, i := range idx {
		out = append(out, views[i])
	}
	return out
}
