package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/kbreader/internal/content"
)

func WriteJSONArticles(w io.Writer, views []content.View, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	if views == nil {
		views = []content.View{}
	}
	return enc.Encode(views)
}
