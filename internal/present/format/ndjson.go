package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/kbreader/internal/content"
)

// WriteNDJSONArticles writes one JSON object per article.
func WriteNDJSONArticles(w io.Writer, views []content.View) error {
	enc := json.NewEncoder(w)
	for _, v := range views {
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}
