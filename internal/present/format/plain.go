package format

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mithrel/kbreader/internal/content"
)

// TSV columns: id, title, category, content (paragraphs separated by \n)
var headerLine = "id\ttitle\tcategory\tcontent\n"

func esc(field string) string {
	field = strings.ReplaceAll(field, "\t", "\\t")
	field = strings.ReplaceAll(field, "\n", "\\n")
	return field
}

func WritePlainArticles(w io.Writer, views []content.View, headers bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if headers {
		_, _ = io.WriteString(tw, headerLine)
	}
	for _, v := range views {
		line := fmt.Sprintf("%d\t%s\t%s\t%s\n",
			v.ID, esc(v.Title), esc(v.Category), esc(strings.Join(v.Paragraphs, "\n")))
		_, _ = io.WriteString(tw, line)
	}
	return tw.Flush()
}
