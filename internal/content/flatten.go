// Package content turns structured article bodies into display strings.
package content

import (
	"strings"

	"github.com/mithrel/kbreader/pkg/api"
)

// Flatten maps each block to one string: its children's text joined by a
// single space, in order. Block and child types are not consulted.
// The result has exactly len(blocks) entries and is never nil.
func Flatten(blocks []api.Block) []string {
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, flattenBlock(b))
	}
	return out
}

func flattenBlock(b api.Block) string {
	texts := make([]string, len(b.Children))
	for i, c := range b.Children {
		texts[i] = c.Text
	}
	return strings.Join(texts, " ")
}
