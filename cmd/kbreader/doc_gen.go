//go:build ignore
// +build ignore

// Usage: go run ./cmd/kbreader/doc_gen.go [outdir]
package main

import (
	"log"
	"os"
	"path/filepath"

	kbreader "github.com/mithrel/kbreader/internal/cli"
	"github.com/spf13/cobra/doc"
)

func main() {
	out := "./docs"
	if len(os.Args) > 1 {
		out = os.Args[1]
	}
	root := kbreader.NewRootCmd()
	root.DisableAutoGenTag = true

	for _, dir := range []string{"markdown", "man"} {
		if err := os.MkdirAll(filepath.Join(out, dir), 0o755); err != nil {
			log.Fatal(err)
		}
	}
	if err := doc.GenMarkdownTree(root, filepath.Join(out, "markdown")); err != nil {
		log.Fatal(err)
	}
	header := &doc.GenManHeader{
		Title:   "KBREADER",
		Section: "1",
		Source:  "kbreader",
	}
	if err := doc.GenManTree(root, header, filepath.Join(out, "man")); err != nil {
		log.Fatal(err)
	}
}
