package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/kbreader/internal/content"
	"github.com/mithrel/kbreader/internal/feed"
	"github.com/mithrel/kbreader/internal/present"
)

type articlesFlags struct {
	filter    string
	noHeaders bool
	indent    bool
}

func newArticlesCmd() *cobra.Command {
	var flags articlesFlags
	cmd := &cobra.Command{
		Use:     "articles",
		Aliases: []string{"ls"},
		Short:   "Show knowledge base articles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArticles(cmd, flags)
		},
	}
	addArticlesFlags(cmd, &flags)
	return cmd
}

func addArticlesFlags(cmd *cobra.Command, flags *articlesFlags) {
	cmd.Flags().String("output", "", "output mode: plain|pretty|json|ndjson|tui (default from config)")
	_ = cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"plain", "pretty", "json", "ndjson", "tui"}, cobra.ShellCompDirectiveNoFileComp
	})
	cmd.Flags().StringVar(&flags.filter, "filter", "", "fuzzy filter on article titles")
	cmd.Flags().BoolVar(&flags.noHeaders, "noheaders", false, "hide column headers (plain)")
	cmd.Flags().BoolVar(&flags.indent, "indent", false, "indent JSON output")
}

func runArticles(cmd *cobra.Command, flags articlesFlags) error {
	app := getApp(cmd)
	outputMode := strings.ToLower(strings.TrimSpace(app.Cfg.GetString("output")))
	mode, ok := present.ParseMode(outputMode)
	if !ok {
		return fmt.Errorf("invalid --output: %s", outputMode)
	}
	opts := present.Options{
		Mode:       mode,
		JSONIndent: flags.indent,
		Headers:    !flags.noHeaders,
		Style:      app.Cfg.GetString("tui.style"),
		WordWrap:   app.Cfg.GetInt("tui.word_wrap"),
		Filter:     flags.filter,
	}
	if mode == present.ModeTUI {
		return present.RunTUI(cmd.Context(), app.Client, app.Log, opts)
	}

	// One activation; a failed load renders as an empty list.
	screen := feed.NewScreen()
	feed.Run(cmd.Context(), screen, app.Client, app.Log)
	views := content.BuildViews(screen.Articles)

	return withPager(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(w io.Writer) error {
		return present.RenderArticles(w, views, opts)
	})
}
