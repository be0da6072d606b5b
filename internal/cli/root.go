package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mithrel/kbreader/internal/config"
	"github.com/mithrel/kbreader/internal/wire"
)

type ctxKey string

const appKey ctxKey = "app"

// Execute builds the root command and runs it until an interrupt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd constructs the Cobra root command and wires dependencies.
func NewRootCmd() *cobra.Command {
	var cfgPath string
	var flags articlesFlags

	cmd := &cobra.Command{
		Use:           "kbreader",
		Short:         "Read the knowledge base from your terminal",
		SilenceUsage:  true, // don't show usage on runtime errors
		SilenceErrors: true, // let main print errors once
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			if err := config.Load(cmd.Context(), v); err != nil {
				return err
			}
			applyConfigFlagOverrides(cmd, v, map[string]string{
				"base-url":   "base_url",
				"api-prefix": "api_prefix",
				"output":     "output",
			})
			// Config subcommands skip validation so a bad value can still be inspected.
			if isConfigCmd(cmd) {
				cmd.SetContext(context.WithValue(cmd.Context(), appKey, &wire.App{Cfg: v}))
				return nil
			}
			if err := config.CheckConfigValidity(v); err != nil {
				return fmt.Errorf("invalid config:\n%w", err)
			}
			app, err := wire.BuildApp(cmd.Context(), v, opensTUI(cmd, v))
			if err != nil {
				return err
			}
			ctx := context.WithValue(cmd.Context(), appKey, app)
			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app, ok := cmd.Context().Value(appKey).(*wire.App); ok {
				return app.Close()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArticles(cmd, flags)
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (toml|yaml)")
	cmd.PersistentFlags().String("base-url", "", "content API base URL (overrides config base_url)")
	cmd.PersistentFlags().String("api-prefix", "", "API path prefix (overrides config api_prefix)")
	addArticlesFlags(cmd, &flags)

	cmd.AddCommand(newArticlesCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newCompletionCmd())

	return cmd
}

// opensTUI reports whether cmd will hand the terminal to the reader screen.
func opensTUI(cmd *cobra.Command, v *viper.Viper) bool {
	if cmd.Flags().Lookup("output") == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(v.GetString("output")), "tui")
}

func isConfigCmd(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" {
			return true
		}
	}
	return false
}

func getApp(cmd *cobra.Command) *wire.App {
	v := cmd.Context().Value(appKey)
	if v == nil {
		fmt.Fprintln(os.Stderr, "internal error: app not initialized")
		os.Exit(1)
	}
	return v.(*wire.App)
}
