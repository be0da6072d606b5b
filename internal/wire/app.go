package wire

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/mithrel/kbreader/internal/config"
	"github.com/mithrel/kbreader/internal/contentapi"
	"github.com/mithrel/kbreader/internal/logging"
)

// App aggregates the major services for easy injection.
type App struct {
	Cfg    *viper.Viper
	Log    *logrus.Logger
	Client *contentapi.Client

	logCloser io.Closer
}

// BuildApp wires dependencies with the provided config. interactive is true
// when the TUI will own the terminal, which moves logging off stderr.
func BuildApp(ctx context.Context, cfg *viper.Viper, interactive bool) (*App, error) {
	timeout, err := config.HTTPTimeout(cfg)
	if err != nil {
		return nil, err
	}
	logger, closer, err := logging.New(cfg, !interactive)
	if err != nil {
		return nil, err
	}
	client := contentapi.New(cfg.GetString("base_url"), cfg.GetString("api_prefix"), timeout)
	logger.WithField("url", client.ArticlesURL()).Debug("app: content api")
	return &App{
		Cfg:       cfg,
		Log:       logger,
		Client:    client,
		logCloser: closer,
	}, nil
}

// Close releases the log file, if one was opened.
func (a *App) Close() error {
	if a.logCloser == nil {
		return nil
	}
	return a.logCloser.Close()
}
