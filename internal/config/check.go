package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var outputModes = []string{"plain", "pretty", "json", "ndjson", "tui"}

// CheckConfigValidity reports every invalid option at once. base_url is
// passed to the client verbatim and is not checked here.
func CheckConfigValidity(v *viper.Viper) error {
	var errs []error

	out := strings.ToLower(strings.TrimSpace(v.GetString("output")))
	if !slices.Contains(outputModes, out) {
		errs = append(errs, fmt.Errorf("output must be one of %s", strings.Join(outputModes, "|")))
	}
	if _, err := logrus.ParseLevel(v.GetString("log.level")); err != nil {
		errs = append(errs, fmt.Errorf("log.level is invalid: %q", v.GetString("log.level")))
	}
	if _, err := HTTPTimeout(v); err != nil {
		errs = append(errs, err)
	}
	if v.GetInt("tui.word_wrap") <= 0 {
		errs = append(errs, errors.New("tui.word_wrap must be greater than 0"))
	}
	return errors.Join(errs...)
}

// HTTPTimeout parses http.timeout; zero means no timeout.
func HTTPTimeout(v *viper.Viper) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString("http.timeout"))
	if raw == "" || raw == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("http.timeout is not a duration: %q", raw)
	}
	if d < 0 {
		return 0, errors.New("http.timeout must not be negative")
	}
	return d, nil
}
