package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mithrel/kbreader/internal/config"
)

// applyConfigFlagOverrides copies every changed flag that maps to a config
// key onto v. A flag maps when it is named after the key itself or appears
// in aliases (flag name -> key).
func applyConfigFlagOverrides(cmd *cobra.Command, v *viper.Viper, aliases map[string]string) {
	keys := make(map[string]bool)
	for _, opt := range config.GetConfigOptions() {
		keys[opt.Key] = true
	}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		key, ok := aliases[f.Name]
		if !ok {
			if !keys[f.Name] {
				return
			}
			key = f.Name
		}
		// Viper casts on read, so the flag's string form is enough.
		v.Set(key, f.Value.String())
	})
}
