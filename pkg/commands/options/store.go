package options

import (
	"github.com/spf13/cobra"
)

// StoreOptions controls how commands reach the planner store.
type StoreOptions struct {
	Ephemeral bool
	LogLevel  string
}

func AddStoreArgs(cmd *cobra.Command, o *StoreOptions) {
	cmd.PersistentFlags().BoolVar(&o.Ephemeral, "ephemeral", false,
		"Use an in-memory store that is discarded on exit.")
	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", "",
		"Override the configured log level (debug, info, warn, error).")
}
