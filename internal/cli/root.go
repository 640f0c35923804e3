// Package cli is the heritagebot command line: the HTTP server plus offline
// tools for checking a knowledge document and catalog.
package cli

import (
	"fmt"
	"os"

	"github.com/indiverse/heritagebot/internal/config"
	"github.com/spf13/cobra"
)

var flagConfig string

// NewRootCmd builds the command tree. Running it bare starts the server.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "heritagebot",
		Short:         "India heritage chatbot server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newAskCmd())
	cmd.AddCommand(newCrumbsCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newWhoamiCmd())

	return cmd
}

// Execute runs the root command and exits non-zero on error
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
