// Command skillctl runs maintenance and offline scoring tasks against the
// skill-match catalog and database.
package main

import (
	"fmt"
	"os"

	"skill-match/internal/config"
	"skill-match/internal/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg config.Config
	lg  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "skillctl",
	Short:         "skill-match maintenance CLI",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if lg, err = logger.New(cfg.App.LogJSON, cfg.App.LogDebug); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
