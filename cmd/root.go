package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/kommunalcrm/treasury/internal/config"
	"github.com/kommunalcrm/treasury/internal/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	flagEnvFile string
	cfg         config.Config
)

var rootCmd = &cobra.Command{
	Use:               "treasury",
	Short:             "Treasury backend for local party organizations",
	Long:              "Bookkeeping records, budgets, mandate levies and cash flow forecasts for local party organizations.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "File to read environment variables from. Variables already set take precedence")
}

// setup reads the configuration and configures the global logger.
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(flagEnvFile)
	if err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)

	output := io.Writer(cmd.ErrOrStderr())
	if cfg.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	return nil
}

// connect creates the data directory and connects to the database.
func connect() error {
	err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o750)
	if err != nil {
		return fmt.Errorf("could not create data directory: %w", err)
	}

	return models.Connect(cfg.DBPath)
}
