package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/config"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/logging"
)

var (
	configPath string
	logLevel   string

	cfg    *config.Config
	logger = zap.NewNop()

	rootCmd = &cobra.Command{
		Use:   "carrierview",
		Short: "Index and explore carrier / broker relationship files",
		Long: `carrierview reads a Carrier Relationships file (CSV or Excel), indexes
each carrier's brokers, broker entities and relationship owners, and serves
or prints the result.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				c.Logging.Level = logLevel
			}
			l, err := logging.New(c.Logging)
			if err != nil {
				return err
			}
			cfg, logger = c, l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (defaults apply when empty)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd, indexCmd, showCmd, exportCmd, sampleCmd, tojsonCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.Error.Render("error: "+err.Error()))
		os.Exit(1)
	}
}
