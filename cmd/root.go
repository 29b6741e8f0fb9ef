package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var configFile string
var envFile string

func Run() error {
	rootCmd := &cobra.Command{
		Use:   "datto-monitor",
		Short: "Monitor Datto SaaS Protection backups",
	}
	var logLevel string
	var logFormat string
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to the YAML configuration file")
	err := rootCmd.MarkPersistentFlagRequired("config")
	if err != nil {
		return err
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to an env file containing the Datto credentials, ignored if missing")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "v", "info", "Logger log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Logger logs format (text, json)")

	// flags are only parsed when the command is executed
	newLogger := func() *slog.Logger {
		return buildLogger(logLevel, logFormat)
	}
	rootCmd.AddCommand(buildCheckCmd(newLogger))
	rootCmd.AddCommand(buildServerCmd(newLogger))
	rootCmd.AddCommand(buildTokenCmd(newLogger))
	return rootCmd.Execute()
}
