package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/appclacks/datto-monitor/config"
	"github.com/appclacks/datto-monitor/internal/datto"
	"github.com/spf13/cobra"
)

func buildTokenCmd(newLogger loggerBuilder) *cobra.Command {
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Requests an access token from the Datto API using the configured credentials",
		Run: func(cmd *cobra.Command, args []string) {
			logger := newLogger()
			err := runToken(logger)
			if err != nil {
				logger.Error(err.Error())
				os.Exit(2)
			}
		},
	}
	return tokenCmd
}

func runToken(logger *slog.Logger) error {
	config, err := config.Load(configFile, envFile)
	if err != nil {
		return err
	}
	logger.Debug(fmt.Sprintf("client ID: %s, client secret: [hidden]", config.Datto.ClientID))
	client, err := datto.New(logger, config.Datto)
	if err != nil {
		return err
	}
	token, err := client.RequestToken(context.Background())
	if err != nil {
		return fmt.Errorf("fail to retrieve access token: %w", err)
	}
	logger.Info(fmt.Sprintf("access token retrieved: %s", token))
	return nil
}
