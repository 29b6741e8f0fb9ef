package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/appclacks/datto-monitor/config"
	"github.com/appclacks/datto-monitor/internal/datto"
	"github.com/appclacks/datto-monitor/internal/reporter"
	"github.com/appclacks/datto-monitor/internal/tracing"
	"github.com/appclacks/datto-monitor/pkg/backup"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func buildCheckCmd(newLogger loggerBuilder) *cobra.Command {
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Checks the backups once and prints alerts on stdout",
		Run: func(cmd *cobra.Command, args []string) {
			logger := newLogger()
			err := runCheck(logger)
			if err != nil {
				logger.Error(err.Error())
				os.Exit(2)
			}
		},
	}
	return checkCmd
}

func buildService(logger *slog.Logger, config *config.Configuration, registry *prometheus.Registry) (*backup.Service, error) {
	client, err := datto.New(logger, config.Datto)
	if err != nil {
		return nil, err
	}
	companies := backup.NewCompanies(config.Companies)
	logger.Info(fmt.Sprintf("successfully imported configuration with %d companies", companies.Len()))
	textReporter, err := reporter.New(logger, os.Stdout, registry)
	if err != nil {
		return nil, err
	}
	return backup.New(logger, client, textReporter, companies, config.Monitor.Concurrency, registry)
}

func runCheck(logger *slog.Logger) error {
	config, err := config.Load(configFile, envFile)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	shutdown, err := tracing.Setup(ctx, config.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Error(fmt.Sprintf("fail to stop tracing: %s", err.Error()))
		}
	}()
	service, err := buildService(logger, config, prometheus.NewRegistry())
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, config.RunTimeout())
	defer cancel()
	_, err = service.Run(ctx)
	return err
}
