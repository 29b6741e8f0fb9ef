package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/appclacks/datto-monitor/config"
	"github.com/appclacks/datto-monitor/internal/http"
	"github.com/appclacks/datto-monitor/internal/http/handlers"
	"github.com/appclacks/datto-monitor/internal/tracing"
	"github.com/appclacks/datto-monitor/pkg/backup"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func buildServerCmd(newLogger loggerBuilder) *cobra.Command {
	serverCmd := &cobra.Command{
		Use:   "server",
		Short: "Checks the backups periodically and runs the HTTP server",
		Run: func(cmd *cobra.Command, args []string) {
			logger := newLogger()
			err := runServer(logger)
			if err != nil {
				logger.Error(err.Error())
				os.Exit(2)
			}

		},
	}
	return serverCmd
}

func runServer(logger *slog.Logger) error {
	config, err := config.Load(configFile, envFile)
	if err != nil {
		return err
	}
	shutdown, err := tracing.Setup(context.Background(), config.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Error(fmt.Sprintf("fail to stop tracing: %s", err.Error()))
		}
	}()
	registry := prometheus.DefaultRegisterer.(*prometheus.Registry)
	service, err := buildService(logger, config, registry)
	if err != nil {
		return err
	}
	scheduler := backup.NewScheduler(logger, service, config.Interval(), config.RunTimeout())
	handlersBuilder := handlers.NewBuilder(scheduler)
	server, err := http.NewServer(logger, config.HTTP, registry, config.Tracing.Enabled, handlersBuilder)
	if err != nil {
		return err
	}
	signals := make(chan os.Signal, 1)
	errChan := make(chan error)

	signal.Notify(
		signals,
		syscall.SIGINT,
		syscall.SIGTERM)

	server.Start()
	scheduler.Start()
	go func() {
		for sig := range signals {
			switch sig {
			case syscall.SIGINT, syscall.SIGTERM:
				logger.Info(fmt.Sprintf("received signal %s, starting shutdown", sig))
				signal.Stop(signals)
				scheduler.Stop()
				errChan <- server.Stop()
				return
			}
		}
	}()
	exitErr := <-errChan
	return exitErr
}
