package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mizunoe/kaiwa/internal/agent"
	"github.com/mizunoe/kaiwa/internal/config"
	"github.com/mizunoe/kaiwa/internal/model"
	"github.com/mizunoe/kaiwa/internal/server"
	"github.com/mizunoe/kaiwa/internal/tool"
	_ "github.com/mizunoe/kaiwa/internal/tool/builtin"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Kaiwa HTTP server",
	Long:  `Starts the chat service: loads the tool catalog, connects the completion provider, and serves the chat API until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			return fmt.Errorf("config not loaded")
		}

		weatherTimeout, err := config.DurationOrDefault(cfg.Tools.Weather.Timeout, config.DefaultWeatherToolTimeout)
		if err != nil {
			return fmt.Errorf("parse tools.weather.timeout: %w", err)
		}

		tools, err := tool.InstantiateBuiltins(tool.BuiltinOptions{
			WeatherBaseURL: cfg.Tools.Weather.BaseURL,
			WeatherAPIKey:  cfg.Tools.Weather.APIKey,
			WeatherTimeout: weatherTimeout,
			WeatherUnits:   cfg.Tools.Weather.Units,
			WeatherLang:    cfg.Tools.Weather.Lang,
		})
		if err != nil {
			return fmt.Errorf("instantiate tools: %w", err)
		}

		registry := tool.NewRegistry()
		for _, t := range tools {
			registry.Register(t)
		}
		runner := tool.NewRunner(registry)

		client, err := model.NewClient(cfg.Model)
		if err != nil {
			return fmt.Errorf("create completion client: %w", err)
		}

		loop := agent.NewLoop(client, runner, cfg.Agent)

		srv, err := server.New(cfg.Server, loop, registry.Count())
		if err != nil {
			return fmt.Errorf("create server: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		slog.Info("Kaiwa starting up", "port", cfg.Server.Port, "provider", cfg.Model.Provider, "tools", registry.Count())
		srv.Start()

		<-ctx.Done()
		slog.Info("Shutdown signal received")

		shutdownTimeout, err := config.DurationOrDefault(cfg.Server.ShutdownTimeout, config.DefaultServerShutdownTimeout)
		if err != nil {
			shutdownTimeout = 0
		}

		shutdownCtx := context.Background()
		if shutdownTimeout > 0 {
			var cancel context.CancelFunc
			shutdownCtx, cancel = context.WithTimeout(shutdownCtx, shutdownTimeout)
			defer cancel()
		}

		if err := srv.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}

		slog.Info("Kaiwa stopped gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
