package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/forecastlab/forecastviz"
	"github.com/forecastlab/forecastviz/config"
	"github.com/forecastlab/forecastviz/provider"
	"github.com/forecastlab/forecastviz/server"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)
	logger.Info().Str("provider", cfg.Provider.BaseURL).Msg("forecastviz starting")

	client := provider.NewClient(cfg.Provider.BaseURL, logger)
	opt := &forecastviz.Options{Window: cfg.Chart.Window}
	srv := server.New(client, opt, logger)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		logger.Info().Msg("shutting down")
		if err := srv.Shutdown(); err != nil {
			logger.Error().Err(err).Msg("shutdown failed")
		}
	}()

	if err := srv.Listen(cfg.Server.Addr()); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}

func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	out := zerolog.New(os.Stdout)
	if cfg.Format == "console" || cfg.Format == "pretty" {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	return out.Level(level).With().Timestamp().Logger()
}
