package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hnrobert/signalist/internal/config"
	"github.com/hnrobert/signalist/internal/logger"
	"github.com/hnrobert/signalist/internal/server"
)

func main() {
	cfg, err := config.LoadFromEnv(getenvDefault("SIGNALIST_CONFIG", config.DefaultPath()))
	if err != nil {
		log.Fatal(err)
	}

	if err := logger.Init(cfg.LogDir); err != nil {
		log.Printf("file logging disabled: %v", err)
	}
	defer logger.Close()
	logger.SetLevel(logger.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, server.Deps{})
	logger.Info("signalist listening on %s", cfg.Listen)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server: %v", err)
		stop()
		logger.Close()
		os.Exit(1)
	}
}

func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
