// Package main is the entry point for the attendance bot server.
// It reads configuration, sets up logging, and starts the server;
// everything else lives in internal/.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/isufellowship/attendance-bot/internal/config"
	"github.com/isufellowship/attendance-bot/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	cfg := config.Load()

	if cfg.VerifyToken == "" {
		logger.Warn("VERIFY_TOKEN not set — webhook verification will reject all handshakes")
	}
	if cfg.WhatsAppToken == "" || cfg.PhoneNumberID == "" {
		logger.Warn("WHATSAPP_TOKEN or PHONE_NUMBER_ID not set — outbound sends will fail")
	}

	// Make sure the database directory exists before sqlite opens the file.
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", dbDir),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
