// Package server wires handlers, middleware, storage, the notifier, and
// the digest scheduler together and owns the process lifecycle. It is the
// composition root: main.go only loads config and calls New/Start.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/isufellowship/attendance-bot/internal/config"
	"github.com/isufellowship/attendance-bot/internal/handler"
	"github.com/isufellowship/attendance-bot/internal/middleware"
	sqliteRepo "github.com/isufellowship/attendance-bot/internal/repository/sqlite"
	"github.com/isufellowship/attendance-bot/internal/scheduler"
	"github.com/isufellowship/attendance-bot/internal/service"
	"github.com/isufellowship/attendance-bot/internal/whatsapp"
)

// Server holds the HTTP server, its dependencies, and the background
// digest scheduler. The scheduler and the request handlers share only the
// database; the scheduler's failures never touch the webhook path.
type Server struct {
	router *chi.Mux
	cfg    *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
	digest *scheduler.Scheduler
}

// New assembles the full dependency chain:
// sqlite.DB → conversation/digest services → handlers → routes,
// plus the daily digest scheduler.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	notifier := whatsapp.NewClient(whatsapp.Config{
		BaseURL:       cfg.GraphAPIURL,
		AccessToken:   cfg.WhatsAppToken,
		PhoneNumberID: cfg.PhoneNumberID,
	}, logger.With(slog.String("component", "whatsapp")))

	conversation := service.NewConversationService(db, db, notifier, cfg.DayChoices(), logger)
	digestSvc := service.NewDigestService(db, notifier, cfg.GroupID, logger)

	digest, err := scheduler.New(cfg.DigestTime, digestSvc.SendDaily,
		logger.With(slog.String("component", "scheduler")))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating digest scheduler: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		logger: logger,
		db:     db,
		digest: digest,
	}
	s.setupRoutes(conversation)

	return s, nil
}

// setupRoutes configures middleware and route handlers.
func (s *Server) setupRoutes(conversation *service.ConversationService) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	webhookHandler := handler.NewWebhookHandler(conversation, s.cfg.VerifyToken, s.logger)
	s.router.Get("/webhook", webhookHandler.HandleVerify)
	s.router.Post("/webhook", webhookHandler.HandleEvent)

	directoryHandler := handler.NewDirectoryHandler(s.db, s.logger)
	s.router.Get("/api/directory", directoryHandler.HandleList)
}

// Start runs the HTTP server and the digest scheduler until SIGINT or
// SIGTERM, then drains in-flight requests, stops the scheduler, and
// closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// The scheduler runs on its own goroutine for the whole process
	// lifetime; cancelling schedCtx is how shutdown stops it.
	schedCtx, cancelSched := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.digest.Run(schedCtx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.cfg.Port),
			slog.String("database", s.cfg.DBPath),
			slog.String("digest_time", s.cfg.DigestTime),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		cancelSched()
		wg.Wait()
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			cancelSched()
			wg.Wait()
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}

		cancelSched()
		wg.Wait()
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
