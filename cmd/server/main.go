package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/inamate/geokernel/internal/api"
	"github.com/inamate/geokernel/internal/auth"
	"github.com/inamate/geokernel/internal/collab"
	"github.com/inamate/geokernel/internal/config"
	"github.com/inamate/geokernel/internal/document"
	"github.com/inamate/geokernel/internal/engine"
	mw "github.com/inamate/geokernel/internal/middleware"
	"github.com/inamate/geokernel/internal/store"
)

func main() {
	issueFor := flag.String("issue-token", "", "print a 24h token for this user id and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	engine.SetLogger(logger.With("component", "engine"))

	authService := auth.NewService(cfg.JWTSecret)
	if *issueFor != "" {
		token, err := authService.IssueToken(*issueFor, 24*time.Hour)
		if err != nil {
			slog.Error("issue token", "error", err)
			os.Exit(1)
		}
		fmt.Println(token)
		return
	}
	if !authService.Enabled() {
		slog.Warn("JWT_SECRET is empty, document routes are public")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The playground project is served from memory; everything else comes
	// from the editor's snapshot table.
	memory := store.NewMemory()
	memory.Put(document.PlaygroundProjectID, document.NewSampleDocument(document.PlaygroundProjectID))
	docs := store.Chain{memory}

	if cfg.DatabaseURL != "" {
		pool, err := store.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		docs = append(docs, store.NewPostgres(pool))
	}

	settings := engine.Settings{GridStep: cfg.GridStep, MaxNestingDepth: cfg.MaxNestingDepth}

	hub := collab.NewHub(docs, settings)
	go hub.Run()

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.RequestID)
	r.Use(mw.Logger)

	api.NewHandler(docs, settings).Routes(r, authService.AuthMiddleware)

	// WebSocket endpoint
	r.HandleFunc("/ws/project/{projectId}", collab.Handler(hub, authService, collab.OriginPatterns(cfg.Origins())))

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mw.CORS(cfg.Origins())(r), // outside the router so preflights reach it
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Stop the hub first so websocket clients are closed.
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr, "auth", authService.Enabled())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
