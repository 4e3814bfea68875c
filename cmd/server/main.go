package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/umaralireal1/qisst2026/internal/backup"
	"github.com/umaralireal1/qisst2026/internal/book"
	"github.com/umaralireal1/qisst2026/internal/config"
	"github.com/umaralireal1/qisst2026/internal/middleware"
	"github.com/umaralireal1/qisst2026/internal/notify"
	"github.com/umaralireal1/qisst2026/internal/scheduler"
	"github.com/umaralireal1/qisst2026/internal/service"
	"github.com/umaralireal1/qisst2026/internal/storage"
	"github.com/umaralireal1/qisst2026/internal/storage/postgres"
	"github.com/umaralireal1/qisst2026/internal/storage/sqlite"
	"github.com/umaralireal1/qisst2026/pkg/api/apiconnect"
	"github.com/umaralireal1/qisst2026/pkg/logging"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "driver", cfg.DBDriver)

	b := book.Open(ctx, store,
		book.WithLocation(cfg.Location),
		book.WithScope(cfg.DrawEligibility),
	)

	var channel backup.Channel
	if cfg.BackupURL != "" {
		channel = backup.NewHTTPChannel(cfg.BackupURL, nil)
	}
	syncer := backup.NewSyncer(channel, cfg.SyncDebounce, cfg.AutoSync)
	b.Observe(syncer.Notify)
	slog.Info("Backup sync configured", "remote", cfg.BackupURL != "", "auto_sync", cfg.AutoSync)

	alerts, err := scheduler.New(cfg.AlertCron, cfg.Location, b, notifiers(cfg))
	if err != nil {
		slog.Error("Failed to configure alert schedule", "error", err)
		os.Exit(1)
	}
	if err := alerts.Start(); err != nil {
		slog.Error("Failed to start alert schedule", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()

	interceptors := connect.WithInterceptors(middleware.MetricsInterceptor(), middleware.LoggingInterceptor())

	ledgerPath, ledgerHandler := apiconnect.NewLedgerServiceHandler(service.NewLedgerService(b), interceptors)
	mux.Handle(ledgerPath, ledgerHandler)

	backupPath, backupHandler := apiconnect.NewBackupServiceHandler(service.NewBackupService(b, syncer), interceptors)
	mux.Handle(backupPath, backupHandler)

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if degraded, reason := b.Degraded(); degraded {
			http.Error(w, fmt.Sprintf("degraded: %v", reason), http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	// Add logging and CORS middleware
	loggedHandler := loggingMiddleware(corsMiddleware(mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	h2cHandler := h2c.NewHandler(loggedHandler, &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           h2cHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			slog.Error("Server failed", "error", err)
		}
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	alerts.Stop()
	if err := syncer.Close(shutdownCtx); err != nil {
		slog.Error("Final backup push failed", "error", err)
	}
	slog.Info("Server stopped")
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return postgres.New(ctx, cfg.DatabaseURL)
	default:
		return sqlite.New(cfg.DBPath)
	}
}

func notifiers(cfg *config.Config) notify.Notifier {
	targets := notify.Multi{notify.LogNotifier{}}
	if cfg.TelegramEnabled() {
		tg, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			slog.Error("Telegram notifier disabled", "error", err)
		} else {
			targets = append(targets, tg)
			slog.Info("Telegram alerts enabled", "chat_id", cfg.TelegramChatID)
		}
	}
	return targets
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
