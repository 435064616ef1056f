package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tenderworks/tenderd/internal/api"
	"github.com/tenderworks/tenderd/internal/common"
	"github.com/tenderworks/tenderd/internal/llm"
	"github.com/tenderworks/tenderd/internal/store"
)

func main() {
	logger := common.Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil {
		logger.Debug("tenderd: .env file not loaded", "error", err)
	} else {
		logger.Info("tenderd: environment loaded from .env")
	}

	addr := flag.String("addr", ":8080", "listen address")
	dbPath := flag.String("db", defaultDBPath(), "path to the SQLite database")
	flag.Parse()

	logger.Info("tenderd: startup initiated", "addr", *addr, "db", *dbPath)

	st, err := store.Open(*dbPath)
	if err != nil {
		logger.Error("tenderd: store open failed", "error", err)
		fmt.Println("store error:", err)
		os.Exit(1)
	}
	defer st.Close()

	provider := llm.NewProvider(ctx)
	server, err := api.NewServer(st, provider)
	if err != nil {
		logger.Error("tenderd: server init failed", "error", err)
		fmt.Println("server error:", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("tenderd: listening", "addr", *addr, "provider", provider.Name())
		errCh <- httpServer.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Error("tenderd: server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-sigCh:
		logger.Info("tenderd: shutdown requested", "signal", sig.String())
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("tenderd: shutdown incomplete", "error", err)
		}
	}
	logger.Info("tenderd: stopped")
}

func defaultDBPath() string {
	if path := strings.TrimSpace(os.Getenv("TENDERD_DB_PATH")); path != "" {
		return path
	}
	return "tenderd.db"
}
