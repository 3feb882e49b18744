package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/clearbrook-labs/supportrag/internal/adapters/driving/httpapi"
	"github.com/clearbrook-labs/supportrag/internal/logger"
	"github.com/clearbrook-labs/supportrag/internal/watcher"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the question-answering HTTP API",
	Long: `Loads the persisted index and serves POST /ask, GET /health and
GET /sources. Local document directories are watched while serving;
changes mark the index stale until the next ingestion run.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := initChat(ctx); err != nil {
		return err
	}

	w, err := watcher.New(cfg.Data.PDFDir, cfg.Data.DOCXDir)
	if err != nil {
		logger.Warn("Document watching disabled: %v", err)
	} else {
		w.Start(ctx)
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Addr()
	}
	server := httpapi.New(addr, chatService, vectorStore)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
