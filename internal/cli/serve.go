package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fsgraph/internal/server"
	"github.com/matzehuels/fsgraph/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string // listen address, overrides config
	backend string // snapshot store backend, overrides config
}

// newServeCmd creates the serve command that runs the HTTP API.
//
// The snapshot store backend comes from the config file ("memory" by
// default); --store mongo persists snapshots to MongoDB.
func newServeCmd() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the fsgraph HTTP API",
		Long: `Serve starts an HTTP server exposing scanning and snapshot storage.

Endpoints:
  POST   /api/scan            Scan a directory and store the snapshot
  GET    /api/snapshots       List stored snapshots
  GET    /api/snapshots/{id}  Fetch a snapshot including its graph
  DELETE /api/snapshots/{id}  Remove a snapshot
  GET    /healthz             Liveness check`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&opts.backend, "store", "", "snapshot store backend: memory (default), mongo")

	return cmd
}

// openStore builds the snapshot store backend selected by flags or config.
func openStore(ctx context.Context, backend string, cfg Config) (store.Store, error) {
	if backend == "" {
		backend = cfg.Store.Backend
	}
	switch backend {
	case "memory", "":
		return store.NewMemoryStore(), nil
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:      cfg.Store.MongoURI,
			Database: cfg.Store.Database,
		})
	default:
		return nil, fmt.Errorf("unknown store backend: %s", backend)
	}
}

// runServe starts the HTTP server and blocks until ctx is cancelled or
// the listener fails.
func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)

	st, err := openStore(ctx, opts.backend, cfg)
	if err != nil {
		return err
	}

	addr := opts.addr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(st, logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return st.Close(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
