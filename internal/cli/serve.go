package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/maskforge/maskforge/internal/api"
	"github.com/maskforge/maskforge/pkg/library"
)

const shutdownTimeout = 10 * time.Second

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string // listen address
	storeDir string // file store directory, XDG data dir when empty
	mongoURI string // mongodb connection string, overrides the file store
	noStore  bool   // run without a design library
}

// serveCommand creates the serve command: run the HTTP API over the
// same pipeline the rest of the CLI uses.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the maskforge HTTP API",
		Long: `Run the maskforge HTTP API: component listings, remote builds,
the design library, and prometheus metrics. Builds share the artifact
cache with the local CLI, so a design built here is cached for both.

The design library defaults to a file store under the XDG data
directory. Point --mongo at a MongoDB instance to store designs there
instead, or pass --no-store to disable the library endpoints.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", envOr("MASKFORGE_ADDR", ":8032"), "listen address")
	cmd.Flags().StringVar(&opts.storeDir, "store-dir", "", "design library directory (XDG data dir if empty)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", envOr("MASKFORGE_MONGO_URI", ""), "mongodb URI for the design library")
	cmd.Flags().BoolVar(&opts.noStore, "no-store", false, "disable the design library")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	store, storeDesc, err := c.openStore(ctx, opts)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close(context.Background())
	}

	server := api.NewServer(runner, store, c.Logger)
	httpServer := &http.Server{
		Addr:              opts.addr,
		Handler:           server,
		ReadHeaderTimeout: 5 * time.Second,
	}

	c.Logger.Info("serving",
		"addr", opts.addr,
		"pdk", runner.Context.PDK.Name(),
		"store", storeDesc)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		<-errCh
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// openStore resolves the design library backend from flags: disabled,
// MongoDB, or the default file store. The returned description names
// the backend for the startup log line.
func (c *CLI) openStore(ctx context.Context, opts *serveOpts) (library.Store, string, error) {
	if opts.noStore {
		return nil, "disabled", nil
	}
	if opts.mongoURI != "" {
		store, err := library.NewMongoStore(ctx, opts.mongoURI, appName)
		if err != nil {
			return nil, "", err
		}
		return store, "mongodb", nil
	}

	dir := opts.storeDir
	if dir == "" {
		base, err := dataDir()
		if err != nil {
			return nil, "", err
		}
		dir = filepath.Join(base, "designs")
	}
	store, err := library.NewFileStore(dir)
	if err != nil {
		return nil, "", err
	}
	return store, dir, nil
}
