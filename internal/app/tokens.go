package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/five82/farmstand/internal/auth"
	"github.com/five82/farmstand/internal/config"
)

// tokens is where the UI reads the bearer token from. changes is nil when the
// token is fixed for the whole run.
type tokens struct {
	source  auth.Source
	changes <-chan string
}

// startTokens resolves the token source for cfg. With a token file configured
// it starts a watcher goroutine in g that runs until ctx is cancelled.
func startTokens(ctx context.Context, g *errgroup.Group, cfg config.Config, logger *zap.Logger) (tokens, error) {
	if cfg.TokenFile == "" {
		return tokens{source: auth.Static(cfg.Token)}, nil
	}

	w, err := auth.NewFileWatcher(cfg.TokenFile, logger)
	if err != nil {
		return tokens{}, fmt.Errorf("watch token file: %w", err)
	}
	g.Go(func() error {
		if err := w.Run(ctx); err != nil {
			return fmt.Errorf("token watcher: %w", err)
		}
		return nil
	})
	return tokens{source: w, changes: w.Changes()}, nil
}

// readToken returns the token for a single request.
func readToken(cfg config.Config) (auth.Static, error) {
	if cfg.TokenFile == "" {
		return auth.Static(cfg.Token), nil
	}
	return auth.ReadFile(cfg.TokenFile)
}
