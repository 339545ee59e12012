package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/five82/farmstand/internal/cart"
	"github.com/five82/farmstand/internal/catalog"
	"github.com/five82/farmstand/internal/config"
	"github.com/five82/farmstand/internal/devserver"
	"github.com/five82/farmstand/internal/fetch"
	"github.com/five82/farmstand/internal/listing"
	"github.com/five82/farmstand/internal/logging"
	"github.com/five82/farmstand/internal/logtail"
	"github.com/five82/farmstand/internal/prefs"
	"github.com/five82/farmstand/internal/state"
	"github.com/five82/farmstand/internal/ui"
)

// Options configure every farmstand command.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/farmstand/prefs.toml
	Overrides  config.Overrides
	Verbose    bool
}

// ListOptions select what the list command prints.
type ListOptions struct {
	Filter string
	Sort   listing.Sort
	JSON   bool
}

func loadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg.Apply(opts.Overrides), nil
}

// session is the wiring shared by the browse and list commands.
type session struct {
	cfg    config.Config
	logger *zap.Logger
	store  *state.Store
	loader *fetch.Controller
}

func newSession(opts Options) (*session, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogFile, opts.Verbose)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	client, err := catalog.NewClient(cfg.BackendURL)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("init catalog client: %w", err)
	}

	store := &state.Store{}
	return &session{
		cfg:    cfg,
		logger: logger,
		store:  store,
		loader: fetch.New(client, store, logger),
	}, nil
}

func (s *session) close() {
	_ = s.logger.Sync()
}

// Run boots the storefront TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	s, err := newSession(opts)
	if err != nil {
		return err
	}
	defer s.close()

	userPrefs := prefs.Load(opts.PrefsPath)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	tokens, err := startTokens(gctx, g, s.cfg, s.logger)
	if err != nil {
		return err
	}

	s.logger.Info("starting storefront",
		zap.String("backend_url", s.cfg.BackendURL),
		zap.Bool("token_file", tokens.changes != nil),
	)

	g.Go(func() error {
		// Quitting the UI stops the token watcher.
		defer cancel()
		return ui.Run(ui.Options{
			Context:      gctx,
			Loader:       s.loader,
			Store:        s.store,
			Tokens:       tokens.source,
			TokenChanges: tokens.changes,
			Cart:         &cart.Cart{},
			Logger:       s.logger,
			ThemeName:    userPrefs.Theme,
			Compact:      userPrefs.Compact,
			PrefsPath:    opts.PrefsPath,
		})
	})

	return g.Wait()
}

// List fetches the catalog once and writes the derived list to out.
func List(ctx context.Context, opts Options, list ListOptions, out io.Writer) error {
	s, err := newSession(opts)
	if err != nil {
		return err
	}
	defer s.close()

	token, err := readToken(s.cfg)
	if err != nil {
		return err
	}
	if err := s.loader.Load(ctx, token.Token()); err != nil {
		return fmt.Errorf("load product listings: %w", err)
	}

	products := listing.Derive(s.store.Snapshot().Products, listing.Filter{Name: list.Filter}, list.Sort)
	if list.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(products)
	}
	return writeTable(out, products)
}

func writeTable(out io.Writer, products []catalog.Product) error {
	if len(products) == 0 {
		_, err := fmt.Fprintln(out, "No products to show")
		return err
	}

	rows := make([][]string, 0, len(products))
	for _, p := range products {
		stock := strconv.Itoa(p.Quantity)
		if !p.InStock() {
			stock = "sold out"
		}
		rows = append(rows, []string{p.Name, p.DisplayType(), p.DisplayPrice(), stock})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "TYPE", "PRICE", "STOCK").
		Rows(rows...)
	_, err := fmt.Fprintln(out, t.Render())
	return err
}

// Logs writes the last lines of the log file to out, formatted for reading.
// A non-positive lines prints the whole file.
func Logs(opts Options, lines int, out io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	raw, err := logtail.Read(cfg.LogFile, lines)
	if err != nil {
		return fmt.Errorf("read log: %w", err)
	}
	if len(raw) == 0 {
		_, err := fmt.Fprintf(out, "no log entries in %s\n", cfg.LogFile)
		return err
	}
	for _, line := range logtail.FormatLines(raw) {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

// ServeDev runs the local stand-in backend on addr until ctx is cancelled.
func ServeDev(ctx context.Context, opts Options, addr, token string) error {
	logger, err := logging.NewConsole(opts.Verbose)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	return devserver.New(token, nil, logger).Run(ctx, addr)
}
