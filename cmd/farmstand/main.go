package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/farmstand/internal/app"
	"github.com/five82/farmstand/internal/listing"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "farmstand: %v\n", err)
		return 1
	}
	return 0
}

// newRootCmd builds the command tree writing to out and errOut.
func newRootCmd(out, errOut io.Writer) *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:   "farmstand",
		Short: "Browse a farm-to-table storefront from the terminal",
		Long: `farmstand lists the products offered by a farm-to-table storefront backend.

Run without arguments to start the interactive browser. Filter by name with /,
sort with n/p/t/s and add products to the cart with a.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/farmstand/config.toml)")
	flags.StringVar(&opts.Overrides.BackendURL, "backend-url", "", "storefront backend base URL")
	flags.StringVar(&opts.Overrides.Token, "token", "", "bearer token for catalog requests")
	flags.StringVar(&opts.Overrides.TokenFile, "token-file", "", "read the token from this file and reload when it changes")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newBrowseCmd(&opts),
		newListCmd(&opts),
		newLogsCmd(&opts),
		newServeDevCmd(&opts),
	)
	return root
}

func newBrowseCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Start the interactive storefront (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), *opts)
		},
	}
}

func newListCmd(opts *app.Options) *cobra.Command {
	var (
		filter  string
		sortKey string
		desc    bool
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Fetch the catalog once and print it",
		Long: `Fetches the product listings once, applies the name filter and sort, and
prints the result. Exits non-zero when the request fails.

Example:
  farmstand list --filter tomato --sort price --desc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := listing.ParseSortKey(sortKey)
			if err != nil {
				return err
			}
			sort := listing.Sort{Key: key}
			if desc {
				sort.Direction = listing.Descending
			}
			return app.List(cmd.Context(), *opts, app.ListOptions{
				Filter: filter,
				Sort:   sort,
				JSON:   asJSON,
			}, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "case-insensitive name substring")
	cmd.Flags().StringVar(&sortKey, "sort", "", "sort key: name, price, type or quantity")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func newLogsCmd(opts *app.Options) *cobra.Command {
	var lines int
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the tail of the log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Logs(*opts, lines, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines to show (0 for all)")
	return cmd
}

func newServeDevCmd(opts *app.Options) *cobra.Command {
	var addr, token string
	cmd := &cobra.Command{
		Use:   "serve-dev",
		Short: "Run a local backend serving sample products",
		Long: `Serves GET /customer/getProductListings with a built-in sample catalog.
Requests must carry "Authorization: Bearer <token>".

Example:
  farmstand serve-dev --addr 127.0.0.1:5000 --token dev
  farmstand --token dev`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.ServeDev(cmd.Context(), *opts, addr, token)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:5000", "listen address")
	cmd.Flags().StringVar(&token, "token", "dev", "accepted bearer token")
	return cmd
}
