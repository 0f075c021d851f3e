package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fleetdeck/fleetdeck/internal/app"
	"github.com/fleetdeck/fleetdeck/internal/mockd"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fleetdeck: %v\n", err)
		return 1
	}
	return 0
}

func rootCmd() *cobra.Command {
	var opts app.Options

	cmd := &cobra.Command{
		Use:           "fleetdeck",
		Short:         "Terminal admin console for the fleet-management backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "override config path (optional)")
	cmd.Flags().StringVar(&opts.PrefsPath, "prefs", "", "override preferences path (optional)")
	cmd.Flags().StringVar(&opts.APIBind, "api", "", "backend endpoint, host:port or URL (optional)")
	cmd.Flags().IntVar(&opts.TickEvery, "tick", 0, "header refresh interval in seconds (optional)")

	cmd.AddCommand(mockdCmd())
	return cmd
}

func mockdCmd() *cobra.Command {
	var addr, token string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "mockd",
		Short: "Run the in-memory mock backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := mockd.NewStore()
			store.Seed()
			var logger *log.Logger
			if !quiet {
				logger = log.New(os.Stderr, "mockd ", log.LstdFlags)
			}
			return mockd.NewServer(store, token, logger).Run(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "listen", "127.0.0.1:8780", "address to listen on")
	cmd.Flags().StringVar(&token, "token", "", "require this bearer token on every request (optional)")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "suppress request logging")
	return cmd
}
