package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fleetdeck/fleetdeck/internal/api"
	"github.com/fleetdeck/fleetdeck/internal/auth"
	"github.com/fleetdeck/fleetdeck/internal/config"
	"github.com/fleetdeck/fleetdeck/internal/nav"
	"github.com/fleetdeck/fleetdeck/internal/notify"
	"github.com/fleetdeck/fleetdeck/internal/prefs"
	"github.com/fleetdeck/fleetdeck/internal/ui"
)

// Options configure the fleetdeck application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/fleetdeck/prefs.toml
	APIBind    string // overrides the configured backend endpoint
	TickEvery  int    // seconds; zero uses the UI default
}

// Run boots the fleetdeck console until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.APIBind != "" {
		cfg.APIBind = opts.APIBind
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	session, err := auth.Load(cfg.Token, cfg.TokenPath)
	if err != nil {
		return fmt.Errorf("load session token: %w", err)
	}

	var debug *log.Logger
	if cfg.DebugLog != "" {
		file, err := os.OpenFile(cfg.DebugLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer func() { _ = file.Close() }()
		debug = log.New(file, "fleetdeck ", log.LstdFlags|log.Lmicroseconds)
	}

	center := notify.NewCenter()

	gateway, err := api.NewGateway(cfg.APIBind, session, center, debug)
	if err != nil {
		return fmt.Errorf("init api gateway: %w", err)
	}

	uiOpts := ui.Options{
		Client:    api.NewClient(gateway),
		Center:    center,
		Session:   session,
		Nav:       nav.NewState(),
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
		PageSize:  userPrefs.PageSize,
		LastView:  userPrefs.LastView,
	}
	if opts.TickEvery > 0 {
		uiOpts.Tick = time.Duration(opts.TickEvery) * time.Second
	}
	return ui.Run(ctx, uiOpts)
}
