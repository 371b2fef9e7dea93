package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/samvad-fetch/internal/config"
	"github.com/samvad-hq/samvad-fetch/internal/logger"
	"github.com/samvad-hq/samvad-fetch/pkg/fetch"
	"github.com/samvad-hq/samvad-fetch/pkg/httpclient"
	"github.com/samvad-hq/samvad-fetch/pkg/mirrorstate"
	"github.com/samvad-hq/samvad-fetch/pkg/status"
	"github.com/samvad-hq/samvad-fetch/pkg/targets"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fetchmirror failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) != 1 && len(os.Args) != 3 {
		return fmt.Errorf("usage: fetchmirror [URL PATH]")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if _, err := logger.Init(cfg); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := mirrorstate.Open(cfg.MirrorStatePath)
	if err != nil {
		return fmt.Errorf("open mirror state: %w", err)
	}
	defer store.Close()

	rc := httpclient.NewRestyHTTPClient(cfg.HTTPTimeout)
	rc.SetHeader("User-Agent", cfg.UserAgent)
	f := fetch.New(
		fetch.WithClient(httpclient.NewRestyClientFrom(rc)),
		fetch.WithValidatorStore(store),
	)

	if len(os.Args) == 3 {
		return mirrorOne(ctx, f, targets.Target{ID: "cli", URL: os.Args[1], Path: os.Args[2]})
	}

	tgts, err := targets.Load(cfg.TargetsFile)
	if err != nil {
		return fmt.Errorf("load targets: %w", err)
	}

	failures := 0
	for _, tgt := range tgts {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := mirrorOne(ctx, f, tgt); err != nil {
			logger.ErrorObj("mirror target failed", "error", map[string]any{
				"target_id": tgt.ID,
				"url":       tgt.URL,
				"error":     err.Error(),
			})
			failures++
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d targets failed", failures, len(tgts))
	}
	return nil
}

func mirrorOne(ctx context.Context, f *fetch.Fetcher, tgt targets.Target) error {
	code, err := f.Mirror(ctx, tgt.URL, tgt.Path)
	if err != nil {
		return err
	}

	result := map[string]any{"target_id": tgt.ID, "url": tgt.URL, "path": tgt.Path, "status": code}
	if tgt.ContentCheck && status.IsError(code) {
		logger.WarnObj("mirror stored an error response", "result", result)
		return nil
	}

	logger.InfoObj("mirror complete", "result", result)
	return nil
}
