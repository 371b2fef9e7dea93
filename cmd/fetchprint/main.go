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
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fetchprint failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) != 2 {
		return fmt.Errorf("usage: fetchprint URL")
	}
	url := os.Args[1]

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

	f := fetch.New(fetch.WithClient(newClient(cfg)))

	status, err := f.GetPrint(ctx, url)
	if err != nil {
		logger.ErrorObj("fetch failed", "error", map[string]any{"url": url, "error": err.Error()})
		return err
	}

	logger.InfoObj("fetch complete", "result", map[string]any{"url": url, "status": status})
	return nil
}

func newClient(cfg *config.Config) httpclient.Client {
	rc := httpclient.NewRestyHTTPClient(cfg.HTTPTimeout)
	rc.SetHeader("User-Agent", cfg.UserAgent)
	return httpclient.NewRestyClientFrom(rc)
}
