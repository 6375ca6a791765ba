// cmd/dashboard/main.go
//
// Dashboard entry point.
//
// Start-up sequence
// -----------------
//
//  1. Parse flags (-dir, -allow-script-config).
//
//  2. Build the resolver and the process-lifetime Provider.
//
//  3. Build the severity logger from the resolved `logs` section, falling
//     back to defaults when nothing resolves, and install the JSON
//     diagnostics logger for zap.S().
//
//  4. Validate, then serve /healthz and /metrics on `server.port` until
//     SIGINT or SIGTERM.
//
// A CRITICAL configuration error exits with status 1 after it is logged.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/discord-dashboard/core/internal/config"
	"github.com/discord-dashboard/core/internal/dashboard"
	"github.com/discord-dashboard/core/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		dir     string
		scripts bool
	)
	flag.StringVar(&dir, "dir", "", "Directory searched for discord-dashboard.config.* (default: working directory)")
	flag.BoolVar(&scripts, "allow-script-config", false, "Evaluate .js/.ts configuration files")
	flag.Parse()

	resolver := config.NewResolver(dir, config.WithScriptLoading(scripts))
	provider := config.NewProvider(resolver)

	// A resolution error here resurfaces from Validate with full context.
	log, _ := logger.FromProvider(provider)
	defer log.Close()

	level := config.DefaultLevel
	if res, err := provider.Get(); err == nil {
		level = res.Config().Logs.Level
	}
	logger.InstallGlobal(level, os.Stderr)

	validator := config.NewValidator(resolver, log)
	app := dashboard.New(provider, validator, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Start(ctx); err != nil {
		return 1
	}
	return 0
}
