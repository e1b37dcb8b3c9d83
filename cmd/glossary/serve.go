// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/emilyeserven/npm-package-guide-sub003/internal/config"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/issue"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/loader"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/metrics"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/server"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/watch"
)

type serveFlags struct {
	addr  string
	watch bool
}

// newServeCommand creates the `glossary serve` command.
func newServeCommand(app *App) *cobra.Command {
	flags := &serveFlags{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the glossary as a JSON API",
		Long: `Serve the glossary as a JSON API.

Endpoints:
  GET /api/glossary?q=&category=&guide=   filtered groups
  GET /api/glossary/categories            per-category counts
  GET /api/glossary/guides                guides with term counts
  GET /api/glossary/guides/{id}           terms of one guide
  GET /api/glossary/related?category=&term=
  GET /api/diagnostics                    build diagnostics
  GET /api/health                         liveness and index stats
  GET /metrics                            Prometheus metrics

With --watch the index is rebuilt when term modules change. A failed rebuild
keeps the previous index online.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), app, flags)
		},
	}
	cmd.Flags().StringVar(&flags.addr, "addr", "", "listen address (default from server.addr)")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "rebuild the index when term modules change")
	return cmd
}

func runServe(ctx context.Context, app *App, flags *serveFlags) error {
	s, err := app.newSession(ctx)
	if err != nil {
		return err
	}

	m := metrics.New(Version, runtime.Version())
	holder, err := loader.NewHolder(ctx, s.loadOptions(m))
	if err != nil {
		return err
	}

	addr := s.cfg.Server.Addr
	if flags.addr != "" {
		addr = flags.addr
	}
	srv := server.New(holder,
		server.WithAddr(addr),
		server.WithLogger(s.logger),
		server.WithMetrics(m),
		server.WithRateLimit(s.cfg.Server.RateLimit, s.cfg.Server.Burst),
	)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("start server").
			WithResource(addr).
			WithSuggestion("Pick another address with --addr").
			WithIssue(issue.ServerStartFailedId).
			Wrap(err).
			BuildError()
	}

	fmt.Fprintf(app.stderr, "%s listening on %s\n", SuccessStyle.Render("✓"), CmdStyle.Render("http://"+ln.Addr().String()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Serve(gctx, ln)
	})
	if flags.watch {
		w, err := newReloadWatcher(s, holder)
		switch {
		case errors.Is(err, watch.ErrNothingToWatch):
			s.logger.Warn("watch: no term directories configured, hot reload disabled")
		case err != nil:
			_ = ln.Close()
			return err
		default:
			g.Go(func() error {
				return w.Run(gctx)
			})
		}
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// newReloadWatcher watches the configured term directories and guide file
// and reloads holder on change.
func newReloadWatcher(s *session, holder *loader.Holder) (*watch.Watcher, error) {
	return watch.New(watchConfig(s.cfg, s.logger, func(ctx context.Context, changed []string) error {
		snap, err := holder.Reload(ctx)
		if err != nil {
			s.logger.Error("reload failed, keeping previous index", slog.Any("error", err))
			return err
		}
		s.logger.Info("index reloaded",
			slog.Int("changed", len(changed)),
			slog.Int("terms", snap.Index.Len()),
			slog.Duration("took", snap.Took))
		return nil
	}))
}

func watchConfig(cfg *config.Config, logger *slog.Logger, onChange func(context.Context, []string) error) watch.Config {
	wc := watch.Config{
		Dirs:     cfg.TermDirs,
		Patterns: cfg.Watch.Patterns,
		Debounce: cfg.Watch.Debounce,
		OnChange: onChange,
		Logger:   logger,
	}
	if cfg.GuidesFile != "" {
		wc.Files = []string{cfg.GuidesFile}
	}
	if cfg.SourcePath != "" {
		wc.Files = append(wc.Files, cfg.SourcePath)
	}
	return wc
}
