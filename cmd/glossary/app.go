// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/emilyeserven/npm-package-guide-sub003/internal/config"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/loader"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/metrics"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/present"
)

type (
	// App wires CLI services and shared dependencies. Cobra handlers receive
	// an App and reach configuration, logging and the index through it.
	App struct {
		Config config.Provider
		stdout io.Writer
		stderr io.Writer
		flags  rootFlagValues
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Stdout io.Writer
		Stderr io.Writer
	}

	// rootFlagValues holds the persistent flags shared by every command.
	rootFlagValues struct {
		configPath string
		verbose    bool
		termDirs   []string
		noBuiltin  bool
		guidesFile string
	}

	// session is the state every data command starts from.
	session struct {
		cfg    *config.Config
		logger *slog.Logger
	}
)

// NewApp creates an App, filling nil dependencies with defaults.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config: deps.Config,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}

// newSession loads configuration, applies flag overrides and sets up the
// logger.
func (a *App) newSession(ctx context.Context) (*session, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.flags.configPath})
	if err != nil {
		return nil, err
	}

	if len(a.flags.termDirs) > 0 {
		cfg.TermDirs = append(cfg.TermDirs, a.flags.termDirs...)
	}
	if a.flags.noBuiltin {
		cfg.IncludeBuiltin = false
	}
	if a.flags.guidesFile != "" {
		cfg.GuidesFile = a.flags.guidesFile
	}
	if a.flags.verbose {
		cfg.UI.Verbose = true
	}

	return &session{cfg: cfg, logger: a.newLogger(cfg)}, nil
}

// newLogger creates the process logger. Library packages log through slog;
// charm log is installed as the slog handler.
func (a *App) newLogger(cfg *config.Config) *slog.Logger {
	level, err := log.ParseLevel(strings.ToLower(cfg.Log.Level.String()))
	if err != nil {
		level = log.WarnLevel
	}
	if cfg.UI.Verbose {
		level = log.DebugLevel
	}

	logger := log.NewWithOptions(a.stderr, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
	return slog.New(logger)
}

func (s *session) loadOptions(m *metrics.Metrics) loader.Options {
	opts := loader.OptionsFromConfig(s.cfg)
	opts.Logger = s.logger
	opts.Metrics = m
	return opts
}

// load builds a fresh snapshot from the session's sources.
func (s *session) load(ctx context.Context) (*loader.Snapshot, error) {
	return loader.Load(ctx, s.loadOptions(nil))
}

func (a *App) renderer(s *session, snap *loader.Snapshot) *present.Renderer {
	return present.NewRenderer(a.stdout,
		present.WithWidth(s.cfg.UI.Width),
		present.WithVerbose(s.cfg.UI.Verbose),
		present.WithGlamourStyle(glamourStyle(s.cfg.UI.ColorScheme)),
		present.WithRegistry(snap.Registry),
	)
}

func glamourStyle(scheme config.ColorScheme) string {
	switch scheme {
	case config.ColorSchemeDark, config.ColorSchemeLight:
		return scheme.String()
	default:
		return present.GlamourStyleAuto
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
