// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emilyeserven/npm-package-guide-sub003/internal/config"
)

// newConfigCommand creates the `glossary config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage glossary configuration",
		Long: `Manage glossary configuration.

Configuration is stored in:
  - Linux: ~/.config/glossary/config.cue
  - macOS: ~/Library/Application Support/glossary/config.cue
  - Windows: %APPDATA%\glossary\config.cue

Environment variables prefixed with GLOSSARY_ override file values, for
example GLOSSARY_SERVER_ADDR or GLOSSARY_LOG_LEVEL.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfig(cmd.Context(), app)
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(app, force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.FilePath(config.LoadOptions{ConfigFilePath: app.flags.configPath})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(app.stdout, path)
			return err
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	s, err := app.newSession(ctx)
	if err != nil {
		return err
	}
	cfg := s.cfg

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	out := app.stdout

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)
	if cfg.SourcePath != "" {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), cfg.SourcePath)
	} else {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(out)

	termDirs := SubtitleStyle.Render("(none)")
	if len(cfg.TermDirs) > 0 {
		termDirs = valueStyle.Render(strings.Join(cfg.TermDirs, ", "))
	}
	guidesFile := SubtitleStyle.Render("(bundled)")
	if cfg.GuidesFile != "" {
		guidesFile = valueStyle.Render(cfg.GuidesFile)
	}

	rows := [][2]string{
		{"term_dirs", termDirs},
		{"include_builtin", valueStyle.Render(fmt.Sprint(cfg.IncludeBuiltin))},
		{"guides_file", guidesFile},
		{"log.level", valueStyle.Render(cfg.Log.Level.String())},
		{"ui.color_scheme", valueStyle.Render(cfg.UI.ColorScheme.String())},
		{"ui.verbose", valueStyle.Render(fmt.Sprint(cfg.UI.Verbose))},
		{"ui.width", valueStyle.Render(fmt.Sprint(cfg.UI.Width))},
		{"server.addr", valueStyle.Render(cfg.Server.Addr)},
		{"server.rate_limit", valueStyle.Render(fmt.Sprint(cfg.Server.RateLimit))},
		{"server.burst", valueStyle.Render(fmt.Sprint(cfg.Server.Burst))},
		{"watch.debounce", valueStyle.Render(cfg.Watch.Debounce.String())},
		{"watch.patterns", valueStyle.Render(strings.Join(cfg.Watch.Patterns, ", "))},
	}
	for _, row := range rows {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render(row[0]), row[1])
	}
	return nil
}

func initConfig(app *App, force bool) error {
	path, err := config.FilePath(config.LoadOptions{ConfigFilePath: app.flags.configPath})
	if err != nil {
		return err
	}

	if err := config.WriteDefault(path, force); err != nil {
		if errors.Is(err, config.ErrConfigExists) {
			fmt.Fprintf(app.stdout, "Configuration file already exists at: %s\n", path)
			fmt.Fprintln(app.stdout, SubtitleStyle.Render("Use --force to overwrite it."))
			return nil
		}
		return err
	}

	fmt.Fprintf(app.stdout, "%s Created configuration file: %s\n", SuccessStyle.Render("✓"), path)
	return nil
}
