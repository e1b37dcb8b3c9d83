// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/emilyeserven/npm-package-guide-sub003/internal/issue"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/loader"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/watch"
)

// newWatchCommand creates the `glossary watch` command.
func newWatchCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the index whenever term modules change",
		Long: `Rebuild the index whenever term modules change.

Every rebuild prints the term count and the diagnostics, which makes the
command a live linter while editing term modules. Stop it with Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd.Context(), app)
		},
	}
}

func runWatch(ctx context.Context, app *App) error {
	s, err := app.newSession(ctx)
	if err != nil {
		return err
	}

	opts := s.loadOptions(nil)
	opts.Logger = quietLogger()
	holder, err := loader.NewHolder(ctx, opts)
	if err != nil {
		return err
	}
	if err := app.reportBuild(s, holder.Current()); err != nil {
		return err
	}

	w, err := watch.New(watchConfig(s.cfg, s.logger, func(ctx context.Context, changed []string) error {
		snap, err := holder.Reload(ctx)
		if err != nil {
			fmt.Fprintln(app.stderr, ErrorStyle.Render("rebuild failed: ")+err.Error())
			return err
		}
		fmt.Fprintf(app.stdout, "\n%s %d changed\n", SubtitleStyle.Render(time.Now().Format(time.TimeOnly)), len(changed))
		return app.reportBuild(s, snap)
	}))
	if errors.Is(err, watch.ErrNothingToWatch) {
		return issue.NewErrorContext().
			WithOperation("watch term modules").
			WithSuggestion("Add a directory with --term-dir or term_dirs in the config").
			Wrap(err).
			BuildError()
	}
	if err != nil {
		return err
	}

	for _, dir := range w.Watched() {
		s.logger.Debug("watching", "dir", dir)
	}
	fmt.Fprintf(app.stderr, "%s watching %d directories\n", SuccessStyle.Render("✓"), len(w.Watched()))
	return w.Run(ctx)
}

func (a *App) reportBuild(s *session, snap *loader.Snapshot) error {
	fmt.Fprintf(a.stdout, "%s %d terms in %d categories from %d modules (%s)\n",
		TitleStyle.Render("index"),
		snap.Index.Len(), len(snap.Index.Categories()), len(snap.Modules),
		snap.Took.Round(time.Millisecond))
	return a.renderer(s, snap).Diagnostics(snap.Diagnostics)
}
