// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/emilyeserven/npm-package-guide-sub003/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree bound to app.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "glossary",
		Short: "Index, search and cross-reference guide glossary terms",
		Long: TitleStyle.Render("glossary") + SubtitleStyle.Render(" - guide glossary index and cross-reference") + `

glossary discovers term modules (*.glossary.cue), merges them into one
index and links every term to the guides that use it.

` + SubtitleStyle.Render("Examples:") + `
  glossary list                         List every term by category
  glossary search offset                Find terms mentioning "offset"
  glossary list --guide kafka           Terms used by the Kafka guide
  glossary show "Consumer Group"        Show one term in detail
  glossary browse                       Search interactively
  glossary validate --term-dir ./terms  Check term modules for problems
  glossary serve --watch                Serve the JSON API with hot reload`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&app.flags.configPath, "config", "", "config file (default is $HOME/.config/glossary/config.cue)")
	pf.BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output and debug logging")
	pf.StringSliceVar(&app.flags.termDirs, "term-dir", nil, "additional directory to scan for *.glossary.cue modules (repeatable)")
	pf.BoolVar(&app.flags.noBuiltin, "no-builtin", false, "skip the term modules bundled with the binary")
	pf.StringVar(&app.flags.guidesFile, "guides-file", "", "guide registry file replacing the bundled one")

	root.AddCommand(
		newListCommand(app),
		newBrowseCommand(app),
		newShowCommand(app),
		newCategoriesCommand(app),
		newGuidesCommand(app),
		newRelatedCommand(app),
		newValidateCommand(app),
		newBuildCommand(app),
		newServeCommand(app),
		newWatchCommand(app),
		newConfigCommand(app),
		newVersionCommand(app),
	)
	return root
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Run executes the CLI and returns the process exit code.
func Run() int {
	app := NewApp(Dependencies{})
	err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(app.handleError),
	)
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// Execute runs the CLI and exits. It is called by main.main().
func Execute() {
	os.Exit(Run())
}

// handleError prints actionable errors with their suggestions and stays
// quiet for exit errors that were already reported.
func (a *App) handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}

	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		fmt.Fprintln(w, ErrorStyle.Render("Error: ")+ae.Format(a.flags.verbose))
		if a.flags.verbose {
			if is := issue.Get(ae.Issue); is != nil {
				if rendered, renderErr := is.Render("auto"); renderErr == nil {
					fmt.Fprint(w, rendered)
				}
			}
		}
		return
	}

	fang.DefaultErrorHandler(w, styles, err)
}

func newVersionCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(app.stdout, "glossary %s\n", getVersionString())
			return err
		},
	}
}
