// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emilyeserven/npm-package-guide-sub003/internal/diagnostic"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/issue"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/loader"
)

type validateFlags struct {
	strict bool
	json   bool
}

// validateReport is the machine-readable output of `glossary validate --json`.
type validateReport struct {
	Valid       bool                    `json:"valid"`
	Modules     int                     `json:"modules"`
	Terms       int                     `json:"terms"`
	Diagnostics []diagnostic.Diagnostic `json:"diagnostics"`
}

// newValidateCommand creates the `glossary validate` command.
func newValidateCommand(app *App) *cobra.Command {
	flags := &validateFlags{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check term modules and report every diagnostic",
		Long: `Check term modules and report every diagnostic.

The command exits with status 1 when any error-severity diagnostic is found,
or when the index is empty. With --strict, warnings fail the run as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := app.newSession(cmd.Context())
			if err != nil {
				return err
			}
			// Diagnostics are the output here, so they are not logged twice.
			opts := s.loadOptions(nil)
			opts.Logger = quietLogger()
			snap, err := loader.Load(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return runValidate(app, s, snap, flags)
		},
	}
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors")
	cmd.Flags().BoolVar(&flags.json, "json", false, "print the report as JSON")
	return cmd
}

func runValidate(app *App, s *session, snap *loader.Snapshot, flags *validateFlags) error {
	diags := snap.Diagnostics
	failed := diagnostic.HasErrors(diags) || (flags.strict && len(diags) > 0)
	empty := snap.Index.Len() == 0

	if flags.json {
		enc := json.NewEncoder(app.stdout)
		enc.SetIndent("", "  ")
		report := validateReport{
			Valid:       !failed && !empty,
			Modules:     len(snap.Modules),
			Terms:       snap.Index.Len(),
			Diagnostics: diags,
		}
		if report.Diagnostics == nil {
			report.Diagnostics = []diagnostic.Diagnostic{}
		}
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else if len(diags) > 0 || !empty {
		if err := app.renderer(s, snap).Diagnostics(diags); err != nil {
			return err
		}
	}

	if empty {
		return &ExitError{Code: 1, Err: issue.NewErrorContext().
			WithOperation("validate glossary").
			WithSuggestion("Add a term directory with --term-dir or term_dirs in the config").
			WithSuggestion("Drop --no-builtin to include the bundled term modules").
			WithIssue(issue.NoTermsFoundId).
			Wrap(fmt.Errorf("no terms found in %d modules", len(snap.Modules))).
			BuildError()}
	}

	if failed {
		counts := diagnostic.CountByCode(diags)
		return &ExitError{Code: 1, Err: issue.NewErrorContext().
			WithOperation("validate glossary").
			WithSuggestion("Fix the findings listed above and run 'glossary validate' again").
			WithIssue(issue.ValidationFailedId).
			Wrap(fmt.Errorf("%d diagnostics across %d codes", len(diags), len(counts))).
			BuildError()}
	}
	return nil
}
