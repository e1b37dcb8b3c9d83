// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/emilyeserven/npm-package-guide-sub003/internal/export"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/issue"
)

// newBuildCommand creates the `glossary build` command.
func newBuildCommand(app *App) *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Write the precomputed index as JSON, YAML or TOML",
		Long: `Write the precomputed index as JSON, YAML or TOML.

The document carries every category with its terms and their effective
guides, so consumers do not need to repeat the guide inference.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			s, err := app.newSession(cmd.Context())
			if err != nil {
				return err
			}
			snap, err := s.load(cmd.Context())
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := export.Write(&buf, f, snap.Index); err != nil {
				return exportFailed(output, err)
			}

			if output == "" || output == "-" {
				_, err := app.stdout.Write(buf.Bytes())
				return err
			}
			if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
				return exportFailed(output, err)
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return exportFailed(output, err)
			}
			fmt.Fprintf(app.stderr, "%s wrote %d terms to %s\n", SuccessStyle.Render("✓"), snap.Index.Len(), CmdStyle.Render(output))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatJSON), "output format (json, yaml, toml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default is stdout)")
	return cmd
}

func exportFailed(path string, err error) error {
	if path == "" {
		path = "stdout"
	}
	return issue.NewErrorContext().
		WithOperation("export index").
		WithResource(path).
		WithSuggestion("Check that the output directory is writable").
		WithIssue(issue.ExportFailedId).
		Wrap(err).
		BuildError()
}
