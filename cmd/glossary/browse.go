// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/emilyeserven/npm-package-guide-sub003/internal/present"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/query"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/tui"
	"github.com/emilyeserven/npm-package-guide-sub003/pkg/glossary"
)

// newBrowseCommand creates the `glossary browse` command.
func newBrowseCommand(app *App) *cobra.Command {
	flags := &listFlags{}
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the glossary interactively",
		Long: `Browse the glossary interactively.

Type to search, press tab and shift+tab to switch category and ctrl+g to
cycle guides. Esc clears the filters, a second esc quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := app.newSession(cmd.Context())
			if err != nil {
				return err
			}
			snap, err := s.load(cmd.Context())
			if err != nil {
				return err
			}

			_, err = tui.Browse(cmd.Context(), tui.BrowseOptions{
				Index: snap.Index,
				State: present.State{
					Search:   flags.search,
					Category: flags.category,
					Guide:    glossary.GuideID(flags.guide),
				},
				RendererOptions: []present.Option{
					present.WithVerbose(s.cfg.UI.Verbose),
					present.WithRegistry(snap.Registry),
				},
			})
			return err
		},
	}
	cmd.Flags().StringVarP(&flags.search, "search", "s", "", "initial search text")
	cmd.Flags().StringVarP(&flags.category, "category", "c", query.AllCategories, "initial category")
	cmd.Flags().StringVarP(&flags.guide, "guide", "g", "", "initial guide id")
	return cmd
}
