// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/emilyeserven/npm-package-guide-sub003/internal/query"
	"github.com/emilyeserven/npm-package-guide-sub003/pkg/glossary"
)

// newCategoriesCommand creates the `glossary categories` command.
func newCategoriesCommand(app *App) *cobra.Command {
	var search, guide string
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List categories with the number of matching terms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := app.newSession(cmd.Context())
			if err != nil {
				return err
			}
			snap, err := s.load(cmd.Context())
			if err != nil {
				return err
			}
			counts := query.Counts(snap.Index, query.Filter{Text: search, Guide: glossary.GuideID(guide)})
			return app.renderer(s, snap).Categories(counts)
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "count only terms matching this text")
	cmd.Flags().StringVarP(&guide, "guide", "g", "", "count only terms used by this guide id")
	return cmd
}
