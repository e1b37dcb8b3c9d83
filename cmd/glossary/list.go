// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/emilyeserven/npm-package-guide-sub003/internal/present"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/query"
	"github.com/emilyeserven/npm-package-guide-sub003/pkg/glossary"
)

type listFlags struct {
	search   string
	category string
	guide    string
}

// newListCommand creates the `glossary list` command.
func newListCommand(app *App) *cobra.Command {
	flags := &listFlags{}
	cmd := &cobra.Command{
		Use:     "list [search...]",
		Aliases: []string{"search"},
		Short:   "List glossary terms grouped by category",
		Long: `List glossary terms grouped by category.

Filters combine: a term is shown only when it matches the search text, the
category and the guide. The search text is matched case-insensitively against
term names and definitions. Positional arguments are joined into the search.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, app, flags, args)
		},
	}

	cmd.Flags().StringVarP(&flags.search, "search", "s", "", "text to look for in names and definitions")
	cmd.Flags().StringVarP(&flags.category, "category", "c", query.AllCategories, "category label, or \"all\"")
	cmd.Flags().StringVarP(&flags.guide, "guide", "g", "", "only terms used by this guide id")
	return cmd
}

func runList(cmd *cobra.Command, app *App, flags *listFlags, args []string) error {
	s, err := app.newSession(cmd.Context())
	if err != nil {
		return err
	}
	snap, err := s.load(cmd.Context())
	if err != nil {
		return err
	}

	search := flags.search
	if len(args) > 0 {
		search = strings.TrimSpace(search + " " + strings.Join(args, " "))
	}
	st := present.State{
		Search:   search,
		Category: flags.category,
		Guide:    glossary.GuideID(strings.TrimSpace(flags.guide)),
	}
	return app.renderer(s, snap).Results(snap.Index, st)
}
