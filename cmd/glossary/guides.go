// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emilyeserven/npm-package-guide-sub003/internal/issue"
	"github.com/emilyeserven/npm-package-guide-sub003/pkg/glossary"
)

// newGuidesCommand creates the `glossary guides` command. Without arguments
// it lists every guide; with a guide id it lists the terms of that guide.
func newGuidesCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "guides [guide-id]",
		Short: "List guides, or the terms used by one guide",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd.Context())
			if err != nil {
				return err
			}
			snap, err := s.load(cmd.Context())
			if err != nil {
				return err
			}

			r := app.renderer(s, snap)
			if len(args) == 0 {
				return r.Guides(snap.Index)
			}

			id := glossary.GuideID(args[0])
			terms := snap.Index.TermsForGuide(id)
			g, registered := snap.Registry.Guide(id)
			if !registered && len(terms) == 0 {
				return issue.NewErrorContext().
					WithOperation("list guide terms").
					WithResource(id.String()).
					WithSuggestion("Run 'glossary guides' to list the known guide ids").
					Wrap(fmt.Errorf("unknown guide %q", id)).
					BuildError()
			}

			title := id.String()
			if registered && g.Title != "" {
				title = fmt.Sprintf("%s (%s)", g.Title, id)
			}
			return r.Refs(title, terms)
		},
	}
}
