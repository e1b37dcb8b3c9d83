// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emilyeserven/npm-package-guide-sub003/internal/index"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/issue"
	"github.com/emilyeserven/npm-package-guide-sub003/pkg/glossary"
)

// newShowCommand creates the `glossary show` command.
func newShowCommand(app *App) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "show <term>",
		Short: "Show one term with its guides, sections and references",
		Long: `Show one term with its guides, sections and references.

When the same term name exists in several categories every match is shown,
unless --category narrows it down.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd.Context())
			if err != nil {
				return err
			}
			snap, err := s.load(cmd.Context())
			if err != nil {
				return err
			}

			name := strings.Join(args, " ")
			refs := lookupTerm(snap.Index, name, category)
			if len(refs) == 0 {
				return termNotFound(name, category)
			}

			r := app.renderer(s, snap)
			for _, ref := range refs {
				e, _ := snap.Index.Term(ref)
				if err := r.Term(ref.Category, e); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "category the term belongs to")
	return cmd
}

// lookupTerm returns the references for name, optionally restricted to one
// category.
func lookupTerm(idx *index.Index, name, category string) []glossary.TermRef {
	category = strings.TrimSpace(category)
	if category != "" {
		ref := glossary.TermRef{Category: glossary.CategoryLabel(category), Term: glossary.TermName(name)}
		if _, ok := idx.Term(ref); ok {
			return []glossary.TermRef{ref}
		}
		return nil
	}
	return idx.Lookup(glossary.TermName(name))
}

func termNotFound(name, category string) error {
	resource := name
	if strings.TrimSpace(category) != "" {
		resource = fmt.Sprintf("%s (%s)", name, category)
	}
	return issue.NewErrorContext().
		WithOperation("look up term").
		WithResource(resource).
		WithSuggestion("Term names are matched exactly; use 'glossary search' to find the spelling").
		WithSuggestion("Run 'glossary categories' to list the available categories").
		WithIssue(issue.TermNotFoundId).
		Wrap(fmt.Errorf("no term named %q", name)).
		BuildError()
}
