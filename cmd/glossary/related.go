// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// newRelatedCommand creates the `glossary related` command.
func newRelatedCommand(app *App) *cobra.Command {
	var (
		category string
		limit    int
	)
	cmd := &cobra.Command{
		Use:   "related <term>",
		Short: "List terms that share guides with a term",
		Args:  cobra.MinimumNArgs(1),
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
				title := fmt.Sprintf("Related to %s (%s)", ref.Term, ref.Category)
				if err := r.Refs(title, snap.Index.Related(ref, limit)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "category the term belongs to")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of related terms (0 for all)")
	return cmd
}
