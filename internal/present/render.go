// SPDX-License-Identifier: MPL-2.0

package present

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/emilyeserven/npm-package-guide-sub003/internal/diagnostic"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/index"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/markup"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/query"
	"github.com/emilyeserven/npm-package-guide-sub003/pkg/glossary"
	"github.com/emilyeserven/npm-package-guide-sub003/pkg/guides"
)

const (
	// EmptyMessage is shown when a filter matches no term.
	EmptyMessage = "No terms match your search."
	// ClearHint tells the user how to widen the result.
	ClearHint = "Try a different search, pick another category, or run without filters to see every term."

	// GlamourStyleAuto picks a markdown style from the terminal.
	GlamourStyleAuto = "auto"
)

type (
	// Renderer writes glossary views.
	Renderer struct {
		out          io.Writer
		width        int
		glamourStyle string
		verbose      bool
		registry     *guides.Registry
	}

	// Option configures a Renderer.
	Option func(*Renderer)
)

// WithWidth wraps tables and term details at w columns. Zero leaves output
// unwrapped.
func WithWidth(w int) Option {
	return func(r *Renderer) { r.width = max(w, 0) }
}

// WithGlamourStyle sets the markdown style for term details: "auto", or a
// glamour standard style such as "dark", "light" or "notty".
func WithGlamourStyle(style string) Option {
	return func(r *Renderer) {
		if style != "" {
			r.glamourStyle = style
		}
	}
}

// WithVerbose adds module and reference columns.
func WithVerbose(v bool) Option {
	return func(r *Renderer) { r.verbose = v }
}

// WithRegistry resolves guide and section titles in term details.
func WithRegistry(reg *guides.Registry) Option {
	return func(r *Renderer) { r.registry = reg }
}

// NewRenderer returns a Renderer writing to out.
func NewRenderer(out io.Writer, opts ...Option) *Renderer {
	r := &Renderer{out: out, glamourStyle: GlamourStyleAuto}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Results writes the filtered glossary for st: the category controls,
// then one table per non-empty category, or the empty state.
func (r *Renderer) Results(idx *index.Index, st State) error {
	groups := query.Run(idx, st.Filter())

	var b strings.Builder
	b.WriteString(r.Controls(query.Counts(idx, st.Filter()), st))
	b.WriteString("\n")

	if len(groups) == 0 {
		b.WriteString("\n")
		b.WriteString(r.Empty())
		_, err := io.WriteString(r.out, b.String())
		return err
	}

	b.WriteString(r.Groups(groups))
	fmt.Fprintf(&b, "\n%s\n", hintStyle.Render(pluralize(query.Total(groups), "term")+" in "+pluralize(len(groups), "category")))
	_, err := io.WriteString(r.out, b.String())
	return err
}

// Empty returns the empty-state block.
func (r *Renderer) Empty() string {
	return emptyStyle.Render(EmptyMessage) + "\n" + hintStyle.Render(ClearHint) + "\n"
}

// Controls renders one control per category label plus "all". The active
// control is highlighted and bracketed. Counts reflect the text and guide
// filters.
func (r *Renderer) Controls(counts []query.CategoryCount, st State) string {
	active := st.ActiveCategory()
	total := 0
	for _, c := range counts {
		total += c.Count
	}

	parts := make([]string, 0, len(counts)+1)
	parts = append(parts, control(query.AllCategories, total, active == query.AllCategories))
	for _, c := range counts {
		parts = append(parts, control(c.Category.String(), c.Count, active == c.Category.String()))
	}

	line := strings.Join(parts, "  ")
	if r.width > 0 {
		line = lipgloss.NewStyle().Width(r.width).Render(line)
	}
	return line
}

func control(label string, n int, active bool) string {
	text := label + " (" + strconv.Itoa(n) + ")"
	switch {
	case active:
		return activeControlStyle.Render("[" + text + "]")
	case n == 0:
		return disabledControlStyle.Render(text)
	default:
		return controlStyle.Render(text)
	}
}

// Groups renders each group as a titled table.
func (r *Renderer) Groups(groups []index.Group) string {
	var b strings.Builder
	for _, g := range groups {
		b.WriteString(categoryStyle.Render(g.Category.String()))
		b.WriteString("\n")
		b.WriteString(r.termTable(g.Terms))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) termTable(entries []index.Entry) string {
	headers := []string{"TERM", "DEFINITION", "GUIDES"}
	if r.verbose {
		headers = append(headers, "REFERENCE", "MODULE")
	}

	t := r.newTable(headers...)
	for _, e := range entries {
		row := []string{e.Name.String(), e.PlainDefinition(), joinIDs(e.Guides)}
		if r.verbose {
			row = append(row, string(e.PrimaryReference), e.Module)
		}
		t.Row(row...)
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case col == 2:
			return guideCellStyle
		default:
			return cellStyle
		}
	})
	return t.Render()
}

func (r *Renderer) newTable(headers ...string) *table.Table {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	if r.width > 0 {
		t.Width(r.width)
	}
	return t
}

// Categories writes the category table with per-category match counts.
func (r *Renderer) Categories(counts []query.CategoryCount) error {
	t := r.newTable("CATEGORY", "TERMS")
	for _, c := range counts {
		t.Row(c.Category.String(), strconv.Itoa(c.Count))
	}
	_, err := fmt.Fprintln(r.out, t.Render())
	return err
}

// Guides writes the guide table: registered guides first, then guide ids
// that terms claim but the registry does not list.
func (r *Renderer) Guides(idx *index.Index) error {
	t := r.newTable("GUIDE", "TITLE", "SECTIONS", "TERMS")
	seen := make(map[glossary.GuideID]bool)
	for _, g := range r.registry.Guides() {
		seen[g.ID] = true
		t.Row(g.ID.String(), g.Title, strconv.Itoa(len(g.Sections)), strconv.Itoa(len(idx.TermsForGuide(g.ID))))
	}
	for _, id := range idx.Guides() {
		if !seen[id] {
			t.Row(id.String(), "-", "-", strconv.Itoa(len(idx.TermsForGuide(id))))
		}
	}
	_, err := fmt.Fprintln(r.out, t.Render())
	return err
}

// Refs writes a short list of term references, as used for related terms
// and guide membership.
func (r *Renderer) Refs(title string, refs []glossary.TermRef) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	if len(refs) == 0 {
		b.WriteString(hintStyle.Render("none"))
		b.WriteString("\n")
	}
	for _, ref := range refs {
		fmt.Fprintf(&b, "  %s %s\n", ref.Term, hintStyle.Render("("+ref.Category.String()+")"))
	}
	_, err := io.WriteString(r.out, b.String())
	return err
}

// Term writes the detail view of one entry. The definition markup is
// converted to Markdown and rendered with glamour.
func (r *Renderer) Term(category glossary.CategoryLabel, e index.Entry) error {
	md := r.termMarkdown(category, e)

	var opts []glamour.TermRendererOption
	if r.width > 0 {
		opts = append(opts, glamour.WithWordWrap(r.width))
	}
	if r.glamourStyle == GlamourStyleAuto {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(r.glamourStyle))
	}

	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := tr.Render(md)
	if err != nil {
		return fmt.Errorf("render term %q: %w", e.Name, err)
	}
	_, err = io.WriteString(r.out, out)
	return err
}

func (r *Renderer) termMarkdown(category glossary.CategoryLabel, e index.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", e.Name)
	fmt.Fprintf(&b, "_%s_\n\n", category)
	b.WriteString(markup.ToMarkdown(e.Definition))
	b.WriteString("\n\n")

	if len(e.Guides) > 0 {
		b.WriteString("## Guides\n\n")
		for _, id := range e.Guides {
			fmt.Fprintf(&b, "- %s\n", r.guideLabel(id))
		}
		b.WriteString("\n")
	}

	if sections := e.Sections(); len(sections) > 0 {
		b.WriteString("## Sections\n\n")
		for _, id := range sections {
			fmt.Fprintf(&b, "- %s\n", r.sectionLabel(id))
		}
		b.WriteString("\n")
	}

	b.WriteString("## References\n\n")
	fmt.Fprintf(&b, "- `%s` (primary)\n", e.PrimaryReference)
	for _, ref := range e.AdditionalReferences {
		fmt.Fprintf(&b, "- `%s`\n", ref)
	}

	if r.verbose && e.Module != "" {
		fmt.Fprintf(&b, "\nDefined in `%s`.\n", e.Module)
	}
	return b.String()
}

func (r *Renderer) guideLabel(id glossary.GuideID) string {
	if g, ok := r.registry.Guide(id); ok && g.Title != "" {
		return fmt.Sprintf("%s (`%s`)", g.Title, id)
	}
	return "`" + id.String() + "`"
}

func (r *Renderer) sectionLabel(id glossary.SectionID) string {
	s, guide, ok := r.registry.Section(id)
	if !ok {
		return "`" + id.String() + "` (no guide)"
	}
	if s.Title != "" {
		return fmt.Sprintf("%s (`%s`, %s)", s.Title, id, guide)
	}
	return fmt.Sprintf("`%s` (%s)", id, guide)
}

// Diagnostics writes one line per diagnostic followed by a summary.
func (r *Renderer) Diagnostics(diags []diagnostic.Diagnostic) error {
	var b strings.Builder
	errs, warns := 0, 0
	for _, d := range diags {
		if d.Severity == diagnostic.SeverityError {
			errs++
			b.WriteString(errorStyle.Render("error"))
		} else {
			warns++
			b.WriteString(warningStyle.Render("warning"))
		}
		fmt.Fprintf(&b, " %s: %s", d.Code, d.Message)
		if d.Path != "" {
			b.WriteString(" " + hintStyle.Render("("+d.Path+")"))
		}
		b.WriteString("\n")
	}

	summary := pluralize(errs, "error") + ", " + pluralize(warns, "warning")
	if errs == 0 && warns == 0 {
		b.WriteString(okStyle.Render("✓ glossary is valid"))
	} else {
		b.WriteString(hintStyle.Render(summary))
	}
	b.WriteString("\n")
	_, err := io.WriteString(r.out, b.String())
	return err
}

func joinIDs(ids []glossary.GuideID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ", ")
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	if strings.HasSuffix(noun, "y") {
		return strconv.Itoa(n) + " " + strings.TrimSuffix(noun, "y") + "ies"
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
