// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/emilyeserven/npm-package-guide-sub003/internal/index"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/present"
	"github.com/emilyeserven/npm-package-guide-sub003/internal/query"
	"github.com/emilyeserven/npm-package-guide-sub003/pkg/glossary"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// chromeHeight is the space taken by the search line, the filter line
	// and the footer.
	chromeHeight = 4
)

var (
	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(present.ColorPrimary)

	filterStyle = lipgloss.NewStyle().
			Foreground(present.ColorMuted)

	footerStyle = lipgloss.NewStyle().
			Foreground(present.ColorMuted)
)

type (
	// BrowseOptions configures the glossary browser.
	BrowseOptions struct {
		// Index is the glossary to browse.
		Index *index.Index
		// State is the initial filter state.
		State present.State
		// RendererOptions are applied to the result renderer. The width is
		// set by the browser from the terminal size.
		RendererOptions []present.Option
		// Width and Height set the initial size before the first
		// WindowSizeMsg. Zero values use 80x24.
		Width  int
		Height int
	}

	// browseModel is the bubbletea model of the browser.
	browseModel struct {
		idx        *index.Index
		state      present.State
		categories []string
		guides     []glossary.GuideID
		rendOpts   []present.Option

		input    textinput.Model
		viewport viewport.Model
		width    int
		height   int
		done     bool
		err      error
	}
)

// NewBrowseModel creates the browser model.
func NewBrowseModel(opts BrowseOptions) *browseModel {
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	input := textinput.New()
	input.Prompt = promptStyle.Render("search ") + "› "
	input.Placeholder = "type to filter terms"
	input.SetValue(opts.State.Search)
	input.Focus()

	categories := []string{query.AllCategories}
	for _, c := range opts.Index.Categories() {
		categories = append(categories, c.String())
	}

	state := opts.State
	if !slices.Contains(categories, state.ActiveCategory()) {
		state.Category = query.AllCategories
	}

	m := &browseModel{
		idx:        opts.Index,
		state:      state,
		categories: categories,
		guides:     append([]glossary.GuideID{""}, opts.Index.Guides()...),
		rendOpts:   opts.RendererOptions,
		input:      input,
		viewport:   viewport.New(width, max(height-chromeHeight, 1)),
		width:      width,
		height:     height,
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *browseModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.done = true
			return m, tea.Quit
		case tea.KeyEsc:
			if !m.state.IsFiltered() {
				m.done = true
				return m, tea.Quit
			}
			m.ClearFilters()
			return m, nil
		case tea.KeyTab:
			m.cycleCategory(1)
			return m, nil
		case tea.KeyShiftTab:
			m.cycleCategory(-1)
			return m, nil
		case tea.KeyCtrlG:
			m.cycleGuide()
			return m, nil
		case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.state.Search {
		m.state.Search = m.input.Value()
		m.refresh()
	}
	return m, cmd
}

// View implements tea.Model.
func (m *browseModel) View() string {
	if m.done {
		return ""
	}

	guide := "any"
	if m.state.Guide != "" {
		guide = m.state.Guide.String()
	}
	filters := filterStyle.Render("category: ") + m.state.ActiveCategory() +
		filterStyle.Render("   guide: ") + guide

	footer := footerStyle.Render("tab/shift+tab: category • ctrl+g: guide • ↑/↓: scroll • esc: clear filters, then quit")

	return lipgloss.NewStyle().MaxWidth(m.width).Render(
		m.input.View() + "\n" + filters + "\n" + m.viewport.View() + "\n" + footer,
	)
}

// SetSize resizes the browser and re-renders the results for the new width.
func (m *browseModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-chromeHeight, 1)
	m.refresh()
}

// ClearFilters resets search, category and guide.
func (m *browseModel) ClearFilters() {
	m.state.Clear()
	m.input.SetValue("")
	m.refresh()
}

// State returns the current filter state.
func (m *browseModel) State() present.State {
	return m.state
}

// Content returns the rendered results shown in the viewport.
func (m *browseModel) Content() string {
	return m.viewport.View()
}

// IsDone reports whether the browser was closed.
func (m *browseModel) IsDone() bool {
	return m.done
}

// Err returns the last rendering error, if any.
func (m *browseModel) Err() error {
	return m.err
}

func (m *browseModel) cycleCategory(step int) {
	pos := slices.Index(m.categories, m.state.ActiveCategory())
	if pos < 0 {
		pos = 0
	}
	n := len(m.categories)
	m.state.Category = m.categories[((pos+step)%n+n)%n]
	m.refresh()
}

func (m *browseModel) cycleGuide() {
	pos := slices.Index(m.guides, m.state.Guide)
	m.state.Guide = m.guides[(pos+1)%len(m.guides)]
	m.refresh()
}

// refresh re-runs the query and replaces the viewport content.
func (m *browseModel) refresh() {
	var buf bytes.Buffer
	opts := append(slices.Clone(m.rendOpts), present.WithWidth(m.width))
	if err := present.NewRenderer(&buf, opts...).Results(m.idx, m.state); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.viewport.SetContent(strings.TrimRight(buf.String(), "\n"))
	m.viewport.GotoTop()
}

// Browse runs the interactive browser until the user quits or ctx is
// canceled. It returns the final filter state.
func Browse(ctx context.Context, opts BrowseOptions) (present.State, error) {
	model := NewBrowseModel(opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return model.State(), err
	}
	return model.State(), model.Err()
}
