// SPDX-License-Identifier: MPL-2.0

package present

import "github.com/charmbracelet/lipgloss"

// Color palette shared by every CLI view. Tuned for dark terminals.
const (
	// ColorPrimary is purple, for titles and the active category.
	ColorPrimary = lipgloss.Color("#7C3AED")
	// ColorMuted is gray, for hints and secondary text.
	ColorMuted = lipgloss.Color("#6B7280")
	// ColorSuccess is green.
	ColorSuccess = lipgloss.Color("#10B981")
	// ColorError is red.
	ColorError = lipgloss.Color("#EF4444")
	// ColorWarning is amber.
	ColorWarning = lipgloss.Color("#F59E0B")
	// ColorHighlight is blue, for guide ids and links.
	ColorHighlight = lipgloss.Color("#3B82F6")
	// ColorVerbose is light gray.
	ColorVerbose = lipgloss.Color("#9CA3AF")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	categoryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginTop(1)

	activeControlStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary)

	controlStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// Zero-count controls stay visible but dimmed.
	disabledControlStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Faint(true)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	guideCellStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Padding(0, 1)

	borderStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	emptyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWarning)

	hintStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	warningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	okStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)
)
