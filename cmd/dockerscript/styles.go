// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Color palette shared by usage text, the verbose report and error output.
const (
	// ColorPrimary is purple - used for titles and headers.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray - used for labels and secondary text.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorError is red - used for errors.
	ColorError = lipgloss.Color("#EF4444")


	// ColorHighlight is blue - used for commands and option markers.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	// TitleStyle is for primary headers and section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// ErrorStyle is for error messages and failure indicators.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// CmdStyle is for commands, markers and the generated command line.
	CmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// reportLabelStyle pads verbose report labels into a column.
	reportLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Width(20)
)

// painter renders styles for one output stream, or leaves text untouched
// when color is disabled.
type painter struct {
	renderer *lipgloss.Renderer
	color    bool
}

func (p painter) paint(style lipgloss.Style, text string) string {
	if !p.color || p.renderer == nil {
		return text
	}
	return style.Renderer(p.renderer).Render(text)
}

// label renders a report label; the padding is kept even without color.
func (p painter) label(text string) string {
	if !p.color || p.renderer == nil {
		return lipgloss.NewStyle().Width(reportLabelStyle.GetWidth()).Render(text)
	}
	return reportLabelStyle.Renderer(p.renderer).Render(text)
}
