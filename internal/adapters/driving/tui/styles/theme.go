// Package styles provides the colour palette and lipgloss styles for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of colours the TUI draws with.
type Palette struct {
	Accent    lipgloss.Color // focused card border, titles
	Highlight lipgloss.Color // subtitles and carousel arrows
	Ink       lipgloss.Color // body text
	Paper     lipgloss.Color // text drawn on a coloured badge
	Dim       lipgloss.Color // side cards, hints, struck prices
	Chosen    lipgloss.Color // committed tier
	Promo     lipgloss.Color // popular badge
	Alert     lipgloss.Color // errors
	Frame     lipgloss.Color // card borders and inactive dots
	Bar       lipgloss.Color // status bar background
}

// DefaultPalette returns the palette used when none is configured.
func DefaultPalette() *Palette {
	return &Palette{
		Accent:    lipgloss.Color("#2563EB"),
		Highlight: lipgloss.Color("#06B6D4"),
		Ink:       lipgloss.Color("#CDD6F4"),
		Paper:     lipgloss.Color("#1E1E2E"),
		Dim:       lipgloss.Color("#6C7086"),
		Chosen:    lipgloss.Color("#A6E3A1"),
		Promo:     lipgloss.Color("#F9E2AF"),
		Alert:     lipgloss.Color("#F38BA8"),
		Frame:     lipgloss.Color("#45475A"),
		Bar:       lipgloss.Color("#181825"),
	}
}

// Styles holds the rendered styles built from a palette.
type Styles struct {
	palette *Palette

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style // highlighted list row
	Error    lipgloss.Style
	Success  lipgloss.Style
	Help     lipgloss.Style

	StatusBar lipgloss.Style

	// Card variants share one frame size so a blank placeholder built
	// from Card lines up with any of them.
	Card         lipgloss.Style
	FocusedCard  lipgloss.Style
	SelectedCard lipgloss.Style

	Price  lipgloss.Style
	Strike lipgloss.Style
	Badge  lipgloss.Style

	Dot       lipgloss.Style
	ActiveDot lipgloss.Style
}

// NewStyles builds styles from p. A nil palette uses DefaultPalette.
func NewStyles(p *Palette) *Styles {
	if p == nil {
		p = DefaultPalette()
	}

	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	card := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Frame).
		Padding(0, 1)

	return &Styles{
		palette: p,

		Title:    fg(p.Accent).Bold(true),
		Subtitle: fg(p.Highlight).Bold(true),
		Normal:   fg(p.Ink),
		Muted:    fg(p.Dim),
		Selected: fg(p.Ink).Background(p.Accent).Bold(true),
		Error:    fg(p.Alert),
		Success:  fg(p.Chosen),
		Help:     fg(p.Dim),

		StatusBar: fg(p.Dim).Background(p.Bar).Padding(0, 1),

		Card: card.Foreground(p.Dim),
		FocusedCard: card.
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(p.Accent).
			Foreground(p.Ink),
		SelectedCard: card.
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(p.Chosen).
			Foreground(p.Ink),

		Price:  fg(p.Ink).Bold(true),
		Strike: fg(p.Dim).Strikethrough(true),
		Badge:  fg(p.Paper).Background(p.Promo).Bold(true).Padding(0, 1),

		Dot:       fg(p.Frame),
		ActiveDot: fg(p.Accent),
	}
}

// DefaultStyles returns styles built from the default palette.
func DefaultStyles() *Styles {
	return NewStyles(nil)
}

// Palette returns the palette the styles were built from.
func (s *Styles) Palette() *Palette {
	return s.palette
}
