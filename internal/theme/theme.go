package theme

import "charm.land/lipgloss/v2"

// Styles describes reusable Lip Gloss styles shared across the console.
type Styles struct {
	Marker      *lipgloss.Style
	Option      *lipgloss.Style
	Disabled    *lipgloss.Style
	Arrow       *lipgloss.Style
	Separator   *lipgloss.Style
	Instruction *lipgloss.Style
	Status      *lipgloss.Style
	Title       *lipgloss.Style
	Subtitle    *lipgloss.Style
	Prompt      *lipgloss.Style
}

var defaultStyles = Styles{
	Marker: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	Option: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Disabled: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Arrow: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	Separator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	Instruction: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	Status: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Title: ptr(
		lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1),
	),
	Subtitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
	),
	Prompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// Plain renders everything unstyled and unboxed.
func Plain() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Marker:      ptr(plain),
		Option:      ptr(plain),
		Disabled:    ptr(plain),
		Arrow:       ptr(plain),
		Separator:   ptr(plain),
		Instruction: ptr(plain),
		Status:      ptr(plain),
		Title:       ptr(plain),
		Subtitle:    ptr(plain),
		Prompt:      ptr(plain),
	}
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
