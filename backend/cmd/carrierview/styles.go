package main

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#2CD7C7")
	colorBorder = lipgloss.Color("#16858E")
	colorMuted  = lipgloss.Color("#6C7A89")
	colorError  = lipgloss.Color("#E74C3C")
)

var styles = struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Value lipgloss.Style
	Muted lipgloss.Style
	Error lipgloss.Style
	Box   lipgloss.Style
}{
	Title: lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
	Label: lipgloss.NewStyle().Bold(true).Width(22),
	Value: lipgloss.NewStyle(),
	Muted: lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
	Error: lipgloss.NewStyle().Foreground(colorError),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1),
}
