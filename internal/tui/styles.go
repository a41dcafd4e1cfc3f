package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/petdoor-tools/doorsched/internal/config"
)

type Styles struct {
	Header       lipgloss.Style
	DotOn        lipgloss.Style
	DotOff       lipgloss.Style
	Summary      lipgloss.Style
	DayHeading   lipgloss.Style
	TodayHeading lipgloss.Style
	GutterLabel  lipgloss.Style

	Slot         lipgloss.Style
	ActiveSlot   lipgloss.Style
	Preview      lipgloss.Style
	Removal      lipgloss.Style
	PreviewLabel lipgloss.Style

	GuideThin   lipgloss.Style
	GuideStrong lipgloss.Style
	CurrentTime lipgloss.Style

	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style
	FormError   lipgloss.Style

	Status lipgloss.Style
	Alert  lipgloss.Style
}

// NewStyles builds the widget styles from the configured slot colors.
func NewStyles(cfg *config.Config) Styles {
	slot := lipgloss.Color(cfg.SlotColor)
	active := lipgloss.Color(cfg.ActiveSlotColor)
	removal := lipgloss.Color(cfg.RemovalColor)

	return Styles{
		Header:       lipgloss.NewStyle().Bold(true),
		DotOn:        lipgloss.NewStyle().Foreground(lipgloss.Color("40")),
		DotOff:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Summary:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		DayHeading:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		TodayHeading: lipgloss.NewStyle().Foreground(active).Bold(true),
		GutterLabel:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),

		Slot:         lipgloss.NewStyle().Background(slot),
		ActiveSlot:   lipgloss.NewStyle().Background(active),
		Preview:      lipgloss.NewStyle().Background(slot).Faint(true),
		Removal:      lipgloss.NewStyle().Background(removal),
		PreviewLabel: lipgloss.NewStyle().Background(slot).Foreground(lipgloss.Color("231")).Bold(true),

		GuideThin:   lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
		GuideStrong: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		CurrentTime: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),

		Dialog:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(1, 2),
		DialogTitle: lipgloss.NewStyle().Bold(true).MarginBottom(1),
		FormError:   lipgloss.NewStyle().Foreground(lipgloss.Color("204")),

		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Alert:  lipgloss.NewStyle().Foreground(lipgloss.Color("204")).Bold(true),
	}
}
