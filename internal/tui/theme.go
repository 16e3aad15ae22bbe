package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/tasktimer/internal/tasks"
)

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette, true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorRosewater lipgloss.Color = "#f5e0dc"
	colorFlamingo  lipgloss.Color = "#f2cdcd"
	colorPink      lipgloss.Color = "#f5c2e7"
	colorMauve     lipgloss.Color = "#cba6f7"
	colorRed       lipgloss.Color = "#f38ba8"
	colorPeach     lipgloss.Color = "#fab387"
	colorYellow    lipgloss.Color = "#f9e2af"
	colorGreen     lipgloss.Color = "#a6e3a1"
	colorTeal      lipgloss.Color = "#94e2d5"
	colorSky       lipgloss.Color = "#89dceb"
	colorSapphire  lipgloss.Color = "#74c7ec"
	colorBlue      lipgloss.Color = "#89b4fa"
	colorLavender  lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorBase     lipgloss.Color = "#1e1e2e"
)

// ---------------------------------------------------------------------------
// Semantic color aliases
// ---------------------------------------------------------------------------

const (
	colorAccent  = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
	colorInfo    = colorTeal
	colorMuted   = colorOverlay1
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	headingStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorFocus)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError)
	successStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
	warningStyle  = lipgloss.NewStyle().Foreground(colorWarning)
	infoStyle     = lipgloss.NewStyle().Foreground(colorInfo)
	selectedStyle = lipgloss.NewStyle().Foreground(colorBase).Background(colorFocus)
	bigTimeStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorText).Padding(0, 2)
	tabStyle      = lipgloss.NewStyle().Foreground(colorSubtext0).Padding(0, 1)
	activeTab     = lipgloss.NewStyle().Bold(true).Foreground(colorBase).Background(colorAccent).Padding(0, 1)
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSurface1).Padding(0, 1)
)

// confettiColors are cycled through when colouring confetti pieces.
func confettiColors() []lipgloss.Color {
	return []lipgloss.Color{
		colorRosewater, colorFlamingo, colorPink, colorMauve,
		colorRed, colorPeach, colorYellow, colorGreen,
		colorTeal, colorSky, colorSapphire, colorBlue,
	}
}

func priorityColor(p tasks.Priority) lipgloss.Color {
	switch p.Info().Value {
	case tasks.PriorityHigh:
		return colorRed
	case tasks.PriorityLow:
		return colorGreen
	default:
		return colorYellow
	}
}

func categoryColor(c tasks.Category) lipgloss.Color {
	switch c.Info().Value {
	case tasks.CategoryWork:
		return colorBlue
	case tasks.CategoryShopping:
		return colorPeach
	case tasks.CategoryHealth:
		return colorGreen
	case tasks.CategoryEducation:
		return colorMauve
	default:
		return colorPink
	}
}
