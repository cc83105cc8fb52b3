package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	colorPrimary   = lipgloss.Color("#00BFFF") // Deep sky blue
	colorSecondary = lipgloss.Color("#87CEEB") // Sky blue
	colorDanger    = lipgloss.Color("#FF6B6B") // Red for errors
	colorWarning   = lipgloss.Color("#FFD93D") // Yellow for suspected disease
	colorSuccess   = lipgloss.Color("#6BCF7F") // Green
	colorMuted     = lipgloss.Color("#6C757D") // Gray
	colorBorder    = lipgloss.Color("#4A90E2") // Border blue
	colorCoral     = lipgloss.Color("#FF7F50")

	// Title styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	brandStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCoral).
			Padding(0, 1)

	// Navigation bar
	navLinkStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Padding(0, 1)

	activeNavLinkStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(colorPrimary).
				Padding(0, 1)

	navBarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorBorder).
			MarginBottom(1)

	// Content styles
	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Bold(true)

	focusedLabelStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	// Banners
	errorBannerStyle = lipgloss.NewStyle().
				Foreground(colorDanger).
				Bold(true).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDanger).
				Padding(0, 1)

	successBannerStyle = lipgloss.NewStyle().
				Foreground(colorSuccess).
				Bold(true).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorSuccess).
				Padding(0, 1)

	// Observation status badges
	healthyBadgeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#0B3D1B")).
				Background(colorSuccess).
				Bold(true).
				Padding(0, 1)

	alertBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3D3000")).
			Background(colorWarning).
			Bold(true).
			Padding(0, 1)

	// Coral cards
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			Width(cardWidth)

	cursorCardStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1).
			Width(cardWidth)

	selectedCardStyle = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(colorSuccess).
				Padding(0, 1).
				Width(cardWidth)

	// Buttons
	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorMuted).
			Padding(0, 2)

	activeButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(colorPrimary).
				Bold(true).
				Padding(0, 2)

	// Table
	tableHeaderStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	// Help text style
	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(1, 0)

	// Utility styles
	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true).
				MarginTop(1)

	sectionBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2).
			MarginBottom(1)
)

// statusBadge renders an observation status with the healthy or alert style
func statusBadge(status string, healthy bool) string {
	if healthy {
		return healthyBadgeStyle.Render(status)
	}
	return alertBadgeStyle.Render(status)
}

func errorBanner(msg string) string {
	return errorBannerStyle.Render("✗ " + msg)
}

func successBanner(msg string) string {
	return successBannerStyle.Render("✓ " + msg)
}

func fieldLabel(text string, focused bool) string {
	if focused {
		return focusedLabelStyle.Render("▸ " + text)
	}
	return labelStyle.Render("  " + text)
}

func button(text string, focused bool) string {
	if focused {
		return activeButtonStyle.Render(text)
	}
	return buttonStyle.Render(text)
}
