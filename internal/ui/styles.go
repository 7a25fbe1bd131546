package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorBrand     = lipgloss.Color("#ef4444") // red-500
	colorBrandDim  = lipgloss.Color("#f87171") // red-400
	colorSecondary = lipgloss.Color("241")
	colorMuted     = lipgloss.Color("240")
	colorHighlight = lipgloss.Color("212")
	colorSpinner   = lipgloss.Color("#3b82f6") // blue-500
)

// HeaderTitle is the "Welcome to" line.
var HeaderTitle = lipgloss.NewStyle().Bold(true)

// Brand renders the product name.
var Brand = lipgloss.NewStyle().Foreground(colorBrand).Bold(true)

// Tagline is the text under the title.
var Tagline = lipgloss.NewStyle().Foreground(colorSecondary)

// Button is the enabled Get Recommendations button.
var Button = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#ffffff")).
	Background(colorBrand).
	Padding(0, 2)

// ButtonDisabled is the button while a search runs.
var ButtonDisabled = Button.
	Background(colorBrandDim).
	Faint(true)

// SectionTitle heads the recommendation and the movie grid.
var SectionTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#ffffff")).
	MarginTop(1)

// RecommendationBox frames the rendered markdown.
var RecommendationBox = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#374151")).
	Padding(0, 1)

// LoadingText is the caption next to the spinner.
var LoadingText = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))

// SpinnerStyle colours the spinner frame.
var SpinnerStyle = lipgloss.NewStyle().Foreground(colorSpinner)

// EmptyStyle is used for placeholder text.
var EmptyStyle = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey style for key hints in status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StatusBarText style for descriptive text in status bar.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// DebugPanel frames the debug overlay.
var DebugPanel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorHighlight).
	Padding(1, 2)

// DebugHeaderStyle heads a debug overlay section.
var DebugHeaderStyle = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)
