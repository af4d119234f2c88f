package tui

// Color constants for the pontaj TUI theme
const (
	ColorBorder = "#3A3F55" // Grey-blue

	ColorPrimaryText   = "#E6EAF2" // Primary text (titles, values)
	ColorSecondaryText = "#B1B8C7" // Secondary text - subtle purple-tinted grey
	ColorHelpText      = "240"     // Dark grey for help text

	ColorAccentMain   = "#7C3AED" // Accent elements, active borders
	ColorAccentBright = "#A78BFA" // Highlights, headers

	ColorError   = "#EF4444" // Errors
	ColorSuccess = "#22C55E" // Open sessions, confirmations
	ColorWarning = "#F59E0B" // Stale sessions
)
