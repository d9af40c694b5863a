package ui

// ThemeChangedMsg is broadcast to all views when the theme changes.
type ThemeChangedMsg struct {
	ThemeName string
	Styles    Styles
}

// StatusMsg sets the one-line status shown under the stopwatch list.
type StatusMsg struct {
	Text  string
	IsErr bool
}

// NextThemeMsg asks the root model to switch to the next theme.
type NextThemeMsg struct{}
