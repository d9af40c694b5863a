// Package tui provides the Terminal User Interface for the chrono application.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/chrono/internal/service"
	"github.com/xolan/chrono/internal/tui/ui"
	"github.com/xolan/chrono/internal/tui/views"
)

// TickInterval is how often the screen is redrawn so running stopwatches advance
const TickInterval = 100 * time.Millisecond

// View identifies a screen
type View int

const (
	ViewStopwatches View = iota
	ViewSettings
)

// Model is the root TUI model
type Model struct {
	services *service.Services

	activeView View
	width      int
	height     int
	showHelp   bool

	stopwatchesView views.StopwatchesModel
	settingsView    views.SettingsModel

	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
}

// tickMsg triggers a redraw; elapsed times are read from the clock on render
type tickMsg time.Time

// New creates a new TUI model. The session is not loaded; see Run.
func New(services *service.Services) Model {
	themeProvider := ui.NewThemeProvider(services.Config.Get().Theme)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	return Model{
		services:        services,
		activeView:      ViewStopwatches,
		themeProvider:   themeProvider,
		styles:          styles,
		keys:            keys,
		stopwatchesView: views.NewStopwatchesModel(services, styles, keys),
		settingsView:    views.NewSettingsModel(services, themeProvider, styles, keys),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		inputMode := m.isInputMode()

		switch {
		case msg.Type == tea.KeyCtrlC:
			return m.quit()

		case key.Matches(msg, m.keys.Quit) && !inputMode:
			return m.quit()

		case key.Matches(msg, m.keys.Help) && !inputMode:
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.Back) && m.showHelp:
			m.showHelp = false
			return m, nil

		case key.Matches(msg, m.keys.Theme) && !inputMode:
			return m.nextTheme()

		case key.Matches(msg, m.keys.Settings) && !inputMode:
			if m.activeView == ViewSettings {
				m.activeView = ViewStopwatches
			} else {
				m.activeView = ViewSettings
			}
			return m, nil

		case key.Matches(msg, m.keys.Back) && m.activeView == ViewSettings:
			m.activeView = ViewStopwatches
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		contentHeight := m.height - 2 // status bar
		m.stopwatchesView.SetSize(m.width, contentHeight)
		m.settingsView.SetSize(m.width, contentHeight)
		return m, nil

	case tickMsg:
		return m, tick()

	case ui.NextThemeMsg:
		return m.nextTheme()
	}

	switch m.activeView {
	case ViewStopwatches:
		m.stopwatchesView, cmd = m.stopwatchesView.Update(msg)
	case ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	}
	return m, cmd
}

// quit saves the session and exits. A failed save is logged by the
// session service and does not keep the program open.
func (m Model) quit() (tea.Model, tea.Cmd) {
	_ = m.services.Session.Save()
	return m, tea.Quit
}

// nextTheme switches to the next bubbletint theme and stores it in the config file
func (m Model) nextTheme() (tea.Model, tea.Cmd) {
	name := m.themeProvider.NextTheme()
	m.styles = m.themeProvider.Styles()

	changed := ui.ThemeChangedMsg{ThemeName: name, Styles: m.styles}
	m.stopwatchesView, _ = m.stopwatchesView.Update(changed)
	m.settingsView, _ = m.settingsView.Update(changed)

	cfg := m.services.Config.Get()
	cfg.Theme = name
	if err := m.services.UpdateConfig(cfg); err != nil {
		m.stopwatchesView.SetStatus(fmt.Sprintf("Could not save theme: %v", err), true)
		return m, nil
	}
	m.stopwatchesView.SetStatus("Theme: "+m.themeProvider.CurrentDisplayName(), false)
	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.styles.App.Render(m.renderHelp())
	}

	var b strings.Builder
	switch m.activeView {
	case ViewStopwatches:
		b.WriteString(m.stopwatchesView.View())
	case ViewSettings:
		b.WriteString(m.settingsView.View())
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderStatusBar())

	return m.styles.App.Render(b.String())
}

// renderStatusBar renders the key hints at the bottom
func (m Model) renderStatusBar() string {
	var parts []string

	switch {
	case m.stopwatchesView.IsConfirming():
		parts = append(parts, m.renderKeyHelp("y", "confirm"))
		parts = append(parts, m.renderKeyHelp("n", "cancel"))
	case m.isInputMode():
		parts = append(parts, m.renderKeyHelp("Enter", "save"))
		parts = append(parts, m.renderKeyHelp("Esc", "cancel"))
	case m.activeView == ViewSettings:
		parts = append(parts, m.renderKeyHelp("↑/↓", "move"))
		parts = append(parts, m.renderKeyHelp("Enter", "change"))
		parts = append(parts, m.renderKeyHelp("Esc", "back"))
		parts = append(parts, m.renderKeyHelp("q", "quit"))
	default:
		parts = append(parts, m.renderKeyHelp("space", "start/stop"))
		parts = append(parts, m.renderKeyHelp("a", "add"))
		parts = append(parts, m.renderKeyHelp("d", "delete"))
		parts = append(parts, m.renderKeyHelp("r", "reset"))
		parts = append(parts, m.renderKeyHelp("n", "rename"))
		parts = append(parts, m.renderKeyHelp("s", "settings"))
		parts = append(parts, m.renderKeyHelp("?", "help"))
		parts = append(parts, m.renderKeyHelp("q", "quit"))
	}

	content := strings.Join(parts, "  ")
	padding := m.width - lipgloss.Width(content) - 4
	if padding > 0 {
		content += strings.Repeat(" ", padding)
	}
	return m.styles.StatusBar.Render(content)
}

func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

func (m Model) renderHelp() string {
	var help strings.Builder

	help.WriteString(m.styles.DialogTitle.Render("Keyboard Shortcuts"))
	help.WriteString("\n")
	help.WriteString("  ↑/k ↓/j    Select previous/next\n")
	help.WriteString("  space      Start or stop selected\n")
	help.WriteString("  a          Add stopwatch\n")
	help.WriteString("  d          Delete selected\n")
	help.WriteString("  r          Reset selected\n")
	help.WriteString("  n/c        Rename selected\n")
	help.WriteString("  S / L      Save / reload session\n")
	help.WriteString("  t          Next theme\n")
	help.WriteString("  s          Settings\n")
	help.WriteString("  q          Save and quit\n")
	help.WriteString("\n")
	help.WriteString(m.styles.Subtitle.Render("Press ? to close"))

	return m.styles.Dialog.Render(help.String())
}

// isInputMode reports whether a dialog is capturing keys
func (m Model) isInputMode() bool {
	return m.activeView == ViewStopwatches && m.stopwatchesView.IsInputMode()
}

// Run loads the session and starts the TUI application
func Run(services *service.Services) error {
	model := New(services)
	res, err := services.Session.Load()
	model.stopwatchesView.SetStatus(views.LoadStatus(services.Session, res, err))

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
