package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/chrono/internal/service"
	"github.com/xolan/chrono/internal/tui/ui"
)

// settingsItem is an editable row of the settings view
type settingsItem int

const (
	settingTheme settingsItem = iota
	settingStopAllOnStart
	settingConfirmActions
	settingCount
)

// SettingsModel is the model for the settings view
type SettingsModel struct {
	services      *service.Services
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap

	width  int
	height int
	cursor settingsItem

	status    string
	statusErr bool
}

// NewSettingsModel creates a new settings view model
func NewSettingsModel(services *service.Services, themeProvider *ui.ThemeProvider, styles ui.Styles, keys ui.KeyMap) SettingsModel {
	return SettingsModel{
		services:      services,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
	}
}

// Update implements tea.Model
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < settingCount-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select), key.Matches(msg, m.keys.Toggle):
			return m.activate()
		}

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
	}
	return m, nil
}

// activate changes the setting under the cursor and writes the config file
func (m SettingsModel) activate() (SettingsModel, tea.Cmd) {
	cfg := m.services.Config.Get()

	switch m.cursor {
	case settingTheme:
		return m, func() tea.Msg { return ui.NextThemeMsg{} }
	case settingStopAllOnStart:
		cfg.StopAllOnStart = !cfg.StopAllOnStart
	case settingConfirmActions:
		cfg.ConfirmActions = !cfg.ConfirmActions
	}

	if err := m.services.UpdateConfig(cfg); err != nil {
		m.status = fmt.Sprintf("Could not save settings: %v", err)
		m.statusErr = true
		return m, nil
	}
	m.status = "Saved to " + m.services.Config.GetPath()
	m.statusErr = false
	return m, nil
}

// View implements tea.Model
func (m SettingsModel) View() string {
	cfg := m.services.Config.Get()

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	m.renderRow(&b, settingTheme, "Theme", m.themeProvider.CurrentDisplayName())
	m.renderRow(&b, settingStopAllOnStart, "Stop all on start", onOff(cfg.StopAllOnStart))
	m.renderRow(&b, settingConfirmActions, "Confirm actions", onOff(cfg.ConfirmActions))
	b.WriteString("\n")

	m.renderInfo(&b, "Initial stopwatches", fmt.Sprintf("%d", cfg.InitialStopwatches))
	m.renderInfo(&b, "Log level", cfg.LogLevel)
	m.renderInfo(&b, "Config file", m.services.Config.GetPath())
	m.renderInfo(&b, "Session file", m.services.Session.GetPath())

	if m.status != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(m.styles.Error.Render(m.status))
		} else {
			b.WriteString(m.styles.Success.Render(m.status))
		}
	}
	return b.String()
}

func (m SettingsModel) renderRow(b *strings.Builder, item settingsItem, label, value string) {
	cursor := "  "
	if item == m.cursor {
		cursor = m.styles.StatusKey.Render("> ")
	}
	b.WriteString(cursor)
	b.WriteString(m.styles.Label.Render(label))
	b.WriteString(m.styles.Value.Render(value))
	b.WriteString("\n")
}

func (m SettingsModel) renderInfo(b *strings.Builder, label, value string) {
	b.WriteString("  ")
	b.WriteString(m.styles.Label.Render(label))
	b.WriteString(m.styles.Subtitle.Render(value))
	b.WriteString("\n")
}

// SetSize sets the view dimensions
func (m *SettingsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
