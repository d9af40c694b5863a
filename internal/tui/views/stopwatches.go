package views

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/chrono/internal/service"
	"github.com/xolan/chrono/internal/stopwatch"
	"github.com/xolan/chrono/internal/tui/ui"
)

type listMode int

const (
	modeList listMode = iota
	modeConfirm
	modeRename
)

// pendingAction is the destructive action waiting for confirmation
type pendingAction int

const (
	actionNone pendingAction = iota
	actionReset
	actionDelete
)

// StopwatchesModel is the model for the stopwatch list view
type StopwatchesModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width  int
	height int

	mode    listMode
	pending pendingAction
	input   textinput.Model

	status    string
	statusErr bool
}

// NewStopwatchesModel creates a new stopwatch list view model
func NewStopwatchesModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) StopwatchesModel {
	ti := textinput.New()
	ti.Placeholder = "Stopwatch name"
	ti.CharLimit = 64
	ti.Width = 40

	return StopwatchesModel{
		services: services,
		styles:   styles,
		keys:     keys,
		input:    ti,
	}
}

// Update implements tea.Model
func (m StopwatchesModel) Update(msg tea.Msg) (StopwatchesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeConfirm:
			return m.handleConfirm(msg)
		case modeRename:
			return m.handleRename(msg)
		}
		return m.handleList(msg)

	case ui.StatusMsg:
		m.SetStatus(msg.Text, msg.IsErr)
		return m, nil

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	if m.mode == modeRename {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m StopwatchesModel) handleList(msg tea.KeyMsg) (StopwatchesModel, tea.Cmd) {
	session := m.services.Session

	switch {
	case key.Matches(msg, m.keys.Up):
		session.SelectRelative(-1)

	case key.Matches(msg, m.keys.Down):
		session.SelectRelative(1)

	case key.Matches(msg, m.keys.Toggle):
		info, err := session.Toggle()
		switch {
		case err != nil:
			m.SetStatus("No stopwatch selected", true)
		case info.Running:
			m.SetStatus("Started "+info.Name, false)
		default:
			m.SetStatus(fmt.Sprintf("Stopped %s at %s", info.Name, stopwatch.FormatElapsed(info.Elapsed)), false)
		}

	case key.Matches(msg, m.keys.Reset):
		return m.confirmOrRun(actionReset)

	case key.Matches(msg, m.keys.Delete):
		return m.confirmOrRun(actionDelete)

	case key.Matches(msg, m.keys.Add):
		info := session.Add("")
		m.SetStatus("Added "+info.Name, false)

	case key.Matches(msg, m.keys.Rename):
		info, ok := session.Selected()
		if !ok {
			m.SetStatus("No stopwatch selected", true)
			return m, nil
		}
		m.mode = modeRename
		m.input.SetValue(info.Name)
		m.input.CursorEnd()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Save):
		if err := session.Save(); err != nil {
			m.SetStatus(fmt.Sprintf("Could not save session: %v", err), true)
			return m, nil
		}
		m.SetStatus("Session saved", false)

	case key.Matches(msg, m.keys.Load):
		res, err := session.Load()
		m.SetStatus(LoadStatus(session, res, err))
	}

	return m, nil
}

// confirmOrRun asks before a destructive action when confirm_actions is on
func (m StopwatchesModel) confirmOrRun(action pendingAction) (StopwatchesModel, tea.Cmd) {
	if _, ok := m.services.Session.Selected(); !ok {
		m.SetStatus("No stopwatch selected", true)
		return m, nil
	}
	if m.services.Config.Get().ConfirmActions {
		m.mode = modeConfirm
		m.pending = action
		return m, nil
	}
	m.run(action)
	return m, nil
}

func (m StopwatchesModel) handleConfirm(msg tea.KeyMsg) (StopwatchesModel, tea.Cmd) {
	again := (m.pending == actionReset && key.Matches(msg, m.keys.Reset)) ||
		(m.pending == actionDelete && key.Matches(msg, m.keys.Delete))

	switch {
	case key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Select), again:
		action := m.pending
		m.mode = modeList
		m.pending = actionNone
		m.run(action)
	case key.Matches(msg, m.keys.Deny), key.Matches(msg, m.keys.Back):
		m.mode = modeList
		m.pending = actionNone
		m.SetStatus("Cancelled", false)
	}
	return m, nil
}

func (m *StopwatchesModel) run(action pendingAction) {
	session := m.services.Session
	switch action {
	case actionReset:
		info, err := session.Reset()
		if err != nil {
			m.SetStatus("No stopwatch selected", true)
			return
		}
		m.SetStatus("Reset "+info.Name, false)

	case actionDelete:
		info, ok := session.Selected()
		if !ok {
			m.SetStatus("No stopwatch selected", true)
			return
		}
		if _, err := session.Remove(info.ID); err != nil {
			m.SetStatus(err.Error(), true)
			return
		}
		m.SetStatus("Deleted "+info.Name, false)
	}
}

func (m StopwatchesModel) handleRename(msg tea.KeyMsg) (StopwatchesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		m.mode = modeList
		m.input.Blur()
		info, err := m.services.Session.RenameSelected(m.input.Value())
		switch {
		case errors.Is(err, stopwatch.ErrInvalidName):
			m.SetStatus("Name cannot be empty, kept the old name", true)
		case err != nil:
			m.SetStatus(err.Error(), true)
		default:
			m.SetStatus("Renamed to "+info.Name, false)
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		m.mode = modeList
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m StopwatchesModel) View() string {
	var b strings.Builder

	infos := m.services.Session.List()
	b.WriteString(m.styles.Title.Render("Stopwatches"))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("%d %s, %d running",
		len(infos), pluralize("stopwatch", len(infos)), countRunning(infos))))
	b.WriteString("\n\n")

	if len(infos) == 0 {
		b.WriteString(m.styles.Subtitle.Render("No stopwatches. Press 'a' to add one."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderList(infos))
	}

	switch m.mode {
	case modeConfirm:
		b.WriteString("\n")
		b.WriteString(m.renderConfirm())
	case modeRename:
		b.WriteString("\n")
		b.WriteString(m.renderRename())
	}

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

func (m StopwatchesModel) renderList(infos []stopwatch.Info) string {
	nameWidth := 0
	for _, info := range infos {
		if w := lipgloss.Width(info.Name); w > nameWidth {
			nameWidth = w
		}
	}
	indexWidth := len(fmt.Sprintf("[%d]", len(infos)))

	var b strings.Builder
	for _, info := range infos {
		state := m.styles.Stopped.Render("○")
		if info.Running {
			state = m.styles.Running.Render("●")
		}
		index := m.styles.Index.Render(padRight(fmt.Sprintf("[%d]", info.Index+1), indexWidth))
		name := m.styles.Name.Render(padRight(info.Name, nameWidth))
		elapsed := m.styles.Elapsed.Render(stopwatch.FormatElapsed(info.Elapsed))

		line := fmt.Sprintf(" %s %s %s  %s ", index, state, name, elapsed)
		if info.Selected {
			b.WriteString(m.styles.RowSelected.Render(line))
		} else {
			b.WriteString(m.styles.Row.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m StopwatchesModel) renderConfirm() string {
	name := ""
	if info, ok := m.services.Session.Selected(); ok {
		name = info.Name
	}

	var title string
	switch m.pending {
	case actionReset:
		title = fmt.Sprintf("Reset %q to zero?", name)
	case actionDelete:
		title = fmt.Sprintf("Delete %q?", name)
	}

	var b strings.Builder
	b.WriteString(m.styles.DialogTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render("y/Enter to confirm, n/Esc to cancel"))
	return m.styles.Dialog.Render(b.String())
}

func (m StopwatchesModel) renderRename() string {
	var b strings.Builder
	b.WriteString(m.styles.DialogTitle.Render("Rename stopwatch"))
	b.WriteString("\n")
	b.WriteString(m.styles.Input.Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render("Enter to save, Esc to cancel"))
	return m.styles.Dialog.Render(b.String())
}

// SetStatus sets the status line shown below the list
func (m *StopwatchesModel) SetStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// SetSize sets the view dimensions
func (m *StopwatchesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsInputMode returns true when the view is capturing keyboard input
func (m StopwatchesModel) IsInputMode() bool {
	return m.mode != modeList
}

// IsConfirming returns true while a reset or delete waits for confirmation
func (m StopwatchesModel) IsConfirming() bool {
	return m.mode == modeConfirm
}
