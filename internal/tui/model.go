// Package tui is the interactive list and detail screens.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/idilsaglam/simpletodo/internal/model"
	"github.com/idilsaglam/simpletodo/internal/store"
	"github.com/idilsaglam/simpletodo/internal/ui"
)

type screen int

const (
	screenList screen = iota
	screenDetail
)

// focus targets on the list screen, in tab order
const (
	focusTitle = iota
	focusDesc
	focusList
	focusCount
)

// chrome is the number of rows the list screen uses outside the list.
const chrome = 13

// Model is the Bubble Tea model for both screens. Tasks are addressed by
// ID; the done map is session state and never reaches the store.
type Model struct {
	ctx   context.Context
	store *store.Store
	log   *zap.Logger
	keys  keyMap
	help  help.Model

	screen screen
	width  int
	height int

	// list screen
	focus     int
	title     textinput.Model
	desc      textinput.Model
	list      list.Model
	done      map[string]bool
	notice    string
	noticeErr bool

	// detail screen
	detailID    string
	detailFound bool
	editFocus   int
	editTitle   textinput.Model
	editDesc    textinput.Model
	// the task as opened and the text the inputs showed for it; a field
	// left untouched saves the original, newlines and all
	orig       model.Task
	shownTitle string
	shownDesc  string
}

// New builds the model over an opened store.
func New(ctx context.Context, st *store.Store, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	m := Model{
		ctx:    ctx,
		store:  st,
		log:    log.With(zap.String("component", "tui")),
		keys:   defaultKeyMap(),
		help:   help.New(),
		done:   make(map[string]bool),
		width:  80,
		height: 24,
	}

	m.title = newInput("What needs doing?")
	m.desc = newInput("Optional details")
	m.editTitle = newInput("")
	m.editDesc = newInput("")
	m.editTitle.CharLimit = 0
	m.editDesc.CharLimit = 0
	m.title.Focus()

	l := list.New(nil, taskDelegate{}, m.width-4, m.height-chrome)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("task", "tasks")
	l.Styles.PaginationStyle = mutedStyle
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	m.list = l
	m.refresh()

	if st.Recovered() {
		m.setNotice(fmt.Sprintf("stored tasks were unreadable; a copy was kept under %q", store.CorruptKey), false)
	}
	return m
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	return ti
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(ctx context.Context, st *store.Store, log *zap.Logger) error {
	p := tea.NewProgram(New(ctx, st, log), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update and View implement Bubble Tea's Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(max(msg.Width-4, 20), max(msg.Height-chrome, 4))
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.screen == screenDetail {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m.forward(msg)
}

// forward passes non-key messages (cursor blink) to the focused input.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.screen == screenDetail {
		if m.editFocus == focusTitle {
			m.editTitle, cmd = m.editTitle.Update(msg)
		} else {
			m.editDesc, cmd = m.editDesc.Update(msg)
		}
		return m, cmd
	}
	switch m.focus {
	case focusTitle:
		m.title, cmd = m.title.Update(msg)
	case focusDesc:
		m.desc, cmd = m.desc.Update(msg)
	default:
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextFld):
		return m.setFocus((m.focus + 1) % focusCount)
	case key.Matches(msg, m.keys.PrevFld):
		return m.setFocus((m.focus + focusCount - 1) % focusCount)
	}

	if m.focus != focusList {
		if key.Matches(msg, m.keys.Add) {
			return m.addTask()
		}
		if msg.Type == tea.KeyEsc {
			return m.setFocus(focusList)
		}
		return m.forward(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		if it, ok := m.selected(); ok {
			m.done[it.task.ID] = !m.done[it.task.ID]
			m.refresh()
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		return m.removeSelected()
	case key.Matches(msg, m.keys.Open):
		if it, ok := m.selected(); ok {
			return m.openDetail(it.task.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.NewTask):
		return m.setFocus(focusTitle)
	}
	return m.forward(msg)
}

func (m Model) setFocus(f int) (tea.Model, tea.Cmd) {
	m.focus = f
	m.title.Blur()
	m.desc.Blur()
	switch f {
	case focusTitle:
		return m, m.title.Focus()
	case focusDesc:
		return m, m.desc.Focus()
	}
	return m, nil
}

// addTask is the Add action. A blank title is a silent no-op.
func (m Model) addTask() (tea.Model, tea.Cmd) {
	task, err := m.store.Add(m.ctx, m.title.Value(), m.desc.Value())
	if errors.Is(err, store.ErrEmptyTitle) {
		return m, nil
	}
	m.title.SetValue("")
	m.desc.SetValue("")
	m.refresh()
	m.list.Select(len(m.list.Items()) - 1)
	if err != nil {
		m.setNotice("save failed: "+err.Error(), true)
		return m.setFocus(focusTitle)
	}
	m.log.Debug("task added", zap.String("id", task.ID))
	m.clearNotice()
	return m.setFocus(focusTitle)
}

func (m Model) removeSelected() (tea.Model, tea.Cmd) {
	it, ok := m.selected()
	if !ok {
		return m, nil
	}
	_, err := m.store.RemoveByID(m.ctx, it.task.ID)
	switch {
	case errors.Is(err, store.ErrTaskNotFound):
		m.setNotice("task not found", true)
		m.refresh()
		return m, nil
	case err != nil:
		m.setNotice("save failed: "+err.Error(), true)
	default:
		m.clearNotice()
	}
	delete(m.done, it.task.ID)
	m.refresh()
	return m, nil
}

func (m Model) selected() (taskItem, bool) {
	if len(m.list.Items()) == 0 {
		return taskItem{}, false
	}
	it, ok := m.list.SelectedItem().(taskItem)
	return it, ok
}

// refresh rebuilds list items from the store snapshot and the done map.
func (m *Model) refresh() {
	tasks := m.store.Tasks()
	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, taskItem{task: t, done: m.done[t.ID]})
	}
	m.list.SetItems(items)
	if n := len(items); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
}

func (m *Model) setNotice(msg string, isErr bool) {
	m.notice, m.noticeErr = msg, isErr
}

func (m *Model) clearNotice() { m.notice, m.noticeErr = "", false }

// stats counts done and pending tasks for the header.
func (m Model) stats() (done, pending int) {
	for _, it := range m.list.Items() {
		if ti, ok := it.(taskItem); ok && ti.done {
			done++
		} else {
			pending++
		}
	}
	return
}

func (m Model) View() string {
	if m.screen == screenDetail {
		return frameStyle.Render(m.detailView())
	}
	return frameStyle.Render(m.listView())
}

func (m Model) listView() string {
	theme := ui.Current()
	dn, pn := m.stats()
	header := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Simple To Do List"),
		successStyle.Render(theme.SymDone), dn,
		pendingStyle.Render(theme.SymPending), pn,
		accentStyle.Render("Total"), dn+pn,
	)

	var b strings.Builder
	b.WriteString(header + "\n")
	b.WriteString(mutedStyle.Render(ui.ProgressBar(dn, dn+pn, 28)) + "\n\n")
	b.WriteString(fieldLabel("Title", m.focus == focusTitle) + "\n" + m.title.View() + "\n")
	b.WriteString(fieldLabel("Description", m.focus == focusDesc) + "\n" + m.desc.View() + "\n\n")

	if len(m.list.Items()) == 0 {
		b.WriteString(mutedStyle.Render("no tasks yet") + "\n")
	} else {
		b.WriteString(m.list.View() + "\n")
	}

	b.WriteString(m.noticeView() + "\n")
	b.WriteString(m.help.View(m.listHelp()))
	return b.String()
}

func (m Model) listHelp() helpKeys {
	if m.focus == focusList {
		return helpKeys{m.keys.Toggle, m.keys.Open, m.keys.Delete, m.keys.NewTask, m.keys.NextFld, m.keys.Quit}
	}
	return helpKeys{m.keys.Add, m.keys.NextFld, m.keys.PrevFld}
}

func (m Model) noticeView() string {
	switch {
	case m.notice == "":
		return ""
	case m.noticeErr:
		return errorStyle.Render("✖ " + m.notice)
	default:
		return warnStyle.Render("! " + m.notice)
	}
}

func fieldLabel(name string, focused bool) string {
	if focused {
		return focusedLabel.Render(name)
	}
	return labelStyle.Render(name)
}

var _ tea.Model = Model{}
