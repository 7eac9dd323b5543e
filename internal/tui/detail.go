package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/idilsaglam/simpletodo/internal/store"
)

// openDetail switches to the edit screen for id. A task that vanished
// shows "task not found" instead of falling back to another task.
func (m Model) openDetail(id string) (tea.Model, tea.Cmd) {
	m.screen = screenDetail
	m.detailID = id
	m.editFocus = focusTitle
	m.clearNotice()
	m.title.Blur()
	m.desc.Blur()

	_, task, err := m.store.Find(id)
	if err != nil {
		m.detailFound = false
		m.setNotice("task not found", true)
		m.log.Warn("detail for missing task", zap.String("id", id))
		return m, nil
	}
	m.detailFound = true
	m.orig = task
	m.editTitle.SetValue(task.Title)
	m.editDesc.SetValue(task.Description)
	m.shownTitle = m.editTitle.Value()
	m.shownDesc = m.editDesc.Value()
	m.editTitle.CursorEnd()
	m.editDesc.Blur()
	return m, m.editTitle.Focus()
}

// closeDetail returns to the list with the list focused.
func (m Model) closeDetail() (tea.Model, tea.Cmd) {
	m.screen = screenList
	m.detailID = ""
	m.editTitle.Blur()
	m.editDesc.Blur()
	m.refresh()
	return m.setFocus(focusList)
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.clearNotice()
		return m.closeDetail()
	}
	if !m.detailFound {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.NextFld), key.Matches(msg, m.keys.PrevFld):
		if m.editFocus == focusTitle {
			m.editFocus = focusDesc
			m.editTitle.Blur()
			return m, m.editDesc.Focus()
		}
		m.editFocus = focusTitle
		m.editDesc.Blur()
		return m, m.editTitle.Focus()
	case key.Matches(msg, m.keys.Save):
		return m.saveDetail()
	}
	return m.forward(msg)
}

// saveDetail writes the edited fields back and returns to the list.
// Nothing is written when neither field changed.
func (m Model) saveDetail() (tea.Model, tea.Cmd) {
	title, desc := m.editTitle.Value(), m.editDesc.Value()
	if title == m.shownTitle && desc == m.shownDesc {
		if _, _, err := m.store.Find(m.detailID); err != nil {
			m.detailFound = false
			m.setNotice("task not found", true)
			return m, nil
		}
		m.clearNotice()
		return m.closeDetail()
	}
	if title == m.shownTitle {
		title = m.orig.Title
	}
	if desc == m.shownDesc {
		desc = m.orig.Description
	}
	_, err := m.store.UpdateByID(m.ctx, m.detailID, title, desc)
	switch {
	case errors.Is(err, store.ErrEmptyTitle):
		m.setNotice("title cannot be empty", true)
		return m, nil
	case errors.Is(err, store.ErrTaskNotFound):
		m.detailFound = false
		m.setNotice("task not found", true)
		return m, nil
	case err != nil:
		// ErrPersist: the edit is applied in memory; report and go back.
		m.setNotice("save failed: "+err.Error(), true)
	default:
		m.clearNotice()
	}
	return m.closeDetail()
}

func (m Model) detailView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Edit task") + "\n\n")
	if !m.detailFound {
		b.WriteString(m.noticeView() + "\n\n")
		b.WriteString(m.help.View(helpKeys{m.keys.Back}))
		return b.String()
	}
	b.WriteString(fieldLabel("Title", m.editFocus == focusTitle) + "\n" + m.editTitle.View() + "\n")
	b.WriteString(fieldLabel("Description", m.editFocus == focusDesc) + "\n" + m.editDesc.View() + "\n\n")
	b.WriteString(m.noticeView() + "\n")
	b.WriteString(m.help.View(helpKeys{m.keys.Save, m.keys.NextFld, m.keys.Back}))
	return b.String()
}
