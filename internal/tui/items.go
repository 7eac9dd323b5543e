package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/simpletodo/internal/model"
	"github.com/idilsaglam/simpletodo/internal/ui"
)

// taskItem adapts a Task plus its session-only done flag to list.Item.
type taskItem struct {
	task model.Task
	done bool
}

func (i taskItem) FilterValue() string { return i.task.Title }

// taskDelegate renders a checkbox and title, with the description below.
type taskDelegate struct{}

func (d taskDelegate) Height() int                               { return 2 }
func (d taskDelegate) Spacing() int                              { return 0 }
func (d taskDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(taskItem)
	if !ok {
		return
	}
	theme := ui.Current()
	width := m.Width() - 4
	if width < 10 {
		width = 10
	}

	box := mutedStyle.Render(theme.BoxUnchecked)
	text := ui.Truncate(it.task.Title, width)
	if it.done {
		box = successStyle.Render(theme.BoxChecked)
		text = doneStyle.Render(text)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render(">") + " "
	}
	fmt.Fprintf(w, "%s%s %s\n", prefix, box, text)

	desc := strings.TrimSpace(it.task.Description)
	if desc != "" {
		desc = mutedStyle.Render(ui.Truncate(strings.ReplaceAll(desc, "\n", " "), width))
	}
	fmt.Fprint(w, "    "+desc)
}
