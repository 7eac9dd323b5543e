package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTheme(t *testing.T, name string, force, disable bool) {
	t.Helper()
	prevTheme, prevForce, prevDisable := current, forceColor, disableColor
	t.Cleanup(func() {
		current, forceColor, disableColor = prevTheme, prevForce, prevDisable
	})
	SetColorForcing(force, disable)
	SetTheme(name)
}

func TestC(t *testing.T) {
	t.Run("disabled returns plain text", func(t *testing.T) {
		withTheme(t, "classic", true, true)
		assert.Equal(t, "hi", C(fgRed, "hi"))
	})
	t.Run("forced wraps with reset", func(t *testing.T) {
		withTheme(t, "classic", true, false)
		assert.Equal(t, fgRed+"hi"+reset, C(fgRed, "hi"))
	})
	t.Run("empty color is plain", func(t *testing.T) {
		withTheme(t, "classic", true, false)
		assert.Equal(t, "hi", C("", "hi"))
	})
}

func TestOKAndFail(t *testing.T) {
	withTheme(t, "classic", false, true)
	var buf bytes.Buffer
	OK(&buf, "added")
	Fail(&buf, "save: disk full")
	assert.Equal(t, "✔ added\n✖ save: disk full\n", buf.String())
}

func TestWarn(t *testing.T) {
	withTheme(t, "classic", false, true)
	var buf bytes.Buffer
	Warn(&buf, "stored tasks were unreadable")
	assert.Equal(t, "! stored tasks were unreadable\n", buf.String())
}

func TestColorOffWhenStdoutIsNotATerminal(t *testing.T) {
	withTheme(t, "classic", false, false)
	if isTTY() {
		t.Skip("stdout is a terminal")
	}
	assert.False(t, ColorEnabled())
}

func TestMonoThemeDisablesColor(t *testing.T) {
	withTheme(t, "mono", true, false)
	assert.False(t, ColorEnabled())
	assert.Equal(t, "[x]", Current().BoxChecked)
}

func TestUnknownThemeIsClassic(t *testing.T) {
	withTheme(t, "sparkly", false, true)
	assert.Equal(t, "classic", Current().Name)
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "██████████ 100%", ProgressBar(2, 2, 10))
	assert.Equal(t, "█████░░░░░  50%", ProgressBar(1, 2, 10))
	assert.Equal(t, "░░░░░   0%", ProgressBar(0, 0, 1), "empty list and tiny width")
}

func TestPanel(t *testing.T) {
	withTheme(t, "mono", false, true)
	var buf bytes.Buffer
	Panel(&buf, []string{"Todos", "1. [x] done"})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "+-------------+", lines[0])
	assert.Equal(t, "| Todos       |", lines[1])
	assert.Equal(t, "| 1. [x] done |", lines[2])
	assert.Equal(t, "+-------------+", lines[3])
}

func TestVisibleWidthIgnoresANSI(t *testing.T) {
	assert.Equal(t, 4, VisibleWidth("\033[31mtodo\033[0m"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
}
