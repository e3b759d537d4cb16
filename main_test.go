package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noelruault/lazygrid/internal/config"
	"github.com/noelruault/lazygrid/internal/grid"
	"github.com/noelruault/lazygrid/internal/source"
)

func testDataset(cols, rows int) *source.Dataset {
	ds := &source.Dataset{Name: "metrics.csv"}
	for i := 0; i < cols; i++ {
		ds.Columns = append(ds.Columns, grid.Column{
			Key: fmt.Sprintf("c%d", i), Name: fmt.Sprintf("H%d", i), Width: 8, Frozen: i == 0,
		})
	}
	for r := 0; r < rows; r++ {
		row := grid.Row{}
		for i := 0; i < cols; i++ {
			row[fmt.Sprintf("c%d", i)] = fmt.Sprintf("v%d.%d", r, i)
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds
}

func loadedModel(t *testing.T) model {
	t.Helper()
	m := initialModel(config.Default(), "metrics.csv", source.Options{}, nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	next, _ = next.Update(datasetLoadedMsg{dataset: testDataset(20, 50)})
	return next.(model)
}

func press(t *testing.T, m model, keys ...tea.KeyMsg) (model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	var next tea.Model = m
	for _, k := range keys {
		next, cmd = next.Update(k)
	}
	return next.(model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelLoading(t *testing.T) {
	m := initialModel(config.Default(), "metrics.csv", source.Options{}, nil)
	assert.Contains(t, m.View(), "Loading metrics.csv")

	next, _ := m.Update(datasetLoadedMsg{err: errors.New("boom")})
	assert.Contains(t, next.View(), "Error: boom")

	m = loadedModel(t)
	assert.False(t, m.loading)
	require.NotNil(t, m.table)
	assert.Equal(t, "Loaded 50 rows, 20 columns", m.statusMessage)

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "metrics.csv[50]")
	assert.True(t, strings.Contains(view, "H0      H1"), view)
}

func TestModelHorizontalScroll(t *testing.T) {
	m := loadedModel(t)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	require.NotNil(t, cmd)
	assert.True(t, m.table.Scrolling)
	assert.Equal(t, 1, m.table.SelectedCol)

	m, _ = press(t, m, runes("l"), runes("l"))
	assert.Equal(t, 3, m.table.SelectedCol)
	assert.Equal(t, 3, m.scrollSeq)

	// a stale tick does not clear the flag
	next, _ := m.Update(scrollSettledMsg{seq: 1})
	m = next.(model)
	assert.True(t, m.table.Scrolling)

	next, _ = m.Update(scrollSettledMsg{seq: 3})
	m = next.(model)
	assert.False(t, m.table.Scrolling)

	m, _ = press(t, m, runes("$"))
	assert.Equal(t, 19, m.table.SelectedCol)
	assert.Greater(t, m.table.ScrollLeft, 0)
	assert.Contains(t, ansi.Strip(m.View()), "H0      ")
}

func TestModelVerticalAndFreeze(t *testing.T) {
	m := loadedModel(t)
	m, _ = press(t, m, runes("j"), runes("j"), runes("k"))
	assert.Equal(t, 1, m.table.SelectedRow)

	m, _ = press(t, m, runes("G"))
	assert.Equal(t, 49, m.table.SelectedRow)
	m, _ = press(t, m, runes("g"))
	assert.Equal(t, 0, m.table.SelectedRow)

	m, _ = press(t, m, runes("l"), runes("l"), runes("f"))
	c, ok := m.table.SelectedColumn()
	require.True(t, ok)
	assert.True(t, c.Frozen)
	assert.Equal(t, "Column H2 frozen", m.statusMessage)
	assert.Equal(t, []int{0, 2}, []int{m.table.Metrics.DisplayOrder()[0], m.table.Metrics.DisplayOrder()[1]})
}

func TestModelOpen(t *testing.T) {
	m := loadedModel(t)
	m.table.Rows[0]["c0"] = "https://example.com/report"

	var opened string
	m.opener = func(v string) error {
		opened = v
		return nil
	}

	m, cmd := press(t, m, runes("o"))
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	assert.Equal(t, "https://example.com/report", opened)
	assert.Equal(t, "Opened https://example.com/report", next.(model).statusMessage)

	m, _ = press(t, m, runes("j"), runes("o"))
	assert.Equal(t, "Nothing to open", m.statusMessage)
}

func TestModelQuitAndHelp(t *testing.T) {
	m := loadedModel(t)
	h := m.table.Height

	m, _ = press(t, m, runes("?"))
	assert.True(t, m.help.ShowAll)
	assert.Less(t, m.table.Height, h)

	_, cmd := press(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestStatusLineWideHeader(t *testing.T) {
	m := loadedModel(t)
	m.statusMessage = ""
	m.table.Metrics.Columns[0].Name = "日本語"
	m.table.Rows[0]["c0"] = strings.Repeat("x", 80)

	status := ansi.Strip(m.renderStatus())
	assert.Equal(t, 60, ansi.StringWidth(status))
	assert.True(t, strings.HasPrefix(status, "日本語: xxx"))
	assert.True(t, strings.HasSuffix(status, "..."))
}

func TestIsOpenable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	assert.True(t, isOpenable("https://example.com"))
	assert.True(t, isOpenable(path))
	assert.False(t, isOpenable(""))
	assert.False(t, isOpenable("just text"))
}

func TestLoadConfigFlags(t *testing.T) {
	t.Setenv("LAZYGRID_OVERSCAN", "5")
	cfgPath := filepath.Join(t.TempDir(), "config.json")

	fv := &flagValues{}
	cmd := newRootCmd(fv)
	require.NoError(t, cmd.ParseFlags([]string{"--config", cfgPath, "--frozen", "2", "-n", "100"}))

	cfg, err := loadConfig(cmd, fv)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Overscan)
	assert.Equal(t, 2, cfg.Frozen)
	assert.Equal(t, 100, cfg.Limit)

	fv = &flagValues{}
	cmd = newRootCmd(fv)
	require.NoError(t, cmd.ParseFlags([]string{"--config", cfgPath, "--overscan=-1"}))
	_, err = loadConfig(cmd, fv)
	assert.ErrorContains(t, err, "invalid configuration")
}
