package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/skratchdot/open-golang/open"
	"go.uber.org/zap"

	"github.com/noelruault/lazygrid/internal/config"
	"github.com/noelruault/lazygrid/internal/source"
	uiShared "github.com/noelruault/lazygrid/internal/ui/shared"
	uiTable "github.com/noelruault/lazygrid/internal/ui/table"
)

// scrollSettle is how long after the last horizontal move cells stop being
// flagged as scrolling.
const scrollSettle = 150 * time.Millisecond

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Home     key.Binding
	End      key.Binding
	Freeze   key.Binding
	Open     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+b"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+f"), key.WithHelp("pgdn", "page down")),
		Top:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "first row")),
		Bottom:   key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "last row")),
		Home:     key.NewBinding(key.WithKeys("0", "home"), key.WithHelp("0", "first column")),
		End:      key.NewBinding(key.WithKeys("$", "end"), key.WithHelp("$", "last column")),
		Freeze:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "freeze column")),
		Open:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open value")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Freeze, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Left, k.Right, k.Home, k.End},
		{k.Top, k.Bottom, k.Freeze, k.Open},
		{k.Help, k.Quit},
	}
}

type model struct {
	config        *config.Config
	uri           string
	opts          source.Options
	logger        *zap.Logger
	table         *uiTable.State
	styles        uiTable.Styles
	keys          keyMap
	help          help.Model
	width         int
	height        int
	loading       bool
	err           error
	statusMessage string
	scrollSeq     int
	opener        func(string) error
}

type datasetLoadedMsg struct {
	dataset *source.Dataset
	err     error
}

type scrollSettledMsg struct {
	seq int
}

type statusMsg string

func initialModel(cfg *config.Config, uri string, opts source.Options, logger *zap.Logger) model {
	if logger == nil {
		logger = zap.NewNop()
	}
	return model{
		config:  cfg,
		uri:     uri,
		opts:    opts,
		logger:  logger,
		styles:  uiTable.DefaultStyles(),
		keys:    defaultKeyMap(),
		help:    help.New(),
		loading: true,
		opener:  open.Run,
	}
}

func (m model) Init() tea.Cmd {
	return m.loadDataset
}

func (m model) loadDataset() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	ds, err := source.Open(ctx, m.uri, m.opts)
	return datasetLoadedMsg{dataset: ds, err: err}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case datasetLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.logger.Error("load failed", zap.String("uri", m.uri), zap.Error(msg.err))
			return m, nil
		}
		ds := msg.dataset
		m.table = uiTable.NewState(ds.Name, ds.Columns, ds.Rows, m.config.Overscan, m.config.MinWidth)
		m.resize()
		m.statusMessage = fmt.Sprintf("Loaded %d rows, %d columns", len(ds.Rows), len(ds.Columns))
		m.logger.Info("dataset ready", zap.String("name", ds.Name),
			zap.Int("rows", len(ds.Rows)), zap.Int("columns", len(ds.Columns)))
		return m, nil

	case scrollSettledMsg:
		if m.table != nil && msg.seq == m.scrollSeq {
			m.table.Scrolling = false
		}
		return m, nil

	case statusMsg:
		m.statusMessage = string(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil
	}
	if m.table == nil {
		return m, nil
	}

	m.statusMessage = ""
	switch {
	case key.Matches(msg, m.keys.Up):
		m.table.MoveUp(1)
	case key.Matches(msg, m.keys.Down):
		m.table.MoveDown(1)
	case key.Matches(msg, m.keys.PageUp):
		m.table.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.table.PageDown()
	case key.Matches(msg, m.keys.Top):
		m.table.Top()
	case key.Matches(msg, m.keys.Bottom):
		m.table.Bottom()
	case key.Matches(msg, m.keys.Left):
		m.table.MoveLeft(1)
		return m, m.startScroll()
	case key.Matches(msg, m.keys.Right):
		m.table.MoveRight(1)
		return m, m.startScroll()
	case key.Matches(msg, m.keys.Home):
		m.table.FirstColumn()
		return m, m.startScroll()
	case key.Matches(msg, m.keys.End):
		m.table.LastColumn()
		return m, m.startScroll()
	case key.Matches(msg, m.keys.Freeze):
		m.table.ToggleFreeze()
		if c, ok := m.table.SelectedColumn(); ok {
			state := "unfrozen"
			if c.Frozen {
				state = "frozen"
			}
			m.statusMessage = fmt.Sprintf("Column %s %s", c.Name, state)
		}
	case key.Matches(msg, m.keys.Open):
		return m, m.openSelected()
	}
	return m, nil
}

// startScroll flags the table as scrolling and schedules the settle tick.
// Only the tick of the most recent move clears the flag.
func (m *model) startScroll() tea.Cmd {
	m.table.Scrolling = true
	m.scrollSeq++
	seq := m.scrollSeq
	return tea.Tick(scrollSettle, func(time.Time) tea.Msg {
		return scrollSettledMsg{seq: seq}
	})
}

func (m *model) openSelected() tea.Cmd {
	v, ok := m.table.SelectedValue()
	if !ok || !isOpenable(v) {
		m.statusMessage = "Nothing to open"
		return nil
	}
	opener := m.opener
	return func() tea.Msg {
		if err := opener(v); err != nil {
			return statusMsg(fmt.Sprintf("Failed to open %s: %v", v, err))
		}
		return statusMsg("Opened " + v)
	}
}

func isOpenable(v string) bool {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
		return true
	}
	if v == "" {
		return false
	}
	_, err := os.Stat(v)
	return err == nil
}

// resize gives the table everything except the status and help lines.
func (m *model) resize() {
	if m.table == nil {
		return
	}
	height := m.height - 1 - lipgloss.Height(m.help.View(m.keys))
	m.table.SetSize(m.width, height)
}

func (m model) View() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	if m.loading {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Render(fmt.Sprintf("Loading %s...", m.uri))
	}
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n" +
			lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("Press q to quit")
	}

	body, err := uiTable.Render(m.table, m.styles)
	if err != nil {
		body = errorStyle.Render(fmt.Sprintf("Error: %v", err))
	}
	return body + "\n" + m.renderStatus() + "\n" + m.help.View(m.keys)
}

func (m model) renderStatus() string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	if m.statusMessage != "" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Render(m.statusMessage)
	}
	c, ok := m.table.SelectedColumn()
	if !ok {
		return ""
	}
	v, _ := m.table.SelectedValue()
	width := m.width - ansi.StringWidth(c.Name) - 2
	return labelStyle.Render(c.Name+":") + " " + valueStyle.Render(uiShared.Truncate(v, width))
}
