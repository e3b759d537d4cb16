package table

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/noelruault/lazygrid/internal/grid"
	"github.com/noelruault/lazygrid/internal/ui/shared"
)

// Styles used by Render.
type Styles struct {
	Title        lipgloss.Style
	Header       lipgloss.Style
	FrozenHeader lipgloss.Style
	Cell         lipgloss.Style
	Frozen       lipgloss.Style
	SelectedRow  lipgloss.Style
	SelectedCell lipgloss.Style
	Info         lipgloss.Style

	// Classes are the only extra row classes honoured; unknown classes
	// are dropped.
	Classes map[string]lipgloss.Style
}

// DefaultStyles returns the k9s-like palette.
func DefaultStyles() Styles {
	return Styles{
		Title:        lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		Header:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Underline(true),
		FrozenHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")).Underline(true),
		Cell:         lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		Frozen:       lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		SelectedRow:  lipgloss.NewStyle().Background(lipgloss.Color("51")).Foreground(lipgloss.Color("0")),
		SelectedCell: lipgloss.NewStyle().Background(lipgloss.Color("201")).Foreground(lipgloss.Color("0")).Bold(true),
		Info:         lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Classes: map[string]lipgloss.Style{
			"odd": lipgloss.NewStyle().Background(lipgloss.Color("235")),
		},
	}
}

// Render draws the title, header and the rows inside the viewport.
func Render(s *State, st Styles) (string, error) {
	w, err := s.Window()
	if err != nil {
		return "", fmt.Errorf("column window: %w", err)
	}

	var content strings.Builder
	content.WriteString(renderTitle(s, st))
	content.WriteString("\n")

	header := make(grid.Row, len(s.Metrics.Columns))
	for _, c := range s.Metrics.Columns {
		header[c.Key] = c.Name
	}
	line, err := s.renderRow(grid.RowProps{
		Row:          header,
		Idx:          -1,
		Height:       1,
		ExtraClasses: []string{"header"},
	}, w, st)
	if err != nil {
		return "", err
	}
	content.WriteString(line + "\n")

	start, end := s.VisibleRows()
	for i := start; i < end; i++ {
		p := grid.RowProps{
			Row:         s.Rows[i],
			Idx:         i,
			Height:      1,
			Selected:    i == s.SelectedRow,
			IsScrolling: s.Scrolling,
		}
		if i%2 == 1 {
			p.ExtraClasses = append(p.ExtraClasses, "odd")
		}
		line, err := s.renderRow(p, w, st)
		if err != nil {
			return "", err
		}
		content.WriteString(line + "\n")
	}

	content.WriteString(st.Info.Render(scrollInfo(s, w, start, end)))
	return content.String(), nil
}

func renderTitle(s *State, st Styles) string {
	title := fmt.Sprintf("%s[%d]", s.Name, len(s.Rows))
	dashes := (s.Width - ansi.StringWidth(title) - 2) / 2
	if dashes < 1 {
		dashes = 1
	}
	return strings.Repeat("─", dashes) + " " + st.Title.Render(title) + " " + strings.Repeat("─", dashes)
}

func scrollInfo(s *State, w grid.Window, start, end int) string {
	if w.Empty {
		return "[No columns]"
	}
	rows := "Rows 0-0"
	if end > start {
		rows = fmt.Sprintf("Rows %d-%d", start+1, end)
	}
	return fmt.Sprintf("[%s of %d | Cols %d-%d of %d]",
		rows, len(s.Rows), w.Visible.Start+1, w.Visible.End+1, len(s.Metrics.Columns))
}

// renderRow lays out one row: the frozen cells are drawn first, pinned at
// the left edge, then the scrollable cells cut to the remaining width.
func (s *State) renderRow(p grid.RowProps, w grid.Window, st Styles) (string, error) {
	if w.Empty {
		return "", nil
	}
	p.Columns = s.Metrics.Columns
	p.Visible = w.Visible
	p.Overscan = w.Overscan

	cells, err := grid.RenderCells(p)
	if err != nil {
		return "", err
	}

	var pinned, scroll strings.Builder
	scrollStart := -1
	for _, c := range cells {
		text := shared.Fit(c.Value, c.Column.Width-1) + " "
		style := s.cellStyle(p, c, st)
		if c.Column.Frozen {
			pinned.WriteString(style.Render(text))
			continue
		}
		if scrollStart < 0 {
			scrollStart = c.Column.Left
		}
		scroll.WriteString(style.Render(text))
	}

	line := pinned.String()
	if scrollStart >= 0 {
		from := s.ScrollLeft - scrollStart
		if from < 0 {
			from = 0
		}
		line += ansi.Cut(scroll.String(), from, from+s.Metrics.ScrollableViewport(s.Width))
	}
	if s.Width > 0 {
		line = ansi.Truncate(line, s.Width, "")
	}
	return lipgloss.NewStyle().Height(p.Height).Render(line), nil
}

func (s *State) cellStyle(p grid.RowProps, c grid.CellDescriptor, st Styles) lipgloss.Style {
	var style lipgloss.Style
	switch {
	case p.Idx < 0 && c.Column.Frozen:
		style = st.FrozenHeader
	case p.Idx < 0:
		style = st.Header
	case p.Selected && c.Column.Idx == s.SelectedCol:
		style = st.SelectedCell
	case p.Selected:
		style = st.SelectedRow
	case c.Column.Frozen:
		style = st.Frozen
	default:
		style = st.Cell
	}
	for _, class := range p.ExtraClasses {
		if cs, ok := st.Classes[class]; ok {
			style = style.Inherit(cs)
		}
	}
	return style
}
