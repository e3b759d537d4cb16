package table

import (
	"github.com/noelruault/lazygrid/internal/grid"
	"github.com/noelruault/lazygrid/internal/ui/shared"
)

// chrome is the number of lines the table draws around its rows:
// title, header and the scroll indicator.
const chrome = 3

// State contains the table's data and scrolling state.
type State struct {
	Name     string
	Metrics  grid.ColumnMetrics
	Rows     []grid.Row
	Overscan int
	MinWidth int

	SelectedRow int
	SelectedCol int
	ScrollLeft  int
	Scrolling   bool

	Width  int
	Height int

	vp shared.Viewport
}

// NewState builds table state for a dataset.
func NewState(name string, columns []grid.Column, rows []grid.Row, overscan, minWidth int) *State {
	s := &State{
		Name:     name,
		Rows:     rows,
		Overscan: overscan,
		MinWidth: minWidth,
	}
	s.Metrics = grid.NewColumnMetrics(columns, minWidth)
	if order := s.Metrics.DisplayOrder(); len(order) > 0 {
		s.SelectedCol = order[0]
	}
	return s
}

// SetSize sets the area available to the table, in cells and lines.
func (s *State) SetSize(width, height int) {
	s.Width = width
	s.Height = height
	s.vp.Height = height - chrome
	if s.vp.Height < 1 {
		s.vp.Height = 1
	}
	s.clamp()
}

// Window returns the column window for the current scroll position.
func (s *State) Window() (grid.Window, error) {
	return grid.HorizontalWindow(s.Metrics, s.ScrollLeft, s.Width, s.Overscan)
}

// VisibleRows returns the [start, end) range of rows on screen.
func (s *State) VisibleRows() (int, int) {
	return shared.GetVisibleRange(len(s.Rows), s.vp)
}

// MoveDown moves the selection n rows down (negative moves up).
func (s *State) MoveDown(n int) {
	s.SelectedRow += n
	s.clamp()
}

// MoveUp moves the selection n rows up.
func (s *State) MoveUp(n int) {
	s.MoveDown(-n)
}

// PageDown moves one screen of rows down.
func (s *State) PageDown() {
	s.MoveDown(s.vp.Height)
}

// PageUp moves one screen of rows up.
func (s *State) PageUp() {
	s.MoveUp(s.vp.Height)
}

// Top selects the first row.
func (s *State) Top() {
	s.SelectedRow = 0
	s.clamp()
}

// Bottom selects the last row.
func (s *State) Bottom() {
	s.SelectedRow = len(s.Rows) - 1
	s.clamp()
}

// MoveRight selects the next column in display order and scrolls it into view.
func (s *State) MoveRight(n int) {
	order := s.Metrics.DisplayOrder()
	if len(order) == 0 {
		return
	}
	pos := 0
	for i, idx := range order {
		if idx == s.SelectedCol {
			pos = i
			break
		}
	}
	pos += n
	if pos < 0 {
		pos = 0
	}
	if pos >= len(order) {
		pos = len(order) - 1
	}
	s.SelectedCol = order[pos]
	s.ScrollLeft = s.Metrics.ScrollLeftFor(s.SelectedCol, s.ScrollLeft, s.Width)
}

// MoveLeft selects the previous column in display order.
func (s *State) MoveLeft(n int) {
	s.MoveRight(-n)
}

// FirstColumn selects the leftmost column on screen.
func (s *State) FirstColumn() {
	s.MoveRight(-len(s.Metrics.Columns))
}

// LastColumn selects the rightmost column.
func (s *State) LastColumn() {
	s.MoveRight(len(s.Metrics.Columns))
}

// ToggleFreeze pins or unpins the selected column.
func (s *State) ToggleFreeze() {
	if s.SelectedCol < 0 || s.SelectedCol >= len(s.Metrics.Columns) {
		return
	}
	cols := make([]grid.Column, len(s.Metrics.Columns))
	copy(cols, s.Metrics.Columns)
	cols[s.SelectedCol].Frozen = !cols[s.SelectedCol].Frozen
	s.Metrics = grid.NewColumnMetrics(cols, s.MinWidth)
	s.clamp()
	s.ScrollLeft = s.Metrics.ScrollLeftFor(s.SelectedCol, s.ScrollLeft, s.Width)
}

// SelectedColumn returns the selected column.
func (s *State) SelectedColumn() (grid.Column, bool) {
	if s.SelectedCol < 0 || s.SelectedCol >= len(s.Metrics.Columns) {
		return grid.Column{}, false
	}
	return s.Metrics.Columns[s.SelectedCol], true
}

// SelectedValue returns the value under the cursor.
func (s *State) SelectedValue() (string, bool) {
	c, ok := s.SelectedColumn()
	if !ok || s.SelectedRow < 0 || s.SelectedRow >= len(s.Rows) {
		return "", false
	}
	return s.Rows[s.SelectedRow].Value(c.Key), true
}

func (s *State) clamp() {
	if s.SelectedRow >= len(s.Rows) {
		s.SelectedRow = len(s.Rows) - 1
	}
	if s.SelectedRow < 0 {
		s.SelectedRow = 0
	}
	shared.EnsureVisible(s.SelectedRow, len(s.Rows), &s.vp)

	if limit := s.Metrics.MaxScrollLeft(s.Width); s.ScrollLeft > limit {
		s.ScrollLeft = limit
	}
	if s.ScrollLeft < 0 {
		s.ScrollLeft = 0
	}
}
