package grid

import (
	"errors"
	"fmt"
)

// ErrInvalidViewport is returned for negative scroll offsets, widths or
// overscan counts.
var ErrInvalidViewport = errors.New("invalid viewport")

// ColumnMetrics is the measured column layout of a grid. Frozen columns
// form a strip pinned at the left edge; the remaining columns form the
// scrollable strip.
type ColumnMetrics struct {
	Columns         []Column
	TotalWidth      int
	FrozenWidth     int
	ScrollableWidth int

	scrollable []int
	frozen     []int
}

// NewColumnMetrics copies columns, assigns their indices and offsets and
// widens any column narrower than minWidth.
func NewColumnMetrics(columns []Column, minWidth int) ColumnMetrics {
	if minWidth < 1 {
		minWidth = 1
	}
	m := ColumnMetrics{Columns: make([]Column, len(columns))}
	for i, c := range columns {
		c.Idx = i
		if c.Width < minWidth {
			c.Width = minWidth
		}
		if c.Frozen {
			c.Left = m.FrozenWidth
			m.FrozenWidth += c.Width
			m.frozen = append(m.frozen, i)
		} else {
			c.Left = m.ScrollableWidth
			m.ScrollableWidth += c.Width
			m.scrollable = append(m.scrollable, i)
		}
		m.Columns[i] = c
	}
	m.TotalWidth = m.FrozenWidth + m.ScrollableWidth
	return m
}

// LastFrozenIdx returns the index of the last frozen column, or -1.
func (m ColumnMetrics) LastFrozenIdx() int {
	if len(m.frozen) == 0 {
		return -1
	}
	return m.frozen[len(m.frozen)-1]
}

// DisplayOrder returns column indices in the order they appear on screen:
// the frozen strip first, then the scrollable strip.
func (m ColumnMetrics) DisplayOrder() []int {
	order := make([]int, 0, len(m.Columns))
	order = append(order, m.frozen...)
	return append(order, m.scrollable...)
}

// ScrollableViewport is the width left for scrollable columns once the
// frozen strip has been drawn. It never drops below one cell.
func (m ColumnMetrics) ScrollableViewport(viewportWidth int) int {
	avail := viewportWidth - m.FrozenWidth
	if avail < 1 {
		avail = 1
	}
	return avail
}

// MaxScrollLeft is the largest useful horizontal offset for viewportWidth.
func (m ColumnMetrics) MaxScrollLeft(viewportWidth int) int {
	limit := m.ScrollableWidth - m.ScrollableViewport(viewportWidth)
	if limit < 0 {
		return 0
	}
	return limit
}

// ScrollLeftFor returns the scroll offset that keeps column idx fully on
// screen given the current offset. Frozen columns never require scrolling.
func (m ColumnMetrics) ScrollLeftFor(idx, scrollLeft, viewportWidth int) int {
	if idx < 0 || idx >= len(m.Columns) || m.Columns[idx].Frozen {
		return scrollLeft
	}
	c := m.Columns[idx]
	avail := m.ScrollableViewport(viewportWidth)
	switch {
	case c.Left < scrollLeft:
		scrollLeft = c.Left
	case c.Left+c.Width > scrollLeft+avail:
		scrollLeft = c.Left + c.Width - avail
		if scrollLeft > c.Left {
			scrollLeft = c.Left
		}
	}
	if limit := m.MaxScrollLeft(viewportWidth); scrollLeft > limit {
		scrollLeft = limit
	}
	return scrollLeft
}

// Window is the column window for one horizontal scroll position.
type Window struct {
	Visible  Range
	Overscan Range
	Empty    bool
}

// HorizontalWindow computes the visible and overscan column ranges for a
// horizontal scroll offset. Overscan extends the visible window by up to
// overscan scrollable columns on each side. When every column is frozen the
// window spans the whole list so the row renderer still emits the frozen set.
func HorizontalWindow(m ColumnMetrics, scrollLeft, viewportWidth, overscan int) (Window, error) {
	if scrollLeft < 0 || viewportWidth < 0 || overscan < 0 {
		return Window{}, fmt.Errorf("%w: scrollLeft=%d width=%d overscan=%d",
			ErrInvalidViewport, scrollLeft, viewportWidth, overscan)
	}
	if len(m.Columns) == 0 {
		return Window{Empty: true}, nil
	}
	s := m.scrollable
	if len(s) == 0 {
		all := Range{Start: 0, End: len(m.Columns) - 1}
		return Window{Visible: all, Overscan: all}, nil
	}

	if limit := m.MaxScrollLeft(viewportWidth); scrollLeft > limit {
		scrollLeft = limit
	}
	avail := m.ScrollableViewport(viewportWidth)

	start := 0
	for start < len(s)-1 {
		c := m.Columns[s[start]]
		if c.Left+c.Width > scrollLeft {
			break
		}
		start++
	}
	end := start
	for end+1 < len(s) && m.Columns[s[end+1]].Left < scrollLeft+avail {
		end++
	}

	osStart := start - overscan
	if osStart < 0 {
		osStart = 0
	}
	osEnd := end + overscan
	if osEnd > len(s)-1 {
		osEnd = len(s) - 1
	}

	return Window{
		Visible:  Range{Start: s[start], End: s[end]},
		Overscan: Range{Start: s[osStart], End: s[osEnd]},
	}, nil
}
