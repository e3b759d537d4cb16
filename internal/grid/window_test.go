package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewColumnMetrics(t *testing.T) {
	cols := freezeColumns(createColumns(5), 0, 3)
	cols[1].Width = 2
	m := NewColumnMetrics(cols, 4)

	require.Len(t, m.Columns, 5)
	assert.Equal(t, 4, m.Columns[1].Width)
	assert.Equal(t, 20, m.FrozenWidth)
	assert.Equal(t, 24, m.ScrollableWidth)
	assert.Equal(t, 44, m.TotalWidth)

	assert.Equal(t, 0, m.Columns[0].Left)
	assert.Equal(t, 10, m.Columns[3].Left)
	assert.Equal(t, 0, m.Columns[1].Left)
	assert.Equal(t, 4, m.Columns[2].Left)
	assert.Equal(t, 14, m.Columns[4].Left)

	assert.Equal(t, 3, m.LastFrozenIdx())
	assert.Equal(t, []int{0, 3, 1, 2, 4}, m.DisplayOrder())

	// input is not modified
	assert.Equal(t, 2, cols[1].Width)
}

func TestHorizontalWindow(t *testing.T) {
	tests := []struct {
		name         string
		frozen       []int
		scrollLeft   int
		width        int
		overscan     int
		wantVisible  Range
		wantOverscan Range
	}{
		{"start", nil, 0, 35, 1, Range{0, 3}, Range{0, 4}},
		{"scrolled", nil, 15, 35, 1, Range{1, 4}, Range{0, 5}},
		{"no overscan", nil, 15, 35, 0, Range{1, 4}, Range{1, 4}},
		{"clamped to end", nil, 500, 35, 2, Range{6, 9}, Range{4, 9}},
		{"frozen prefix", []int{0, 1}, 0, 45, 1, Range{2, 4}, Range{2, 5}},
		{"frozen prefix scrolled", []int{0, 1}, 20, 45, 1, Range{4, 6}, Range{3, 7}},
		{"frozen in the middle", []int{5}, 30, 40, 1, Range{3, 6}, Range{2, 7}},
		{"viewport narrower than frozen strip", []int{0, 1}, 0, 5, 0, Range{2, 2}, Range{2, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewColumnMetrics(freezeColumns(createColumns(10), tt.frozen...), 1)
			w, err := HorizontalWindow(m, tt.scrollLeft, tt.width, tt.overscan)
			require.NoError(t, err)
			assert.False(t, w.Empty)
			assert.Equal(t, tt.wantVisible, w.Visible)
			assert.Equal(t, tt.wantOverscan, w.Overscan)
			require.NoError(t, w.Overscan.Validate(len(m.Columns)))
		})
	}
}

func TestHorizontalWindowFeedsRenderCells(t *testing.T) {
	cols := freezeColumns(createColumns(columnCount), 0, 1, 2, 3, 4, 5)
	m := NewColumnMetrics(cols, 1)
	w, err := HorizontalWindow(m, 200, 120, 2)
	require.NoError(t, err)

	cells, err := RenderCells(RowProps{Columns: m.Columns, Visible: w.Visible, Overscan: w.Overscan})
	require.NoError(t, err)
	assert.Equal(t, w.Overscan.Len()+6, len(cells))
	assert.Equal(t, m.Columns[:6], columnsOf(cells[len(cells)-6:]))
}

func TestHorizontalWindowDegenerate(t *testing.T) {
	w, err := HorizontalWindow(NewColumnMetrics(nil, 1), 0, 80, 2)
	require.NoError(t, err)
	assert.True(t, w.Empty)

	m := NewColumnMetrics(freezeColumns(createColumns(3), 0, 1, 2), 1)
	w, err = HorizontalWindow(m, 0, 80, 2)
	require.NoError(t, err)
	assert.Equal(t, Range{0, 2}, w.Overscan)

	cells, err := RenderCells(RowProps{Columns: m.Columns, Visible: w.Visible, Overscan: w.Overscan})
	require.NoError(t, err)
	assert.Len(t, cells, 3)

	for _, args := range [][3]int{{-1, 80, 0}, {0, -1, 0}, {0, 80, -2}} {
		_, err := HorizontalWindow(m, args[0], args[1], args[2])
		assert.ErrorIs(t, err, ErrInvalidViewport)
	}
}

func TestScrollLeftFor(t *testing.T) {
	m := NewColumnMetrics(freezeColumns(createColumns(10), 0), 1)
	// frozen strip is 10 wide, 25 cells left for scrolling

	assert.Equal(t, 0, m.ScrollLeftFor(2, 0, 35))
	assert.Equal(t, 5, m.ScrollLeftFor(3, 0, 35))
	assert.Equal(t, 30, m.ScrollLeftFor(4, 60, 35))
	assert.Equal(t, 40, m.ScrollLeftFor(0, 40, 35))
	assert.Equal(t, m.MaxScrollLeft(35), m.ScrollLeftFor(9, 0, 35))
	assert.Equal(t, 65, m.MaxScrollLeft(35))
}
