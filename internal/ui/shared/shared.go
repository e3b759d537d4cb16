package shared

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Viewport holds scrolling state for list-like views.
type Viewport struct {
	Offset int
	Height int
}

// EnsureVisible adjusts the viewport offset to keep the selected item visible.
func EnsureVisible(selectedIndex, listLength int, vp *Viewport) {
	if vp == nil {
		return
	}
	if listLength == 0 || vp.Height <= 0 {
		vp.Offset = 0
		return
	}
	if selectedIndex < vp.Offset {
		vp.Offset = selectedIndex
	} else if selectedIndex >= vp.Offset+vp.Height {
		vp.Offset = selectedIndex - vp.Height + 1
	}
	maxOffset := listLength - vp.Height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if vp.Offset > maxOffset {
		vp.Offset = maxOffset
	}
	if vp.Offset < 0 {
		vp.Offset = 0
	}
}

// GetVisibleRange returns start and end (exclusive) indices for the current viewport.
func GetVisibleRange(listLength int, vp Viewport) (int, int) {
	if listLength == 0 || vp.Height <= 0 {
		return 0, 0
	}
	start := vp.Offset
	end := vp.Offset + vp.Height
	if end > listLength {
		end = listLength
	}
	return start, end
}

// lineBreaks keeps a value on a single terminal line.
var lineBreaks = strings.NewReplacer("\r\n", "↵", "\n", "↵", "\r", "↵", "\t", " ")

// SingleLine replaces line breaks with ↵ and tabs with a space.
func SingleLine(s string) string {
	return lineBreaks.Replace(s)
}

// Truncate shortens a string to the given display width with ellipsis.
// Line breaks and tabs are flattened first.
func Truncate(s string, max int) string {
	s = SingleLine(s)
	if max <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= max {
		return s
	}
	if max <= 3 {
		return runewidth.Truncate(s, max, "")
	}
	return runewidth.Truncate(s, max, "...")
}

// Fit truncates s and pads it with spaces to exactly width cells.
func Fit(s string, width int) string {
	return runewidth.FillRight(Truncate(s, width), width)
}
