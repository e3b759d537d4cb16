package grid

import "fmt"

// CellDescriptor is one cell to draw for a row.
type CellDescriptor struct {
	Column Column
	Value  string
	RowIdx int

	// Visible is set for frozen cells and for cells inside the visible
	// range; the rest are overscan.
	Visible   bool
	Scrolling bool
}

// RowProps carries everything needed to render one row. Only Height,
// Selected and ExtraClasses are meant for the row's own styling; the
// window indices are consumed by RenderCells.
type RowProps struct {
	Row          Row
	Idx          int
	Height       int
	Columns      []Column
	Visible      Range
	Overscan     Range
	Selected     bool
	ExtraClasses []string
	IsScrolling  bool
}

// RenderCells returns the cells of a row in draw order: the non-frozen
// columns of the overscan range in index order, followed by every frozen
// column in index order. A frozen column inside the overscan range is
// emitted once, in the frozen tail.
func RenderCells(p RowProps) ([]CellDescriptor, error) {
	if len(p.Columns) == 0 {
		return []CellDescriptor{}, nil
	}
	if err := p.Overscan.Validate(len(p.Columns)); err != nil {
		return nil, fmt.Errorf("row %d overscan: %w", p.Idx, err)
	}

	frozen := FrozenSet(p.Columns)
	cells := make([]CellDescriptor, 0, p.Overscan.Len()+len(frozen))
	cells = p.scrollableCells(cells)
	cells = p.frozenCells(cells, frozen)
	return cells, nil
}

func (p RowProps) scrollableCells(dst []CellDescriptor) []CellDescriptor {
	for idx := p.Overscan.Start; idx <= p.Overscan.End; idx++ {
		c := p.Columns[idx]
		if c.Frozen {
			continue
		}
		dst = append(dst, p.cell(c, p.Visible.Contains(idx)))
	}
	return dst
}

func (p RowProps) frozenCells(dst []CellDescriptor, frozen []Column) []CellDescriptor {
	for _, c := range frozen {
		dst = append(dst, p.cell(c, true))
	}
	return dst
}

func (p RowProps) cell(c Column, visible bool) CellDescriptor {
	return CellDescriptor{
		Column:    c,
		Value:     p.Row.Value(c.Key),
		RowIdx:    p.Idx,
		Visible:   visible,
		Scrolling: p.IsScrolling,
	}
}
