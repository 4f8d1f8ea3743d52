package services

import "shoe-shop/models"

const (
	DefaultRowCapacity = 4
	DefaultRowHeight   = 400
	DefaultOverscan    = 2
)

// Virtualizer computes which fixed-height product rows intersect a scroll
// viewport. Only those rows are materialized; everything else is represented
// by the total height so scrollbar geometry stays correct.
type Virtualizer struct {
	RowCapacity int
	RowHeight   int
	Overscan    int
}

func NewVirtualizer() Virtualizer {
	return Virtualizer{
		RowCapacity: DefaultRowCapacity,
		RowHeight:   DefaultRowHeight,
		Overscan:    DefaultOverscan,
	}
}

// VirtualRow is one materialized row with its vertical placement.
type VirtualRow struct {
	Index  int `json:"index"`
	Start  int `json:"start"`
	Height int `json:"height"`
}

// TotalRows is ceil(itemCount / RowCapacity).
func (v Virtualizer) TotalRows(itemCount int) int {
	if itemCount <= 0 {
		return 0
	}
	return (itemCount + v.RowCapacity - 1) / v.RowCapacity
}

// TotalHeight is the full-height spacer contribution of all rows.
func (v Virtualizer) TotalHeight(itemCount int) int {
	return v.TotalRows(itemCount) * v.RowHeight
}

// VisibleRows returns the contiguous rows whose estimated span intersects
// [scrollOffset, scrollOffset+viewportHeight), expanded by the overscan
// margin on each side and clamped to the valid range.
func (v Virtualizer) VisibleRows(itemCount, scrollOffset, viewportHeight int) []VirtualRow {
	totalRows := v.TotalRows(itemCount)
	if totalRows == 0 || viewportHeight <= 0 {
		return []VirtualRow{}
	}

	if scrollOffset < 0 {
		scrollOffset = 0
	}

	first := scrollOffset/v.RowHeight - v.Overscan
	last := (scrollOffset+viewportHeight-1)/v.RowHeight + v.Overscan

	if first < 0 {
		first = 0
	}
	if last > totalRows-1 {
		last = totalRows - 1
	}
	if first > last {
		first = last
	}

	rows := make([]VirtualRow, 0, last-first+1)
	for i := first; i <= last; i++ {
		rows = append(rows, VirtualRow{
			Index:  i,
			Start:  i * v.RowHeight,
			Height: v.RowHeight,
		})
	}
	return rows
}

// RowItems maps row r to items[r*capacity .. r*capacity+capacity). The last
// row may hold fewer items.
func (v Virtualizer) RowItems(products []models.Product, rowIndex int) []models.Product {
	start := rowIndex * v.RowCapacity
	if start < 0 || start >= len(products) {
		return []models.Product{}
	}
	end := start + v.RowCapacity
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}
