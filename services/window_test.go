package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shoe-shop/models"
)

func gridProducts(n int) []models.Product {
	products := make([]models.Product, n)
	for i := range products {
		products[i] = models.Product{ID: i + 1}
	}
	return products
}

func rowIndexes(rows []VirtualRow) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Index
	}
	return out
}

func TestTotalRowsRoundsUp(t *testing.T) {
	v := NewVirtualizer()

	assert.Equal(t, 0, v.TotalRows(0))
	assert.Equal(t, 1, v.TotalRows(1))
	assert.Equal(t, 1, v.TotalRows(4))
	assert.Equal(t, 2, v.TotalRows(5))
	assert.Equal(t, 5, v.TotalRows(17))
}

func TestTotalHeightCoversAllRows(t *testing.T) {
	v := NewVirtualizer()

	assert.Equal(t, 0, v.TotalHeight(0))
	assert.Equal(t, 2000, v.TotalHeight(17))
}

func TestVisibleRowsAtTop(t *testing.T) {
	v := NewVirtualizer()

	// Viewport covers rows 0-1; overscan extends two rows past each edge.
	rows := v.VisibleRows(40, 0, 800)
	assert.Equal(t, []int{0, 1, 2, 3}, rowIndexes(rows))
	assert.Equal(t, 0, rows[0].Start)
	assert.Equal(t, 400, rows[0].Height)
	assert.Equal(t, 1200, rows[3].Start)
}

func TestVisibleRowsMidScroll(t *testing.T) {
	v := NewVirtualizer()

	rows := v.VisibleRows(40, 1200, 800)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, rowIndexes(rows))
}

func TestVisibleRowsClampedAtEnd(t *testing.T) {
	v := NewVirtualizer()

	// 17 items is 5 rows; a deep scroll cannot reach past the last row.
	rows := v.VisibleRows(17, 10000, 800)
	assert.Equal(t, []int{4}, rowIndexes(rows))
	assert.Equal(t, 1600, rows[0].Start)
}

func TestVisibleRowsNegativeOffsetTreatedAsTop(t *testing.T) {
	v := NewVirtualizer()

	rows := v.VisibleRows(40, -500, 800)
	assert.Equal(t, []int{0, 1, 2, 3}, rowIndexes(rows))
}

func TestVisibleRowsEmptyCases(t *testing.T) {
	v := NewVirtualizer()

	assert.Empty(t, v.VisibleRows(0, 0, 800))
	assert.Empty(t, v.VisibleRows(40, 0, 0))
}

func TestRowItemsSlicesByCapacity(t *testing.T) {
	v := NewVirtualizer()
	products := gridProducts(17)

	first := v.RowItems(products, 0)
	assert.Len(t, first, 4)
	assert.Equal(t, 1, first[0].ID)

	// The final row holds the single leftover item.
	last := v.RowItems(products, 4)
	assert.Len(t, last, 1)
	assert.Equal(t, 17, last[0].ID)

	assert.Empty(t, v.RowItems(products, 5))
	assert.Empty(t, v.RowItems(products, -1))
}
