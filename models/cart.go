package models

import (
	"fmt"
	"math"
)

// CartItem is one cart line. Two lines are the same item only when both
// product id and size match; adding an existing (id, size) pair bumps the
// quantity instead of appending a row.
type CartItem struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Size          string `json:"size"`
	ActualPrice   int    `json:"actualPrice"`
	DiscountPrice int    `json:"discountPrice"`
	Quantity      int    `json:"quantity"`
	Image         string `json:"image"`
}

// Key returns the identity key of the line item.
func (it CartItem) Key() string {
	return ItemKey(it.ID, it.Size)
}

// ItemKey builds the "<id>-<size>" identity key used for merging and for
// staged quantity edits.
func ItemKey(productID int, size string) string {
	return fmt.Sprintf("%d-%s", productID, size)
}

// Cart is the ordered line-item collection. Order is insertion order.
type Cart []CartItem

// FindIndex returns the position of the line with the given identity key,
// or -1 when absent.
func (c Cart) FindIndex(productID int, size string) int {
	for i, it := range c {
		if it.ID == productID && it.Size == size {
			return i
		}
	}
	return -1
}

// Subtotal is the sum of discount price times quantity over all lines,
// recomputed on every call.
func (c Cart) Subtotal() int {
	sum := 0
	for _, it := range c {
		sum += it.DiscountPrice * it.Quantity
	}
	return sum
}

// InstallmentOf3 is the rounded per-installment amount of a 3-part plan.
func (c Cart) InstallmentOf3() int {
	return int(math.Round(float64(c.Subtotal()) / 3))
}
