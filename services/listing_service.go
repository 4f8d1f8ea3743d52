package services

import (
	"sort"
	"strconv"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"shoe-shop/models"
)

// PriceRange is a half-open price bracket. A negative Max means the bracket
// has no upper bound.
type PriceRange struct {
	Label string `json:"label"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
}

// PriceRanges are the brackets offered in the filter sidebar.
var PriceRanges = []PriceRange{
	{Label: "3000-5000", Min: 3000, Max: 5000},
	{Label: "5001-8000", Min: 5001, Max: 8000},
	{Label: "8001-12000", Min: 8001, Max: 12000},
	{Label: "Above 12001", Min: 12001, Max: -1},
}

// FilterSelection holds the user's picks per facet. An empty facet applies
// no filter.
type FilterSelection struct {
	PriceRanges []string
	Sizes       []string
	Colors      []string
}

const (
	SortDefault   = "default"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortTitleAsc  = "title-asc"
	SortTitleDesc = "title-desc"
)

// DeriveView filters then sorts without mutating the input collection.
func DeriveView(products []models.Product, sel FilterSelection, sortKey string) []models.Product {
	return SortProducts(FilterProducts(products, sel), sortKey)
}

// FilterProducts keeps products matching every facet, where a facet matches
// when any of its selected values does.
func FilterProducts(products []models.Product, sel FilterSelection) []models.Product {
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if matchesSelection(p, sel) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func matchesSelection(p models.Product, sel FilterSelection) bool {
	priceMatch := true
	if len(sel.PriceRanges) > 0 {
		priceMatch = false
		for _, label := range sel.PriceRanges {
			r, ok := findPriceRange(label)
			if !ok {
				continue
			}
			if p.Price >= r.Min && (r.Max < 0 || p.Price <= r.Max) {
				priceMatch = true
				break
			}
		}
	}

	sizeMatch := true
	if len(sel.Sizes) > 0 {
		sizeMatch = false
		for _, size := range sel.Sizes {
			if p.HasSize(size) {
				sizeMatch = true
				break
			}
		}
	}

	colorMatch := true
	if len(sel.Colors) > 0 {
		// Products with no derived color never match a color filter.
		colorMatch = p.Color != "" && containsString(sel.Colors, p.Color)
	}

	return priceMatch && sizeMatch && colorMatch
}

func findPriceRange(label string) (PriceRange, bool) {
	for _, r := range PriceRanges {
		if r.Label == label {
			return r, true
		}
	}
	return PriceRange{}, false
}

// SortProducts returns a sorted copy. Sorting is stable: ties and the
// default key preserve relative source order.
func SortProducts(products []models.Product, sortKey string) []models.Product {
	sorted := make([]models.Product, len(products))
	copy(sorted, products)

	switch sortKey {
	case SortPriceAsc:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price < sorted[j].Price })
	case SortPriceDesc:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price > sorted[j].Price })
	case SortTitleAsc:
		c := collate.New(language.English)
		sort.SliceStable(sorted, func(i, j int) bool { return c.CompareString(sorted[i].Title, sorted[j].Title) < 0 })
	case SortTitleDesc:
		c := collate.New(language.English)
		sort.SliceStable(sorted, func(i, j int) bool { return c.CompareString(sorted[j].Title, sorted[i].Title) < 0 })
	}

	return sorted
}

// AvailableSizes collects the unique size labels across products, sorted
// numerically for the sidebar.
func AvailableSizes(products []models.Product) []string {
	seen := make(map[string]bool)
	sizes := []string{}
	for _, p := range products {
		for _, s := range p.Sizes {
			if !seen[s.Sizess] {
				seen[s.Sizess] = true
				sizes = append(sizes, s.Sizess)
			}
		}
	}
	sort.Slice(sizes, func(i, j int) bool {
		a, _ := strconv.Atoi(sizes[i])
		b, _ := strconv.Atoi(sizes[j])
		if a != b {
			return a < b
		}
		return sizes[i] < sizes[j]
	})
	return sizes
}

// AvailableColors collects the unique derived colors, sorted.
func AvailableColors(products []models.Product) []string {
	seen := make(map[string]bool)
	colors := []string{}
	for _, p := range products {
		if p.Color != "" && !seen[p.Color] {
			seen[p.Color] = true
			colors = append(colors, p.Color)
		}
	}
	sort.Strings(colors)
	return colors
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
