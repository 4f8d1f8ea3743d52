package models

import "strings"

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

type Size struct {
	ID     int    `json:"id"`
	Sizess string `json:"sizess"`
}

type ImageFormat struct {
	URL string `json:"url"`
}

type ImageFormats struct {
	Thumbnail *ImageFormat `json:"thumbnail,omitempty"`
	Small     *ImageFormat `json:"small,omitempty"`
	Medium    *ImageFormat `json:"medium,omitempty"`
	Large     *ImageFormat `json:"large,omitempty"`
}

type ProductImage struct {
	URL     string       `json:"url"`
	Formats ImageFormats `json:"formats"`
}

type Product struct {
	ID       int            `json:"id"`
	Slug     string         `json:"slug"`
	Title    string         `json:"title"`
	Price    int            `json:"price"`
	Category Category       `json:"category"`
	Images   []ProductImage `json:"images"`
	Sizes    []Size         `json:"size"`
	Color    string         `json:"color,omitempty"`
}

type Banner struct {
	ID    int          `json:"id"`
	Title string       `json:"title"`
	Link  string       `json:"link"`
	Image ProductImage `json:"image"`
}

// DeriveColor extracts the color from a product title of the form
// "<Name> - <Color>". Titles without the delimiter yield an empty color,
// and such products never match a color filter.
func DeriveColor(title string) string {
	parts := strings.Split(title, "-")
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// BestImageURL prefers the largest available format, falling back to the
// base URL when no formats were generated.
func (img ProductImage) BestImageURL() string {
	f := img.Formats
	switch {
	case f.Large != nil:
		return f.Large.URL
	case f.Medium != nil:
		return f.Medium.URL
	case f.Small != nil:
		return f.Small.URL
	case f.Thumbnail != nil:
		return f.Thumbnail.URL
	}
	return img.URL
}

// FirstImageURL is a convenience for building cart line items.
func (p Product) FirstImageURL() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].BestImageURL()
}

// HasSize reports whether the product is offered in the given size.
func (p Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s.Sizess == size {
			return true
		}
	}
	return false
}
