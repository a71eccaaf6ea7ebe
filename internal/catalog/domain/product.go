package domain

import "errors"

var (
	ErrInvalidPageSize    = errors.New("page size must be one of 6, 8 or 12")
	ErrInvalidGridColumns = errors.New("grid columns must be between 1 and 6")
	ErrInvalidPage        = errors.New("page must be at least 1")
)

// Category is a product category name as the listing API returns it
type Category struct {
	Name string `json:"name"`
}

// Product is the read-only catalog entity sourced from the listing API.
// Cart lines and the viewed log embed snapshots of it; price and stock
// reflect the moment the snapshot was taken.
type Product struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	URLName            string     `json:"urlName"`
	Description        string     `json:"description"`
	Picture            string     `json:"picture"`
	BasePrice          float64    `json:"basePrice"`
	DiscountPercentage float64    `json:"discountPercentage"`
	Stock              int        `json:"stock"`
	Categories         []Category `json:"categories"`
}

// HasCategory checks membership by exact name equality
func (p *Product) HasCategory(name string) bool {
	for _, c := range p.Categories {
		if c.Name == name {
			return true
		}
	}
	return false
}

// InStock reports whether the product can still be added to a cart
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// ViewMode selects the catalog row layout. It never affects which
// products are visible, only how a page is rendered.
type ViewMode string

const (
	ViewModeGrid ViewMode = "grid"
	ViewModeList ViewMode = "list"
)

// PageSizes is the enumerated set of allowed page sizes
var PageSizes = []int{6, 8, 12}

// PriceRange is an inclusive bound over Product.BasePrice. Min > Max is a
// legal state that matches nothing.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FilterState is the in-memory catalog view state. Search text arrives
// already debounced; unset fields impose no constraint and all set filters
// compose by logical AND.
type FilterState struct {
	SearchText  string      `json:"searchText"`
	Category    string      `json:"category"`
	PriceRange  *PriceRange `json:"priceRange"`
	Page        int         `json:"page"`
	PageSize    int         `json:"pageSize"`
	ViewMode    ViewMode    `json:"viewMode"`
	GridColumns int         `json:"gridColumns"`
}

// NewFilterState returns the default catalog view: first page, smallest
// page size, grid layout.
func NewFilterState() FilterState {
	return FilterState{
		Page:        1,
		PageSize:    PageSizes[0],
		ViewMode:    ViewModeGrid,
		GridColumns: 4,
	}
}

// SetPageSize changes the page size and resets the current page to 1.
// The reset is mandatory: keeping the old page could index past the end
// of the shrunken result set.
func (s *FilterState) SetPageSize(size int) error {
	valid := false
	for _, allowed := range PageSizes {
		if size == allowed {
			valid = true
			break
		}
	}
	if !valid {
		return ErrInvalidPageSize
	}
	s.PageSize = size
	s.Page = 1
	return nil
}

// SetPage moves to the given 1-indexed page
func (s *FilterState) SetPage(page int) error {
	if page < 1 {
		return ErrInvalidPage
	}
	s.Page = page
	return nil
}

// SetGridColumns adjusts the grid layout without touching filters
func (s *FilterState) SetGridColumns(columns int) error {
	if columns < 1 || columns > 6 {
		return ErrInvalidGridColumns
	}
	s.GridColumns = columns
	return nil
}
