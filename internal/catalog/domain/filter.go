package domain

// Filter narrows a fetched page of products to the visible subset. Filters
// apply in order: category match, then inclusive price-range bound on the
// base price. Input order is preserved and the same inputs always produce
// the same output; a range with Min > Max simply matches nothing.
func Filter(products []Product, state FilterState) []Product {
	visible := products

	if state.Category != "" {
		filtered := make([]Product, 0, len(visible))
		for _, p := range visible {
			if p.HasCategory(state.Category) {
				filtered = append(filtered, p)
			}
		}
		visible = filtered
	}

	if state.PriceRange != nil {
		filtered := make([]Product, 0, len(visible))
		for _, p := range visible {
			if p.BasePrice >= state.PriceRange.Min && p.BasePrice <= state.PriceRange.Max {
				filtered = append(filtered, p)
			}
		}
		visible = filtered
	}

	return visible
}

// Page is one paginated slice of a listing. It is generic so the viewed
// log can page through its entries with the same semantics as the catalog.
type Page[T any] struct {
	Items       []T  `json:"items"`
	HasPrevious bool `json:"hasPrevious"`
	HasNext     bool `json:"hasNext"`
}

// Paginate slices items into the requested 1-indexed page. A page past
// the end of the list is a valid empty result, not an error.
func Paginate[T any](items []T, page, size int) Page[T] {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = PageSizes[0]
	}

	start := (page - 1) * size
	if start >= len(items) {
		return Page[T]{
			Items:       []T{},
			HasPrevious: page > 1,
			HasNext:     false,
		}
	}

	end := start + size
	if end > len(items) {
		end = len(items)
	}

	return Page[T]{
		Items:       items[start:end],
		HasPrevious: page > 1,
		HasNext:     end < len(items),
	}
}
