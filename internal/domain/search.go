package domain

import "math"

// SearchQuery holds the parsed /products/search parameters.
type SearchQuery struct {
	Category string
	Keyword  string
	MinPrice *float64
	MaxPrice *float64
	Page     int `validate:"min=1"`
	PageSize int `validate:"min=1"`
}

// Filter drops the "Ninguna" sentinel and turns the page into a row window.
func (q SearchQuery) Filter() ProductFilter {
	category := q.Category
	if category == CategoryNone {
		category = ""
	}
	return ProductFilter{
		Category: category,
		Keyword:  q.Keyword,
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		Limit:    q.PageSize,
		Offset:   offset(q.Page, q.PageSize),
	}
}

// offset is (page-1)*pageSize, saturating at math.MaxInt so a page far past
// the end stays past the end instead of wrapping around.
func offset(page, pageSize int) int {
	if page < 1 || pageSize < 1 {
		return 0
	}
	if page-1 > math.MaxInt/pageSize {
		return math.MaxInt
	}
	return (page - 1) * pageSize
}

type SearchResult struct {
	Products      []Product `json:"products"`
	TotalPages    int       `json:"total_pages"`
	CurrentPage   int       `json:"current_page"`
	TotalProducts int64     `json:"total_products"`
}

// TotalPages is ceil(total / pageSize).
func TotalPages(total int64, pageSize int) int {
	if pageSize < 1 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
