package domain

import (
	"math"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total    int64
		pageSize int
		want     int
	}{
		{0, 8, 0},
		{1, 8, 1},
		{8, 8, 1},
		{9, 8, 2},
		{17, 8, 3},
		{100, 1, 100},
		{5, 0, 0},
	}
	for _, tt := range tests {
		qt.Check(t, TotalPages(tt.total, tt.pageSize), qt.Equals, tt.want, qt.Commentf("total=%d size=%d", tt.total, tt.pageSize))
	}
}

func TestSearchQueryFilter(t *testing.T) {
	c := qt.New(t)
	lo := 10.0

	f := SearchQuery{Category: "Ninguna", Keyword: "mesa", MinPrice: &lo, Page: 3, PageSize: 8}.Filter()
	c.Assert(f.Category, qt.Equals, "")
	c.Assert(f.Keyword, qt.Equals, "mesa")
	c.Assert(f.MinPrice, qt.Equals, &lo)
	c.Assert(f.Offset, qt.Equals, 16)
	c.Assert(f.Limit, qt.Equals, 8)

	// Only the exact sentinel is dropped.
	f = SearchQuery{Category: "ninguna", Page: 1, PageSize: 8}.Filter()
	c.Assert(f.Category, qt.Equals, "ninguna")
	c.Assert(f.Offset, qt.Equals, 0)
}

func TestProductChangesIsEmpty(t *testing.T) {
	c := qt.New(t)
	c.Assert(ProductChanges{}.IsEmpty(), qt.IsTrue)

	price := 0.0
	c.Assert(UpdateProductRequest{Precio: &price}.Changes().IsEmpty(), qt.IsFalse)
}

func TestSearchQueryFilterSaturatesOffset(t *testing.T) {
	c := qt.New(t)

	f := SearchQuery{Page: 2000000000000000000, PageSize: 8}.Filter()
	c.Assert(f.Offset, qt.Equals, math.MaxInt)

	// (2^61+1 - 1) * 8 wraps to exactly 0 without saturation.
	f = SearchQuery{Page: 2305843009213693953, PageSize: 8}.Filter()
	c.Assert(f.Offset, qt.Equals, math.MaxInt)

	f = SearchQuery{Page: math.MaxInt, PageSize: 1}.Filter()
	c.Assert(f.Offset, qt.Equals, math.MaxInt-1)
}
