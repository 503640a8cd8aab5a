package bike

import (
	"fmt"
	"strings"

	"bikerental/internal/pkg/errs"
)

// SortOrder is the ordering requested from the catalog.
type SortOrder string

const (
	SortDefault   SortOrder = ""
	SortPriceAsc  SortOrder = "price-asc"
	SortPriceDesc SortOrder = "price-desc"
	SortRating    SortOrder = "rating"
)

// ParseSortOrder accepts "", "price-asc", "price-desc" and "rating".
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.TrimSpace(s)); o {
	case SortDefault, SortPriceAsc, SortPriceDesc, SortRating:
		return o, nil
	default:
		return SortDefault, errs.NewValueIsInvalidErrorWithCause("sort", fmt.Errorf("%q is not a supported sort order", s))
	}
}

// Filter narrows the bikes listed for a location. The zero value lists
// everything in catalog order.
type Filter struct {
	Type     string
	MinPrice *int64
	MaxPrice *int64
	Sort     SortOrder
}

// NewFilter validates price bounds and sort order.
func NewFilter(bikeType string, minPrice *int64, maxPrice *int64, sort string) (Filter, error) {
	order, err := ParseSortOrder(sort)
	if err != nil {
		return Filter{}, err
	}

	f := Filter{
		Type:     strings.TrimSpace(bikeType),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Sort:     order,
	}
	if err = f.Validate(); err != nil {
		return Filter{}, err
	}

	return f, nil
}

// Validate checks that bounds are non-negative and ordered.
func (f Filter) Validate() error {
	if f.MinPrice != nil && *f.MinPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("minPrice", fmt.Errorf("%d is negative", *f.MinPrice))
	}
	if f.MaxPrice != nil && *f.MaxPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("maxPrice", fmt.Errorf("%d is negative", *f.MaxPrice))
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return errs.NewValueIsOutOfRangeError("minPrice", *f.MinPrice, 0, *f.MaxPrice)
	}
	if _, err := ParseSortOrder(string(f.Sort)); err != nil {
		return err
	}
	return nil
}

// IsEmpty reports whether the filter has no criteria.
func (f Filter) IsEmpty() bool {
	return f.Type == "" && f.MinPrice == nil && f.MaxPrice == nil && f.Sort == SortDefault
}
