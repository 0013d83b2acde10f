package models

// Sort key constants for the catalog
const (
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortYearDesc   = "year_desc"
	SortMileageAsc = "mileage_asc"
	SortKeyDefault = SortPriceAsc
)

// VehicleFilter holds the optional constraints narrowing the catalog.
// Pointer fields distinguish "no constraint" (nil) from a zero-valued
// bound, so a user filtering on mileage_from=0 still gets the constraint
// applied. Range bounds are inclusive.
type VehicleFilter struct {
	Manufacturer     *string
	PriceFrom        *float64
	PriceTo          *float64
	YearFrom         *int
	YearTo           *int
	MileageFrom      *int
	MileageTo        *int
	EngineType       *string
	TransmissionType *string
	BodyType         *string
}

// IsValidSortKey checks if the sort key is one of the supported orderings
func IsValidSortKey(sort string) bool {
	switch sort {
	case SortPriceAsc, SortPriceDesc, SortYearDesc, SortMileageAsc:
		return true
	default:
		return false
	}
}
