// Package catalog implements the combined search/filter/sort pass that
// turns a full vehicle collection into the view the storefront renders.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/drivelinehq/showroom-backend/internal/models"
)

// Query filters vehicles by the given criteria and free-text search, then
// orders the survivors by sortKey. The input slice is never mutated; a new
// slice is returned. Filtering is conjunctive: a vehicle survives only if
// it matches the search text and every set field of the filter. Unset
// filter fields impose no constraint; zero-valued bounds do.
//
// An unknown sortKey falls back to the default ordering (price ascending).
func Query(vehicles []models.Vehicle, filter models.VehicleFilter, search string, sortKey string) []models.Vehicle {
	result := make([]models.Vehicle, 0, len(vehicles))
	query := strings.ToLower(strings.TrimSpace(search))

	for _, v := range vehicles {
		if query != "" && !strings.Contains(searchText(v), query) {
			continue
		}
		if !matches(v, filter) {
			continue
		}
		result = append(result, v)
	}

	sortVehicles(result, sortKey)
	return result
}

// searchText builds the lowercased haystack the free-text search runs over
func searchText(v models.Vehicle) string {
	return strings.ToLower(fmt.Sprintf("%s %s %s %s", v.Manufacturer, v.Model, v.Color, v.BodyType))
}

// matches checks every set constraint; range bounds are inclusive
func matches(v models.Vehicle, f models.VehicleFilter) bool {
	if f.Manufacturer != nil && v.Manufacturer != *f.Manufacturer {
		return false
	}
	if f.PriceFrom != nil && v.BasePriceAmount < *f.PriceFrom {
		return false
	}
	if f.PriceTo != nil && v.BasePriceAmount > *f.PriceTo {
		return false
	}
	if f.YearFrom != nil && v.Year < *f.YearFrom {
		return false
	}
	if f.YearTo != nil && v.Year > *f.YearTo {
		return false
	}
	if f.MileageFrom != nil && v.Mileage < *f.MileageFrom {
		return false
	}
	if f.MileageTo != nil && v.Mileage > *f.MileageTo {
		return false
	}
	if f.EngineType != nil && v.EngineType != *f.EngineType {
		return false
	}
	if f.TransmissionType != nil && v.TransmissionType != *f.TransmissionType {
		return false
	}
	if f.BodyType != nil && v.BodyType != *f.BodyType {
		return false
	}
	return true
}

// sortVehicles orders the slice in place. The sort is stable: records with
// equal keys keep their relative input order, so pagination stays
// deterministic for equal-priced listings.
func sortVehicles(vehicles []models.Vehicle, sortKey string) {
	var less func(a, b models.Vehicle) bool

	switch sortKey {
	case models.SortPriceDesc:
		less = func(a, b models.Vehicle) bool { return a.BasePriceAmount > b.BasePriceAmount }
	case models.SortYearDesc:
		less = func(a, b models.Vehicle) bool { return a.Year > b.Year }
	case models.SortMileageAsc:
		less = func(a, b models.Vehicle) bool { return a.Mileage < b.Mileage }
	default:
		// price_asc, also the fallback for unknown keys
		less = func(a, b models.Vehicle) bool { return a.BasePriceAmount < b.BasePriceAmount }
	}

	sort.SliceStable(vehicles, func(i, j int) bool {
		return less(vehicles[i], vehicles[j])
	})
}
