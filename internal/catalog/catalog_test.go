package catalog

import (
	"testing"

	"github.com/drivelinehq/showroom-backend/internal/models"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func floatPtr(f float64) *float64 { return &f }

func testFleet() []models.Vehicle {
	return []models.Vehicle{
		{ID: "v1", Manufacturer: "Toyota", Model: "Camry", Color: "White", BodyType: models.BodySedan, EngineType: models.EngineGasoline, TransmissionType: models.TransmissionAutomatic, Year: 2023, Mileage: 12000, BasePriceAmount: 30000},
		{ID: "v2", Manufacturer: "BMW", Model: "X5", Color: "Black", BodyType: models.BodySUV, EngineType: models.EngineDiesel, TransmissionType: models.TransmissionAutomatic, Year: 2022, Mileage: 45000, BasePriceAmount: 52000},
		{ID: "v3", Manufacturer: "Toyota", Model: "RAV4", Color: "Red", BodyType: models.BodyCrossover, EngineType: models.EngineHybrid, TransmissionType: models.TransmissionCVT, Year: 2023, Mileage: 8000, BasePriceAmount: 32000},
		{ID: "v4", Manufacturer: "Tesla", Model: "Model 3", Color: "White", BodyType: models.BodySedan, EngineType: models.EngineElectric, TransmissionType: models.TransmissionAutomatic, Year: 2024, Mileage: 0, BasePriceAmount: 42000},
	}
}

func idsOf(vehicles []models.Vehicle) []string {
	ids := make([]string, len(vehicles))
	for i, v := range vehicles {
		ids[i] = v.ID
	}
	return ids
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestQuery_FilterAndSort(t *testing.T) {
	tests := []struct {
		name    string
		filter  models.VehicleFilter
		search  string
		sortKey string
		wantIDs []string
	}{
		{
			name:    "no constraints returns full collection sorted by price",
			filter:  models.VehicleFilter{},
			sortKey: models.SortPriceAsc,
			wantIDs: []string{"v1", "v3", "v4", "v2"},
		},
		{
			name:    "price ceiling",
			filter:  models.VehicleFilter{PriceTo: floatPtr(40000)},
			sortKey: models.SortPriceAsc,
			wantIDs: []string{"v1", "v3"},
		},
		{
			name:    "manufacturer equality",
			filter:  models.VehicleFilter{Manufacturer: strPtr("Toyota")},
			sortKey: models.SortPriceAsc,
			wantIDs: []string{"v1", "v3"},
		},
		{
			name:    "conjunctive filters",
			filter:  models.VehicleFilter{Manufacturer: strPtr("Toyota"), BodyType: strPtr(models.BodyCrossover)},
			sortKey: models.SortPriceAsc,
			wantIDs: []string{"v3"},
		},
		{
			name:    "inclusive range bounds",
			filter:  models.VehicleFilter{YearFrom: intPtr(2023), YearTo: intPtr(2023)},
			sortKey: models.SortPriceAsc,
			wantIDs: []string{"v1", "v3"},
		},
		{
			name:    "zero is a valid bound, not absence",
			filter:  models.VehicleFilter{MileageTo: intPtr(0)},
			sortKey: models.SortPriceAsc,
			wantIDs: []string{"v4"},
		},
		{
			name:    "search is case-insensitive substring over brand model color body",
			search:  "toyo",
			sortKey: models.SortPriceAsc,
			wantIDs: []string{"v1", "v3"},
		},
		{
			name:    "search matches color",
			search:  "white",
			sortKey: models.SortPriceAsc,
			wantIDs: []string{"v1", "v4"},
		},
		{
			name:    "search combined with filter",
			search:  "white",
			filter:  models.VehicleFilter{PriceFrom: floatPtr(40000)},
			sortKey: models.SortPriceAsc,
			wantIDs: []string{"v4"},
		},
		{
			name:    "price descending",
			sortKey: models.SortPriceDesc,
			wantIDs: []string{"v2", "v4", "v3", "v1"},
		},
		{
			name:    "year descending",
			sortKey: models.SortYearDesc,
			wantIDs: []string{"v4", "v1", "v3", "v2"},
		},
		{
			name:    "mileage ascending",
			sortKey: models.SortMileageAsc,
			wantIDs: []string{"v4", "v3", "v1", "v2"},
		},
		{
			name:    "unknown sort key falls back to price ascending",
			sortKey: "horsepower_desc",
			wantIDs: []string{"v1", "v3", "v4", "v2"},
		},
		{
			name:    "no matches",
			search:  "lamborghini",
			sortKey: models.SortPriceAsc,
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Query(testFleet(), tt.filter, tt.search, tt.sortKey)
			if !equalIDs(idsOf(got), tt.wantIDs) {
				t.Errorf("Query() = %v, want %v", idsOf(got), tt.wantIDs)
			}
		})
	}
}

func TestQuery_EmptyInput(t *testing.T) {
	got := Query(nil, models.VehicleFilter{}, "", models.SortPriceAsc)
	if len(got) != 0 {
		t.Errorf("Query(nil) returned %d vehicles, want 0", len(got))
	}
}

func TestQuery_DoesNotMutateInput(t *testing.T) {
	fleet := testFleet()
	original := idsOf(fleet)

	Query(fleet, models.VehicleFilter{}, "", models.SortPriceDesc)

	if !equalIDs(idsOf(fleet), original) {
		t.Errorf("input order changed: got %v, want %v", idsOf(fleet), original)
	}
}

func TestQuery_StableSort(t *testing.T) {
	// v1, v3 and v5 share a price; their relative input order must survive
	// every sort key that ties them.
	fleet := []models.Vehicle{
		{ID: "v1", Year: 2020, Mileage: 100, BasePriceAmount: 30000},
		{ID: "v2", Year: 2021, Mileage: 200, BasePriceAmount: 25000},
		{ID: "v3", Year: 2020, Mileage: 100, BasePriceAmount: 30000},
		{ID: "v5", Year: 2020, Mileage: 100, BasePriceAmount: 30000},
	}

	tests := []struct {
		sortKey string
		wantIDs []string
	}{
		{models.SortPriceAsc, []string{"v2", "v1", "v3", "v5"}},
		{models.SortPriceDesc, []string{"v1", "v3", "v5", "v2"}},
		{models.SortYearDesc, []string{"v2", "v1", "v3", "v5"}},
		{models.SortMileageAsc, []string{"v1", "v3", "v5", "v2"}},
	}

	for _, tt := range tests {
		t.Run(tt.sortKey, func(t *testing.T) {
			got := Query(fleet, models.VehicleFilter{}, "", tt.sortKey)
			if !equalIDs(idsOf(got), tt.wantIDs) {
				t.Errorf("Query() = %v, want %v", idsOf(got), tt.wantIDs)
			}
		})
	}
}

func TestQuery_ResultIsSubsetSatisfyingConstraints(t *testing.T) {
	fleet := testFleet()
	filter := models.VehicleFilter{
		PriceFrom: floatPtr(31000),
		YearFrom:  intPtr(2022),
	}

	got := Query(fleet, filter, "", models.SortPriceAsc)

	known := make(map[string]bool, len(fleet))
	for _, v := range fleet {
		known[v.ID] = true
	}

	for _, v := range got {
		if !known[v.ID] {
			t.Errorf("result contains invented record %q", v.ID)
		}
		if v.BasePriceAmount < 31000 {
			t.Errorf("vehicle %q violates price_from: %v", v.ID, v.BasePriceAmount)
		}
		if v.Year < 2022 {
			t.Errorf("vehicle %q violates year_from: %d", v.ID, v.Year)
		}
	}
}
