package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/drivelinehq/showroom-backend/internal/models"
)

// mockVehicleRepository serves a fixed fleet from memory
type mockVehicleRepository struct {
	vehicles []models.Vehicle
	listErr  error
}

func (m *mockVehicleRepository) ListAll(ctx context.Context) ([]models.Vehicle, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.vehicles, nil
}

func (m *mockVehicleRepository) GetByID(ctx context.Context, id string) (*models.Vehicle, error) {
	for i := range m.vehicles {
		if m.vehicles[i].ID == id {
			return &m.vehicles[i], nil
		}
	}
	return nil, models.ErrNotFoundWithMsg("vehicle not found")
}

func (m *mockVehicleRepository) ListManufacturers(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, v := range m.vehicles {
		if !seen[v.Manufacturer] {
			seen[v.Manufacturer] = true
			out = append(out, v.Manufacturer)
		}
	}
	return out, nil
}

func (m *mockVehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	m.vehicles = append(m.vehicles, *vehicle)
	return nil
}

func (m *mockVehicleRepository) UpdateStatus(ctx context.Context, id, status string) error {
	for i := range m.vehicles {
		if m.vehicles[i].ID == id {
			m.vehicles[i].Status = status
			return nil
		}
	}
	return models.ErrNotFoundWithMsg("vehicle not found")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func floatPtr(f float64) *float64 { return &f }

func fleet() []models.Vehicle {
	return []models.Vehicle{
		{ID: "v1", Manufacturer: "Toyota", Model: "Camry", Year: 2023, BasePriceAmount: 30000, Status: models.VehicleStatusAvailable},
		{ID: "v2", Manufacturer: "BMW", Model: "X5", Year: 2022, BasePriceAmount: 52000, Status: models.VehicleStatusAvailable},
		{ID: "v3", Manufacturer: "Toyota", Model: "RAV4", Year: 2023, BasePriceAmount: 32000, Status: models.VehicleStatusAvailable},
	}
}

func TestVehicleService_List_FilterAndSort(t *testing.T) {
	svc := NewVehicleService(&mockVehicleRepository{vehicles: fleet()}, testLogger())

	result, err := svc.List(context.Background(), &ListVehiclesQuery{
		Filter: models.VehicleFilter{PriceTo: floatPtr(40000)},
		Sort:   models.SortPriceAsc,
	})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if len(result.Data) != 2 {
		t.Fatalf("List() returned %d vehicles, want 2", len(result.Data))
	}
	if result.Data[0].ID != "v1" || result.Data[1].ID != "v3" {
		t.Errorf("List() order = [%s %s], want [v1 v3]", result.Data[0].ID, result.Data[1].ID)
	}
	if result.Pagination.TotalCount != 2 {
		t.Errorf("TotalCount = %d, want 2", result.Pagination.TotalCount)
	}
}

func TestVehicleService_List_Pagination(t *testing.T) {
	svc := NewVehicleService(&mockVehicleRepository{vehicles: fleet()}, testLogger())

	result, err := svc.List(context.Background(), &ListVehiclesQuery{
		Page:     2,
		PageSize: 2,
	})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if len(result.Data) != 1 {
		t.Fatalf("page 2 of 3 vehicles with page_size 2 returned %d, want 1", len(result.Data))
	}
	if result.Pagination.TotalPages != 2 {
		t.Errorf("TotalPages = %d, want 2", result.Pagination.TotalPages)
	}
	// Default sort is price_asc, so page 2 holds the most expensive
	if result.Data[0].ID != "v2" {
		t.Errorf("page 2 = %s, want v2", result.Data[0].ID)
	}
}

func TestVehicleService_List_RejectsInvalidQuery(t *testing.T) {
	svc := NewVehicleService(&mockVehicleRepository{vehicles: fleet()}, testLogger())

	badType := "Steam"
	tests := []struct {
		name  string
		query ListVehiclesQuery
	}{
		{"unknown sort key", ListVehiclesQuery{Sort: "color_asc"}},
		{"unknown engine type", ListVehiclesQuery{Filter: models.VehicleFilter{EngineType: &badType}}},
		{"unknown body type", ListVehiclesQuery{Filter: models.VehicleFilter{BodyType: &badType}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.List(context.Background(), &tt.query); err == nil {
				t.Error("List() accepted an invalid query")
			}
		})
	}
}

func TestVehicleService_List_RepositoryError(t *testing.T) {
	svc := NewVehicleService(&mockVehicleRepository{listErr: errors.New("connection refused")}, testLogger())

	if _, err := svc.List(context.Background(), &ListVehiclesQuery{}); err == nil {
		t.Error("List() swallowed a repository error")
	}
}

func TestVehicleService_Create(t *testing.T) {
	repo := &mockVehicleRepository{}
	svc := NewVehicleService(repo, testLogger())

	created, err := svc.Create(context.Background(), &models.Vehicle{
		Manufacturer: "Audi",
		Model:        "A4",
		Year:         2024,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID == "" {
		t.Error("Create() did not assign an id")
	}
	if created.Status != models.VehicleStatusAvailable {
		t.Errorf("Status = %s, want Available by default", created.Status)
	}
	if len(repo.vehicles) != 1 {
		t.Errorf("repository holds %d vehicles, want 1", len(repo.vehicles))
	}
}

func TestVehicleService_Create_RejectsInvalidListing(t *testing.T) {
	svc := NewVehicleService(&mockVehicleRepository{}, testLogger())

	tests := []struct {
		name    string
		vehicle models.Vehicle
	}{
		{"missing manufacturer", models.Vehicle{Model: "A4", Year: 2024}},
		{"missing model", models.Vehicle{Manufacturer: "Audi", Year: 2024}},
		{"year out of range", models.Vehicle{Manufacturer: "Audi", Model: "A4", Year: 1850}},
		{"unknown status", models.Vehicle{Manufacturer: "Audi", Model: "A4", Year: 2024, Status: "Scrapped"}},
		{"unknown body type", models.Vehicle{Manufacturer: "Audi", Model: "A4", Year: 2024, BodyType: "Zeppelin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), &tt.vehicle); err == nil {
				t.Error("Create() accepted an invalid listing")
			}
		})
	}
}

func TestVehicleService_UpdateStatus(t *testing.T) {
	repo := &mockVehicleRepository{vehicles: fleet()}
	svc := NewVehicleService(repo, testLogger())

	if err := svc.UpdateStatus(context.Background(), "v1", models.VehicleStatusSold); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if repo.vehicles[0].Status != models.VehicleStatusSold {
		t.Errorf("Status = %s, want Sold", repo.vehicles[0].Status)
	}

	if err := svc.UpdateStatus(context.Background(), "v1", "Scrapped"); err == nil {
		t.Error("UpdateStatus() accepted an unknown status")
	}
	if err := svc.UpdateStatus(context.Background(), "missing", models.VehicleStatusSold); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("UpdateStatus(missing) = %v, want ErrNotFound", err)
	}
	if err := svc.UpdateStatus(context.Background(), "", models.VehicleStatusSold); err == nil {
		t.Error("UpdateStatus(\"\") accepted an empty id")
	}
}

func TestVehicleService_GetByID(t *testing.T) {
	svc := NewVehicleService(&mockVehicleRepository{vehicles: fleet()}, testLogger())

	vehicle, err := svc.GetByID(context.Background(), "v2")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if vehicle.Manufacturer != "BMW" {
		t.Errorf("GetByID() manufacturer = %s, want BMW", vehicle.Manufacturer)
	}

	if _, err := svc.GetByID(context.Background(), "missing"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("GetByID(missing) = %v, want ErrNotFound", err)
	}

	if _, err := svc.GetByID(context.Background(), ""); err == nil {
		t.Error("GetByID(\"\") accepted an empty id")
	}
}
