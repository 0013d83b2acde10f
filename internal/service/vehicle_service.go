package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/drivelinehq/showroom-backend/internal/catalog"
	"github.com/drivelinehq/showroom-backend/internal/models"
	"github.com/drivelinehq/showroom-backend/internal/repository"
)

// VehicleService handles catalog business logic
type VehicleService interface {
	List(ctx context.Context, query *ListVehiclesQuery) (*VehicleListResult, error)
	GetByID(ctx context.Context, id string) (*models.Vehicle, error)
	Manufacturers(ctx context.Context) ([]string, error)
	Create(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
	logger      *slog.Logger
}

// NewVehicleService creates a new vehicle service
func NewVehicleService(
	vehicleRepo repository.VehicleRepository,
	logger *slog.Logger,
) VehicleService {
	return &vehicleService{
		vehicleRepo: vehicleRepo,
		logger:      logger,
	}
}

// List runs the catalog engine over the full collection, then paginates.
// Filtering and sorting happen in memory rather than SQL so the derived
// view matches the engine's contract exactly (stable ordering included).
func (s *vehicleService) List(ctx context.Context, query *ListVehiclesQuery) (*VehicleListResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	vehicles, err := s.vehicleRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to load vehicle collection",
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}

	sortKey := query.Sort
	if sortKey == "" {
		sortKey = models.SortKeyDefault
	}

	filtered := catalog.Query(vehicles, query.Filter, query.Search, sortKey)

	models.ValidateAndSetDefaults(&query.Page, &query.PageSize)
	totalCount := int64(len(filtered))
	offset := models.CalculateOffset(query.Page, query.PageSize)

	start := offset
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + query.PageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	return &VehicleListResult{
		Data:       filtered[start:end],
		Pagination: models.NewPaginationResult(query.Page, query.PageSize, totalCount),
	}, nil
}

// GetByID retrieves a single listing
func (s *vehicleService) GetByID(ctx context.Context, id string) (*models.Vehicle, error) {
	if id == "" {
		return nil, models.ErrInvalidInput("vehicle id is required")
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return vehicle, nil
}

// Manufacturers returns the distinct manufacturers for the filter UI
func (s *vehicleService) Manufacturers(ctx context.Context) ([]string, error) {
	manufacturers, err := s.vehicleRepo.ListManufacturers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list manufacturers: %w", err)
	}

	return manufacturers, nil
}

// Create adds a listing to the catalog. New listings default to
// Available; an id is assigned when the caller leaves it empty.
func (s *vehicleService) Create(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error) {
	if vehicle.Manufacturer == "" || vehicle.Model == "" {
		return nil, models.ErrInvalidInput("manufacturer and model are required")
	}
	if vehicle.Year < 1900 {
		return nil, models.ErrInvalidInput("year is out of range")
	}
	if vehicle.EngineType != "" && !models.IsValidEngineType(vehicle.EngineType) {
		return nil, models.ErrInvalidInput("invalid engine_type")
	}
	if vehicle.TransmissionType != "" && !models.IsValidTransmissionType(vehicle.TransmissionType) {
		return nil, models.ErrInvalidInput("invalid transmission_type")
	}
	if vehicle.BodyType != "" && !models.IsValidBodyType(vehicle.BodyType) {
		return nil, models.ErrInvalidInput("invalid body_type")
	}

	if vehicle.ID == "" {
		vehicle.ID = uuid.NewString()
	}
	if vehicle.Status == "" {
		vehicle.Status = models.VehicleStatusAvailable
	} else if !models.IsValidVehicleStatus(vehicle.Status) {
		return nil, models.ErrInvalidInput("invalid status")
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	s.logger.Info("listing created",
		slog.String("vehicle_id", vehicle.ID),
		slog.String("manufacturer", vehicle.Manufacturer),
		slog.String("model", vehicle.Model),
	)

	return vehicle, nil
}

// UpdateStatus moves a listing between Available, Reserved and Sold.
// Used by the sales dashboard when a deal progresses.
func (s *vehicleService) UpdateStatus(ctx context.Context, id, status string) error {
	if id == "" {
		return models.ErrInvalidInput("vehicle id is required")
	}
	if !models.IsValidVehicleStatus(status) {
		return models.ErrInvalidInput("invalid vehicle status: " + status)
	}

	if err := s.vehicleRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.logger.Info("listing status updated",
		slog.String("vehicle_id", id),
		slog.String("status", status),
	)

	return nil
}
