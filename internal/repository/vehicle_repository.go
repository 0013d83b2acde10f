package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"github.com/drivelinehq/showroom-backend/internal/models"
)

// VehicleRepository defines the interface for vehicle listing data access.
// It returns full collections; filtering, search and sorting are the
// catalog engine's job, not SQL's, so both stay testable in isolation.
type VehicleRepository interface {
	ListAll(ctx context.Context) ([]models.Vehicle, error)
	GetByID(ctx context.Context, id string) (*models.Vehicle, error)
	ListManufacturers(ctx context.Context) ([]string, error)
	Create(ctx context.Context, vehicle *models.Vehicle) error
	UpdateStatus(ctx context.Context, id, status string) error
}

// vehicleRepository implements VehicleRepository using PostgreSQL
type vehicleRepository struct {
	db *sql.DB
}

// NewVehicleRepository creates a new vehicle repository
func NewVehicleRepository(db *sql.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

const vehicleColumns = `
	id, vin, manufacturer, model, year, mileage, color, engine_volume, power,
	description, body_type, engine_type, transmission_type,
	base_price_amount, base_price_currency, status, photos, features`

// ListAll retrieves every listing; the catalog engine derives views from it
func (r *vehicleRepository) ListAll(ctx context.Context) ([]models.Vehicle, error) {
	query := `
		SELECT ` + vehicleColumns + `
		FROM vehicles
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []models.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *vehicle)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vehicles: %w", err)
	}

	return vehicles, nil
}

// GetByID retrieves a single listing
func (r *vehicleRepository) GetByID(ctx context.Context, id string) (*models.Vehicle, error) {
	query := `
		SELECT ` + vehicleColumns + `
		FROM vehicles
		WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	vehicle, err := scanVehicle(row)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("vehicle %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	return vehicle, nil
}

// ListManufacturers returns the distinct manufacturers for the filter UI
func (r *vehicleRepository) ListManufacturers(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT manufacturer
		FROM vehicles
		ORDER BY manufacturer ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list manufacturers: %w", err)
	}
	defer rows.Close()

	var manufacturers []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("failed to scan manufacturer: %w", err)
		}
		manufacturers = append(manufacturers, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate manufacturers: %w", err)
	}

	return manufacturers, nil
}

// Create inserts a new listing
func (r *vehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	photos, err := json.Marshal(vehicle.Photos)
	if err != nil {
		return fmt.Errorf("failed to marshal photos: %w", err)
	}

	query := `
		INSERT INTO vehicles (
			id, vin, manufacturer, model, year, mileage, color, engine_volume, power,
			description, body_type, engine_type, transmission_type,
			base_price_amount, base_price_currency, status, photos, features
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err = r.db.ExecContext(
		ctx,
		query,
		vehicle.ID,
		vehicle.VIN,
		vehicle.Manufacturer,
		vehicle.Model,
		vehicle.Year,
		vehicle.Mileage,
		vehicle.Color,
		vehicle.EngineVolume,
		vehicle.Power,
		vehicle.Description,
		vehicle.BodyType,
		vehicle.EngineType,
		vehicle.TransmissionType,
		vehicle.BasePriceAmount,
		vehicle.BasePriceCurrency,
		vehicle.Status,
		photos,
		pq.Array(vehicle.Features),
	)
	if err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}

	return nil
}

// UpdateStatus moves a listing between Available, Reserved and Sold
func (r *vehicleRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if !models.IsValidVehicleStatus(status) {
		return models.ErrInvalidInput(fmt.Sprintf("invalid vehicle status: %s", status))
	}

	query := `UPDATE vehicles SET status = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update vehicle status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return models.ErrNotFoundWithMsg(fmt.Sprintf("vehicle %s not found", id))
	}

	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanVehicle(row rowScanner) (*models.Vehicle, error) {
	vehicle := &models.Vehicle{}
	var photos []byte

	err := row.Scan(
		&vehicle.ID,
		&vehicle.VIN,
		&vehicle.Manufacturer,
		&vehicle.Model,
		&vehicle.Year,
		&vehicle.Mileage,
		&vehicle.Color,
		&vehicle.EngineVolume,
		&vehicle.Power,
		&vehicle.Description,
		&vehicle.BodyType,
		&vehicle.EngineType,
		&vehicle.TransmissionType,
		&vehicle.BasePriceAmount,
		&vehicle.BasePriceCurrency,
		&vehicle.Status,
		&photos,
		pq.Array(&vehicle.Features),
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan vehicle: %w", err)
	}

	if len(photos) > 0 {
		if err := json.Unmarshal(photos, &vehicle.Photos); err != nil {
			return nil, fmt.Errorf("failed to unmarshal photos: %w", err)
		}
	}

	return vehicle, nil
}
