package service

import (
	"github.com/drivelinehq/showroom-backend/internal/models"
)

// ListVehiclesQuery carries the catalog view parameters: optional filter
// constraints, free-text search, sort key and pagination
type ListVehiclesQuery struct {
	Filter   models.VehicleFilter
	Search   string
	Sort     string
	Page     int
	PageSize int
}

// Validate performs validation on the list query
func (q *ListVehiclesQuery) Validate() error {
	if q.Sort != "" && !models.IsValidSortKey(q.Sort) {
		return models.ErrInvalidInput("invalid sort key (must be price_asc, price_desc, year_desc or mileage_asc)")
	}
	if q.Filter.EngineType != nil && !models.IsValidEngineType(*q.Filter.EngineType) {
		return models.ErrInvalidInput("invalid engine_type")
	}
	if q.Filter.TransmissionType != nil && !models.IsValidTransmissionType(*q.Filter.TransmissionType) {
		return models.ErrInvalidInput("invalid transmission_type")
	}
	if q.Filter.BodyType != nil && !models.IsValidBodyType(*q.Filter.BodyType) {
		return models.ErrInvalidInput("invalid body_type")
	}
	return nil
}

// VehicleListResult represents one page of the filtered, sorted catalog
type VehicleListResult struct {
	Data       []models.Vehicle        `json:"data"`
	Pagination models.PaginationResult `json:"pagination"`
}

// SubmitInquiryRequest represents a request to submit a vehicle inquiry
type SubmitInquiryRequest struct {
	VehicleID string `json:"vehicle_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	Message   string `json:"message,omitempty"`
}

// Validate performs validation on the submit inquiry request.
// Contact fields are checked here, at the boundary, so the inquiry log
// below never sees a malformed payload.
func (r *SubmitInquiryRequest) Validate() error {
	if r.VehicleID == "" {
		return models.ErrInvalidInput("vehicle_id is required")
	}
	if r.Name == "" {
		return models.ErrInvalidInput("name is required")
	}
	if r.Phone == "" {
		return models.ErrInvalidInput("phone is required")
	}
	return nil
}

// SubmitInquiryResult represents the result of submitting an inquiry
type SubmitInquiryResult struct {
	Success   bool   `json:"success"`
	InquiryID string `json:"inquiry_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// UpdateStatusRequest carries the target status for a status transition
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ToggleFavoriteResult represents the membership state after a toggle
type ToggleFavoriteResult struct {
	VehicleID  string `json:"vehicle_id"`
	IsFavorite bool   `json:"is_favorite"`
	Count      int    `json:"count"`
}

// FavoritesResult pairs the persisted ids with the resolved listings
type FavoritesResult struct {
	IDs      []string         `json:"ids"`
	Vehicles []models.Vehicle `json:"vehicles"`
}
