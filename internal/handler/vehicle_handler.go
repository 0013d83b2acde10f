package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/drivelinehq/showroom-backend/internal/models"
	"github.com/drivelinehq/showroom-backend/internal/service"
)

// VehicleHandler handles catalog HTTP requests
type VehicleHandler struct {
	vehicleService service.VehicleService
	logger         *slog.Logger
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(vehicleService service.VehicleService, logger *slog.Logger) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
		logger:         logger,
	}
}

// ListVehicles handles GET /vehicles
func (h *VehicleHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	query, err := parseListQuery(r.URL.Query())
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	result, err := h.vehicleService.List(r.Context(), query)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, result)
}

// GetVehicle handles GET /vehicles/{id}
func (h *VehicleHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	vehicle, err := h.vehicleService.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, vehicle)
}

// ListManufacturers handles GET /vehicles/meta/manufacturers
func (h *VehicleHandler) ListManufacturers(w http.ResponseWriter, r *http.Request) {
	manufacturers, err := h.vehicleService.Manufacturers(r.Context())
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, map[string][]string{"manufacturers": manufacturers})
}

// CreateVehicle handles POST /vehicles
func (h *VehicleHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var vehicle models.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON format")
		return
	}

	created, err := h.vehicleService.Create(r.Context(), &vehicle)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondCreated(w, created)
}

// UpdateVehicleStatus handles PATCH /vehicles/{id}/status
func (h *VehicleHandler) UpdateVehicleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req service.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON format")
		return
	}

	if err := h.vehicleService.UpdateStatus(r.Context(), id, req.Status); err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, map[string]string{"id": id, "status": req.Status})
}

// parseListQuery maps URL query parameters onto the catalog query. A
// parameter that is present but empty counts as absent; a present "0"
// is a real zero-valued bound. That distinction is why the filter uses
// pointers instead of zero values.
func parseListQuery(values url.Values) (*service.ListVehiclesQuery, error) {
	query := &service.ListVehiclesQuery{
		Search: values.Get("q"),
		Sort:   values.Get("sort"),
	}

	query.Page, _ = strconv.Atoi(values.Get("page"))
	query.PageSize, _ = strconv.Atoi(values.Get("page_size"))

	filter := &query.Filter

	if v := values.Get("manufacturer"); v != "" {
		filter.Manufacturer = &v
	}
	if v := values.Get("engine_type"); v != "" {
		filter.EngineType = &v
	}
	if v := values.Get("transmission_type"); v != "" {
		filter.TransmissionType = &v
	}
	if v := values.Get("body_type"); v != "" {
		filter.BodyType = &v
	}

	var err error
	if filter.PriceFrom, err = parseFloatParam(values, "price_from"); err != nil {
		return nil, err
	}
	if filter.PriceTo, err = parseFloatParam(values, "price_to"); err != nil {
		return nil, err
	}
	if filter.YearFrom, err = parseIntParam(values, "year_from"); err != nil {
		return nil, err
	}
	if filter.YearTo, err = parseIntParam(values, "year_to"); err != nil {
		return nil, err
	}
	if filter.MileageFrom, err = parseIntParam(values, "mileage_from"); err != nil {
		return nil, err
	}
	if filter.MileageTo, err = parseIntParam(values, "mileage_to"); err != nil {
		return nil, err
	}

	return query, nil
}

func parseIntParam(values url.Values, name string) (*int, error) {
	raw := values.Get(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, models.ErrInvalidInput(name + " must be an integer")
	}
	return &n, nil
}

func parseFloatParam(values url.Values, name string) (*float64, error) {
	raw := values.Get(name)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, models.ErrInvalidInput(name + " must be a number")
	}
	return &f, nil
}
