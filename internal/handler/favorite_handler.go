package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/drivelinehq/showroom-backend/internal/favorites"
	"github.com/drivelinehq/showroom-backend/internal/models"
	"github.com/drivelinehq/showroom-backend/internal/service"
)

// FavoriteHandler handles favorites HTTP requests
type FavoriteHandler struct {
	favorites      *favorites.Service
	vehicleService service.VehicleService
	logger         *slog.Logger
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(favorites *favorites.Service, vehicleService service.VehicleService, logger *slog.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		favorites:      favorites,
		vehicleService: vehicleService,
		logger:         logger,
	}
}

// toggleFavoriteRequest is the POST /favorites/toggle payload
type toggleFavoriteRequest struct {
	VehicleID string `json:"vehicle_id"`
}

// ToggleFavorite handles POST /favorites/toggle
func (h *FavoriteHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	var req toggleFavoriteRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON format")
		return
	}
	if req.VehicleID == "" {
		handleError(w, models.ErrInvalidInput("vehicle_id is required"), h.logger)
		return
	}

	members := h.favorites.Toggle(r.Context(), req.VehicleID)

	isFavorite := false
	for _, id := range members {
		if id == req.VehicleID {
			isFavorite = true
			break
		}
	}

	respondSuccess(w, service.ToggleFavoriteResult{
		VehicleID:  req.VehicleID,
		IsFavorite: isFavorite,
		Count:      len(members),
	})
}

// ListFavorites handles GET /favorites
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	ids := h.favorites.Load(r.Context())

	// Resolve ids to listings; a favorite whose listing disappeared is
	// kept in the id set but dropped from the resolved view
	vehicles := make([]models.Vehicle, 0, len(ids))
	for _, id := range ids {
		vehicle, err := h.vehicleService.GetByID(r.Context(), id)
		if err != nil {
			h.logger.Warn("favorite vehicle not resolvable",
				slog.String("vehicle_id", id),
				slog.String("error", err.Error()),
			)
			continue
		}
		vehicles = append(vehicles, *vehicle)
	}

	respondSuccess(w, service.FavoritesResult{
		IDs:      ids,
		Vehicles: vehicles,
	})
}
