package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/drivelinehq/showroom-backend/internal/models"
	"github.com/drivelinehq/showroom-backend/internal/service"
)

// InquiryHandler handles inquiry HTTP requests
type InquiryHandler struct {
	inquiryService service.InquiryService
	logger         *slog.Logger
}

// NewInquiryHandler creates a new inquiry handler
func NewInquiryHandler(inquiryService service.InquiryService, logger *slog.Logger) *InquiryHandler {
	return &InquiryHandler{
		inquiryService: inquiryService,
		logger:         logger,
	}
}

// SubmitInquiry handles POST /inquiries
func (h *InquiryHandler) SubmitInquiry(w http.ResponseWriter, r *http.Request) {
	var req service.SubmitInquiryRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON format")
		return
	}

	// An authenticated frontend may pre-fill contact fields from the
	// current user; the identity itself is never fetched here
	if req.Name == "" {
		req.Name = r.Header.Get("X-User-Name")
	}
	if req.Phone == "" {
		req.Phone = r.Header.Get("X-User-Phone")
	}

	result, err := h.inquiryService.Submit(r.Context(), &req)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	// A result carrying a remote save failure is not a created inquiry
	if !result.Success {
		respondError(w, http.StatusBadGateway, "SAVE_FAILED", result.Error)
		return
	}

	respondCreated(w, result)
}

// ListInquiries handles GET /inquiries
func (h *InquiryHandler) ListInquiries(w http.ResponseWriter, r *http.Request) {
	inquiries := h.inquiryService.List(r.Context())
	respondSuccess(w, map[string]any{"data": inquiries})
}

// GetArchivedInquiry handles GET /inquiries/archive/{id}
func (h *InquiryHandler) GetArchivedInquiry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	inquiry, err := h.inquiryService.GetArchived(r.Context(), id)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, inquiry)
}

// UpdateArchivedInquiryStatus handles PATCH /inquiries/archive/{id}/status
func (h *InquiryHandler) UpdateArchivedInquiryStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req service.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON format")
		return
	}

	if err := h.inquiryService.UpdateArchivedStatus(r.Context(), id, req.Status); err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, map[string]string{"id": id, "status": req.Status})
}

// ListArchivedInquiries handles GET /inquiries/archive
func (h *InquiryHandler) ListArchivedInquiries(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	pageSize, _ := strconv.Atoi(query.Get("page_size"))

	filter := models.InquiryFilter{
		VehicleID: query.Get("vehicle_id"),
		Status:    query.Get("status"),
		Page:      page,
		PageSize:  pageSize,
	}

	archived, pagination, err := h.inquiryService.ListArchived(r.Context(), filter)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, map[string]any{
		"data":       archived,
		"pagination": pagination,
	})
}
