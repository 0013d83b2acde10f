package service

import (
	"context"
	"log/slog"

	"github.com/drivelinehq/showroom-backend/internal/inquiries"
	"github.com/drivelinehq/showroom-backend/internal/models"
	"github.com/drivelinehq/showroom-backend/internal/queue"
	"github.com/drivelinehq/showroom-backend/internal/repository"
)

// InquiryService handles inquiry submission and listing
type InquiryService interface {
	Submit(ctx context.Context, req *SubmitInquiryRequest) (*SubmitInquiryResult, error)
	List(ctx context.Context) []models.Inquiry
	ListArchived(ctx context.Context, filter models.InquiryFilter) ([]*models.Inquiry, models.PaginationResult, error)
	GetArchived(ctx context.Context, id string) (*models.Inquiry, error)
	UpdateArchivedStatus(ctx context.Context, id, status string) error
}

type inquiryService struct {
	log         *inquiries.Log
	vehicleRepo repository.VehicleRepository
	inquiryRepo repository.InquiryRepository
	queueClient queue.Client
	logger      *slog.Logger
}

// NewInquiryService creates a new inquiry service. queueClient and
// inquiryRepo may be nil in the local-only deployment; submission then
// persists to the log alone.
func NewInquiryService(
	log *inquiries.Log,
	vehicleRepo repository.VehicleRepository,
	inquiryRepo repository.InquiryRepository,
	queueClient queue.Client,
	logger *slog.Logger,
) InquiryService {
	return &inquiryService{
		log:         log,
		vehicleRepo: vehicleRepo,
		inquiryRepo: inquiryRepo,
		queueClient: queueClient,
		logger:      logger,
	}
}

// Submit validates the request, denormalizes the vehicle's brand and
// model into the record, writes it to the inquiry log and queues a sales
// follow-up. The log write cannot fail (fail-open store); the queue
// publish is best-effort and never fails the submission.
func (s *inquiryService) Submit(ctx context.Context, req *SubmitInquiryRequest) (*SubmitInquiryResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}

	if vehicle.Status == models.VehicleStatusSold {
		return nil, models.ErrConflictWithMsg("vehicle is already sold")
	}

	result := s.log.Submit(ctx, inquiries.SubmitRequest{
		VehicleID:    vehicle.ID,
		VehicleBrand: vehicle.Manufacturer,
		VehicleModel: vehicle.Model,
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		Message:      req.Message,
	})

	if !result.Success {
		errMsg := "inquiry could not be saved"
		if result.Err != nil {
			errMsg = result.Err.Error()
		}
		return &SubmitInquiryResult{Success: false, Error: errMsg}, nil
	}

	if s.queueClient != nil {
		job := &models.FollowUpJob{InquiryID: result.Inquiry.ID}
		if err := s.queueClient.Publish(ctx, job); err != nil {
			// The inquiry is saved; follow-up will be picked up by the
			// next archive sweep instead
			s.logger.Error("failed to queue follow-up",
				slog.String("inquiry_id", result.Inquiry.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.Info("inquiry accepted",
		slog.String("inquiry_id", result.Inquiry.ID),
		slog.String("vehicle_id", vehicle.ID),
		slog.String("manufacturer", vehicle.Manufacturer),
		slog.String("model", vehicle.Model),
	)

	return &SubmitInquiryResult{
		Success:   true,
		InquiryID: result.Inquiry.ID,
	}, nil
}

// List returns the inquiry log, newest first
func (s *inquiryService) List(ctx context.Context) []models.Inquiry {
	return s.log.List(ctx)
}

// ListArchived returns archived inquiries from the sales database
func (s *inquiryService) ListArchived(ctx context.Context, filter models.InquiryFilter) ([]*models.Inquiry, models.PaginationResult, error) {
	if s.inquiryRepo == nil {
		return nil, models.PaginationResult{}, models.ErrInvalidInput("inquiry archive is not configured")
	}

	archived, totalCount, err := s.inquiryRepo.List(ctx, filter)
	if err != nil {
		return nil, models.PaginationResult{}, err
	}

	models.ValidateAndSetDefaults(&filter.Page, &filter.PageSize)
	pagination := models.NewPaginationResult(filter.Page, filter.PageSize, totalCount)

	return archived, pagination, nil
}

// GetArchived returns a single archived inquiry by id
func (s *inquiryService) GetArchived(ctx context.Context, id string) (*models.Inquiry, error) {
	if s.inquiryRepo == nil {
		return nil, models.ErrInvalidInput("inquiry archive is not configured")
	}
	if id == "" {
		return nil, models.ErrInvalidInput("inquiry id is required")
	}

	return s.inquiryRepo.GetByID(ctx, id)
}

// UpdateArchivedStatus moves an archived inquiry between statuses; sales
// closes inquiries here once a deal concludes
func (s *inquiryService) UpdateArchivedStatus(ctx context.Context, id, status string) error {
	if s.inquiryRepo == nil {
		return models.ErrInvalidInput("inquiry archive is not configured")
	}
	if id == "" {
		return models.ErrInvalidInput("inquiry id is required")
	}
	if !models.IsValidInquiryStatus(status) {
		return models.ErrInvalidInput("invalid inquiry status: " + status)
	}

	if err := s.inquiryRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.logger.Info("archived inquiry status updated",
		slog.String("inquiry_id", id),
		slog.String("status", status),
	)

	return nil
}
