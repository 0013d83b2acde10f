package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/drivelinehq/showroom-backend/internal/inquiries"
	"github.com/drivelinehq/showroom-backend/internal/models"
	"github.com/drivelinehq/showroom-backend/internal/repository"
)

// FollowUpProcessor processes follow-up jobs from the queue: it alerts
// the sales team about a fresh inquiry, archives the record and moves
// its status from "new" to "contacted". Status transitions never happen
// client-side; this worker is where they live.
type FollowUpProcessor struct {
	log         *inquiries.Log
	inquiryRepo repository.InquiryRepository
	notifier    Notifier
	maxRetries  int
	logger      *slog.Logger
}

// NewFollowUpProcessor creates a new follow-up processor. inquiryRepo may
// be nil when no archive database is configured.
func NewFollowUpProcessor(
	log *inquiries.Log,
	inquiryRepo repository.InquiryRepository,
	notifier Notifier,
	maxRetries int,
	logger *slog.Logger,
) *FollowUpProcessor {
	if maxRetries < 1 {
		maxRetries = 3
	}
	return &FollowUpProcessor{
		log:         log,
		inquiryRepo: inquiryRepo,
		notifier:    notifier,
		maxRetries:  maxRetries,
		logger:      logger,
	}
}

// Process handles a single follow-up job
func (p *FollowUpProcessor) Process(ctx context.Context, job *models.FollowUpJob) error {
	inquiry, err := p.log.GetByID(ctx, job.InquiryID)
	if err != nil {
		p.logger.Error("failed to fetch inquiry",
			slog.String("inquiry_id", job.InquiryID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to fetch inquiry: %w", err)
	}

	if inquiry.Status != models.InquiryStatusNew {
		// Already handled; a requeued job must not re-notify
		p.logger.Info("inquiry already followed up, skipping",
			slog.String("inquiry_id", inquiry.ID),
			slog.String("status", inquiry.Status),
		)
		return nil
	}

	p.logger.Info("processing follow-up",
		slog.String("inquiry_id", inquiry.ID),
		slog.String("vehicle_id", inquiry.VehicleID),
		slog.String("customer_phone", inquiry.Phone),
	)

	var lastErr error
	for attempt := 1; attempt <= p.maxRetries; attempt++ {
		lastErr = p.notifier.Notify(ctx, inquiry)
		if lastErr == nil {
			break
		}
		p.logger.Warn("notification attempt failed",
			slog.String("inquiry_id", inquiry.ID),
			slog.Int("attempt", attempt),
			slog.String("error", lastErr.Error()),
		)
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	if lastErr != nil {
		return fmt.Errorf("failed to notify after %d attempts: %w", p.maxRetries, lastErr)
	}

	if err := p.log.MarkStatus(ctx, inquiry.ID, models.InquiryStatusContacted); err != nil {
		p.logger.Error("failed to update inquiry status",
			slog.String("inquiry_id", inquiry.ID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to update inquiry status: %w", err)
	}

	if p.inquiryRepo != nil {
		archived := *inquiry
		archived.Status = models.InquiryStatusContacted
		if err := p.inquiryRepo.Archive(ctx, &archived); err != nil {
			// Archive is a history mirror; the follow-up itself succeeded
			p.logger.Error("failed to archive inquiry",
				slog.String("inquiry_id", inquiry.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	p.logger.Info("follow-up completed",
		slog.String("inquiry_id", inquiry.ID),
	)

	return nil
}
