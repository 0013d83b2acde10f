package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/drivelinehq/showroom-backend/internal/models"
)

// InquiryRepository archives inquiries for the sales dashboard. The
// client-facing inquiry log lives in the kvstore; the worker copies
// records here once follow-up starts so sales history survives a store
// clear.
type InquiryRepository interface {
	Archive(ctx context.Context, inquiry *models.Inquiry) error
	GetByID(ctx context.Context, id string) (*models.Inquiry, error)
	List(ctx context.Context, filter models.InquiryFilter) ([]*models.Inquiry, int64, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// inquiryRepository implements InquiryRepository using PostgreSQL
type inquiryRepository struct {
	db *sql.DB
}

// NewInquiryRepository creates a new inquiry repository
func NewInquiryRepository(db *sql.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

// Archive upserts an inquiry into the archive
func (r *inquiryRepository) Archive(ctx context.Context, inquiry *models.Inquiry) error {
	if err := inquiry.Validate(); err != nil {
		return err
	}

	createdAt, err := time.Parse(time.RFC3339, inquiry.CreatedAt)
	if err != nil {
		return models.ErrInvalidInput(fmt.Sprintf("invalid created_at timestamp: %s", inquiry.CreatedAt))
	}

	query := `
		INSERT INTO inquiries (id, vehicle_id, vehicle_brand, vehicle_model, name, phone, email, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status`

	_, err = r.db.ExecContext(
		ctx,
		query,
		inquiry.ID,
		inquiry.VehicleID,
		inquiry.VehicleBrand,
		inquiry.VehicleModel,
		inquiry.Name,
		inquiry.Phone,
		inquiry.Email,
		inquiry.Message,
		inquiry.Status,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to archive inquiry: %w", err)
	}

	return nil
}

// GetByID retrieves an archived inquiry
func (r *inquiryRepository) GetByID(ctx context.Context, id string) (*models.Inquiry, error) {
	query := `
		SELECT id, vehicle_id, vehicle_brand, vehicle_model, name, phone, email, message, status, created_at
		FROM inquiries
		WHERE id = $1`

	inquiry := &models.Inquiry{}
	var createdAt time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&inquiry.ID,
		&inquiry.VehicleID,
		&inquiry.VehicleBrand,
		&inquiry.VehicleModel,
		&inquiry.Name,
		&inquiry.Phone,
		&inquiry.Email,
		&inquiry.Message,
		&inquiry.Status,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("inquiry %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inquiry: %w", err)
	}

	inquiry.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	return inquiry, nil
}

// List retrieves archived inquiries newest-first with optional filters
func (r *inquiryRepository) List(ctx context.Context, filter models.InquiryFilter) ([]*models.Inquiry, int64, error) {
	models.ValidateAndSetDefaults(&filter.Page, &filter.PageSize)

	where := " WHERE 1=1"
	args := []any{}
	argNum := 1

	if filter.VehicleID != "" {
		where += fmt.Sprintf(" AND vehicle_id = $%d", argNum)
		args = append(args, filter.VehicleID)
		argNum++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, filter.Status)
		argNum++
	}

	var totalCount int64
	countQuery := "SELECT COUNT(*) FROM inquiries" + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count inquiries: %w", err)
	}

	query := `
		SELECT id, vehicle_id, vehicle_brand, vehicle_model, name, phone, email, message, status, created_at
		FROM inquiries` + where + fmt.Sprintf(`
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, argNum, argNum+1)

	args = append(args, filter.PageSize, models.CalculateOffset(filter.Page, filter.PageSize))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list inquiries: %w", err)
	}
	defer rows.Close()

	var inquiries []*models.Inquiry
	for rows.Next() {
		inquiry := &models.Inquiry{}
		var createdAt time.Time
		err := rows.Scan(
			&inquiry.ID,
			&inquiry.VehicleID,
			&inquiry.VehicleBrand,
			&inquiry.VehicleModel,
			&inquiry.Name,
			&inquiry.Phone,
			&inquiry.Email,
			&inquiry.Message,
			&inquiry.Status,
			&createdAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan inquiry: %w", err)
		}
		inquiry.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		inquiries = append(inquiries, inquiry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate inquiries: %w", err)
	}

	return inquiries, totalCount, nil
}

// UpdateStatus updates the status of an archived inquiry
func (r *inquiryRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if !models.IsValidInquiryStatus(status) {
		return models.ErrInvalidInput(fmt.Sprintf("invalid inquiry status: %s", status))
	}

	query := `UPDATE inquiries SET status = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update inquiry status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return models.ErrNotFoundWithMsg(fmt.Sprintf("inquiry %s not found", id))
	}

	return nil
}
