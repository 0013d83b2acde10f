package service

import (
	"context"
	"errors"
	"testing"

	"github.com/drivelinehq/showroom-backend/internal/inquiries"
	"github.com/drivelinehq/showroom-backend/internal/kvstore"
	"github.com/drivelinehq/showroom-backend/internal/models"
	"github.com/drivelinehq/showroom-backend/internal/queue"
)

// mockQueueClient records published jobs
type mockQueueClient struct {
	published  []*models.FollowUpJob
	publishErr error
}

func (m *mockQueueClient) Publish(ctx context.Context, job *models.FollowUpJob) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.published = append(m.published, job)
	return nil
}

func (m *mockQueueClient) Consume(ctx context.Context, handler queue.JobHandler, concurrency int) error {
	return nil
}

func (m *mockQueueClient) Close() error { return nil }

func (m *mockQueueClient) Health(ctx context.Context) error { return nil }

// mockInquiryRepository keeps archived inquiries in memory
type mockInquiryRepository struct {
	archived []*models.Inquiry
}

func (m *mockInquiryRepository) Archive(ctx context.Context, inquiry *models.Inquiry) error {
	m.archived = append(m.archived, inquiry)
	return nil
}

func (m *mockInquiryRepository) GetByID(ctx context.Context, id string) (*models.Inquiry, error) {
	for _, i := range m.archived {
		if i.ID == id {
			return i, nil
		}
	}
	return nil, models.ErrNotFoundWithMsg("inquiry not found")
}

func (m *mockInquiryRepository) List(ctx context.Context, filter models.InquiryFilter) ([]*models.Inquiry, int64, error) {
	return m.archived, int64(len(m.archived)), nil
}

func (m *mockInquiryRepository) UpdateStatus(ctx context.Context, id, status string) error {
	for _, i := range m.archived {
		if i.ID == id {
			i.Status = status
			return nil
		}
	}
	return models.ErrNotFoundWithMsg("inquiry not found")
}

func newTestInquiryService(repo *mockVehicleRepository, q *mockQueueClient) InquiryService {
	logger := testLogger()
	store := kvstore.New(kvstore.NewMemoryBackend(), logger)
	log := inquiries.NewLog(store, logger)
	return NewInquiryService(log, repo, nil, q, logger)
}

func TestInquiryService_Submit(t *testing.T) {
	q := &mockQueueClient{}
	svc := newTestInquiryService(&mockVehicleRepository{vehicles: fleet()}, q)

	result, err := svc.Submit(context.Background(), &SubmitInquiryRequest{
		VehicleID: "v1",
		Name:      "Alice",
		Phone:     "+15550100",
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !result.Success || result.InquiryID == "" {
		t.Fatalf("Submit() result = %+v, want success with id", result)
	}

	// Brand/model denormalized from the listing
	got := svc.List(context.Background())
	if len(got) != 1 {
		t.Fatalf("List() returned %d inquiries, want 1", len(got))
	}
	if got[0].VehicleBrand != "Toyota" || got[0].VehicleModel != "Camry" {
		t.Errorf("denormalized fields = %s %s, want Toyota Camry", got[0].VehicleBrand, got[0].VehicleModel)
	}
	if got[0].Status != models.InquiryStatusNew {
		t.Errorf("Status = %s, want new", got[0].Status)
	}

	// Follow-up job queued
	if len(q.published) != 1 || q.published[0].InquiryID != result.InquiryID {
		t.Errorf("queue received %v, want one job for %s", q.published, result.InquiryID)
	}
}

func TestInquiryService_Submit_Validation(t *testing.T) {
	svc := newTestInquiryService(&mockVehicleRepository{vehicles: fleet()}, &mockQueueClient{})

	tests := []struct {
		name string
		req  SubmitInquiryRequest
	}{
		{"missing vehicle id", SubmitInquiryRequest{Name: "A", Phone: "1"}},
		{"missing name", SubmitInquiryRequest{VehicleID: "v1", Phone: "1"}},
		{"missing phone", SubmitInquiryRequest{VehicleID: "v1", Name: "A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Submit(context.Background(), &tt.req); err == nil {
				t.Error("Submit() accepted an invalid request")
			}
		})
	}
}

func TestInquiryService_Submit_UnknownVehicle(t *testing.T) {
	svc := newTestInquiryService(&mockVehicleRepository{vehicles: fleet()}, &mockQueueClient{})

	_, err := svc.Submit(context.Background(), &SubmitInquiryRequest{
		VehicleID: "ghost",
		Name:      "Alice",
		Phone:     "+15550100",
	})
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Submit(unknown vehicle) = %v, want ErrNotFound", err)
	}
}

func TestInquiryService_Submit_SoldVehicle(t *testing.T) {
	vehicles := fleet()
	vehicles[0].Status = models.VehicleStatusSold
	svc := newTestInquiryService(&mockVehicleRepository{vehicles: vehicles}, &mockQueueClient{})

	_, err := svc.Submit(context.Background(), &SubmitInquiryRequest{
		VehicleID: "v1",
		Name:      "Alice",
		Phone:     "+15550100",
	})
	if !errors.Is(err, models.ErrConflict) {
		t.Errorf("Submit(sold vehicle) = %v, want ErrConflict", err)
	}
}

func TestInquiryService_Submit_QueueFailureDoesNotFailSubmission(t *testing.T) {
	q := &mockQueueClient{publishErr: errors.New("queue down")}
	svc := newTestInquiryService(&mockVehicleRepository{vehicles: fleet()}, q)

	result, err := svc.Submit(context.Background(), &SubmitInquiryRequest{
		VehicleID: "v1",
		Name:      "Alice",
		Phone:     "+15550100",
	})
	if err != nil {
		t.Fatalf("Submit() error = %v, queue failure must not fail submission", err)
	}
	if !result.Success {
		t.Error("Submit() reported failure on a queue-only error")
	}
	if got := svc.List(context.Background()); len(got) != 1 {
		t.Errorf("inquiry was not persisted despite queue failure")
	}
}

func newTestInquiryServiceWithArchive(archive *mockInquiryRepository) InquiryService {
	logger := testLogger()
	store := kvstore.New(kvstore.NewMemoryBackend(), logger)
	log := inquiries.NewLog(store, logger)
	return NewInquiryService(log, &mockVehicleRepository{vehicles: fleet()}, archive, nil, logger)
}

func TestInquiryService_GetArchived(t *testing.T) {
	archive := &mockInquiryRepository{archived: []*models.Inquiry{
		{ID: "i1", VehicleID: "v1", Status: models.InquiryStatusContacted},
	}}
	svc := newTestInquiryServiceWithArchive(archive)

	got, err := svc.GetArchived(context.Background(), "i1")
	if err != nil {
		t.Fatalf("GetArchived() error = %v", err)
	}
	if got.VehicleID != "v1" {
		t.Errorf("GetArchived() vehicle = %s, want v1", got.VehicleID)
	}

	if _, err := svc.GetArchived(context.Background(), "ghost"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("GetArchived(ghost) = %v, want ErrNotFound", err)
	}
	if _, err := svc.GetArchived(context.Background(), ""); err == nil {
		t.Error("GetArchived(\"\") accepted an empty id")
	}
}

func TestInquiryService_UpdateArchivedStatus(t *testing.T) {
	archive := &mockInquiryRepository{archived: []*models.Inquiry{
		{ID: "i1", VehicleID: "v1", Status: models.InquiryStatusContacted},
	}}
	svc := newTestInquiryServiceWithArchive(archive)

	if err := svc.UpdateArchivedStatus(context.Background(), "i1", models.InquiryStatusClosed); err != nil {
		t.Fatalf("UpdateArchivedStatus() error = %v", err)
	}
	if archive.archived[0].Status != models.InquiryStatusClosed {
		t.Errorf("Status = %s, want closed", archive.archived[0].Status)
	}

	if err := svc.UpdateArchivedStatus(context.Background(), "i1", "escalated"); err == nil {
		t.Error("UpdateArchivedStatus() accepted an unknown status")
	}
}

func TestInquiryService_ArchiveNotConfigured(t *testing.T) {
	svc := newTestInquiryService(&mockVehicleRepository{vehicles: fleet()}, &mockQueueClient{})

	if _, err := svc.GetArchived(context.Background(), "i1"); err == nil {
		t.Error("GetArchived() succeeded without an archive")
	}
	if err := svc.UpdateArchivedStatus(context.Background(), "i1", models.InquiryStatusClosed); err == nil {
		t.Error("UpdateArchivedStatus() succeeded without an archive")
	}
}

func TestInquiryService_List_NewestFirst(t *testing.T) {
	svc := newTestInquiryService(&mockVehicleRepository{vehicles: fleet()}, &mockQueueClient{})

	a, _ := svc.Submit(context.Background(), &SubmitInquiryRequest{VehicleID: "v1", Name: "A", Phone: "1"})
	b, _ := svc.Submit(context.Background(), &SubmitInquiryRequest{VehicleID: "v2", Name: "B", Phone: "2"})

	got := svc.List(context.Background())
	if len(got) != 2 {
		t.Fatalf("List() returned %d, want 2", len(got))
	}
	if got[0].ID != b.InquiryID || got[1].ID != a.InquiryID {
		t.Errorf("List() order = [%s %s], want [%s %s]", got[0].ID, got[1].ID, b.InquiryID, a.InquiryID)
	}
}
