package models

import "fmt"

// Inquiry status constants
const (
	InquiryStatusNew       = "new"
	InquiryStatusContacted = "contacted"
	InquiryStatusClosed    = "closed"
)

// Inquiry represents a customer's expressed interest in a specific vehicle,
// captured for sales follow-up. The brand and model are denormalized at
// submission time so the record stays displayable if the listing goes away.
type Inquiry struct {
	ID           string `json:"id"`
	VehicleID    string `json:"vehicle_id"`
	VehicleBrand string `json:"vehicle_brand"`
	VehicleModel string `json:"vehicle_model"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
	Message      string `json:"message,omitempty"`
	CreatedAt    string `json:"created_at"`
	Status       string `json:"status"`
}

// InquiryFilter holds filtering options for listing archived inquiries
type InquiryFilter struct {
	VehicleID string
	Status    string
	Page      int
	PageSize  int
}

// Validate performs validation on inquiry data
func (i *Inquiry) Validate() error {
	if i.VehicleID == "" {
		return ErrInvalidInput("vehicle_id is required")
	}
	if i.Name == "" {
		return ErrInvalidInput("name is required")
	}
	if i.Phone == "" {
		return ErrInvalidInput("phone is required")
	}
	if i.Status != "" && !IsValidInquiryStatus(i.Status) {
		return ErrInvalidInput(fmt.Sprintf("invalid status: %s", i.Status))
	}
	return nil
}

// IsValidInquiryStatus checks if the inquiry status is valid
func IsValidInquiryStatus(status string) bool {
	switch status {
	case InquiryStatusNew, InquiryStatusContacted, InquiryStatusClosed:
		return true
	default:
		return false
	}
}

// FollowUpJob is the queue payload telling the worker which inquiry
// needs a sales follow-up
type FollowUpJob struct {
	InquiryID string `json:"inquiry_id"`
}
