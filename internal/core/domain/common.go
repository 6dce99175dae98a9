package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID reference
}

// OperationStatus is the explicit lifecycle state of an external operation.
// Cancellation is terminal; there is no transition out of CANCELLED.
type OperationStatus string

const (
	StatusActive    OperationStatus = "ACTIVE"
	StatusCancelled OperationStatus = "CANCELLED"
)
