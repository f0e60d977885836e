package service

import (
	"context"
)

// RequestStatusEvent represents a repair request lifecycle change published
// for downstream consumers.
type RequestStatusEvent struct {
	RequestID  string `json:"request_id"`          // For distributed tracing
	RepairID   string `json:"repair_id"`           // The repair request that changed
	CustomerID string `json:"customer_id"`         // Owner of the request
	FromStatus string `json:"from_status"`         // Status before the transition
	ToStatus   string `json:"to_status"`           // Status after the transition
	ShopID     string `json:"shop_id,omitempty"`   // Set once a shop has accepted
	OccurredAt string `json:"occurred_at"`         // RFC3339 timestamp of the transition
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishStatusEvent publishes a request status change for async processing
	PublishStatusEvent(ctx context.Context, event *RequestStatusEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
