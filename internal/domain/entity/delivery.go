// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryStatus is the lifecycle state of a Delivery. It is independent of,
// but correlated with, the parent request's status.
type DeliveryStatus string

const (
	DeliveryPending         DeliveryStatus = "pending"
	DeliveryPickupScheduled DeliveryStatus = "pickup_scheduled"
	DeliveryPickedUp        DeliveryStatus = "picked_up"
	DeliveryInTransit       DeliveryStatus = "in_transit"
	DeliveryDelivered       DeliveryStatus = "delivered"
)

// deliverySuccessors maps each delivery status to its legal successor.
var deliverySuccessors = map[DeliveryStatus]DeliveryStatus{
	DeliveryPending:         DeliveryPickupScheduled,
	DeliveryPickupScheduled: DeliveryPickedUp,
	DeliveryPickedUp:        DeliveryInTransit,
	DeliveryInTransit:       DeliveryDelivered,
}

// String returns the string representation of the DeliveryStatus.
func (s DeliveryStatus) String() string {
	return string(s)
}

// IsValid checks if the DeliveryStatus is a valid value.
func (s DeliveryStatus) IsValid() bool {
	if _, ok := deliverySuccessors[s]; ok {
		return true
	}

	return s == DeliveryDelivered
}

// CanTransition reports whether moving from s to next is a legal edge.
// The delivery machine is strictly linear and has no cancellation branch;
// when the parent request is cancelled the request side just stops
// mirroring delivery progress.
func (s DeliveryStatus) CanTransition(next DeliveryStatus) bool {
	return deliverySuccessors[s] == next
}

// Delivery is the pickup/transport sub-task spawned exactly once per repair
// request, at the moment a shop is assigned.
type Delivery struct {
	ID                  uuid.UUID      `json:"id"`
	RequestID           uuid.UUID      `json:"request_id"`
	AssignedPartnerID   *uuid.UUID     `json:"assigned_partner_id"`
	AssignedPartnerName *string        `json:"assigned_partner_name"`
	PickupTime          *time.Time     `json:"pickup_time"` // Stamped when the delivery reaches picked_up.
	Status              DeliveryStatus `json:"status"`
	TrackingDetails     string         `json:"tracking_details"`
	DeliveryFee         float64        `json:"delivery_fee"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}
