// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus is the lifecycle state of a RepairRequest. The lifecycle is
// linear with a single cancellation branch: every non-terminal state may move
// to cancelled, everything else follows the successor table below.
type RequestStatus string

const (
	RequestPending         RequestStatus = "pending"
	RequestAccepted        RequestStatus = "accepted"
	RequestInRepair        RequestStatus = "in_repair"
	RequestRepaired        RequestStatus = "repaired"
	RequestPickupScheduled RequestStatus = "pickup_scheduled"
	RequestInTransit       RequestStatus = "in_transit"
	RequestDelivered       RequestStatus = "delivered"
	RequestCompleted       RequestStatus = "completed"
	RequestCancelled       RequestStatus = "cancelled"
)

// requestSuccessors maps each status to its single legal forward successor.
// Terminal states have no entry.
var requestSuccessors = map[RequestStatus]RequestStatus{
	RequestPending:         RequestAccepted,
	RequestAccepted:        RequestInRepair,
	RequestInRepair:        RequestRepaired,
	RequestRepaired:        RequestPickupScheduled,
	RequestPickupScheduled: RequestInTransit,
	RequestInTransit:       RequestDelivered,
	RequestDelivered:       RequestCompleted,
}

// String returns the string representation of the RequestStatus.
func (s RequestStatus) String() string {
	return string(s)
}

// IsValid checks if the RequestStatus is a valid value.
func (s RequestStatus) IsValid() bool {
	if _, ok := requestSuccessors[s]; ok {
		return true
	}

	return s == RequestCompleted || s == RequestCancelled
}

// IsTerminal reports whether the status permits no further transitions.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestCompleted || s == RequestCancelled
}

// CanTransition reports whether moving from s to next is a legal edge:
// either the single forward successor, or cancellation from any
// non-terminal state.
func (s RequestStatus) CanTransition(next RequestStatus) bool {
	if next == RequestCancelled {
		return !s.IsTerminal()
	}

	return requestSuccessors[s] == next
}

// RepairRequest is the central aggregate: a customer's submitted
// appliance-repair job tracked through the lifecycle above. Requests are
// never physically deleted; terminal records are retained for history.
type RepairRequest struct {
	ID                uuid.UUID     `json:"id"`
	CustomerID        uuid.UUID     `json:"customer_id"`
	CustomerName      string        `json:"customer_name"`
	CustomerPhone     string        `json:"customer_phone"`
	ApplianceType     ApplianceType `json:"appliance_type"`
	Brand             string        `json:"brand"`
	IssueDescription  string        `json:"issue_description"`
	Address           string        `json:"address"`
	PreferredDateTime time.Time     `json:"preferred_date_time"`
	AssignedShopID    *uuid.UUID    `json:"assigned_shop_id"`   // Non-nil only once status >= accepted.
	AssignedShopName  *string       `json:"assigned_shop_name"` // Denormalized for display, set together with AssignedShopID.
	Status            RequestStatus `json:"status"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}
