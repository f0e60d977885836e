// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus is the state of a payment record. Payments never
// auto-transition; an explicit external call drives every edge.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentFailed   PaymentStatus = "failed"
)

// paymentEdges lists the legal transitions: a pending payment settles or
// fails, and only a settled payment can be refunded.
var paymentEdges = map[PaymentStatus][]PaymentStatus{
	PaymentPending: {PaymentPaid, PaymentFailed},
	PaymentPaid:    {PaymentRefunded},
}

// String returns the string representation of the PaymentStatus.
func (s PaymentStatus) String() string {
	return string(s)
}

// IsValid checks if the PaymentStatus is a valid value.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentRefunded, PaymentFailed:
		return true
	default:
		return false
	}
}

// CanTransition reports whether moving from s to next is a legal edge.
func (s PaymentStatus) CanTransition(next PaymentStatus) bool {
	for _, allowed := range paymentEdges[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// PaymentMethod enumerates the supported payment instruments.
type PaymentMethod string

const (
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodDebitCard    PaymentMethod = "debit_card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCash         PaymentMethod = "cash"
)

// IsValid checks if the PaymentMethod is a valid value.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodBankTransfer, PaymentMethodCash:
		return true
	default:
		return false
	}
}

// Payment is the financial record logically tied 1:1 to a RepairRequest.
type Payment struct {
	ID            uuid.UUID     `json:"id"`
	RequestID     uuid.UUID     `json:"request_id"`
	Amount        float64       `json:"amount"`
	Status        PaymentStatus `json:"status"`
	Method        PaymentMethod `json:"method"`
	PaymentDate   *time.Time    `json:"payment_date"` // Stamped when the payment reaches paid.
	TransactionID string        `json:"transaction_id"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
