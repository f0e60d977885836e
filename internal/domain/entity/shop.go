// Package entity contains the core business objects of the project.
package entity

import (
	"github.com/google/uuid"
)

// RepairShop is a service provider's storefront: read-mostly reference data
// that customers select (not own) when a request is assigned.
type RepairShop struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Location        string          `json:"location"` // Human-readable district or neighborhood label.
	Contact         string          `json:"contact"`
	ServicesOffered []ApplianceType `json:"services_offered"`
	AvailableSlots  []string        `json:"available_slots"`
	Rating          float64         `json:"rating"`
	ReviewCount     int             `json:"review_count"`
	Latitude        float64         `json:"latitude"`
	Longitude       float64         `json:"longitude"`
}

// Services reports whether the shop offers repairs for the given appliance.
func (s *RepairShop) Services(appliance ApplianceType) bool {
	for _, offered := range s.ServicesOffered {
		if offered == appliance {
			return true
		}
	}

	return false
}
