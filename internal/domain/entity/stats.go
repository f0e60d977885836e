// Package entity contains the core business objects of the project.
package entity

// PlatformStats is a pure projection over users, requests and payments.
// It is never stored; callers recompute it from the current collections,
// so the derivation must be idempotent and order-independent.
type PlatformStats struct {
	TotalUsers            int     `json:"total_users"`
	TotalCustomers        int     `json:"total_customers"`
	TotalServiceProviders int     `json:"total_service_providers"`
	TotalDeliveryPartners int     `json:"total_delivery_partners"`
	TotalRequests         int     `json:"total_requests"`
	PendingRequests       int     `json:"pending_requests"`
	ActiveRequests        int     `json:"active_requests"` // Requests in any non-terminal status.
	CompletedRequests     int     `json:"completed_requests"`
	TotalEarnings         float64 `json:"total_earnings"` // Sum of paid payments only.
}

// ComputePlatformStats derives the platform-wide counters from full
// collection snapshots.
func ComputePlatformStats(users []*User, requests []*RepairRequest, payments []*Payment) PlatformStats {
	stats := PlatformStats{TotalUsers: len(users), TotalRequests: len(requests)}

	for _, user := range users {
		switch user.Role {
		case RoleCustomer:
			stats.TotalCustomers++
		case RoleServiceProvider:
			stats.TotalServiceProviders++
		case RoleDeliveryPartner:
			stats.TotalDeliveryPartners++
		}
	}

	for _, request := range requests {
		switch {
		case request.Status == RequestPending:
			stats.PendingRequests++
		case request.Status == RequestCompleted:
			stats.CompletedRequests++
		}
		if !request.Status.IsTerminal() {
			stats.ActiveRequests++
		}
	}

	for _, payment := range payments {
		if payment.Status == PaymentPaid {
			stats.TotalEarnings += payment.Amount
		}
	}

	return stats
}
