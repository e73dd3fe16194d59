package view

import "github.com/agencyos/order-desk/internal/core/domain"

// PriorityLabel returns the display text of a priority. Values outside the
// enumeration are returned unchanged.
func PriorityLabel(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return "High"
	case domain.PriorityMedium:
		return "Medium"
	case domain.PriorityLow:
		return "Low"
	default:
		return string(p)
	}
}
