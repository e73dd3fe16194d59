// Package view derives the read models shown to users (dashboard figures,
// kanban columns, labels) from a snapshot of service orders. Everything here
// is a pure function of its inputs except the Poller.
package view

import (
	"time"

	"github.com/samber/lo"

	"github.com/agencyos/order-desk/internal/core/domain"
)

// Stats are the headline figures over a set of orders.
type Stats struct {
	Total      int     `json:"total"`
	Completed  int     `json:"completed"`
	InProgress int     `json:"in_progress"`
	Pending    int     `json:"pending"`
	Delayed    int     `json:"delayed"`
	Revenue    float64 `json:"revenue"`
}

// Aggregate counts orders by status, counts open orders past their deadline
// as of now, and sums the prices that are set.
func Aggregate(orders []domain.ServiceOrder, now time.Time) Stats {
	byStatus := func(s domain.OrderStatus) int {
		return lo.CountBy(orders, func(o domain.ServiceOrder) bool { return o.Status == s })
	}

	return Stats{
		Total:      len(orders),
		Completed:  byStatus(domain.StatusDone),
		InProgress: byStatus(domain.StatusInProgress),
		Pending:    byStatus(domain.StatusTodo),
		Delayed:    lo.CountBy(orders, func(o domain.ServiceOrder) bool { return o.IsDelayed(now) }),
		Revenue:    lo.SumBy(orders, func(o domain.ServiceOrder) float64 { return o.Revenue() }),
	}
}
