package view

import (
	"time"

	"github.com/samber/lo"

	"github.com/agencyos/order-desk/internal/core/domain"
)

// developerOrderLimit caps the "my orders" list on a developer dashboard.
const developerOrderLimit = 5

const (
	TitleDevelopment = "Development dashboard"
	TitleGeneral     = "General dashboard"
)

// StatusPoint is one slice of the status breakdown chart.
type StatusPoint struct {
	Status domain.OrderStatus `json:"status"`
	Name   string             `json:"name"`
	Value  int                `json:"value"`
}

// OrderSummary is a compact order line with its priority rendered for display.
type OrderSummary struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Client        string             `json:"client"`
	Status        domain.OrderStatus `json:"status"`
	Priority      domain.Priority    `json:"priority"`
	PriorityLabel string             `json:"priority_label"`
	Deadline      time.Time          `json:"deadline"`
}

// Dashboard is the per-user summary screen. Revenue is nil for roles that
// may not see it; MyOrders is only filled for developers.
type Dashboard struct {
	Title        string         `json:"title"`
	Total        int            `json:"total"`
	Completed    int            `json:"completed"`
	InProgress   int            `json:"in_progress"`
	Pending      int            `json:"pending"`
	Delayed      int            `json:"delayed"`
	Revenue      *float64       `json:"revenue,omitempty"`
	StatusSeries []StatusPoint  `json:"status_series"`
	MyOrders     []OrderSummary `json:"my_orders,omitempty"`
}

// BuildDashboard derives the dashboard for actor from the orders actor can
// see.
func BuildDashboard(actor domain.User, orders []domain.ServiceOrder, now time.Time) Dashboard {
	stats := Aggregate(orders, now)

	d := Dashboard{
		Title:      TitleGeneral,
		Total:      stats.Total,
		Completed:  stats.Completed,
		InProgress: stats.InProgress,
		Pending:    stats.Pending,
		Delayed:    stats.Delayed,
		StatusSeries: []StatusPoint{
			{Status: domain.StatusTodo, Name: domain.StatusTodo.Label(), Value: stats.Pending},
			{Status: domain.StatusInProgress, Name: domain.StatusInProgress.Label(), Value: stats.InProgress},
			{Status: domain.StatusDone, Name: domain.StatusDone.Label(), Value: stats.Completed},
		},
	}

	if actor.Role.SeesRevenue() {
		revenue := stats.Revenue
		d.Revenue = &revenue
	}

	if !actor.Role.SeesAllOrders() {
		d.Title = TitleDevelopment
		d.MyOrders = lo.Map(lo.Subset(orders, 0, developerOrderLimit), func(o domain.ServiceOrder, _ int) OrderSummary {
			return Summarize(o)
		})
	}
	return d
}

// Summarize returns the compact form of o.
func Summarize(o domain.ServiceOrder) OrderSummary {
	return OrderSummary{
		ID:            o.ID,
		Title:         o.Title,
		Client:        o.Client,
		Status:        o.Status,
		Priority:      o.Priority,
		PriorityLabel: PriorityLabel(o.Priority),
		Deadline:      o.Deadline,
	}
}
