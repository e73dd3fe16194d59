package view

import (
	"github.com/samber/lo"

	"github.com/agencyos/order-desk/internal/core/domain"
)

// Column is one kanban lane.
type Column struct {
	Status domain.OrderStatus    `json:"status"`
	Label  string                `json:"label"`
	Count  int                   `json:"count"`
	Orders []domain.ServiceOrder `json:"orders"`
}

// Board is the kanban view: always three columns, TODO, IN_PROGRESS and DONE
// in that order.
type Board struct {
	Columns []Column `json:"columns"`
}

// BuildBoard partitions orders by status. Orders keep their relative order
// within a column; orders with a status outside the enumeration are left out.
func BuildBoard(orders []domain.ServiceOrder) Board {
	columns := lo.Map(domain.Statuses, func(s domain.OrderStatus, _ int) Column {
		in := lo.Filter(orders, func(o domain.ServiceOrder, _ int) bool { return o.Status == s })
		return Column{Status: s, Label: s.Label(), Count: len(in), Orders: in}
	})
	return Board{Columns: columns}
}

// Column returns the lane for status, or false when status is not a board
// status.
func (b Board) Column(status domain.OrderStatus) (Column, bool) {
	return lo.Find(b.Columns, func(c Column) bool { return c.Status == status })
}
