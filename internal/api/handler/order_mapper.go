package handler

import (
	"time"

	"github.com/samber/lo"

	"github.com/agencyos/order-desk/internal/core/domain"
	"github.com/agencyos/order-desk/internal/core/ports"
	"github.com/agencyos/order-desk/internal/core/view"
)

// --- Request → Service input ---

func toCreateOrderInput(req createOrderRequest) ports.CreateOrderInput {
	in := ports.CreateOrderInput{
		ID:           req.ID,
		Title:        req.Title,
		Client:       req.Client,
		Description:  req.Description,
		Priority:     domain.Priority(req.Priority),
		Type:         req.Type,
		AssignedToID: req.AssignedToID,
		Price:        req.Price,
	}
	if req.Deadline != nil {
		in.Deadline = *req.Deadline
	}
	return in
}

// --- Domain → Response ---

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		RoleLabel: u.Role.Label(),
		Avatar:    u.Avatar,
	}
}

func toUserResponses(users []domain.User) []userResponse {
	return lo.Map(users, func(u domain.User, _ int) userResponse { return toUserResponse(u) })
}

// toOrderResponse renders o for viewer. Prices are withheld from roles that
// may not see revenue.
func toOrderResponse(o domain.ServiceOrder, viewer domain.User, now time.Time) orderResponse {
	resp := orderResponse{
		ID:            o.ID,
		Title:         o.Title,
		Client:        o.Client,
		Description:   o.Description,
		Priority:      string(o.Priority),
		PriorityLabel: view.PriorityLabel(o.Priority),
		Status:        string(o.Status),
		Type:          o.Type,
		CreatedAt:     o.CreatedAt,
		Deadline:      o.Deadline,
		Delayed:       o.IsDelayed(now),
		AssignedToID:  o.AssignedToID,
		CreatedBy:     o.CreatedBy,
		Messages: lo.Map(o.Messages, func(m domain.Message, _ int) messageResponse {
			return messageResponse{
				ID:         m.ID,
				SenderID:   m.SenderID,
				SenderName: m.SenderName,
				Content:    m.Content,
				Timestamp:  m.Timestamp,
				Type:       string(m.Type),
				FileURL:    m.FileURL,
			}
		}),
	}
	if viewer.Role.SeesRevenue() {
		resp.Price = o.Price
	}
	return resp
}

func toOrderResponses(orders []domain.ServiceOrder, viewer domain.User, now time.Time) []orderResponse {
	return lo.Map(orders, func(o domain.ServiceOrder, _ int) orderResponse { return toOrderResponse(o, viewer, now) })
}

func toBoardResponse(b view.Board, viewer domain.User, now time.Time) boardResponse {
	return boardResponse{
		Columns: lo.Map(b.Columns, func(col view.Column, _ int) columnResponse {
			return columnResponse{
				Status: string(col.Status),
				Label:  col.Label,
				Count:  col.Count,
				Orders: toOrderResponses(col.Orders, viewer, now),
			}
		}),
	}
}
