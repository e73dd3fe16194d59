package domain

import (
	"fmt"
	"time"
)

// SeedUsers returns the fixed team the store is initialised with.
func SeedUsers() []User {
	return []User{
		{ID: "u1", Name: "Carlos Dono", Email: "admin@agency.com", Role: RoleAdmin, Avatar: "https://picsum.photos/seed/admin/100/100"},
		{ID: "u2", Name: "Mariana Gestora", Email: "manager@agency.com", Role: RoleManager, Avatar: "https://picsum.photos/seed/manager/100/100"},
		{ID: "u3", Name: "João Dev", Email: "dev@agency.com", Role: RoleDeveloper, Avatar: "https://picsum.photos/seed/dev/100/100"},
		{ID: "u4", Name: "Ana Dev", Email: "ana@agency.com", Role: RoleDeveloper, Avatar: "https://picsum.photos/seed/dev2/100/100"},
	}
}

// SeedOrders returns the demo orders, with timestamps placed relative to now.
func SeedOrders(now time.Time) []ServiceOrder {
	ms := func(n int64) time.Duration { return time.Duration(n) * time.Millisecond }
	price := func(v float64) *float64 { return &v }

	return []ServiceOrder{
		{
			ID:           "OS-1001",
			Title:        "E-commerce Redesign",
			Client:       "Loja Fashion",
			Description:  "Full redesign of the home page and checkout.",
			Priority:     PriorityHigh,
			Status:       StatusInProgress,
			Type:         "E-commerce",
			CreatedAt:    now.Add(-ms(100000000)),
			Deadline:     now.Add(ms(500000000)),
			AssignedToID: "u3",
			CreatedBy:    "u2",
			Price:        price(5000),
			Messages: []Message{{
				ID:         "m1",
				SenderID:   "u2",
				SenderName: "Mariana Gestora",
				Content:    "The client needs this urgently!",
				Timestamp:  now.Add(-ms(500000)),
				Type:       MessageText,
			}},
		},
		{
			ID:           "OS-1002",
			Title:        "Event Landing Page",
			Client:       "Tech Summit",
			Description:  "Landing page for lead capture.",
			Priority:     PriorityMedium,
			Status:       StatusTodo,
			Type:         "Landing Page",
			CreatedAt:    now.Add(-ms(20000000)),
			Deadline:     now.Add(ms(200000000)),
			AssignedToID: "u4",
			CreatedBy:    "u1",
			Price:        price(1500),
			Messages:     []Message{},
		},
		{
			ID:           "OS-1003",
			Title:        "Payment API Integration",
			Client:       "SaaS App",
			Description:  "Integrate Stripe in the backend.",
			Priority:     PriorityHigh,
			Status:       StatusDone,
			Type:         "Backend",
			CreatedAt:    now.Add(-ms(600000000)),
			Deadline:     now.Add(-ms(100000000)),
			AssignedToID: "u3",
			CreatedBy:    "u2",
			Price:        price(3000),
			Messages:     []Message{},
		},
	}
}

// ValidateUsers checks that ids and emails are unique and roles are known, so
// that login by email is never ambiguous.
func ValidateUsers(users []User) error {
	ids := make(map[string]struct{}, len(users))
	emails := make(map[string]struct{}, len(users))
	for _, u := range users {
		if !u.Role.Valid() {
			return fmt.Errorf("%w: %q for user %s", ErrInvalidRole, u.Role, u.ID)
		}
		if _, ok := ids[u.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateUser, u.ID)
		}
		if _, ok := emails[u.Email]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateEmail, u.Email)
		}
		ids[u.ID] = struct{}{}
		emails[u.Email] = struct{}{}
	}
	return nil
}
