package domain

import "time"

// OrderStatus is the kanban column an order sits in. Any status can be
// reached from any other; there is no forward-only state machine.
type OrderStatus string

const (
	StatusTodo       OrderStatus = "TODO"
	StatusInProgress OrderStatus = "IN_PROGRESS"
	StatusDone       OrderStatus = "DONE"
)

// Statuses lists the board columns in display order.
var Statuses = []OrderStatus{StatusTodo, StatusInProgress, StatusDone}

// Valid reports whether s is one of the three board statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Label is the column heading for s.
func (s OrderStatus) Label() string {
	switch s {
	case StatusTodo:
		return "Not started"
	case StatusInProgress:
		return "In progress"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

// Priority ranks how urgent an order is.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// MessageType distinguishes plain chat lines from file attachments.
type MessageType string

const (
	MessageText MessageType = "text"
	MessageFile MessageType = "file"
)

// Message is a single entry in an order's team chat. SenderName is captured
// at send time and never re-resolved.
type Message struct {
	ID         string      `json:"id"`
	SenderID   string      `json:"senderId"`
	SenderName string      `json:"senderName"`
	Content    string      `json:"content"`
	Timestamp  time.Time   `json:"timestamp"`
	Type       MessageType `json:"type"`
	FileURL    string      `json:"fileUrl,omitempty"`
}

// ServiceOrder (OS) is the unit of work tracked on the board.
type ServiceOrder struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Client       string      `json:"client"`
	Description  string      `json:"description"`
	Priority     Priority    `json:"priority"`
	Status       OrderStatus `json:"status"`
	Type         string      `json:"type"`
	CreatedAt    time.Time   `json:"createdAt"`
	Deadline     time.Time   `json:"deadline"`
	AssignedToID string      `json:"assignedToId,omitempty"`
	CreatedBy    string      `json:"createdBy"`
	Messages     []Message   `json:"messages"`
	Price        *float64    `json:"price,omitempty"`
}

// Clone returns a deep copy so callers never share the store's slices or
// pointers.
func (o ServiceOrder) Clone() ServiceOrder {
	c := o
	c.Messages = make([]Message, len(o.Messages))
	copy(c.Messages, o.Messages)
	if o.Price != nil {
		p := *o.Price
		c.Price = &p
	}
	return c
}

// IsAssignedTo reports whether the order belongs to the given developer.
func (o ServiceOrder) IsAssignedTo(userID string) bool {
	return o.AssignedToID != "" && o.AssignedToID == userID
}

// IsDelayed reports whether the order is unfinished past its deadline.
func (o ServiceOrder) IsDelayed(now time.Time) bool {
	return o.Status != StatusDone && o.Deadline.Before(now)
}

// Revenue is the order's price, or zero when it has no financial component.
func (o ServiceOrder) Revenue() float64 {
	if o.Price == nil {
		return 0
	}
	return *o.Price
}

// Log is an append-only audit entry written as a side effect of mutations.
type Log struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"osId"`
	UserID    string    `json:"userId"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}
