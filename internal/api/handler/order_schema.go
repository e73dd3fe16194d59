package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type loginRequest struct {
	Email string `json:"email" validate:"required"`
}

type createOrderRequest struct {
	ID           string     `json:"id"             validate:"omitempty,max=32"`
	Title        string     `json:"title"          validate:"required,max=200"`
	Client       string     `json:"client"         validate:"required,max=200"`
	Description  string     `json:"description"`
	Priority     string     `json:"priority"       validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Type         string     `json:"type"`
	Deadline     *time.Time `json:"deadline"`
	AssignedToID string     `json:"assigned_to_id"`
	Price        *float64   `json:"price"          validate:"omitempty,gte=0"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=TODO IN_PROGRESS DONE"`
}

type sendMessageRequest struct {
	Content string `json:"content"  validate:"required"`
	FileURL string `json:"file_url" validate:"omitempty,url"`
}

// --- Response types ---
// Response-only types owned by the transport layer, kept apart from the
// domain types so the persisted document format and the API can diverge.

type userResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	RoleLabel string `json:"role_label"`
	Avatar    string `json:"avatar"`
}

type messageResponse struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	Type       string    `json:"type"`
	FileURL    string    `json:"file_url,omitempty"`
}

type orderResponse struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Client        string            `json:"client"`
	Description   string            `json:"description"`
	Priority      string            `json:"priority"`
	PriorityLabel string            `json:"priority_label"`
	Status        string            `json:"status"`
	Type          string            `json:"type"`
	CreatedAt     time.Time         `json:"created_at"`
	Deadline      time.Time         `json:"deadline"`
	Delayed       bool              `json:"delayed"`
	AssignedToID  string            `json:"assigned_to_id,omitempty"`
	CreatedBy     string            `json:"created_by"`
	Price         *float64          `json:"price,omitempty"`
	Messages      []messageResponse `json:"messages"`
}

type orderDetailResponse struct {
	orderResponse
	AssigneeName string `json:"assignee_name"`
}

type listOrdersResponse struct {
	Data  []orderResponse `json:"data"`
	Total int             `json:"total"`
}

type listUsersResponse struct {
	Data []userResponse `json:"data"`
}

type columnResponse struct {
	Status string          `json:"status"`
	Label  string          `json:"label"`
	Count  int             `json:"count"`
	Orders []orderResponse `json:"orders"`
}

type boardResponse struct {
	Columns []columnResponse `json:"columns"`
}
