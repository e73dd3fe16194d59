package view

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/agencyos/order-desk/internal/core/domain"
)

var now = time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

func price(v float64) *float64 { return &v }

func order(id string, status domain.OrderStatus, p *float64, deadline time.Time) domain.ServiceOrder {
	return domain.ServiceOrder{
		ID:       id,
		Title:    "Order " + id,
		Client:   "Client",
		Priority: domain.PriorityMedium,
		Status:   status,
		Deadline: deadline,
		Price:    p,
	}
}

// ---------------------------------------------------------------------------
// Aggregate
// ---------------------------------------------------------------------------

func TestAggregate_CountsAndRevenue(t *testing.T) {
	future := now.Add(24 * time.Hour)
	orders := []domain.ServiceOrder{
		order("a", domain.StatusTodo, price(1500), future),
		order("b", domain.StatusInProgress, price(5000), future),
		order("c", domain.StatusDone, price(3000), future),
	}

	got := Aggregate(orders, now)
	want := Stats{Total: 3, Completed: 1, InProgress: 1, Pending: 1, Delayed: 0, Revenue: 9500}
	if got != want {
		t.Fatalf("unexpected stats:\n got %+v\nwant %+v", got, want)
	}
}

func TestAggregate_DelayedExcludesDone(t *testing.T) {
	past := now.Add(-time.Hour)
	orders := []domain.ServiceOrder{
		order("a", domain.StatusInProgress, nil, past),
		order("b", domain.StatusDone, nil, past),
	}

	if got := Aggregate(orders, now).Delayed; got != 1 {
		t.Fatalf("expected 1 delayed order, got %d", got)
	}
}

func TestAggregate_MissingPriceCountsAsZero(t *testing.T) {
	orders := []domain.ServiceOrder{
		order("a", domain.StatusTodo, nil, now),
		order("b", domain.StatusTodo, price(250.5), now),
	}
	if got := Aggregate(orders, now).Revenue; got != 250.5 {
		t.Fatalf("expected revenue 250.5, got %v", got)
	}
}

func TestAggregate_Empty(t *testing.T) {
	if got := Aggregate(nil, now); got != (Stats{}) {
		t.Fatalf("expected zero stats, got %+v", got)
	}
}

// ---------------------------------------------------------------------------
// Board
// ---------------------------------------------------------------------------

func TestBuildBoard_ThreeColumnsInOrder(t *testing.T) {
	orders := []domain.ServiceOrder{
		order("1", domain.StatusDone, nil, now),
		order("2", domain.StatusTodo, nil, now),
		order("3", domain.StatusDone, nil, now),
		order("4", domain.StatusTodo, nil, now),
	}

	board := BuildBoard(orders)
	if len(board.Columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(board.Columns))
	}

	type lane struct {
		Status domain.OrderStatus
		Label  string
		Count  int
		IDs    []string
	}
	got := make([]lane, len(board.Columns))
	for i, c := range board.Columns {
		ids := []string{}
		for _, o := range c.Orders {
			ids = append(ids, o.ID)
		}
		got[i] = lane{c.Status, c.Label, c.Count, ids}
	}
	want := []lane{
		{domain.StatusTodo, "Not started", 2, []string{"2", "4"}},
		{domain.StatusInProgress, "In progress", 0, []string{}},
		{domain.StatusDone, "Done", 2, []string{"1", "3"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("board mismatch (-want +got):\n%s", diff)
	}
}

func TestBoard_Column(t *testing.T) {
	board := BuildBoard([]domain.ServiceOrder{order("1", domain.StatusInProgress, nil, now)})

	col, ok := board.Column(domain.StatusInProgress)
	if !ok || col.Count != 1 {
		t.Fatalf("expected in-progress column with one order, got %+v (ok=%v)", col, ok)
	}
	if _, ok := board.Column("ARCHIVED"); ok {
		t.Fatal("unknown status should not have a column")
	}
}

// ---------------------------------------------------------------------------
// Priority labels
// ---------------------------------------------------------------------------

func TestPriorityLabel(t *testing.T) {
	tests := []struct {
		in   domain.Priority
		want string
	}{
		{domain.PriorityHigh, "High"},
		{domain.PriorityMedium, "Medium"},
		{domain.PriorityLow, "Low"},
		{"CRITICAL", "CRITICAL"},
	}
	for _, tc := range tests {
		if got := PriorityLabel(tc.in); got != tc.want {
			t.Errorf("PriorityLabel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// ---------------------------------------------------------------------------
// Dashboard
// ---------------------------------------------------------------------------

func TestBuildDashboard_ManagerSeesRevenue(t *testing.T) {
	manager := domain.User{ID: "u2", Role: domain.RoleManager}
	d := BuildDashboard(manager, domain.SeedOrders(now), now)

	if d.Title != TitleGeneral {
		t.Errorf("unexpected title %q", d.Title)
	}
	if d.Revenue == nil || *d.Revenue != 9500 {
		t.Fatalf("expected revenue 9500, got %v", d.Revenue)
	}
	if d.MyOrders != nil {
		t.Errorf("managers get no personal order list")
	}

	wantSeries := []StatusPoint{
		{Status: domain.StatusTodo, Name: "Not started", Value: 1},
		{Status: domain.StatusInProgress, Name: "In progress", Value: 1},
		{Status: domain.StatusDone, Name: "Done", Value: 1},
	}
	if diff := cmp.Diff(wantSeries, d.StatusSeries); diff != "" {
		t.Errorf("status series mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildDashboard_DeveloperWithoutRevenue(t *testing.T) {
	dev := domain.User{ID: "u3", Role: domain.RoleDeveloper}
	var orders []domain.ServiceOrder
	for i := 0; i < 7; i++ {
		o := order(string(rune('a'+i)), domain.StatusTodo, price(100), now.Add(time.Hour))
		o.Priority = domain.PriorityHigh
		orders = append(orders, o)
	}

	d := BuildDashboard(dev, orders, now)

	if d.Title != TitleDevelopment {
		t.Errorf("unexpected title %q", d.Title)
	}
	if d.Revenue != nil {
		t.Fatalf("developers must not see revenue, got %v", *d.Revenue)
	}
	if d.Total != 7 {
		t.Errorf("expected total 7, got %d", d.Total)
	}
	if len(d.MyOrders) != 5 {
		t.Fatalf("expected the first 5 orders, got %d", len(d.MyOrders))
	}
	if d.MyOrders[0].ID != "a" || d.MyOrders[4].ID != "e" {
		t.Errorf("personal list not in source order: %+v", d.MyOrders)
	}
	if d.MyOrders[0].PriorityLabel != "High" {
		t.Errorf("expected High label, got %q", d.MyOrders[0].PriorityLabel)
	}
}
