package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"

	"github.com/agencyos/order-desk/internal/core/domain"
	"github.com/agencyos/order-desk/internal/core/view"
)

const dateLayout = "2006-01-02"

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	return table
}

func heading(w io.Writer, s string) {
	fmt.Fprintln(w, color.New(color.Bold, color.FgCyan).Render(s))
}

func statusColor(s domain.OrderStatus) color.Color {
	switch s {
	case domain.StatusDone:
		return color.FgGreen
	case domain.StatusInProgress:
		return color.FgYellow
	default:
		return color.FgWhite
	}
}

func priorityText(p domain.Priority) string {
	label := view.PriorityLabel(p)
	switch p {
	case domain.PriorityHigh:
		return color.Red.Sprint(label)
	case domain.PriorityLow:
		return color.FgDarkGray.Sprint(label)
	default:
		return label
	}
}

func deadlineText(o domain.ServiceOrder, now time.Time) string {
	s := o.Deadline.Format(dateLayout)
	if o.Status != domain.StatusDone && o.Deadline.Before(now) {
		return color.Red.Sprintf("%s (late)", s)
	}
	return s
}

func renderUser(w io.Writer, u domain.User) {
	fmt.Fprintf(w, "%s %s <%s>\n", color.Green.Sprint("signed in as"), u.Name, u.Email)
	fmt.Fprintf(w, "  id:   %s\n  role: %s\n", u.ID, u.Role.Label())
}

// renderBoard prints one table per kanban column.
func renderBoard(w io.Writer, b view.Board, users func(string) string, now time.Time) {
	for _, col := range b.Columns {
		heading(w, fmt.Sprintf("%s (%d)", color.New(statusColor(col.Status)).Render(col.Label), col.Count))
		if col.Count == 0 {
			fmt.Fprintln(w, "  no orders")
			fmt.Fprintln(w)
			continue
		}
		table := newTable(w, "ID", "Title", "Client", "Priority", "Assignee", "Deadline", "Msgs")
		for _, o := range col.Orders {
			table.Append([]string{
				o.ID,
				o.Title,
				o.Client,
				priorityText(o.Priority),
				users(o.AssignedToID),
				deadlineText(o, now),
				strconv.Itoa(len(o.Messages)),
			})
		}
		table.Render()
		fmt.Fprintln(w)
	}
}

func renderDashboard(w io.Writer, d view.Dashboard) {
	heading(w, d.Title)

	table := newTable(w, "Metric", "Value")
	table.Append([]string{"Total", strconv.Itoa(d.Total)})
	table.Append([]string{"Completed", color.Green.Sprint(d.Completed)})
	table.Append([]string{"In progress", color.Yellow.Sprint(d.InProgress)})
	table.Append([]string{"Pending", strconv.Itoa(d.Pending)})
	table.Append([]string{"Delayed", color.Red.Sprint(d.Delayed)})
	if d.Revenue != nil {
		table.Append([]string{"Revenue", fmt.Sprintf("%.2f", *d.Revenue)})
	}
	table.Render()

	if len(d.MyOrders) == 0 {
		return
	}
	fmt.Fprintln(w)
	heading(w, "My orders")
	orders := newTable(w, "ID", "Title", "Client", "Status", "Priority", "Deadline")
	for _, o := range d.MyOrders {
		orders.Append([]string{
			o.ID,
			o.Title,
			o.Client,
			color.New(statusColor(o.Status)).Render(o.Status.Label()),
			o.PriorityLabel,
			o.Deadline.Format(dateLayout),
		})
	}
	orders.Render()
}

func renderOrder(w io.Writer, o domain.ServiceOrder) {
	fmt.Fprintf(w, "%s %s  %s\n", color.Bold.Sprint(o.ID), o.Title, color.New(statusColor(o.Status)).Render(o.Status.Label()))
	for _, m := range o.Messages {
		line := m.Content
		if m.Type == domain.MessageFile {
			line = fmt.Sprintf("%s [%s]", m.Content, m.FileURL)
		}
		fmt.Fprintf(w, "  %s %s: %s\n", m.Timestamp.Format(time.Kitchen), color.Cyan.Sprint(m.SenderName), line)
	}
}

func renderLogs(w io.Writer, logs []domain.Log) {
	table := newTable(w, "Time", "Order", "User", "Action")
	for _, l := range logs {
		table.Append([]string{l.Timestamp.Format(time.RFC3339), l.OrderID, l.UserID, l.Action})
	}
	table.Render()
}
