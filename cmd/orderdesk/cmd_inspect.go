package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agencyos/order-desk/internal/core/domain"
	"github.com/agencyos/order-desk/internal/core/store"
)

// supportUser reads every order regardless of assignment.
var supportUser = domain.User{ID: "support", Name: "support", Role: domain.RoleAdmin}

// keyLister is implemented by slot backends that can enumerate their keys.
type keyLister interface {
	Keys(ctx context.Context) ([]string, error)
}

var inspectRaw bool

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Dump the stored order and audit log slots",
	Long: `Print the persisted state for support purposes. By default orders are
shown as a board-independent list and the audit log as a table; --raw
prints the two slots as indented JSON exactly as stored.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			out := cmd.OutOrStdout()

			if kl, ok := a.backend.Slots.(keyLister); ok {
				keys, err := kl.Keys(ctx)
				if err != nil {
					return fmt.Errorf("list slots: %w", err)
				}
				heading(out, fmt.Sprintf("%s slots: %v", a.backend.Name, keys))
				fmt.Fprintln(out)
			}

			if inspectRaw {
				return dumpSlots(ctx, out, a)
			}

			heading(out, "Orders")
			table := newTable(out, "ID", "Title", "Status", "Priority", "Assignee", "Created by", "Msgs")
			for _, o := range a.store.ListOrders(supportUser) {
				table.Append([]string{
					o.ID,
					o.Title,
					o.Status.Label(),
					priorityText(o.Priority),
					a.assigneeName(o.AssignedToID),
					o.CreatedBy,
					fmt.Sprint(len(o.Messages)),
				})
			}
			table.Render()
			fmt.Fprintln(out)

			heading(out, "Audit log")
			renderLogs(out, a.store.Logs())
			return nil
		})
	},
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectRaw, "raw", false, "Print the stored JSON slots")
}

func dumpSlots(ctx context.Context, w io.Writer, a *app) error {
	for _, key := range []string{store.SlotOrders, store.SlotLogs} {
		raw, err := a.backend.Slots.Get(ctx, key)
		if err != nil {
			fmt.Fprintf(w, "%s: %v\n", key, err)
			continue
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("decode slot %s: %w", key, err)
		}
		pretty, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s:\n%s\n\n", key, pretty)
	}
	return nil
}
