package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/agencyos/order-desk/internal/core/domain"
	"github.com/agencyos/order-desk/internal/core/view"
)

// clearScreen moves the cursor home and wipes the terminal.
const clearScreen = "\033[H\033[2J"

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Look up a team member by email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			u, err := a.auth.Login(ctx, args[0])
			if err != nil {
				return err
			}
			renderUser(cmd.OutOrStdout(), u)
			return nil
		})
	},
}

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Print the kanban board visible to --email",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			actor, err := a.actor(ctx)
			if err != nil {
				return err
			}
			printBoard(cmd.OutOrStdout(), a, a.orders.ListOrders(ctx, actor))
			return nil
		})
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print the dashboard of --email",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			actor, err := a.actor(ctx)
			if err != nil {
				return err
			}
			orders := a.orders.ListOrders(ctx, actor)
			renderDashboard(cmd.OutOrStdout(), view.BuildDashboard(actor, orders, time.Now().UTC()))
			return nil
		})
	},
}

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Redraw the board every poll interval until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			actor, err := a.actor(ctx)
			if err != nil {
				return err
			}

			interval := watchInterval
			if interval <= 0 {
				interval = a.cfg.PollInterval
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			poller := view.NewPoller(interval,
				func(ctx context.Context) []domain.ServiceOrder { return a.orders.ListOrders(ctx, actor) },
				func(orders []domain.ServiceOrder) {
					fmt.Fprint(out, clearScreen)
					fmt.Fprintf(out, "%s  refreshed %s, every %s\n\n", actor.Name, time.Now().Format(time.TimeOnly), interval)
					printBoard(out, a, orders)
				},
				a.log,
			)
			poller.Start(ctx)
			defer poller.Stop()

			<-ctx.Done()
			return nil
		})
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "Refresh interval (defaults to POLL_INTERVAL)")
}

func printBoard(w io.Writer, a *app, orders []domain.ServiceOrder) {
	renderBoard(w, view.BuildBoard(orders), a.assigneeName, time.Now().UTC())
}

func (a *app) assigneeName(id string) string {
	if id == "" {
		return "Unassigned"
	}
	if u, ok := a.store.FindUser(id); ok {
		return u.Name
	}
	return id
}
