package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/agencyos/order-desk/internal/core/domain"
	"github.com/agencyos/order-desk/internal/core/ports"
)

var statusCmd = &cobra.Command{
	Use:   "status <order-id> <TODO|IN_PROGRESS|DONE>",
	Short: "Move an order to another status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			actor, err := a.actor(ctx)
			if err != nil {
				return err
			}
			status := domain.OrderStatus(strings.ToUpper(args[1]))
			order, err := a.orders.ChangeStatus(ctx, actor, args[0], status)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s is now %s\n", color.Green.Sprint("ok"), order.ID, order.Status.Label())
			return nil
		})
	},
}

var messageFileURL string

var messageCmd = &cobra.Command{
	Use:   "message <order-id> <text>",
	Short: "Post a message on an order's chat",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			actor, err := a.actor(ctx)
			if err != nil {
				return err
			}
			order, err := a.orders.SendMessage(ctx, actor, args[0], ports.SendMessageInput{
				Content: strings.Join(args[1:], " "),
				FileURL: messageFileURL,
			})
			if err != nil {
				return err
			}
			renderOrder(cmd.OutOrStdout(), order)
			return nil
		})
	},
}

func init() {
	messageCmd.Flags().StringVar(&messageFileURL, "file-url", "", "Attach a file link, making this a file message")
}
