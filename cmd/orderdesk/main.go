// Command orderdesk runs the order desk HTTP API and offers operator commands
// against the same record store.
//
// @title        Order Desk API
// @version      1.0
// @description  Service order tracking for agency teams: orders, kanban board, dashboards and per-order chat.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agencyos/order-desk/internal/core/domain"
	"github.com/agencyos/order-desk/internal/core/ports"
	"github.com/agencyos/order-desk/internal/core/service"
	"github.com/agencyos/order-desk/internal/core/store"
	"github.com/agencyos/order-desk/internal/infrastructure/db"
	"github.com/agencyos/order-desk/internal/pkg/config"
	"github.com/agencyos/order-desk/pkg/logger"
)

var (
	// Global flags
	email   string
	envFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "orderdesk",
	Short: "Service order tracking for agency teams",
	Long: `orderdesk tracks service orders through TODO, IN_PROGRESS and DONE.

Run "orderdesk serve" for the HTTP API, or use the operator commands
below against the same store. Commands that act on behalf of a team
member take --email.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&email, "email", "e", "", "Email of the acting team member")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file to load before reading configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(messageCmd)
	rootCmd.AddCommand(inspectCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app wires configuration, the slot backend, the record store and the
// services for one command invocation.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	backend *db.Backend
	store   *store.RecordStore
	auth    *service.AuthService
	orders  ports.OrderService
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger.Init(logger.Options{
		Level:   level,
		Pretty:  cfg.IsDevelopment(),
		Service: "orderdesk",
	})
	log := logger.Get()

	backend, err := db.Open(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", cfg.StoreBackend, err)
	}

	rs, err := store.Open(ctx, backend.Slots, store.Options{Logger: log.With().Str("component", "store").Logger()})
	if err != nil {
		_ = backend.Close(ctx)
		return nil, err
	}

	return &app{
		cfg:     cfg,
		log:     log,
		backend: backend,
		store:   rs,
		auth:    service.NewAuthService(rs, log.With().Str("component", "auth").Logger()),
		orders:  service.NewOrderService(rs, log.With().Str("component", "orders").Logger()),
	}, nil
}

func (a *app) Close(ctx context.Context) {
	if err := a.backend.Close(ctx); err != nil {
		a.log.Warn().Err(err).Msg("failed to close store backend")
	}
}

// actor signs in the --email user.
func (a *app) actor(ctx context.Context) (domain.User, error) {
	if email == "" {
		return domain.User{}, errors.New("--email is required for this command")
	}
	return a.auth.Login(ctx, email)
}

// withApp runs fn with a freshly opened app and closes it afterwards.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())
	return fn(ctx, a)
}
