// Command barberctl is the barbershop admin console: it logs into the
// booking backend (or an embedded demo backend) and lists and manages
// bookings, customers, payments, reviews, services and stylists.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/barberbook/admin-console/internal/console"
	"github.com/barberbook/admin-console/internal/core/service"
	"github.com/barberbook/admin-console/internal/infrastructure/credstore"
	"github.com/barberbook/admin-console/internal/infrastructure/rest"
	"github.com/barberbook/admin-console/internal/pkg/config"
	"github.com/barberbook/admin-console/pkg/logger"

	"github.com/rs/zerolog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type rootFlags struct {
	apiBaseURL string
	demo       bool
	logLevel   string
	pretty     bool
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "barberctl",
		Short:         "Admin console for the barbershop booking backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.apiBaseURL, "api", "", "Base URL of the booking API (overrides API_BASE_URL)")
	cmd.PersistentFlags().BoolVar(&flags.demo, "demo", false, "Run against an embedded in-memory demo backend")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.PersistentFlags().BoolVar(&flags.pretty, "pretty", true, "Human-friendly log output")

	cmd.AddCommand(newLoginCommand(flags))
	cmd.AddCommand(newLogoutCommand(flags))
	cmd.AddCommand(newWhoamiCommand(flags))
	cmd.AddCommand(newRefreshCommand(flags))
	cmd.AddCommand(newResourceCommands(flags)...)
	cmd.AddCommand(newDemoCommand())
	return cmd
}

// app wires the client core for one command invocation.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	session  *service.SessionManager
	auth     *service.Authenticator
	screens  *console.Screens
	stopDemo func()
}

// newApp loads config, initialises logging, and assembles the session core.
// With --demo it boots the embedded demo backend on a loopback port and
// retargets the client at it before anything else runs, so a real login
// failure can never be silently masked by a demo fallback.
func newApp(ctx context.Context, flags *rootFlags) (*app, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	if flags.apiBaseURL != "" {
		cfg.APIBaseURL = flags.apiBaseURL
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: flags.pretty})

	a := &app{cfg: cfg, log: log, stopDemo: func() {}}

	if flags.demo {
		baseURL, stopDemo, err := startEmbeddedDemo(ctx, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("start demo backend: %w", err)
		}
		cfg.APIBaseURL = baseURL
		a.stopDemo = stopDemo
	}

	dir, err := cfg.ResolveCredentialsDir()
	if err != nil {
		return nil, err
	}

	client := rest.NewClient(cfg.APIBaseURL, log)
	a.session = service.NewSessionManager(
		rest.NewAuthClient(client),
		credstore.NewFileStore(dir),
		credstore.NewMemoryStore(),
		log,
	)
	a.auth = service.NewAuthenticator(a.session, log)
	a.screens = console.NewScreens(client, a.session.Token, log)
	return a, nil
}

func (a *app) close() {
	a.stopDemo()
}

// requireAuth bootstraps the session and fails when no usable credentials
// are available.
func (a *app) requireAuth(ctx context.Context) error {
	if st := a.auth.Bootstrap(ctx); st != service.StatusAuthenticated {
		return fmt.Errorf("not logged in; run `barberctl login` first")
	}
	return nil
}

// startEmbeddedDemo runs the demo backend in-process on a random loopback
// port and returns its base URL.
func startEmbeddedDemo(ctx context.Context, cfg *config.Config, log zerolog.Logger) (string, func(), error) {
	e, cleanup, err := buildDemoServer(ctx, cfg, log)
	if err != nil {
		return "", nil, err
	}

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		cleanup()
		return "", nil, err
	}
	e.Listener = l
	go func() {
		if err := e.Start(""); err != nil {
			log.Debug().Err(err).Msg("demo server stopped")
		}
	}()

	stop := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)
		cleanup()
	}
	return "http://" + l.Addr().String(), stop, nil
}
