package main

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/barberbook/admin-console/internal/demo/auth"
	"github.com/barberbook/admin-console/internal/demo/server"
	"github.com/barberbook/admin-console/internal/demo/store"
	"github.com/barberbook/admin-console/internal/demo/tokens"
	"github.com/barberbook/admin-console/internal/pkg/config"
	"github.com/barberbook/admin-console/pkg/logger"
)

// buildDemoServer assembles the demo backend from config: MongoDB and Redis
// when their addresses are set, in-memory stores otherwise. The returned
// cleanup closes whatever external clients were opened.
func buildDemoServer(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*echo.Echo, func(), error) {
	cleanup := func() {}

	var (
		docs     store.Store
		deps     server.Deps
		tokStore tokens.Store
	)

	if cfg.Demo.Mongo.URI != "" {
		client, st, err := store.ConnectMongo(ctx, store.MongoConfig{
			URI:      cfg.Demo.Mongo.URI,
			Database: cfg.Demo.Mongo.Database,
		})
		if err != nil {
			return nil, nil, err
		}
		docs = st
		deps.Mongo = client
		prev := cleanup
		cleanup = func() {
			prev()
			_ = client.Disconnect(context.Background())
		}
		log.Info().Str("database", cfg.Demo.Mongo.Database).Msg("demo store: mongodb")
	} else {
		docs = store.NewMemoryStore()
		log.Debug().Msg("demo store: in-memory")
	}

	if cfg.Demo.Redis.Addr != "" {
		client, st, err := tokens.ConnectRedis(ctx, tokens.RedisConfig{
			Addr: cfg.Demo.Redis.Addr,
			DB:   cfg.Demo.Redis.DB,
		})
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		tokStore = st
		deps.Redis = client
		prev := cleanup
		cleanup = func() {
			prev()
			_ = client.Close()
		}
		log.Info().Str("addr", cfg.Demo.Redis.Addr).Msg("demo tokens: redis")
	} else {
		tokStore = tokens.NewMemoryStore()
	}

	authSvc, err := auth.NewService(
		tokStore,
		cfg.Demo.JWTSecret,
		time.Duration(cfg.Demo.TokenTTLMin)*time.Minute,
		time.Duration(cfg.Demo.RefreshTTLHour)*time.Hour,
		log,
	)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	if err := server.SeedData(ctx, docs); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("seed demo data: %w", err)
	}

	deps.Auth = authSvc
	deps.Store = docs
	deps.JWTSecret = cfg.Demo.JWTSecret
	deps.Log = log
	return server.NewRouter(deps), cleanup, nil
}

// newDemoCommand exposes the demo backend as a standalone server, for pointing
// other consoles (or curl) at it.
func newDemoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Demo backend operations",
		RunE:  func(cmd *cobra.Command, args []string) error { return cmd.Help() },
	}
	cmd.AddCommand(newDemoServeCommand())
	return cmd
}

func newDemoServeCommand() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo backend as a standalone HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load(ctx)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Demo.Port = port
			}
			log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

			e, cleanup, err := buildDemoServer(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer cleanup()

			errCh := make(chan error, 1)
			go func() {
				errCh <- e.Start(":" + cfg.Demo.Port)
			}()
			log.Info().Str("port", cfg.Demo.Port).Msg("demo server listening")

			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return e.Shutdown(shutdownCtx)
			case err := <-errCh:
				return err
			}
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port (overrides DEMO_PORT)")
	return cmd
}
