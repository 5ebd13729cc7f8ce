// AngelaMos | 2026
// root.go

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/carterperez-dev/talenthub/internal/audit"
	"github.com/carterperez-dev/talenthub/internal/company"
	"github.com/carterperez-dev/talenthub/internal/config"
	"github.com/carterperez-dev/talenthub/internal/core"
	"github.com/carterperez-dev/talenthub/internal/user"
)

// app holds the connections a single command invocation needs.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	db        *core.Database
	redis     *core.Redis
	roles     *user.RoleStore
	companies company.Repository
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "tierctl",
		Short:        "Operate company tiers, academy premium and application quotas",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to config file")

	open := func(ctx context.Context) (*app, error) {
		return openApp(ctx, configPath)
	}

	root.AddCommand(
		newCascadeCmd(open),
		newQuotaCmd(open),
		newMigrateCmd(open),
	)

	return root
}

func openApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	auditRepo := audit.NewRepository(db.DB)
	userRepo := user.NewRepository(db.DB)

	return &app{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		roles:     user.NewRoleStore(db.DB, userRepo, auditRepo),
		companies: company.NewRepository(db.DB),
	}, nil
}

// connectRedis is best effort; commands fall back to reading settings
// straight from the database.
func (a *app) connectRedis(ctx context.Context) {
	r, err := core.NewRedis(ctx, a.cfg.Redis)
	if err != nil {
		a.logger.Warn("redis unavailable, limit cache disabled", "error", err)
		return
	}
	a.redis = r
}

func (a *app) Close() {
	if a.redis != nil {
		_ = a.redis.Close() //nolint:errcheck // process is exiting
	}
	_ = a.db.Close() //nolint:errcheck // process is exiting
}

// requireAdmin rejects actors who could not perform the change over HTTP.
func (a *app) requireAdmin(ctx context.Context, actorID string) error {
	if actorID == "" {
		return fmt.Errorf("--actor is required")
	}

	role, err := a.roles.GetRole(ctx, actorID)
	if err != nil {
		return fmt.Errorf("look up actor: %w", err)
	}
	if !role.IsAdmin() {
		return fmt.Errorf("actor %s is %s, not admin: %w", actorID, role, core.ErrForbidden)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
