package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/hugo-lorenzo-mato/wardenctl/internal/adminapi"
	"github.com/hugo-lorenzo-mato/wardenctl/internal/audit"
	"github.com/hugo-lorenzo-mato/wardenctl/internal/config"
	"github.com/hugo-lorenzo-mato/wardenctl/internal/core"
	"github.com/hugo-lorenzo-mato/wardenctl/internal/logging"
)

// app bundles the pieces every subcommand needs: loaded client
// settings, the sanitizing logger, the admin API client and, when
// enabled, the local audit store.
type app struct {
	cfg    *config.Config
	logger *logging.Logger
	client *adminapi.Client
	store  *audit.Store
}

func newApp() (*app, error) {
	loader := config.NewLoaderWithViper(viper.GetViper())
	if cfgFile != "" {
		loader = loader.WithConfigFile(cfgFile)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})

	client := adminapi.New(cfg.Server.URL, cfg.Server.Token,
		adminapi.WithLogger(logger.Logger))

	a := &app{cfg: cfg, logger: logger, client: client}
	if cfg.Audit.Enabled {
		store, err := audit.Open(cfg.Audit.Path)
		if err != nil {
			// The audit log is best-effort on the CLI path.
			logger.Warn("audit log unavailable", "error", err)
		} else {
			a.store = store
		}
	}
	return a, nil
}

func (a *app) close() {
	if a.store != nil {
		_ = a.store.Close()
	}
}

func (a *app) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), a.cfg.Timeout)
}

// finish handles a command outcome uniformly: record it in the audit
// log, refetch the admin view so later output reflects the new server
// state, and turn failures into errors.
func (a *app) finish(ctx context.Context, out adminapi.Outcome) error {
	if a.store != nil {
		if err := a.store.Record(ctx, out); err != nil {
			a.logger.Warn("recording audit entry", "error", err)
		}
	}
	a.reloadView(ctx)
	if !out.Success {
		return core.ErrCommand(core.CodeCommandRejected,
			fmt.Sprintf("%s: %s", out.Endpoint, out.Detail))
	}
	return nil
}

// reloadView refetches users and the config schema after a command.
// Failures only log: the command itself already succeeded or failed on
// its own terms.
func (a *app) reloadView(ctx context.Context) {
	if _, err := a.client.Users(ctx); err != nil {
		a.logger.Warn("refreshing user list", "error", err)
	}
	s, err := a.client.ConfigSchema(ctx)
	if err != nil {
		a.logger.Warn("refreshing config schema", "error", err)
		return
	}
	warnings, err := s.Validate()
	if err != nil {
		a.logger.Warn("validating config schema", "error", err)
	}
	for _, w := range warnings {
		a.logger.Warn("config schema", "detail", w)
	}
}

// findUser resolves an email address to a server-side user.
func (a *app) findUser(ctx context.Context, email string) (adminapi.User, error) {
	users, err := a.client.Users(ctx)
	if err != nil {
		return adminapi.User{}, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return adminapi.User{}, fmt.Errorf("no user with email %q", email)
}
