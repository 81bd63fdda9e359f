package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"trackr/internal/api"
	"trackr/internal/cli"
	"trackr/internal/config"
	applog "trackr/internal/log"
	"trackr/internal/services"
	"trackr/internal/session"
	"trackr/internal/storage"
)

// app wires the client stack once per invocation.
type app struct {
	cfg        *config.Config
	logger     *applog.Logger
	client     *api.Client
	store      *storage.Store
	sessions   *session.Manager
	categories *services.CategoryService
	resolver   *services.Resolver
	aggregator *services.Aggregator
}

func newApp() *app {
	cli.LoadEnvFile()
	cfg := config.Load()
	logger := cli.SetupLogger(cfg.LogLevel)
	cli.ValidateConfig(logger, cfg)

	client := api.New(cfg.APIBaseURL, &http.Client{Timeout: cfg.HTTPTimeout})
	store := cli.InitStore(logger, cfg.DBPath)
	categories := services.NewCategoryService(client, client)

	return &app{
		cfg:        cfg,
		logger:     logger,
		client:     client,
		store:      store,
		sessions:   session.NewManager(client, store),
		categories: categories,
		resolver:   services.NewResolver(categories),
		aggregator: services.NewAggregator(client, client, store),
	}
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("Failed to close local store", "error", err)
	}
}

// resumeSession rebuilds the session from the persisted token, translating
// the sentinel errors into actionable messages.
func (a *app) resumeSession(ctx context.Context) (*session.Session, error) {
	sess, err := a.sessions.Resume(ctx)
	switch {
	case errors.Is(err, session.ErrNoSession):
		return nil, errors.New("not logged in: run 'trackr login' first")
	case errors.Is(err, session.ErrSessionExpired):
		return nil, errors.New("session expired: run 'trackr login' again")
	case err != nil:
		return nil, err
	}
	return sess, nil
}

// coordinator builds a submission coordinator whose refresh signal re-fetches
// the dashboard so the local last-good cache stays current.
func (a *app) coordinator(sess *session.Session) *services.Coordinator {
	notify := func(ctx context.Context) {
		if _, err := a.aggregator.Refresh(ctx, sess); err != nil {
			a.logger.Warn("Post-save dashboard refresh failed", "error", err)
		}
	}
	return services.NewCoordinator(a.resolver, a.categories, a.client, notify)
}

func main() {
	root := &cobra.Command{
		Use:           "trackr",
		Short:         "Track expenses and income against the Trackr backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newSignupCmd(),
		newDashboardCmd(),
		newAddCmd(),
		newEditCmd(),
		newRemoveCmd(),
		newCategoriesCmd(),
		newProfileCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
