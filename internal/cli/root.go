// Package cli is the command surface of the tracker client. Every command
// maps to a route; the navigation guard runs before the command body, and
// the eager session check happens once at command start.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/olejniktut/dc-landscaping/internal/config"
	"github.com/olejniktut/dc-landscaping/internal/di"
	"github.com/olejniktut/dc-landscaping/internal/guard"
	"github.com/olejniktut/dc-landscaping/pkg/logger"
)

// App carries the wired container through the command tree
type App struct {
	container *di.Container
	out       io.Writer
	in        io.Reader
}

// NewRootCmd builds the command tree
func NewRootCmd(version string) *cobra.Command {
	app := &App{out: os.Stdout, in: os.Stdin}

	root := &cobra.Command{
		Use:           "dc-landscaping",
		Short:         "Crew time tracking for DC Landscaping",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := logger.Init(&logger.Config{
				Level:       cfg.App.LogLevel,
				ServiceName: cfg.App.Name,
				Development: cfg.IsDevelopment(),
			}); err != nil {
				return err
			}
			container, err := di.NewContainer(cfg, logger.Get())
			if err != nil {
				return err
			}
			app.container = container
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	root.AddCommand(
		app.loginCmd(),
		app.logoutCmd(),
		app.statusCmd(),
		app.trackCmd(),
		app.recordsCmd(),
		app.workersCmd(),
		app.propertiesCmd(),
		app.reportsCmd(),
	)
	return root
}

// enterRoute applies the navigation guard for the route. Authenticated
// routes validate the session against the backend first, so an expired
// token resolves to the login redirect rather than a mid-command failure.
func (a *App) enterRoute(ctx context.Context, route guard.Route) error {
	sess := a.container.Session
	if route.RequiresAuth && sess.IsAuthenticated() {
		sess.CheckAuth(ctx)
	}

	switch guard.Evaluate(route, sess) {
	case guard.RedirectLogin:
		return errors.New("not logged in: run 'dc-landscaping login' first")
	case guard.RedirectHome:
		if route.GuestOnly {
			return errors.New("already logged in: run 'dc-landscaping logout' first")
		}
		return errors.New("administrator access required")
	default:
		return nil
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
