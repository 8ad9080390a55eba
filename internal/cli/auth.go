package cli

import (
	"bufio"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/olejniktut/dc-landscaping/internal/domain"
	"github.com/olejniktut/dc-landscaping/internal/guard"
)

func (a *App) loginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.enterRoute(ctx, guard.RouteLogin); err != nil {
				return err
			}

			reader := bufio.NewReader(a.in)
			if username == "" {
				a.printf("Username: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				username = strings.TrimSpace(line)
			}
			if password == "" {
				a.printf("Password: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				password = strings.TrimSpace(line)
			}

			result := a.container.Session.Login(ctx, username, password)
			if !result.Success {
				return errors.New(result.Error)
			}

			user := a.container.Session.User()
			if user != nil {
				a.printf("Logged in as %s (%s)\n", user.Username, user.Role)
			} else {
				// Token installed but the profile fetch failed; the next
				// command's session check completes or clears it.
				a.printf("Logged in; profile not loaded yet\n")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted if omitted)")
	return cmd
}

func (a *App) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.container.Session.Logout()
			a.printf("Logged out\n")
			return nil
		},
	}
}

func (a *App) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session and timer state",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := a.container.Session
			if !sess.IsAuthenticated() {
				a.printf("Session: not logged in\n")
				return nil
			}

			if user := sess.User(); user != nil {
				a.printf("Session: %s (%s)\n", user.Username, user.Role)
			} else {
				a.printf("Session: token present, profile not loaded\n")
			}
			if exp, ok := sess.ExpiresAt(); ok {
				a.printf("Token expires: %s\n", exp.Local().Format("2006-01-02 15:04:05"))
			}

			eng := a.container.Timer
			state := eng.State()
			a.printf("Timer: %s\n", state)
			if state.Active() {
				work, brk := eng.Elapsed()
				a.printf("  worked %s, break %s\n", domain.FormatElapsed(work), domain.FormatElapsed(brk))
			}
			return nil
		},
	}
}
