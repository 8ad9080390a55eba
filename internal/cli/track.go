package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/olejniktut/dc-landscaping/internal/domain"
	"github.com/olejniktut/dc-landscaping/internal/guard"
)

func (a *App) trackCmd() *cobra.Command {
	var propertyID int64
	var workerIDs []int64

	cmd := &cobra.Command{
		Use:   "track",
		Short: "Run a live work timer",
		Long: `Starts a timer for the given property and workers and keeps it in the
foreground. Commands on stdin: pause, resume, stop.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.enterRoute(ctx, guard.RouteDashboard); err != nil {
				return err
			}

			if len(workerIDs) == 0 {
				workerIDs = a.container.Store.LastWorkers()
			}

			eng := a.container.Timer
			if result := eng.Start(ctx, propertyID, workerIDs); !result.Success {
				return errors.New(result.Error)
			}
			a.printf("Timer started (property %d, workers %v)\n", propertyID, workerIDs)
			a.printf("Commands: pause | resume | stop\n")

			// stdin commands arrive on their own goroutine so the display
			// keeps updating between keystrokes
			commands := make(chan string)
			go func() {
				defer close(commands)
				scanner := bufio.NewScanner(a.in)
				for scanner.Scan() {
					commands <- strings.ToLower(strings.TrimSpace(scanner.Text()))
				}
			}()

			display := time.NewTicker(time.Second)
			defer display.Stop()

			for {
				select {
				case <-display.C:
					state := eng.State()
					if !state.Active() {
						// Forced teardown, e.g. the session expired mid-run
						return errors.New("timer stopped: session no longer valid")
					}
					work, brk := eng.Elapsed()
					a.printf("\r[%s] work %s  break %s ", state, domain.FormatElapsed(work), domain.FormatElapsed(brk))

				case line, ok := <-commands:
					if !ok {
						a.printf("\nstdin closed; timer keeps running until stopped\n")
						return a.stopTimer(cmd)
					}
					switch line {
					case "pause", "resume", "p", "r":
						if err := eng.TogglePause(); err != nil {
							a.printf("\n%v\n", err)
						}
					case "stop", "s":
						a.printf("\n")
						return a.stopTimer(cmd)
					case "":
					default:
						a.printf("\nunknown command %q (pause | resume | stop)\n", line)
					}
				}
			}
		},
	}

	cmd.Flags().Int64Var(&propertyID, "property", 0, "property id to track against")
	cmd.Flags().Int64SliceVar(&workerIDs, "workers", nil, "worker ids (defaults to the last used set)")
	_ = cmd.MarkFlagRequired("property")
	return cmd
}

func (a *App) stopTimer(cmd *cobra.Command) error {
	ctx := cmd.Context()
	eng := a.container.Timer

	work, brk := eng.Elapsed()
	if result := eng.Stop(ctx, nil); !result.Success {
		return errors.New(result.Error)
	}
	a.printf("Stopped: worked %s, break %s (%d break minutes recorded)\n",
		domain.FormatElapsed(work), domain.FormatElapsed(brk), brk/60)

	today := a.container.Records.Today()
	if len(today) > 0 {
		a.printf("Today's records:\n")
		a.printRecords(today)
	}
	return nil
}

func (a *App) printRecords(list []domain.TimeRecord) {
	for _, r := range list {
		property := fmt.Sprintf("property %d", r.PropertyID)
		if r.Property != nil {
			property = r.Property.Name
		}
		end := "in progress"
		if r.EndTime != nil {
			end = *r.EndTime
		}
		a.printf("  #%d  %s  %s - %s  break %dm  workers %d\n",
			r.ID, property, r.StartTime, end, r.BreakMinutes, len(r.Workers))
	}
}
