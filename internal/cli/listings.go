package cli

import (
	"github.com/spf13/cobra"

	"github.com/olejniktut/dc-landscaping/internal/dto"
	"github.com/olejniktut/dc-landscaping/internal/guard"
)

func (a *App) recordsCmd() *cobra.Command {
	var from, to string
	var propertyID, workerID int64

	cmd := &cobra.Command{
		Use:   "records",
		Short: "List time records (today by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.enterRoute(ctx, guard.RouteRecords); err != nil {
				return err
			}

			filtered := from != "" || to != "" || propertyID != 0 || workerID != 0
			if filtered {
				list, err := a.container.Gateway.ListRecords(ctx, dto.RecordFilter{
					StartDate:  from,
					EndDate:    to,
					PropertyID: propertyID,
					WorkerID:   workerID,
				})
				if err != nil {
					return err
				}
				a.printRecords(list)
				return nil
			}

			if err := a.container.Records.RefreshToday(ctx); err != nil {
				return err
			}
			a.printRecords(a.container.Records.Today())
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().Int64Var(&propertyID, "property", 0, "filter by property id")
	cmd.Flags().Int64Var(&workerID, "worker", 0, "filter by worker id")
	return cmd
}

func (a *App) workersCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "workers",
		Short: "List the worker roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.enterRoute(ctx, guard.RouteWorkers); err != nil {
				return err
			}

			workers, err := a.container.Gateway.ListWorkers(ctx, all)
			if err != nil {
				return err
			}
			for _, w := range workers {
				status := ""
				if !w.IsActive {
					status = "  (inactive)"
				}
				a.printf("  #%d  %s%s\n", w.ID, w.Name, status)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include inactive workers")
	return cmd
}

func (a *App) propertiesCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "properties",
		Short: "List the property roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.enterRoute(ctx, guard.RouteProperties); err != nil {
				return err
			}

			properties, err := a.container.Gateway.ListProperties(ctx, all)
			if err != nil {
				return err
			}
			for _, p := range properties {
				status := ""
				if !p.IsActive {
					status = "  (inactive)"
				}
				a.printf("  #%d  %s  %s%s\n", p.ID, p.Name, p.Address, status)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include inactive properties")
	return cmd
}

func (a *App) reportsCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Show the report summary (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.enterRoute(ctx, guard.RouteReports); err != nil {
				return err
			}

			summary, err := a.container.Gateway.GetReportSummary(ctx, from, to)
			if err != nil {
				return err
			}
			a.printf("Hours:      %.2f\n", summary.TotalHours)
			a.printf("Cost:       %.2f\n", summary.TotalCost)
			a.printf("Records:    %d\n", summary.RecordsCount)
			a.printf("Properties: %d\n", summary.PropertiesCount)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD)")
	return cmd
}
