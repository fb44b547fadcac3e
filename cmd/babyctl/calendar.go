package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Carcandyx/baby-steps-client/client"
	"github.com/Carcandyx/baby-steps-client/client/view"
)

func newCalendarCmd(a *app) *cobra.Command {
	var month, babyID string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show a month with the number of tasks due each day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			first := time.Now()
			if month != "" {
				m, err := time.ParseInLocation("2006-01", month, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --month %q: want YYYY-MM", month)
				}
				first = m
			}

			c, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			var tasks []client.Task
			if babyID != "" {
				tasks, err = c.ListTasksForBaby(cmd.Context(), babyID)
			} else {
				tasks, err = c.ListAllTasks(cmd.Context())
			}
			if err != nil {
				return err
			}

			grid := view.MonthGrid(first.Year(), first.Month(), time.Monday, time.Local)
			view.CountByDay(grid, tasks)
			return printMonth(cmd.OutOrStdout(), first, grid)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month as YYYY-MM (default current month)")
	cmd.Flags().StringVar(&babyID, "baby-id", "", "Only this baby's tasks")
	return cmd
}

// printMonth renders one line per week. Days outside the month are dots;
// days with tasks carry the count in brackets, e.g. "12[2]".
func printMonth(w io.Writer, month time.Time, grid [][]view.Day) error {
	if _, err := fmt.Fprintf(w, "%s %d\n", month.Month(), month.Year()); err != nil {
		return err
	}
	fmt.Fprintln(w, "Mo     Tu     We     Th     Fr     Sa     Su")
	for _, week := range grid {
		for i, d := range week {
			cell := "."
			if d.InMonth {
				cell = fmt.Sprintf("%d", d.Date.Day())
				if d.Tasks > 0 {
					cell = fmt.Sprintf("%d[%d]", d.Date.Day(), d.Tasks)
				}
			}
			if i < len(week)-1 {
				fmt.Fprintf(w, "%-7s", cell)
			} else {
				fmt.Fprintln(w, cell)
			}
		}
	}
	return nil
}
