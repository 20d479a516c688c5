package dieta

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/imperador1k/dieta/internal/service"
)

var todayDate string

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show eaten totals and progress against the active plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			status, err := service.TodaySummary(sqldb, todayDate)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date: %s\n", status.Date)
			fmt.Fprintf(out, "Meals: %d\n", status.MealCount)
			fmt.Fprintf(out, "Eaten: %s\n", formatTotals(status.Consumed))
			fmt.Fprintf(out, "Planned: %s\n", formatTotals(status.Planned))
			if !status.HasPlan {
				fmt.Fprintln(out, "Plan: not set")
				return nil
			}
			fmt.Fprintf(out, "Plan: %s\n", status.PlanName)
			printProgress(out, "Calories", "kcal", status.Calories)
			printProgress(out, "Protein", "g", status.Protein)
			printProgress(out, "Carbs", "g", status.Carbs)
			printProgress(out, "Fat", "g", status.Fat)
			if status.CalorieColor.Over {
				fmt.Fprintf(out, "Over target: %.0f%% of the way to the limit, color %s\n", status.CalorieColor.Ratio*100, status.CalorieColor.Color)
			} else {
				fmt.Fprintf(out, "Within target, color %s\n", status.CalorieColor.Color)
			}
			return nil
		})
	},
}

func printProgress(out io.Writer, label, unit string, p *service.MacroProgress) {
	if p == nil {
		return
	}
	mark := ""
	if p.OnTarget {
		mark = " on target"
	}
	fmt.Fprintf(out, "%s: %.1f / %.1f %s (%.0f%%) remaining %.1f%s\n", label, p.Consumed, p.Target, unit, p.Percentage, p.Remaining, mark)
}

func init() {
	rootCmd.AddCommand(todayCmd)
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Date YYYY-MM-DD (default today)")
}
