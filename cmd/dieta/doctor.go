package dieta

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/imperador1k/dieta/internal/service"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.RunDoctor(sqldb, doctorFix)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stale meal totals: %d\n", report.StaleMealTotals)
			fmt.Fprintf(cmd.OutOrStdout(), "Undecodable meals: %d\n", report.UndecodableMeals)
			fmt.Fprintf(cmd.OutOrStdout(), "Active plans: %d\n", report.ActivePlans)
			if doctorFix {
				fmt.Fprintf(cmd.OutOrStdout(), "Fixed meal totals: %d\n", report.FixedMealTotals)
				if report.FixedMealTotals > 0 {
					logger.Info("rewrote stale meal totals", zap.Strings("meals", report.StaleMealIDs))
				}
				// Re-check after fixes so exit status reflects final state.
				report, err = service.RunDoctor(sqldb, false)
				if err != nil {
					return err
				}
			}
			if report.HasIssues() {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Rewrite stale meal totals")
}
