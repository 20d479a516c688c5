package dieta

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imperador1k/dieta/internal/service"
)

var bodyCmd = &cobra.Command{
	Use:   "body",
	Short: "Manage body measurements and body composition",
}

var (
	bodyWeight float64
	bodyUnit   string
	bodyNeck   float64
	bodyWaist  float64
	bodyHips   float64
	bodyDate   string
	bodyNotes  string
)

// resolveWeightUnit prefers an explicit --unit, then the configured default.
func resolveWeightUnit(cmd *cobra.Command, sqldb *sql.DB, flagValue string) (string, error) {
	if cmd.Flags().Changed("unit") {
		return flagValue, nil
	}
	return service.WeightUnit(sqldb)
}

var bodySaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the measurement for a day (replaces an existing one)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			unit, err := resolveWeightUnit(cmd, sqldb, bodyUnit)
			if err != nil {
				return err
			}
			in := service.BodyMeasurementInput{
				Date:    bodyDate,
				Weight:  optionalFloat(bodyWeight),
				Unit:    unit,
				NeckCm:  optionalFloat(bodyNeck),
				WaistCm: optionalFloat(bodyWaist),
				HipsCm:  optionalFloat(bodyHips),
				Notes:   bodyNotes,
			}
			date, err := service.SaveBodyMeasurement(sqldb, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved body measurement for %s\n", date)
			return nil
		})
	},
}

var (
	bodyFrom  string
	bodyTo    string
	bodyLimit int
)

var bodyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List measurements with estimated body composition and trends",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := service.BodyMeasurementFilter{FromDate: bodyFrom, ToDate: bodyTo, Limit: bodyLimit}
		return withDB(func(sqldb *sql.DB) error {
			unit, err := resolveWeightUnit(cmd, sqldb, bodyUnit)
			if err != nil {
				return err
			}
			items, err := service.ListBodyMeasurements(sqldb, filter)
			if err != nil {
				return err
			}
			profile, err := service.GetProfile(sqldb)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "DATE\tWEIGHT\tUNIT\tNECK\tWAIST\tHIPS\tBODY_FAT%\tLEAN_KG\tNOTES")
			for _, m := range items {
				weight := "-"
				if m.WeightKg != nil {
					w, err := service.WeightFromKg(*m.WeightKg, unit)
					if err != nil {
						return err
					}
					weight = fmt.Sprintf("%.2f", w)
				}
				bf, lean := "-", "-"
				if bc, ok := service.BodyCompositionFor(profile, m); ok {
					bf = fmt.Sprintf("%.1f", bc.BodyFatPct)
					lean = fmt.Sprintf("%.1f", bc.LeanMassKg)
				}
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n", m.Date, weight, unit,
					formatOptional(m.NeckCm, "%.1f"), formatOptional(m.WaistCm, "%.1f"), formatOptional(m.HipsCm, "%.1f"),
					bf, lean, m.Notes)
			}

			goal, err := service.CurrentBodyGoal(sqldb, "")
			if err != nil {
				return err
			}
			trends := service.ComputeBodyTrends(profile, items, goal)
			if trends.Weight != nil {
				mag, err := service.WeightFromKg(trends.Weight.Magnitude, unit)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Weight trend: %s %.2f %s (%s)\n", direction(trends.Weight.IsPositive), mag, unit, trends.Weight.Classification)
			}
			if trends.BodyFat != nil {
				fmt.Fprintf(out, "Body fat trend: %s %.1f%% (%s)\n", direction(trends.BodyFat.IsPositive), trends.BodyFat.Magnitude, trends.BodyFat.Classification)
			}
			return nil
		})
	},
}

func direction(up bool) string {
	if up {
		return "up"
	}
	return "down"
}

var bodyDeleteCmd = &cobra.Command{
	Use:   "delete <date>",
	Short: "Delete the measurement for a day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteBodyMeasurement(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted body measurement %s\n", args[0])
			return nil
		})
	},
}

var bodyGoalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage the target weight",
}

var (
	goalWeightValue float64
	goalWeightUnit  string
	goalEffective   string
)

var bodyGoalSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set target weight with effective date",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			unit, err := resolveWeightUnit(cmd, sqldb, goalWeightUnit)
			if err != nil {
				return err
			}
			in := service.SetBodyGoalInput{TargetWeight: goalWeightValue, Unit: unit, EffectiveDate: goalEffective}
			if err := service.SetBodyGoal(sqldb, in); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Set body goal")
			return nil
		})
	},
}

var bodyGoalDate string

var bodyGoalShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the target weight in effect",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			goal, err := service.CurrentBodyGoal(sqldb, bodyGoalDate)
			if err != nil {
				return err
			}
			if goal == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No body goal configured")
				return nil
			}
			unit, err := resolveWeightUnit(cmd, sqldb, goalWeightUnit)
			if err != nil {
				return err
			}
			weight, err := service.WeightFromKg(goal.TargetWeightKg, unit)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Effective: %s\nTarget Weight: %.2f %s\n", goal.EffectiveDate, weight, unit)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(bodyCmd)
	bodyCmd.AddCommand(bodySaveCmd, bodyListCmd, bodyDeleteCmd, bodyGoalCmd)
	bodyGoalCmd.AddCommand(bodyGoalSetCmd, bodyGoalShowCmd)

	bodySaveCmd.Flags().Float64Var(&bodyWeight, "weight", -1, "Weight value")
	bodySaveCmd.Flags().StringVar(&bodyUnit, "unit", "kg", "Weight unit: kg or lb")
	bodySaveCmd.Flags().Float64Var(&bodyNeck, "neck", -1, "Neck circumference cm")
	bodySaveCmd.Flags().Float64Var(&bodyWaist, "waist", -1, "Waist circumference cm")
	bodySaveCmd.Flags().Float64Var(&bodyHips, "hips", -1, "Hips circumference cm")
	bodySaveCmd.Flags().StringVar(&bodyDate, "date", "", "Date YYYY-MM-DD (default today)")
	bodySaveCmd.Flags().StringVar(&bodyNotes, "notes", "", "Optional notes")

	bodyListCmd.Flags().StringVar(&bodyFrom, "from", "", "Filter from date YYYY-MM-DD")
	bodyListCmd.Flags().StringVar(&bodyTo, "to", "", "Filter to date YYYY-MM-DD")
	bodyListCmd.Flags().IntVar(&bodyLimit, "limit", 50, "Result limit")
	bodyListCmd.Flags().StringVar(&bodyUnit, "unit", "kg", "Output unit: kg or lb")

	bodyGoalSetCmd.Flags().Float64Var(&goalWeightValue, "target-weight", 0, "Target weight value")
	bodyGoalSetCmd.Flags().StringVar(&goalWeightUnit, "unit", "kg", "Weight unit: kg or lb")
	bodyGoalSetCmd.Flags().StringVar(&goalEffective, "effective-date", "", "Effective date YYYY-MM-DD (default today)")
	_ = bodyGoalSetCmd.MarkFlagRequired("target-weight")

	bodyGoalShowCmd.Flags().StringVar(&bodyGoalDate, "date", "", "Resolve goal at date YYYY-MM-DD")
	bodyGoalShowCmd.Flags().StringVar(&goalWeightUnit, "unit", "kg", "Weight unit: kg or lb")
}
