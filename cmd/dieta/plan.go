package dieta

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imperador1k/dieta/internal/model"
	"github.com/imperador1k/dieta/internal/service"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage nutrition plans and their variations",
}

var (
	planDescription string
	planCalories    float64
	planProtein     float64
	planCarbs       float64
	planFat         float64
	planVariations  []string
)

var planCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.PlanInput{
			Name:        args[0],
			Description: planDescription,
			Targets:     planTargets(),
			Variations:  planVariations,
		}
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.CreatePlan(sqldb, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created plan %s\n", id)
			return nil
		})
	},
}

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			plans, err := service.ListPlans(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ACTIVE\tNAME\tCALORIES\tPROTEIN\tCARBS\tFAT\tVARIATIONS")
			for _, p := range plans {
				active := ""
				if p.IsActive {
					active = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.0f\t%.1f\t%.1f\t%.1f\t%d\n", active, p.Name, p.Targets.Calories, p.Targets.Protein, p.Targets.Carbs, p.Targets.Fat, len(p.Variations))
			}
			return nil
		})
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show <plan>",
	Short: "Show a plan with its variations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			p, err := service.ResolvePlan(sqldb, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Plan: %s (%s)\n", p.Name, p.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Active: %t\n", p.IsActive)
			if p.Description != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Description: %s\n", p.Description)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Targets: %.0f kcal | P %.1fg | C %.1fg | F %.1fg\n", p.Targets.Calories, p.Targets.Protein, p.Targets.Carbs, p.Targets.Fat)
			for _, v := range p.Variations {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s (%s)\n", v.Name, v.ID)
			}
			return nil
		})
	},
}

var planActivateCmd = &cobra.Command{
	Use:   "activate <plan>",
	Short: "Make a plan the active one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.ActivatePlan(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Activated plan %s\n", args[0])
			return nil
		})
	},
}

var planTargetsCmd = &cobra.Command{
	Use:   "targets <plan>",
	Short: "Replace a plan's daily targets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.UpdatePlanTargets(sqldb, args[0], planTargets()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated targets for %s\n", args[0])
			return nil
		})
	},
}

var planVariationAddCmd = &cobra.Command{
	Use:   "add-variation <plan> <name>",
	Short: "Add a variation to a plan",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.AddVariation(sqldb, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added variation %s\n", id)
			return nil
		})
	},
}

var planVariationRemoveCmd = &cobra.Command{
	Use:   "remove-variation <plan> <variation>",
	Short: "Remove a variation from a plan",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.RemoveVariation(sqldb, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed variation %s\n", args[1])
			return nil
		})
	},
}

var planDeleteCmd = &cobra.Command{
	Use:   "delete <plan>",
	Short: "Delete a plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeletePlan(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted plan %s\n", args[0])
			return nil
		})
	},
}

func planTargets() model.Targets {
	return model.Targets{Calories: planCalories, Protein: planProtein, Carbs: planCarbs, Fat: planFat}
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.AddCommand(planCreateCmd, planListCmd, planShowCmd, planActivateCmd, planTargetsCmd, planVariationAddCmd, planVariationRemoveCmd, planDeleteCmd)

	for _, c := range []*cobra.Command{planCreateCmd, planTargetsCmd} {
		c.Flags().Float64Var(&planCalories, "calories", 0, "Daily calories")
		c.Flags().Float64Var(&planProtein, "protein", 0, "Daily protein grams")
		c.Flags().Float64Var(&planCarbs, "carbs", 0, "Daily carbs grams")
		c.Flags().Float64Var(&planFat, "fat", 0, "Daily fat grams")
	}
	planCreateCmd.Flags().StringVar(&planDescription, "description", "", "Plan description")
	planCreateCmd.Flags().StringSliceVar(&planVariations, "variation", nil, "Variation name (repeatable)")
}
