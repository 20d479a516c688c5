package dieta

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/imperador1k/dieta/internal/service"
)

const usdaSignupURL = "https://api.data.gov/signup/"

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Search the USDA FoodData Central database",
	Long:  "Search the USDA FoodData Central database. Requires USDA_API_KEY (free key at " + usdaSignupURL + ").",
}

var (
	foodLimit int
	foodJSON  bool
)

var foodSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search foods by name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			limit := foodLimit
			if limit <= 0 {
				configured, err := service.USDAPageSize(sqldb)
				if err != nil {
					return err
				}
				limit = configured
			}
			foods, err := usdaClient().Search(cmd.Context(), strings.Join(args, " "), limit)
			if err != nil {
				return err
			}
			if foodJSON {
				return printJSON(cmd, foods)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "FDC_ID\tDESCRIPTION\tBRAND\tKCAL/100G\tP\tC\tF")
			for _, f := range foods {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%.0f\t%.1f\t%.1f\t%.1f\n", f.FDCID, f.Description, f.Brand, f.Nutrients.Calories, f.Nutrients.Protein, f.Nutrients.Carbohydrates, f.Nutrients.Fat)
			}
			return nil
		})
	},
}

var foodShowCmd = &cobra.Command{
	Use:   "show <fdc-id>",
	Short: "Show per-100g nutrients and portions for a food",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("fdc id", args[0])
		if err != nil {
			return err
		}
		food, err := usdaClient().Food(cmd.Context(), id)
		if err != nil {
			return err
		}
		if foodJSON {
			return printJSON(cmd, food)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Food: %s (%d)\n", food.Description, food.FDCID)
		if food.Brand != "" {
			fmt.Fprintf(out, "Brand: %s\n", food.Brand)
		}
		fmt.Fprintf(out, "Per 100g: %.0f kcal | P %.1fg | C %.1fg | F %.1fg\n", food.Nutrients.Calories, food.Nutrients.Protein, food.Nutrients.Carbohydrates, food.Nutrients.Fat)
		for i, p := range food.Portions {
			fmt.Fprintf(out, "%d. %s = %.1fg\n", i+1, p.Description, p.GramWeight)
		}
		return nil
	},
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}

func init() {
	rootCmd.AddCommand(foodCmd)
	foodCmd.AddCommand(foodSearchCmd, foodShowCmd)

	foodSearchCmd.Flags().IntVar(&foodLimit, "limit", 0, "Result count (default from config)")
	for _, c := range []*cobra.Command{foodSearchCmd, foodShowCmd} {
		c.Flags().BoolVar(&foodJSON, "json", false, "Output JSON")
	}
}
