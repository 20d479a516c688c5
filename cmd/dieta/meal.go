package dieta

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/imperador1k/dieta/internal/model"
	"github.com/imperador1k/dieta/internal/service"
)

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Plan meals and track what was eaten",
}

var (
	mealDate      string
	mealPlan      string
	mealVariation string
	mealNote      string
)

var mealCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a meal for a day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.MealInput{Date: mealDate, Name: args[0], Plan: mealPlan, Variation: mealVariation, Note: mealNote}
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.CreateMeal(sqldb, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created meal %s\n", id)
			return nil
		})
	},
}

var mealListCmd = &cobra.Command{
	Use:   "list",
	Short: "List meals for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			meals, err := service.ListMeals(sqldb, mealDate)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "POS\tID\tNAME\tITEMS\tPLANNED_KCAL\tEATEN_KCAL")
			for _, m := range meals {
				eaten := service.AggregateMeals([]model.Meal{m})
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%d\t%.0f\t%.0f\n", m.Position, m.ID, m.Name, len(m.Items), m.TotalCalories, eaten.Calories)
			}
			return nil
		})
	},
}

var mealShowCmd = &cobra.Command{
	Use:   "show <meal-id>",
	Short: "Show a meal with its items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			m, err := service.GetMeal(sqldb, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Meal: %s (%s) on %s\n", m.Name, m.ID, m.Date)
			for i, it := range m.Items {
				switch it.Kind {
				case model.MealItemFood:
					fmt.Fprintf(out, "%d. [%s] %s %.0fg\n", i+1, eatenMark(it.Food.Eaten), it.Food.Description, it.Food.ServingSize)
				case model.MealItemDish:
					fmt.Fprintf(out, "%d. [%s] %s (dish)\n", i+1, eatenMark(it.Eaten), it.Dish.Name)
					for j, ing := range it.Dish.Ingredients {
						fmt.Fprintf(out, "   %d.%d [%s] %s %.0fg\n", i+1, j+1, eatenMark(ing.Eaten), ing.Description, ing.ServingSize)
					}
				}
			}
			fmt.Fprintf(out, "Planned: %s\n", formatTotals(service.CachedTotals(*m)))
			fmt.Fprintf(out, "Eaten: %s\n", formatTotals(service.AggregateMeals([]model.Meal{*m})))
			if m.Note != "" {
				fmt.Fprintf(out, "Note: %s\n", m.Note)
			}
			return nil
		})
	},
}

var (
	mealAmount  float64
	mealUnit    string
	mealDensity float64
	mealFDCID   int64
	mealPortion int
)

var mealAddFoodCmd = &cobra.Command{
	Use:   "add-food <meal-id>",
	Short: "Add a food item (manual nutrients per 100g or --fdc-id)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := buildFoodInput(cmd)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.AddFoodToMeal(sqldb, args[0], in)
			if err != nil {
				return err
			}
			logger.Debug("food added", zap.String("meal", args[0]), zap.String("item", id), zap.Float64("grams", in.ServingSize))
			fmt.Fprintf(cmd.OutOrStdout(), "Added food %s\n", id)
			return nil
		})
	},
}

// buildFoodInput resolves the portion size in grams and, with --fdc-id,
// fills nutrients from the USDA database.
func buildFoodInput(cmd *cobra.Command) (service.FoodInput, error) {
	in := service.FoodInput{
		FoodRef:     ingFoodRef,
		Description: ingDescription,
		ServingSize: ingGrams,
		Nutrients:   model.Nutrients{Calories: ingKcal, Protein: ingProtein, Carbohydrates: ingCarbs, Fat: ingFat},
	}
	if cmd.Flags().Changed("amount") {
		grams, err := service.ToGrams(mealAmount, mealUnit, mealDensity)
		if err != nil {
			return in, err
		}
		in.ServingSize = grams
	}
	if mealFDCID == 0 {
		return in, nil
	}

	food, err := usdaClient().Food(cmd.Context(), mealFDCID)
	if err != nil {
		return in, err
	}
	in.FoodRef = fmt.Sprintf("usda:%d", food.FDCID)
	if strings.TrimSpace(in.Description) == "" {
		in.Description = food.Description
	}
	in.Nutrients = model.Nutrients{
		Calories:      food.Nutrients.Calories,
		Protein:       food.Nutrients.Protein,
		Carbohydrates: food.Nutrients.Carbohydrates,
		Fat:           food.Nutrients.Fat,
	}
	if mealPortion > 0 {
		if mealPortion > len(food.Portions) {
			return in, fmt.Errorf("portion %d not found (food has %d)", mealPortion, len(food.Portions))
		}
		count := 1.0
		if cmd.Flags().Changed("amount") {
			count = mealAmount
		}
		in.ServingSize = food.Portions[mealPortion-1].GramWeight * count
	}
	return in, nil
}

var mealAddDishCmd = &cobra.Command{
	Use:   "add-dish <meal-id> <dish>",
	Short: "Add a copy of a dish to a meal",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.AddDishToMeal(sqldb, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added dish %s\n", id)
			return nil
		})
	},
}

func eatenCommand(use, short string, eaten bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <meal-id> <item>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(sqldb *sql.DB) error {
				if err := service.SetItemEaten(sqldb, args[0], args[1], eaten); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Marked item %s eaten=%t\n", args[1], eaten)
				return nil
			})
		},
	}
}

var (
	mealEatCmd   = eatenCommand("eat", "Mark an item as eaten", true)
	mealUneatCmd = eatenCommand("uneat", "Mark an item as not eaten", false)
)

var mealIngredientUneat bool

var mealEatIngredientCmd = &cobra.Command{
	Use:   "eat-ingredient <meal-id> <item> <ingredient>",
	Short: "Mark one ingredient of a dish item as eaten",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		eaten := !mealIngredientUneat
		return withDB(func(sqldb *sql.DB) error {
			if err := service.SetIngredientEaten(sqldb, args[0], args[1], args[2], eaten); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked ingredient %s eaten=%t\n", args[2], eaten)
			return nil
		})
	},
}

var mealToggleUneat bool

var mealToggleDishCmd = &cobra.Command{
	Use:   "toggle-dish <meal-id> <item>",
	Short: "Mark a dish item and all its ingredients as eaten",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eaten := !mealToggleUneat
		return withDB(func(sqldb *sql.DB) error {
			if err := service.ToggleDishEaten(sqldb, args[0], args[1], eaten); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked dish %s eaten=%t\n", args[1], eaten)
			return nil
		})
	},
}

var mealRemoveItemCmd = &cobra.Command{
	Use:   "remove-item <meal-id> <item>",
	Short: "Remove an item from a meal",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.RemoveMealItem(sqldb, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed item %s\n", args[1])
			return nil
		})
	},
}

var mealNoteCmd = &cobra.Command{
	Use:   "note <meal-id> <text>",
	Short: "Set the meal note",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.SetMealNote(sqldb, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Updated note")
			return nil
		})
	},
}

var mealDeleteCmd = &cobra.Command{
	Use:   "delete <meal-id>",
	Short: "Delete a meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteMeal(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted meal %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(mealCmd)
	mealCmd.AddCommand(
		mealCreateCmd, mealListCmd, mealShowCmd,
		mealAddFoodCmd, mealAddDishCmd,
		mealEatCmd, mealUneatCmd, mealEatIngredientCmd, mealToggleDishCmd,
		mealRemoveItemCmd, mealNoteCmd, mealDeleteCmd,
	)

	mealCreateCmd.Flags().StringVar(&mealDate, "date", "", "Date YYYY-MM-DD (default today)")
	mealCreateCmd.Flags().StringVar(&mealPlan, "plan", "", "Plan name or id")
	mealCreateCmd.Flags().StringVar(&mealVariation, "variation", "", "Plan variation name or id")
	mealCreateCmd.Flags().StringVar(&mealNote, "note", "", "Optional note")
	mealListCmd.Flags().StringVar(&mealDate, "date", "", "Date YYYY-MM-DD (default today)")

	addFoodFlags(mealAddFoodCmd)
	mealAddFoodCmd.Flags().Float64Var(&mealAmount, "amount", 0, "Amount in --unit (or portion count with --portion)")
	mealAddFoodCmd.Flags().StringVar(&mealUnit, "unit", "g", "Unit for --amount (g, kg, oz, lb, ml, cup, tbsp...)")
	mealAddFoodCmd.Flags().Float64Var(&mealDensity, "density", 0, "Density g/ml for volume units")
	mealAddFoodCmd.Flags().Int64Var(&mealFDCID, "fdc-id", 0, "Fill nutrients from USDA FoodData Central")
	mealAddFoodCmd.Flags().IntVar(&mealPortion, "portion", 0, "USDA portion number (see food show)")

	mealEatIngredientCmd.Flags().BoolVar(&mealIngredientUneat, "undo", false, "Mark as not eaten instead")
	mealToggleDishCmd.Flags().BoolVar(&mealToggleUneat, "undo", false, "Mark as not eaten instead")
}
