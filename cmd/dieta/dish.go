package dieta

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imperador1k/dieta/internal/model"
	"github.com/imperador1k/dieta/internal/service"
)

var dishCmd = &cobra.Command{
	Use:   "dish",
	Short: "Manage reusable dishes",
}

var (
	dishDescription  string
	dishInstructions string
)

var dishCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a dish",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.DishInput{Name: args[0], Description: dishDescription, Instructions: dishInstructions}
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.CreateDish(sqldb, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created dish %s\n", id)
			return nil
		})
	},
}

var dishListCmd = &cobra.Command{
	Use:   "list",
	Short: "List dishes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			dishes, err := service.ListDishes(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "NAME\tINGREDIENTS\tCALORIES")
			for _, d := range dishes {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%.0f\n", d.Name, len(d.Ingredients), service.SubtotalDish(d).Calories)
			}
			return nil
		})
	},
}

var dishShowCmd = &cobra.Command{
	Use:   "show <dish>",
	Short: "Show a dish with its ingredients and subtotal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			d, err := service.ResolveDish(sqldb, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Dish: %s (%s)\n", d.Name, d.ID)
			if d.Description != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Description: %s\n", d.Description)
			}
			for i, ing := range d.Ingredients {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s %.0fg (%s)\n", i+1, ing.Description, ing.ServingSize, ing.ID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Subtotal: %s\n", formatTotals(service.SubtotalDish(*d)))
			if d.Instructions != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Instructions: %s\n", d.Instructions)
			}
			return nil
		})
	},
}

var (
	ingDescription string
	ingFoodRef     string
	ingGrams       float64
	ingKcal        float64
	ingProtein     float64
	ingCarbs       float64
	ingFat         float64
)

var dishAddIngredientCmd = &cobra.Command{
	Use:   "add-ingredient <dish>",
	Short: "Add an ingredient (nutrients per 100g)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.FoodInput{
			FoodRef:     ingFoodRef,
			Description: ingDescription,
			ServingSize: ingGrams,
			Nutrients:   model.Nutrients{Calories: ingKcal, Protein: ingProtein, Carbohydrates: ingCarbs, Fat: ingFat},
		}
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.AddDishIngredient(sqldb, args[0], in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added ingredient %s\n", id)
			return nil
		})
	},
}

var dishRemoveIngredientCmd = &cobra.Command{
	Use:   "remove-ingredient <dish> <ingredient-id>",
	Short: "Remove an ingredient",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.RemoveDishIngredient(sqldb, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Removed ingredient")
			return nil
		})
	},
}

var dishDeleteCmd = &cobra.Command{
	Use:   "delete <dish>",
	Short: "Delete a dish",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteDish(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted dish %s\n", args[0])
			return nil
		})
	},
}

func addFoodFlags(c *cobra.Command) {
	c.Flags().StringVar(&ingDescription, "name", "", "Food description")
	c.Flags().StringVar(&ingFoodRef, "ref", "", "External food reference")
	c.Flags().Float64Var(&ingGrams, "grams", 0, "Portion size in grams")
	c.Flags().Float64Var(&ingKcal, "calories", 0, "Calories per 100g")
	c.Flags().Float64Var(&ingProtein, "protein", 0, "Protein grams per 100g")
	c.Flags().Float64Var(&ingCarbs, "carbs", 0, "Carbs grams per 100g")
	c.Flags().Float64Var(&ingFat, "fat", 0, "Fat grams per 100g")
}

func init() {
	rootCmd.AddCommand(dishCmd)
	dishCmd.AddCommand(dishCreateCmd, dishListCmd, dishShowCmd, dishAddIngredientCmd, dishRemoveIngredientCmd, dishDeleteCmd)

	dishCreateCmd.Flags().StringVar(&dishDescription, "description", "", "Dish description")
	dishCreateCmd.Flags().StringVar(&dishInstructions, "instructions", "", "Preparation instructions")

	addFoodFlags(dishAddIngredientCmd)
	_ = dishAddIngredientCmd.MarkFlagRequired("name")
	_ = dishAddIngredientCmd.MarkFlagRequired("grams")
}
