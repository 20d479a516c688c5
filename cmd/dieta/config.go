package dieta

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/imperador1k/dieta/internal/service"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage dieta local configuration",
}

var (
	cfgWeightUnit string
	cfgPageSize   string
)

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set configuration values",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			updates := 0
			if cmd.Flags().Changed("weight-unit") {
				if err := service.SetConfig(sqldb, service.ConfigWeightUnit, cfgWeightUnit); err != nil {
					return err
				}
				updates++
			}
			if cmd.Flags().Changed("usda-page-size") {
				if err := service.SetConfig(sqldb, service.ConfigUSDAPageSize, cfgPageSize); err != nil {
					return err
				}
				updates++
			}
			if updates == 0 {
				return fmt.Errorf("set at least one flag")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d config value(s)\n", updates)
			return nil
		})
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			cfg, err := service.ListConfig(sqldb)
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(cfg))
			for k := range cfg {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintln(cmd.OutOrStdout(), "KEY\tVALUE")
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", k, cfg[k])
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configGetCmd)

	configSetCmd.Flags().StringVar(&cfgWeightUnit, "weight-unit", "", "Default weight unit: kg or lb")
	configSetCmd.Flags().StringVar(&cfgPageSize, "usda-page-size", "", "Number of USDA search results (1-200)")
}
