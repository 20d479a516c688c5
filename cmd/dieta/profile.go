package dieta

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imperador1k/dieta/internal/service"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the local user profile",
}

var (
	profileName   string
	profileEmail  string
	profileAge    int
	profileHeight float64
	profileGender string
	profileAvatar string
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or replace the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.ProfileInput{
			Name:      profileName,
			Email:     profileEmail,
			Age:       profileAge,
			Height:    profileHeight,
			Gender:    profileGender,
			AvatarRef: profileAvatar,
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.SaveProfile(sqldb, in); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Saved profile")
			return nil
		})
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			p, err := service.GetProfile(sqldb)
			if err != nil {
				return err
			}
			if p == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No profile configured")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Name: %s\nEmail: %s\nAge: %d\nHeight: %.1f cm\nGender: %s\n", p.Name, p.Email, p.Age, p.HeightCm, p.Gender)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileSetCmd, profileShowCmd)

	profileSetCmd.Flags().StringVar(&profileName, "name", "", "Display name")
	profileSetCmd.Flags().StringVar(&profileEmail, "email", "", "Email address")
	profileSetCmd.Flags().IntVar(&profileAge, "age", 0, "Age in years")
	profileSetCmd.Flags().Float64Var(&profileHeight, "height", 0, "Height in cm")
	profileSetCmd.Flags().StringVar(&profileGender, "gender", "", "Gender: male or female")
	profileSetCmd.Flags().StringVar(&profileAvatar, "avatar", "", "Avatar image reference")
	_ = profileSetCmd.MarkFlagRequired("name")
	_ = profileSetCmd.MarkFlagRequired("height")
	_ = profileSetCmd.MarkFlagRequired("gender")
}
