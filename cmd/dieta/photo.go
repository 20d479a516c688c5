package dieta

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/imperador1k/dieta/internal/service"
)

var photoCmd = &cobra.Command{
	Use:   "photo",
	Short: "Track body evolution photos",
}

var (
	photoDate   string
	photoWidth  int
	photoHeight int
	photoWeight float64
	photoUnit   string
	photoRef    string
)

var photoAddCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Record a progress photo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			unit, err := resolveWeightUnit(cmd, sqldb, photoUnit)
			if err != nil {
				return err
			}
			id, err := service.AddPhoto(sqldb, service.PhotoInput{
				Date:      photoDate,
				URL:       args[0],
				Width:     photoWidth,
				Height:    photoHeight,
				Weight:    optionalFloat(photoWeight),
				Unit:      unit,
				RemoteRef: photoRef,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added photo %s\n", id)
			return nil
		})
	},
}

var photoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List photos, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			unit, err := service.WeightUnit(sqldb)
			if err != nil {
				return err
			}
			photos, err := service.ListPhotos(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tSIZE\tWEIGHT\tURL")
			for _, p := range photos {
				weight := "-"
				if p.WeightKg != nil {
					w, err := service.WeightFromKg(*p.WeightKg, unit)
					if err != nil {
						return err
					}
					weight = fmt.Sprintf("%.2f %s", w, unit)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%dx%d\t%s\t%s\n", p.ID, p.Date, p.Width, p.Height, weight, p.URL)
			}
			return nil
		})
	},
}

var photoDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a photo record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			p, err := service.DeletePhoto(sqldb, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted photo %s\n", p.ID)
			if p.RemoteRef != "" {
				logger.Info("remote photo asset left in place", zap.String("remote_ref", p.RemoteRef))
				fmt.Fprintf(cmd.OutOrStdout(), "Remote asset %s must be removed from storage separately\n", p.RemoteRef)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(photoCmd)
	photoCmd.AddCommand(photoAddCmd, photoListCmd, photoDeleteCmd)

	photoAddCmd.Flags().StringVar(&photoDate, "date", "", "Date YYYY-MM-DD (default today)")
	photoAddCmd.Flags().IntVar(&photoWidth, "width", 0, "Image width in pixels")
	photoAddCmd.Flags().IntVar(&photoHeight, "height", 0, "Image height in pixels")
	photoAddCmd.Flags().Float64Var(&photoWeight, "weight", -1, "Body weight at the time (optional)")
	photoAddCmd.Flags().StringVar(&photoUnit, "unit", "kg", "Weight unit: kg or lb")
	photoAddCmd.Flags().StringVar(&photoRef, "remote-ref", "", "Storage reference for the image")
	_ = photoAddCmd.MarkFlagRequired("width")
	_ = photoAddCmd.MarkFlagRequired("height")
}
