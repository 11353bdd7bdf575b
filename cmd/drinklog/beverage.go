package drinklog

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/drinklog/internal/service"
)

var beverageCmd = &cobra.Command{
	Use:   "beverage",
	Short: "Manage beverage templates",
}

var beverageJSON bool

var beverageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in and custom beverage templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, t *service.Tracker) error {
			templates, err := t.Templates(ctx)
			if err != nil {
				return err
			}
			if beverageJSON {
				return writeJSON(cmd, templates)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "NAME\tGLYPH\tML\t%\tCATEGORY\tCUSTOM")
			for _, tpl := range templates {
				fmt.Fprintf(out, "%s\t%s\t%.0f\t%.1f\t%s\t%t\n", tpl.Name, tpl.Glyph, tpl.DefaultVolumeMl, tpl.DefaultStrength, tpl.Category, tpl.IsCustom)
			}
			return nil
		})
	},
}

var (
	beverageName     string
	beverageGlyph    string
	beverageStrength float64
	beverageVolume   float64
	beverageCategory string
)

var beverageAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a custom beverage template",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.AddTemplateInput{
			Name:     beverageName,
			Glyph:    beverageGlyph,
			Strength: beverageStrength,
			Volume:   beverageVolume,
			Category: beverageCategory,
		}
		return withTracker(cmd, func(ctx context.Context, t *service.Tracker) error {
			tpl, err := t.AddTemplate(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added beverage %s (%.0fml, %.1f%%)\n", tpl.Name, tpl.DefaultVolumeMl, tpl.DefaultStrength)
			return nil
		})
	},
}

var beverageDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a custom beverage template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, t *service.Tracker) error {
			if err := t.DeleteTemplate(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted beverage %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(beverageCmd)
	beverageCmd.AddCommand(beverageListCmd, beverageAddCmd, beverageDeleteCmd)

	beverageListCmd.Flags().BoolVar(&beverageJSON, "json", false, "Output JSON")

	beverageAddCmd.Flags().StringVar(&beverageName, "name", "", "Template name")
	beverageAddCmd.Flags().StringVar(&beverageGlyph, "glyph", "", "Optional glyph")
	beverageAddCmd.Flags().Float64Var(&beverageStrength, "strength", 0, "Default alcohol by volume in percent")
	beverageAddCmd.Flags().Float64Var(&beverageVolume, "volume", 0, "Default volume in ml")
	beverageAddCmd.Flags().StringVar(&beverageCategory, "category", "other", "Category: beer, sake, wine, shochu, whisky, cocktail, other")
	_ = beverageAddCmd.MarkFlagRequired("name")
	_ = beverageAddCmd.MarkFlagRequired("strength")
	_ = beverageAddCmd.MarkFlagRequired("volume")
}
