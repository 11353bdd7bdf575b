package drinklog

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/drinklog/internal/service"
)

var (
	doctorFix  bool
	doctorJSON bool
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, t *service.Tracker) error {
			rep, err := t.Doctor(ctx, doctorFix)
			if err != nil {
				return err
			}
			if doctorJSON {
				if err := writeJSON(cmd, rep); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Checked rows: %d\n", rep.CheckedRows)
				fmt.Fprintf(out, "Stale pure alcohol rows: %d\n", rep.StaleGramRows)
				fmt.Fprintf(out, "Invalid rows: %d\n", rep.InvalidRows)
				fmt.Fprintf(out, "Misordered timestamps: %d\n", rep.MisorderedStamps)
				for _, p := range rep.Problems {
					fmt.Fprintf(out, "  - %s\n", p)
				}
				if doctorFix {
					fmt.Fprintf(out, "Fixed rows: %d\n", rep.FixedRows)
				}
			}
			if doctorFix {
				// Re-check after fixes so exit status reflects final state.
				rep, err = t.Doctor(ctx, false)
				if err != nil {
					return err
				}
			}
			if !rep.Healthy() {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Recompute stale pure alcohol values")
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "Output JSON")
}
