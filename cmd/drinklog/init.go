package drinklog

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/drinklog/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local drinklog database",
	RunE: func(cmd *cobra.Command, args []string) error {
		sqldb, path, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer sqldb.Close()

		current, latest, err := db.SchemaVersion(cmd.Context(), sqldb)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Initialized drinklog database at %s (schema %d/%d)\n", path, current, latest)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
