package drinklog

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/saadjs/drinklog/internal/db"
	"github.com/saadjs/drinklog/internal/service"
)

var (
	backupOut   string
	backupDir   string
	backupJSON  bool
	backupForce bool
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot, list and restore the SQLite database",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadRuntime(cmd, args); err != nil {
			return err
		}
		if driver() != db.DriverSQLite {
			return fmt.Errorf("backups are only supported for the sqlite driver (use pg_dump for %s)", driver())
		}
		return nil
	},
}

// snapshots resolves the database file and the backup directory from flags
// and config.
func snapshots() (service.Backups, error) {
	dbFile, err := resolveDBPath()
	if err != nil {
		return service.Backups{}, err
	}
	return service.NewBackups(dbFile, backupDir), nil
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Snapshot the database with a sha256 sidecar",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := snapshots()
		if err != nil {
			return err
		}
		info, err := b.Create(backupOut)
		if err != nil {
			return err
		}
		rt.log.Info("backup created", "path", info.Path, "bytes", info.SizeBytes)
		if backupJSON {
			return writeJSON(cmd, info)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created backup: %s\nChecksum: %s\n", info.Path, info.Checksum)
		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List snapshots, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := snapshots()
		if err != nil {
			return err
		}
		items, err := b.List()
		if err != nil {
			return err
		}
		if backupJSON {
			return writeJSON(cmd, items)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "FILE\tSIZE\tCREATED\tCHECKSUM")
		for _, it := range items {
			fmt.Fprintf(out, "%s\t%d\t%s\t%s\n", it.Path, it.SizeBytes, it.CreatedAt.In(location()).Format(time.RFC3339), it.Checksum)
		}
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <file|name|latest>",
	Short: "Restore the database from a snapshot",
	Long:  "Restore the database from a snapshot path, a file name inside the backup directory, or \"latest\".",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := snapshots()
		if err != nil {
			return err
		}
		from, err := b.Restore(args[0], backupForce)
		if err != nil {
			return err
		}
		rt.log.Info("backup restored", "from", from, "to", b.DBPath)
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %s from %s\n", b.DBPath, from)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupCreateCmd, backupListCmd, backupRestoreCmd)

	backupCmd.PersistentFlags().StringVar(&backupDir, "dir", "", "Backup directory (default: backups/ next to the database)")
	backupCreateCmd.Flags().StringVar(&backupOut, "out", "", "Snapshot file path (overrides --dir)")
	backupCreateCmd.Flags().BoolVar(&backupJSON, "json", false, "Output JSON")
	backupListCmd.Flags().BoolVar(&backupJSON, "json", false, "Output JSON")
	backupRestoreCmd.Flags().BoolVar(&backupForce, "force", false, "Overwrite the existing database")
}
