package drinklog

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dbPath     string
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:               "drinklog",
	Short:             "drinklog tracks alcohol consumption from your terminal",
	Long:              "drinklog is a local-first alcohol tracker with pure-alcohol analytics, rest days, goals, calendars, and CSV/JSON/XLSX export.",
	SilenceUsage:      true,
	PersistentPreRunE: loadRuntime,
}

func Execute() {
	err := rootCmd.Execute()
	rt.flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (or Postgres DSN with db_driver pgx)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug|info|warn|error")
}
