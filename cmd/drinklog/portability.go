package drinklog

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/drinklog/internal/app"
	"github.com/saadjs/drinklog/internal/export"
	"github.com/saadjs/drinklog/internal/period"
	"github.com/saadjs/drinklog/internal/service"
	"github.com/saadjs/drinklog/internal/store"
)

var (
	exportFormat string
	exportOut    string
	exportFrom   string
	exportTo     string
	importFormat string
	importIn     string
	importMode   string
	importDryRun bool
	importJSON   bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export drinks (csv, json or xlsx)",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseFormat(exportFormat)
		if err != nil {
			return err
		}
		out := strings.TrimSpace(exportOut)
		if out == "" && format == export.FormatXLSX {
			return fmt.Errorf("--out is required for xlsx")
		}
		var bounds *period.Bounds
		if exportFrom != "" || exportTo != "" {
			if exportFrom == "" || exportTo == "" {
				return fmt.Errorf("--from and --to must be used together")
			}
			b, err := rangeBounds(exportFrom, exportTo)
			if err != nil {
				return err
			}
			bounds = &b
		}
		return withTracker(cmd, func(ctx context.Context, t *service.Tracker) error {
			if out == "" {
				_, err := t.Export(ctx, format, cmd.OutOrStdout(), bounds)
				return err
			}
			if err := app.EnsureDir(out); err != nil {
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			n, err := t.Export(ctx, format, f, bounds)
			if cerr := f.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("close export file: %w", cerr)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d drinks to %s\n", n, out)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import drinks from csv or json",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseFormat(importFormat)
		if err != nil {
			return err
		}
		mode, err := parseImportMode(importMode)
		if err != nil {
			return err
		}
		var in io.Reader = cmd.InOrStdin()
		if path := strings.TrimSpace(importIn); path != "" && path != "-" {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer f.Close()
			in = f
		}
		return withTracker(cmd, func(ctx context.Context, t *service.Tracker) error {
			rep, err := t.Import(ctx, in, service.ImportOptions{Format: format, Mode: mode, DryRun: importDryRun})
			if err != nil {
				return err
			}
			if importJSON {
				return writeJSON(cmd, rep)
			}
			out := cmd.OutOrStdout()
			if rep.DryRun {
				fmt.Fprintf(out, "Dry run: %d parsed, %d new, %d already present\n", rep.Parsed, rep.New, rep.Existing)
				return nil
			}
			fmt.Fprintf(out, "Imported %d drinks: %d inserted, %d updated, %d skipped\n", rep.Parsed, rep.Inserted, rep.Updated, rep.Skipped)
			return nil
		})
	},
}

func parseImportMode(s string) (store.ImportMode, error) {
	switch m := store.ImportMode(strings.ToLower(strings.TrimSpace(s))); m {
	case store.ImportFail, store.ImportSkip, store.ImportReplace:
		return m, nil
	default:
		return "", fmt.Errorf("invalid --mode %q (expected fail|skip|replace)", s)
	}
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Export format: csv|json|xlsx")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file path (default stdout for csv/json)")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "Start date YYYY-MM-DD")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "End date YYYY-MM-DD (inclusive)")

	importCmd.Flags().StringVar(&importFormat, "format", "csv", "Import format: csv|json")
	importCmd.Flags().StringVar(&importIn, "file", "", "Input file path (default stdin)")
	importCmd.Flags().StringVar(&importMode, "mode", "fail", "On duplicate id: fail|skip|replace")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Parse and classify without writing")
	importCmd.Flags().BoolVar(&importJSON, "json", false, "Output JSON")
}
