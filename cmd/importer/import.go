// Package importer provides the "xlsq import" command.
package importer

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/xlsq/internal/bridge"
	"github.com/klytics/xlsq/internal/config"
	"github.com/klytics/xlsq/internal/output"
	"github.com/klytics/xlsq/internal/progress"
	"github.com/klytics/xlsq/internal/sqlite"
)

// NewCommand creates the "import" command.
func NewCommand() *cobra.Command {
	var (
		dbPath    string
		prefix    string
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "import <file.xlsx> [sheet...]",
		Short: "Import workbook sheets into database tables",
		Long: `Creates one table per sheet, named after the sheet, with column names
taken from the first row. Sheets can be selected by tab name or by
1-based position; with none given, every sheet is imported.

A sheet that fails to decode is skipped and reported; the remaining
sheets are still imported.

Example:
  xlsq import --db sales.db report.xlsx
  xlsq import --db sales.db report.xlsx Orders 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			if dbPath == "" {
				return fmt.Errorf("--db is required — specify the SQLite database to import into\n\nExample: xlsq import --db sales.db report.xlsx")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts := bridge.ImportOptions{
				TablePrefix: cfg.Import.TablePrefix,
				Overwrite:   cfg.Import.Overwrite,
			}
			if cmd.Flags().Changed("prefix") {
				opts.TablePrefix = prefix
			}
			if cmd.Flags().Changed("overwrite") {
				opts.Overwrite = overwrite
			}

			store, err := sqlite.OpenOrCreate(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			file, selectors := args[0], args[1:]
			bar := progress.New("Importing", len(selectors))

			result, err := bridge.Import(store, file, selectors, opts, func(sheet string) {
				bar.Increment(sheet)
			})
			if err != nil {
				return err
			}
			bar.Finish(fmt.Sprintf("Imported %d tables", len(result.Tables)))

			for _, sk := range result.Skipped {
				color.Yellow("Skipped sheet %q: %s", sk.Sheet, sk.Reason)
			}

			if jsonFlag {
				return output.PrintJSON("import", result)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tables (%d rows) from %s\n",
				len(result.Tables), result.Rows, result.File)
			if len(result.Skipped) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%d sheet(s) skipped\n", len(result.Skipped))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Path to the SQLite database (required; created if missing)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Prefix for created table names")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Drop and recreate tables that already exist")

	return cmd
}
