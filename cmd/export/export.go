// Package export provides the "xlsq export" command.
package export

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/xlsq/internal/bridge"
	"github.com/klytics/xlsq/internal/output"
	"github.com/klytics/xlsq/internal/progress"
	"github.com/klytics/xlsq/internal/sqlite"
)

// NewCommand creates the "export" command.
func NewCommand() *cobra.Command {
	var (
		dbPath  string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "export [table...]",
		Short: "Export database tables to an Excel workbook",
		Long: `Writes one worksheet per table, named after the table, with the column
names as a bold, autofiltered header row. With no tables named, every
table in the database is exported.

Example:
  xlsq export --db sales.db --output sales.xlsx
  xlsq export --db sales.db --output q1.xlsx orders customers`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			if dbPath == "" {
				return fmt.Errorf("--db is required — specify the SQLite database to export\n\nExample: xlsq export --db sales.db --output sales.xlsx")
			}
			if outPath == "" {
				return fmt.Errorf("--output is required — specify the output .xlsx path\n\nExample: xlsq export --db sales.db --output sales.xlsx")
			}
			if !strings.HasSuffix(strings.ToLower(outPath), ".xlsx") {
				outPath += ".xlsx"
			}

			store, err := sqlite.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			tables := args
			total := len(tables)
			if total == 0 {
				if all, err := store.Tables(); err == nil {
					total = len(all)
				}
			}
			bar := progress.New("Exporting", total)

			result, err := bridge.Export(store, outPath, tables, func(table string) {
				bar.Increment(table)
			})
			if err != nil {
				return err
			}
			bar.Finish(fmt.Sprintf("Exported %d sheets", len(result.Sheets)))

			if warning := result.Warning(); warning != "" {
				color.Yellow("Warning: %s", warning)
			}

			if jsonFlag {
				return output.PrintJSON("export", result)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d sheets, %d rows)\n",
				result.File, len(result.Sheets), result.Rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Path to the SQLite database (required)")
	cmd.Flags().StringVar(&outPath, "output", "", "Output .xlsx file path (required)")

	return cmd
}
