// Package convert provides the "xlsq convert" command.
package convert

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/klytics/xlsq/internal/convert"
	"github.com/klytics/xlsq/internal/xlsx"
)

// NewCommand creates the "convert" command.
func NewCommand() *cobra.Command {
	var (
		sheetName string
		format    string
		outPath   string
	)

	cmd := &cobra.Command{
		Use:   "convert <file.xlsx>",
		Short: "Render a worksheet as csv, json, or markdown",
		Long: `Decodes one sheet of a workbook and renders it as text. With no
--sheet, the first sheet is used. Output goes to stdout unless --output
is given.

Example:
  xlsq convert report.xlsx --to csv
  xlsq convert report.xlsx --sheet Orders --to md --output orders.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := xlsx.ReadFile(args[0])
			if err != nil {
				return err
			}

			var sheet *xlsx.Sheet
			if sheetName != "" {
				sheet, err = wb.Sheet(sheetName)
				if err != nil {
					return err
				}
			} else {
				if len(wb.Sheets) == 0 {
					return fmt.Errorf("no sheets found in %s", args[0])
				}
				sheet = wb.Sheets[0]
			}

			result, err := convert.Sheet(sheet, format)
			if err != nil {
				return err
			}

			if outPath != "" {
				if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
					return err
				}
				if err := os.WriteFile(outPath, []byte(result), 0644); err != nil {
					return fmt.Errorf("could not write %s: %w", outPath, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outPath)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet to convert (default: first sheet)")
	cmd.Flags().StringVar(&format, "to", "csv", "Output format: csv | json | md")
	cmd.Flags().StringVar(&outPath, "output", "", "Write to file instead of stdout")

	return cmd
}
