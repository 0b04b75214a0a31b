// Package inspect provides the "xlsq inspect" command.
package inspect

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/xlsq/internal/output"
	"github.com/klytics/xlsq/internal/xlsx"
)

type sheetSummary struct {
	Position int      `json:"position"`
	Name     string   `json:"name"`
	Columns  []string `json:"columns"`
	Rows     int      `json:"rows"`
}

type inspectResult struct {
	File    string         `json:"file"`
	Sheets  []sheetSummary `json:"sheets"`
	Skipped []string       `json:"skipped,omitempty"`
}

// NewCommand creates the "inspect" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file.xlsx>",
		Short: "List the sheets of a workbook",
		Long:  "Decodes a workbook and prints each sheet's name, columns, and row count without touching any database.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			wb, err := xlsx.ReadFile(args[0])
			if err != nil {
				return err
			}

			result := inspectResult{File: args[0]}
			for i, s := range wb.Sheets {
				result.Sheets = append(result.Sheets, sheetSummary{
					Position: i + 1,
					Name:     s.Name,
					Columns:  s.Columns,
					Rows:     len(s.Rows),
				})
			}
			for _, sk := range wb.Skipped {
				result.Skipped = append(result.Skipped,
					fmt.Sprintf("%s: %s", sk.Name, sk.Err))
			}

			if jsonFlag {
				return output.PrintJSON("inspect", result)
			}

			bold := color.New(color.Bold)
			for _, s := range result.Sheets {
				bold.Fprintf(cmd.OutOrStdout(), "%d. %s", s.Position, s.Name)
				fmt.Fprintf(cmd.OutOrStdout(), " — %d columns, %d rows\n", len(s.Columns), s.Rows)
				for _, c := range s.Columns {
					fmt.Fprintf(cmd.OutOrStdout(), "     %s\n", c)
				}
			}
			for _, sk := range result.Skipped {
				color.Yellow("Skipped %s", sk)
			}
			return nil
		},
	}
	return cmd
}
