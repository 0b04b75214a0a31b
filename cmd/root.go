// Package cmd contains all CLI commands for the xlsq binary.
package cmd

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/xlsq/cmd/completion"
	cmdconfig "github.com/klytics/xlsq/cmd/config"
	"github.com/klytics/xlsq/cmd/convert"
	"github.com/klytics/xlsq/cmd/export"
	"github.com/klytics/xlsq/cmd/importer"
	"github.com/klytics/xlsq/cmd/inspect"
	cmdshell "github.com/klytics/xlsq/cmd/shell"
	"github.com/klytics/xlsq/cmd/version"
	cmdwatch "github.com/klytics/xlsq/cmd/watch"
	"github.com/klytics/xlsq/internal/output"
)

var (
	jsonOutput bool
	verbose    bool
	noColor    bool
)

// NewRootCommand creates and returns the root cobra command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xlsq",
		Short: "Convert between SQLite databases and Excel workbooks",
		Long: `xlsq — spreadsheets in, tables out (and back).

Exports SQLite tables as .xlsx workbooks (one sheet per table, bold
autofiltered headers) and imports .xlsx sheets as tables. The workbook
reader and writer are built in; no spreadsheet application is needed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	// Global persistent flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as machine-readable JSON")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable ANSI color output")

	// Register subcommands
	rootCmd.AddCommand(export.NewCommand())
	rootCmd.AddCommand(importer.NewCommand())
	rootCmd.AddCommand(inspect.NewCommand())
	rootCmd.AddCommand(convert.NewCommand())
	rootCmd.AddCommand(cmdwatch.NewCommand())
	rootCmd.AddCommand(cmdshell.NewCommand())
	rootCmd.AddCommand(cmdconfig.NewCommand())
	rootCmd.AddCommand(completion.NewCommand(rootCmd))
	rootCmd.AddCommand(version.NewCommand())

	return rootCmd
}

func init() {
	cmdshell.Runner = Run
}

// Execute runs the root command and handles any returned errors.
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		if jsonOutput {
			output.PrintJSONError(rootCmd.Name(), err, output.ExitUserError)
		} else {
			output.WriteError("%s", err)
		}
		os.Exit(output.ExitUserError)
	}
}

// Run executes the root command with the given arguments and output
// streams. The interactive shell routes its lines through here.
func Run(args []string, stdout, stderr io.Writer) error {
	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.Execute()
}
