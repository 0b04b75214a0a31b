// Package shell provides the "xlsq shell" interactive REPL command.
package shell

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	shellpkg "github.com/klytics/xlsq/internal/shell"
)

// Runner executes an xlsq command line. Set by cmd to avoid an import
// cycle between the shell and the root command.
var Runner func(args []string, stdout, stderr io.Writer) error

// NewCommand creates the "shell" command.
func NewCommand() *cobra.Command {
	var (
		evalCmd string
		dbPath  string
	)

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive xlsq shell",
		Long: `Start an interactive REPL with history and tab completion.

Set a default database once with 'set db <path>' and every export or
import in the session uses it without repeating --db.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := shellpkg.NewSession()
			if err != nil {
				return err
			}
			if dbPath != "" {
				session.DefaultDB = dbPath
			}
			if evalCmd != "" {
				output, err := session.Eval(cmd.Context(), evalCmd)
				if err != nil {
					return err
				}
				fmt.Print(output)
				return nil
			}
			return session.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&evalCmd, "eval", "", "Run a single command and exit")
	cmd.Flags().StringVar(&dbPath, "db", "", "Default database for the session")
	return cmd
}

func init() {
	shellpkg.DefaultRunner = func(ctx context.Context, args []string, stdout, stderr io.Writer) error {
		if Runner == nil {
			return fmt.Errorf("shell runner not configured")
		}
		return Runner(args, stdout, stderr)
	}
}
