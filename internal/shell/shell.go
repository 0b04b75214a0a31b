// Package shell provides the interactive xlsq REPL.
package shell

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/klytics/xlsq/internal/output"
)

// CommandRunner executes an xlsq command and returns its output.
// This is set by the cmd/shell package to avoid import cycles.
type CommandRunner func(ctx context.Context, args []string, stdout, stderr io.Writer) error

// DefaultRunner is the command runner used by the shell session.
var DefaultRunner CommandRunner

// Session manages an interactive xlsq shell session.
type Session struct {
	DefaultDB      string
	LastOutput     string
	CommandHistory []string
	HistoryFile    string
	StartTime      time.Time

	// KnownCommands is the list of top-level commands for completion.
	KnownCommands []string
}

// NewSession creates a new interactive session.
func NewSession() (*Session, error) {
	home, _ := os.UserHomeDir()
	histFile := filepath.Join(home, ".xlsq", "shell_history")

	// Ensure parent dir exists
	os.MkdirAll(filepath.Dir(histFile), 0755)

	return &Session{
		HistoryFile: histFile,
		StartTime:   time.Now(),
		KnownCommands: []string{
			"export", "import", "inspect", "convert", "watch",
			"config", "completion", "version",
			"help", "exit", "quit", "history", "set",
		},
	}, nil
}

// Run starts the REPL loop. Blocks until 'exit' or Ctrl+D.
func (s *Session) Run(ctx context.Context) error {
	if DefaultRunner == nil {
		return fmt.Errorf("shell runner not configured")
	}

	completer := readline.NewPrefixCompleter(s.buildCompleter()...)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "xlsq> ",
		HistoryFile:     s.HistoryFile,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Printf("xlsq — Interactive Shell\n")
	fmt.Println("Type 'help' for commands, 'exit' to quit.")
	fmt.Println()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		s.CommandHistory = append(s.CommandHistory, line)

		switch {
		case line == "exit" || line == "quit":
			elapsed := time.Since(s.StartTime)
			fmt.Printf("\nSession ended. %d commands run in %s.\n",
				len(s.CommandHistory)-1, formatDuration(elapsed))
			return nil
		case line == "help":
			s.printHelp()
		case line == "history":
			for i, cmd := range s.CommandHistory {
				fmt.Printf("  %d  %s\n", i+1, cmd)
			}
		case strings.HasPrefix(line, "set db "):
			s.DefaultDB = strings.TrimPrefix(line, "set db ")
			fmt.Printf("Default database: %s\n", s.DefaultDB)
		default:
			out, err := s.Eval(ctx, line)
			if err != nil {
				output.WriteError("%s", err)
			} else if out != "" {
				fmt.Print(out)
				if !strings.HasSuffix(out, "\n") {
					fmt.Println()
				}
			}
		}
	}

	return nil
}

// Eval runs a single command string and returns its output. When a default
// database has been set and the command takes --db, it is appended unless
// the user already passed one.
func (s *Session) Eval(ctx context.Context, command string) (string, error) {
	if DefaultRunner == nil {
		return "", fmt.Errorf("shell runner not configured")
	}

	args := strings.Fields(command)
	if len(args) == 0 {
		return "", nil
	}
	if s.DefaultDB != "" && takesDatabase(args[0]) && !hasFlag(args, "--db") {
		args = append(args, "--db", s.DefaultDB)
	}

	var stdout, stderr bytes.Buffer
	err := DefaultRunner(ctx, args, &stdout, &stderr)

	out := stdout.String()
	s.LastOutput = out

	if errOut := stderr.String(); errOut != "" && err != nil {
		return out, fmt.Errorf("%s", strings.TrimSpace(errOut))
	}

	return out, err
}

func takesDatabase(cmd string) bool {
	return cmd == "export" || cmd == "import"
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag || strings.HasPrefix(a, flag+"=") {
			return true
		}
	}
	return false
}

// Complete returns tab-completion candidates for the given input.
func (s *Session) Complete(input string) []string {
	input = strings.TrimSpace(input)
	if input == "" {
		return s.KnownCommands
	}

	parts := strings.Fields(input)
	if len(parts) == 0 {
		return s.KnownCommands
	}

	if len(parts) == 1 && !strings.HasSuffix(input, " ") {
		prefix := parts[0]
		var matches []string
		for _, cmd := range s.KnownCommands {
			if strings.HasPrefix(cmd, prefix) {
				matches = append(matches, cmd)
			}
		}
		sort.Strings(matches)
		return matches
	}

	if strings.HasSuffix(input, " -") || strings.HasPrefix(parts[len(parts)-1], "-") {
		return []string{"--json", "--verbose", "--help", "--db", "--output"}
	}

	return nil
}

func (s *Session) printHelp() {
	fmt.Println("Available commands:")
	fmt.Println()
	fmt.Println("  export   — write database tables to an .xlsx workbook")
	fmt.Println("  import   — load workbook sheets into database tables")
	fmt.Println("  inspect  — list the sheets of a workbook")
	fmt.Println("  convert  — render a sheet as csv, json, or markdown")
	fmt.Println("  watch    — re-export databases when they change")
	fmt.Println("  config   — show configuration")
	fmt.Println()
	fmt.Println("Shell commands:")
	fmt.Println("  help        — show this help")
	fmt.Println("  history     — show command history")
	fmt.Println("  set db <path> — set default database for export/import")
	fmt.Println("  exit        — exit the shell")
}

func (s *Session) buildCompleter() []readline.PrefixCompleterInterface {
	var items []readline.PrefixCompleterInterface
	for _, cmd := range s.KnownCommands {
		items = append(items, readline.PcItem(cmd))
	}
	return items
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	m := int(d.Minutes())
	sec := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %ds", m, sec)
}
