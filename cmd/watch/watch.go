// Package watch provides the "xlsq watch" command.
package watch

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/klytics/xlsq/internal/bridge"
	"github.com/klytics/xlsq/internal/config"
	"github.com/klytics/xlsq/internal/sqlite"
	w "github.com/klytics/xlsq/internal/watch"
)

// NewCommand creates the "watch" command.
func NewCommand() *cobra.Command {
	var (
		rulesPath string
		debounce  int
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-export databases to workbooks when they change",
		Long: `Watches the databases listed in a YAML rules file and re-runs the
export whenever one changes. Blocks until interrupted.

Rules file:
  rules:
    - database: sales.db
      output: sales.xlsx
    - database: inventory.db
      output: reports/inventory.xlsx
      tables: [items, locations]

Example:
  xlsq watch --rules watch.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := w.LoadConfig(rulesPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("debounce") {
				cfg.DebounceMs = debounce
			} else if cfg.DebounceMs == 0 {
				if appCfg, err := config.Load(); err == nil {
					cfg.DebounceMs = appCfg.Watch.DebounceMs
				}
			}

			logger := log.New(cmd.ErrOrStderr(), "watch: ", log.LstdFlags)
			watcher := w.New(*cfg, exportRule, logger)

			stop := make(chan struct{})
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-sig
				close(stop)
			}()

			return watcher.Start(stop)
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "watch.yaml", "Path to the YAML rules file")
	cmd.Flags().IntVar(&debounce, "debounce", 500, "Milliseconds to wait after a change before exporting")

	return cmd
}

func exportRule(rule w.Rule) error {
	store, err := sqlite.Open(rule.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = bridge.Export(store, rule.Output, rule.Tables, nil)
	return err
}
