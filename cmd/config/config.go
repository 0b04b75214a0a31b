// Package config provides CLI commands for configuration management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/klytics/xlsq/internal/config"
	"github.com/klytics/xlsq/internal/output"
)

// NewCommand returns the config command group.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage xlsq configuration",
		Long:  "View and modify xlsq settings stored in ~/.xlsq/config.yaml.",
	}

	cmd.AddCommand(newShowCommand())
	cmd.AddCommand(newSetCommand())
	cmd.AddCommand(newPathCommand())

	return cmd
}

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if jsonFlag {
				return output.PrintJSON("config show", cfg)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "import.table_prefix: %q\n", cfg.Import.TablePrefix)
			fmt.Fprintf(cmd.OutOrStdout(), "import.overwrite:    %v\n", cfg.Import.Overwrite)
			fmt.Fprintf(cmd.OutOrStdout(), "watch.debounce_ms:   %d\n", cfg.Watch.DebounceMs)
			fmt.Fprintf(cmd.OutOrStdout(), "output.format:       %s\n", cfg.Output.Format)
			fmt.Fprintf(cmd.OutOrStdout(), "output.color:        %v\n", cfg.Output.Color)
			return nil
		},
	}
}

func newSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToLower(args[0])
			if _, err := config.Load(); err != nil {
				return err
			}
			if !viper.IsSet(key) {
				return fmt.Errorf("unknown configuration key %q — see 'xlsq config show'", key)
			}
			viper.Set(key, args[1])

			dir := config.Dir()
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
			path := filepath.Join(dir, "config.yaml")
			if err := viper.WriteConfigAs(path); err != nil {
				return fmt.Errorf("could not write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, args[1])
			return nil
		},
	}
}

func newPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(config.Dir(), "config.yaml"))
		},
	}
}
