package commands

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/solgo-dev/solgo/internal/config"
)

var configJSON bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration",
	Long: `Config runs a full resolution pass and prints every option with its
effective value: explicit settings, defaults, and resolved paths alike.`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configJSON, "json", false, "Emit JSON instead of key = value lines")
}

func runConfig(cmd *cobra.Command, args []string) error {
	dir, err := workDir()
	if err != nil {
		return err
	}

	global := globalPath
	if global == "" {
		global = config.GlobalConfigPath()
	}

	cfg, err := (&config.Resolver{
		GlobalPath: global,
		ProjectDir: dir,
		WorkDir:    dir,
	}).Resolve()
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	values := cfg.Map()
	if configJSON {
		out, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", k, formatValue(values[k]))
	}
	return nil
}

func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return fmt.Sprintf("%q", t)
	case []string:
		quoted := make([]string, len(t))
		for i, s := range t {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	default:
		return fmt.Sprintf("%v", t)
	}
}
