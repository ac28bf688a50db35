package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/solgo-dev/solgo/internal/compiler"
	"github.com/solgo-dev/solgo/internal/config"
	"github.com/solgo-dev/solgo/internal/logging"
)

var compileStrict bool

var compileCmd = &cobra.Command{
	Use:   "compile [sources...]",
	Short: "Resolve configuration and assemble the solc invocation",
	Long: `Compile resolves the layered configuration for the project, filters
the given source files against ignore_paths, and prints the resulting
solc invocation. A fatal configuration error aborts with a non-zero
status and names the offending file.`,
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().BoolVar(&compileStrict, "strict", false, "Treat unknown config options as errors")
}

func runCompile(cmd *cobra.Command, args []string) error {
	dir, err := workDir()
	if err != nil {
		return err
	}

	global := globalPath
	if global == "" {
		global = config.GlobalConfigPath()
	}

	policy := config.PolicyWarn
	if compileStrict {
		policy = config.PolicyError
	}

	cfg, err := (&config.Resolver{
		GlobalPath: global,
		ProjectDir: dir,
		WorkDir:    dir,
		Policy:     policy,
	}).Resolve()
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	driver := compiler.New(cfg)
	sources := driver.FilterSources(args)
	if len(args) > 0 && len(sources) == 0 {
		return fmt.Errorf("all given sources are excluded by compiler.solc.ignore_paths")
	}

	log := logging.For("compile")
	log.Info().
		Str("project", dir).
		Int("sources", len(sources)).
		Str("solc", driver.TargetVersion()).
		Msg("configuration resolved")

	solc := "solc"
	if v := driver.TargetVersion(); v != "" {
		solc = "solc-" + v
	}
	fmt.Fprintln(cmd.OutOrStdout(), solc+" "+strings.Join(driver.Arguments(sources), " "))
	return nil
}
