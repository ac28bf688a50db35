// Package commands provides the CLI commands for solgo.
package commands

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/solgo-dev/solgo/internal/logging"
)

// Version information set at build time.
var Version = "0.1.0"

// Global flags
var (
	logLevel   string
	prettyLogs bool
	globalPath string
	projectDir string
)

var rootCmd = &cobra.Command{
	Use:   "solgo",
	Short: "solgo - Solidity compiler driver and language server",
	Long: `solgo drives the Solidity compiler and serves the language protocol
for editors, configured through layered solgo.toml documents: a global
per-user file, a project file, and any subconfigs they reference.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A .env next to the invocation is a developer convenience, not
		// a configuration layer; its absence is fine.
		_ = godotenv.Load()
		logging.Init(logging.Config{Level: logLevel, Pretty: prettyLogs})
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "INFO", "Log level (DEBUG|INFO|WARN|ERROR)")
	rootCmd.PersistentFlags().BoolVar(&prettyLogs, "pretty-logs", false, "Human-readable log output")
	rootCmd.PersistentFlags().StringVar(&globalPath, "global-config", "", "Override the global config file path")
	rootCmd.PersistentFlags().StringVar(&projectDir, "project", "", "Project root directory (default: working directory)")

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(configCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// workDir returns the project directory flag or the current directory.
func workDir() (string, error) {
	if projectDir != "" {
		return projectDir, nil
	}
	return os.Getwd()
}
