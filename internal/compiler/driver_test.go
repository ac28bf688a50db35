package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solgo-dev/solgo/internal/config"
)

func resolveProject(t *testing.T, content string) *config.ResolvedConfig {
	t.Helper()
	project := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(project, "solgo.toml"), []byte(content), 0o644))
	cfg, err := (&config.Resolver{ProjectDir: project, WorkDir: project}).Resolve()
	require.NoError(t, err)
	return cfg
}

func TestArgumentsDefaults(t *testing.T) {
	cfg := config.Defaults(t.TempDir())
	args := New(cfg).Arguments([]string{"contracts/Token.sol"})

	// Defaults: no evm version, no via-ir, no optimizer.
	assert.NotContains(t, args, "--evm-version")
	assert.NotContains(t, args, "--via-ir")
	assert.NotContains(t, args, "--optimize")
	assert.Contains(t, args, "--base-path")
	assert.Contains(t, args, "--include-path")
	assert.Equal(t, "contracts/Token.sol", args[len(args)-1])
}

func TestArgumentsFromConfig(t *testing.T) {
	cfg := resolveProject(t, `
[compiler.solc]
evm_version = "london"
via_IR = true
remappings = ["@oz/=lib/oz/"]
allow_paths = ["lib"]

[compiler.solc.optimizer]
enabled = true
runs = 1000
`)
	d := New(cfg)
	args := d.Arguments(nil)

	joined := make(map[string]int)
	for i, a := range args {
		joined[a] = i
	}

	require.Contains(t, joined, "--evm-version")
	assert.Equal(t, "london", args[joined["--evm-version"]+1])
	assert.Contains(t, joined, "--via-ir")
	assert.Contains(t, joined, "--optimize")
	require.Contains(t, joined, "--optimize-runs")
	assert.Equal(t, "1000", args[joined["--optimize-runs"]+1])
	require.Contains(t, joined, "--allow-paths")
	assert.Equal(t, filepath.Join(cfg.WorkDir(), "lib"), args[joined["--allow-paths"]+1])
	assert.Contains(t, args, "@oz/=lib/oz/")
}

func TestTargetVersion(t *testing.T) {
	cfg := resolveProject(t, "[compiler.solc]\ntarget_version = \"0.8.20\"\n")
	assert.Equal(t, "0.8.20", New(cfg).TargetVersion())
}

func TestFilterSourcesIgnorePaths(t *testing.T) {
	cfg := config.Defaults(t.TempDir())
	d := New(cfg)

	work := cfg.WorkDir()
	sources := []string{
		filepath.Join(work, "contracts", "Token.sol"),
		filepath.Join(work, "node_modules", "dep", "Dep.sol"),
		filepath.Join(work, ".solgo-build", "artifact.sol"),
		"contracts/Vault.sol", // relative, kept
	}

	kept := d.FilterSources(sources)
	assert.Equal(t, []string{
		filepath.Join(work, "contracts", "Token.sol"),
		"contracts/Vault.sol",
	}, kept)
}

func TestFilterSourcesGlobPattern(t *testing.T) {
	cfg := resolveProject(t, `
[compiler.solc]
ignore_paths = ["{CWD}/**/*.t.sol"]
`)
	d := New(cfg)

	work := cfg.WorkDir()
	kept := d.FilterSources([]string{
		filepath.Join(work, "contracts", "Token.sol"),
		filepath.Join(work, "contracts", "Token.t.sol"),
	})
	assert.Equal(t, []string{filepath.Join(work, "contracts", "Token.sol")}, kept)
}
