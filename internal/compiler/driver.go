// Package compiler builds solc invocations from a resolved
// configuration snapshot. It consumes only typed values; the engine
// guarantees nothing raw crosses into this package.
package compiler

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/solgo-dev/solgo/internal/config"
)

// Driver turns compiler.solc.* options into a solc command line. It
// holds one immutable snapshot; a new resolution pass means a new
// Driver.
type Driver struct {
	cfg *config.ResolvedConfig
}

// New creates a driver over a resolved configuration.
func New(cfg *config.ResolvedConfig) *Driver {
	return &Driver{cfg: cfg}
}

// TargetVersion returns the configured solc version, empty when the
// project does not pin one.
func (d *Driver) TargetVersion() string {
	return d.cfg.GetString("compiler.solc.target_version")
}

// Arguments assembles the solc argv for the given source files,
// excluding the binary name. Sources should already be filtered through
// FilterSources.
func (d *Driver) Arguments(sources []string) []string {
	var args []string

	if evm := d.cfg.GetString("compiler.solc.evm_version"); evm != "" {
		args = append(args, "--evm-version", evm)
	}
	if d.cfg.GetBool("compiler.solc.via_IR") {
		args = append(args, "--via-ir")
	}
	if d.cfg.GetBool("compiler.solc.optimizer.enabled") {
		args = append(args, "--optimize")
		args = append(args, "--optimize-runs", strconv.FormatInt(d.cfg.GetInt("compiler.solc.optimizer.runs"), 10))
	}

	args = append(args, "--base-path", d.cfg.WorkDir())
	for _, inc := range d.cfg.GetStringList("compiler.solc.include_paths") {
		args = append(args, "--include-path", inc)
	}
	if allow := d.cfg.GetStringList("compiler.solc.allow_paths"); len(allow) > 0 {
		args = append(args, "--allow-paths", strings.Join(allow, ","))
	}

	args = append(args, d.cfg.GetStringList("compiler.solc.remappings")...)
	return append(args, sources...)
}

// FilterSources drops source files matching compiler.solc.ignore_paths.
// Each ignore entry excludes the path itself, everything under it, and
// anything matching it as a glob pattern.
func (d *Driver) FilterSources(sources []string) []string {
	ignores := d.cfg.GetStringList("compiler.solc.ignore_paths")
	kept := make([]string, 0, len(sources))
	for _, src := range sources {
		if !d.ignored(src, ignores) {
			kept = append(kept, src)
		}
	}
	return kept
}

func (d *Driver) ignored(src string, ignores []string) bool {
	abs := src
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(d.cfg.WorkDir(), abs)
	}
	abs = filepath.Clean(abs)

	for _, ig := range ignores {
		if ig == "" {
			continue
		}
		if abs == ig || strings.HasPrefix(abs, ig+string(filepath.Separator)) {
			return true
		}
		if ok, err := doublestar.Match(ig, abs); err == nil && ok {
			return true
		}
	}
	return false
}
