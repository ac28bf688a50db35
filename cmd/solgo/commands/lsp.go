package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/solgo-dev/solgo/internal/config"
	"github.com/solgo-dev/solgo/internal/event"
	"github.com/solgo-dev/solgo/internal/logging"
	"github.com/solgo-dev/solgo/internal/lsp"
	"github.com/solgo-dev/solgo/internal/watcher"
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Start the language server on stdio",
	Long: `Start the solgo language server speaking JSON-RPC over stdin and
stdout. Configuration changes from the client and edits to any config
file on disk both trigger a fresh resolution pass; an invalid
configuration is reported to the client while the previous one stays in
effect.`,
	RunE: runLSP,
}

func runLSP(cmd *cobra.Command, args []string) error {
	dir, err := workDir()
	if err != nil {
		return err
	}

	global := globalPath
	if global == "" {
		global = config.GlobalConfigPath()
	}

	bus := event.NewBus()
	defer bus.Close()

	session := lsp.NewSession(dir, global, bus)

	w, err := watcher.New(func(path string) {
		logger := logging.For("lsp")
		logger.Debug().Str("path", path).Msg("config change on disk")
		_ = session.Reload()
	})
	if err != nil {
		return err
	}
	defer w.Close()

	// Track the file set of each successful pass.
	if err := bus.Subscribe(event.ConfigResolved, func(e event.Event) {
		_ = w.Watch(e.Sources)
	}); err != nil {
		return err
	}
	_ = w.Watch(session.Config().Sources())

	logger := logging.For("lsp")
	logger.Info().Str("workdir", dir).Msg("language server listening on stdio")
	return lsp.NewServer(os.Stdin, os.Stdout, session, bus, Version).Run()
}
