package lsp

import (
	"sync"
	"sync/atomic"

	"github.com/solgo-dev/solgo/internal/config"
	"github.com/solgo-dev/solgo/internal/event"
	"github.com/solgo-dev/solgo/internal/logging"
)

// Session owns the configuration visible to one workspace root. The
// snapshot is swapped atomically and wholesale: readers either see the
// previous complete config or the next one, never an intermediate
// state. A resolution failure leaves the current snapshot in effect, so
// editing keeps functioning; a session that never resolved successfully
// serves defaults.
//
// Multiple workspace roots get independent sessions; they share nothing
// but the (read-only) schema registry.
type Session struct {
	workDir    string
	globalPath string
	bus        *event.Bus

	current atomic.Pointer[config.ResolvedConfig]

	// mu serializes resolution passes so the latest trigger produces
	// the latest visible snapshot.
	mu             sync.Mutex
	clientSettings map[string]any
}

// NewSession creates a session for one workspace root and runs the
// initial resolution pass. The session is usable even when that pass
// fails; it then serves defaults until a later pass succeeds.
func NewSession(workDir, globalPath string, bus *event.Bus) *Session {
	s := &Session{workDir: workDir, globalPath: globalPath, bus: bus}
	s.current.Store(config.Defaults(workDir))
	if err := s.Reload(); err != nil {
		logger := logging.For("lsp")
		logger.Warn().
			Err(err).
			Str("workdir", workDir).
			Msg("initial configuration invalid, serving defaults")
	}
	return s
}

// Config returns the currently visible snapshot. Always non-nil.
func (s *Session) Config() *config.ResolvedConfig {
	return s.current.Load()
}

// WorkDir returns the workspace root this session serves.
func (s *Session) WorkDir() string { return s.workDir }

// IncludeDeclarations reports whether find-references results should
// include declaration sites, per the current snapshot.
func (s *Session) IncludeDeclarations() bool {
	return s.Config().GetBool("lsp.find_references.include_declarations")
}

// DidChangeConfiguration applies settings supplied by the client and
// re-resolves from scratch with them as the highest-precedence layer.
// The settings are retained so later file-driven reloads keep honoring
// them.
func (s *Session) DidChangeConfiguration(settings map[string]any) error {
	s.mu.Lock()
	s.clientSettings = settings
	s.mu.Unlock()
	return s.Reload()
}

// Reload runs a full resolution pass. On success the new snapshot
// replaces the visible one and a ConfigResolved event is published; on
// failure the previous snapshot stays visible and ConfigFailed is
// published.
func (s *Session) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var extra []*config.Layer
	if len(s.clientSettings) > 0 {
		layer, err := config.LayerFromValues(config.LSPOrigin, s.clientSettings)
		if err != nil {
			s.publishFailure(err)
			return err
		}
		extra = append(extra, layer)
	}

	cfg, err := (&config.Resolver{
		GlobalPath:  s.globalPath,
		ProjectDir:  s.workDir,
		ExtraLayers: extra,
		WorkDir:     s.workDir,
	}).Resolve()
	if err != nil {
		s.publishFailure(err)
		return err
	}

	s.current.Store(cfg)
	if s.bus != nil {
		_ = s.bus.Publish(event.Event{
			Type:    event.ConfigResolved,
			WorkDir: s.workDir,
			Sources: cfg.Sources(),
		})
	}
	return nil
}

func (s *Session) publishFailure(err error) {
	logger := logging.For("lsp")
	logger.Error().
		Err(err).
		Str("workdir", s.workDir).
		Msg("configuration resolution failed")
	if s.bus != nil {
		_ = s.bus.Publish(event.Event{
			Type:    event.ConfigFailed,
			WorkDir: s.workDir,
			Error:   err.Error(),
		})
	}
}
