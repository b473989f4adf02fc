package menu

import (
	"context"
	"sync"

	"github.com/grovetools/actionmenu/action"
	"github.com/grovetools/actionmenu/config"
	"github.com/grovetools/actionmenu/dispatch"
	"github.com/grovetools/actionmenu/errors"
	"github.com/grovetools/actionmenu/logging"
	"github.com/grovetools/actionmenu/notify"
	"github.com/grovetools/actionmenu/protocol"
	"github.com/grovetools/actionmenu/provider"
	"github.com/sirupsen/logrus"
)

// Chooser is the generic single-level selection widget used when no
// action carries a group label. Implementations call onSelect with the
// chosen item, or with nil when the user dismisses the chooser.
type Chooser interface {
	Choose(items []*action.Item, prompt string, format func(*action.Item) string, onSelect func(*action.Item))
}

// Options configures a Manager.
type Options struct {
	Config     *config.Config
	Host       Host
	Notifier   notify.Notifier
	Aggregator *provider.Aggregator
	Selector   *dispatch.Dispatcher
	// Chooser is optional; without one the two-tier menu is used even
	// when no groups exist.
	Chooser Chooser
}

// Manager owns at most one live selection session and runs the
// request → aggregate → partition → present flow. A second invocation
// while a session is live is rejected rather than sharing state, and
// each flow carries a generation stamp so an aggregation that finishes
// after the flow was abandoned is discarded instead of opening
// surfaces.
type Manager struct {
	mu         sync.Mutex
	generation uint64
	active     *Session

	cfg        *config.Config
	host       Host
	notifier   notify.Notifier
	aggregator *provider.Aggregator
	selector   *dispatch.Dispatcher
	chooser    Chooser
	log        *logrus.Entry
}

// NewManager creates a Manager.
func NewManager(opts Options) *Manager {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	aggregator := opts.Aggregator
	if aggregator == nil {
		aggregator = provider.NewAggregator()
	}
	return &Manager{
		cfg:        cfg,
		host:       opts.Host,
		notifier:   opts.Notifier,
		aggregator: aggregator,
		selector:   opts.Selector,
		chooser:    opts.Chooser,
		log:        logging.NewLogger("menu"),
	}
}

// Request runs one selection flow: fan the query out to the given
// providers, wait for every branch, then present the aggregated
// actions. With zero actions an informational notice is emitted and no
// surface is opened. With no groups and the fallback enabled, the flat
// chooser is used; otherwise the two-tier menu opens.
func (m *Manager) Request(ctx context.Context, providers []provider.Provider, params protocol.CodeActionParams) error {
	m.mu.Lock()
	if m.active != nil {
		m.mu.Unlock()
		return errors.SessionActive()
	}
	m.generation++
	gen := m.generation
	m.mu.Unlock()

	items := m.aggregator.Request(ctx, providers, params)

	m.mu.Lock()
	if gen != m.generation {
		m.mu.Unlock()
		m.log.Debug("discarding stale aggregation result")
		return nil
	}
	if m.active != nil {
		m.mu.Unlock()
		return errors.SessionActive()
	}

	if len(items) == 0 {
		m.mu.Unlock()
		m.notifier.Notify(notify.LevelInfo, "No code actions available")
		return nil
	}

	partitioned := action.Partition(items)

	if partitioned.GroupCount() == 0 && m.cfg.FallbackEnabled() && m.chooser != nil {
		m.mu.Unlock()
		m.presentFallback(partitioned)
		return nil
	}

	session := newSession(m.cfg, m.host, m.notifier, m.selector, partitioned, m.log)
	session.onClose = func() { m.release(session) }
	m.active = session
	m.mu.Unlock()

	return session.Open()
}

// Invalidate abandons any in-flight aggregation: a fan-out that
// completes afterwards is discarded instead of opening a surface.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	m.generation++
	m.mu.Unlock()
}

// Active returns the live session, or nil.
func (m *Manager) Active() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

func (m *Manager) release(s *Session) {
	m.mu.Lock()
	if m.active == s {
		m.active = nil
	}
	m.mu.Unlock()
}

// presentFallback shows all items in the flat chooser, with embedded
// newlines escaped to visible sequences for single-line display.
func (m *Manager) presentFallback(p *action.Partitioned) {
	items := p.All()
	m.chooser.Choose(items, "Code actions:", fallbackLabel, func(chosen *action.Item) {
		if chosen == nil {
			return
		}
		if err := m.selector.Select(context.Background(), chosen); err != nil {
			m.log.WithError(err).WithField("action", chosen.Title()).
				Debug("selection pipeline failed")
		}
	})
}

// fallbackLabel renders an item for the flat chooser: raw newlines are
// escaped to visible sequences rather than collapsed.
func fallbackLabel(it *action.Item) string {
	label := action.EscapeTitle(it.Title())
	if reason := it.Disabled(); reason != "" {
		label += " (" + reason + ")"
	}
	return label
}
