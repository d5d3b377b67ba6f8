package gate

import (
	"context"
	"sync"
	"time"
)

// State of a visitor's gate session.
type State int

const (
	// StateClosed: inquiry not submitted yet, modal hidden.
	StateClosed State = iota
	// StatePrompting: inquiry not submitted, mandatory modal showing.
	StatePrompting
	// StateOpenUngated: inquiry submitted, gate inert for the rest of
	// the session. Terminal.
	StateOpenUngated
)

func (s State) String() string {
	switch s {
	case StatePrompting:
		return "prompting"
	case StateOpenUngated:
		return "open"
	default:
		return "closed"
	}
}

// Action is the interaction deferred by the gate. Kind and Target are
// transportable so an HTTP client can resume the action itself; Run is
// an optional in-process callback invoked exactly once on resume.
type Action struct {
	Kind   string `json:"kind"`
	Target string `json:"target"`
	Run    func() `json:"-"`
}

// Decision is the outcome of RequestGatedAction.
type Decision int

const (
	// DecisionExecuted: the session is already ungated, the action ran
	// (or may run) immediately.
	DecisionExecuted Decision = iota
	// DecisionDeferred: the action was parked and the modal opened.
	DecisionDeferred
)

type Clock func() time.Time

type Config struct {
	// PromptInterval is how often an unsubmitted session is re-prompted.
	PromptInterval time.Duration
	// SessionTTL bounds how long an idle session stays in memory.
	// Evicted sessions rebuild from the store on their next request.
	SessionTTL time.Duration
	Clock      Clock
}

// Manager owns the live gate sessions and the store that persists the
// submitted flag across reloads.
type Manager struct {
	store    SessionStore
	interval time.Duration
	ttl      time.Duration
	clock    Clock

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(store SessionStore, cfg Config) *Manager {
	interval := cfg.PromptInterval
	if interval <= 0 {
		interval = 60 * time.Second
	}
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Manager{
		store:    store,
		interval: interval,
		ttl:      ttl,
		clock:    clock,
		sessions: make(map[string]*Session),
	}
}

// Session returns the live gate session for the given ID, resolving the
// initial state from the persisted submitted flag.
func (m *Manager) Session(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	if s, ok := m.sessions[id]; ok {
		m.mu.Unlock()
		s.touch()
		return s, nil
	}
	m.mu.Unlock()

	submitted, err := m.store.IsSubmitted(ctx, id)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		s.touch()
		return s, nil
	}
	m.evictIdleLocked(m.clock())
	s := &Session{
		id:         id,
		store:      m.store,
		clock:      m.clock,
		interval:   m.interval,
		submitted:  submitted,
		lastPrompt: m.clock(),
		lastSeen:   m.clock(),
	}
	m.sessions[id] = s
	return s, nil
}

// evictIdleLocked drops sessions idle past the TTL so the live map
// cannot grow without bound. A dropped session loses only its prompt
// state and any parked action; the submitted flag rebuilds from the
// store.
func (m *Manager) evictIdleLocked(now time.Time) {
	for id, s := range m.sessions {
		if s.idleSince(now) >= m.ttl {
			delete(m.sessions, id)
		}
	}
}

// Complete marks the session's mandatory inquiry as submitted and
// releases it from the live map: the pending action is consumed here
// and everything the session still needs is in the store.
func (m *Manager) Complete(ctx context.Context, id string) (*Action, error) {
	s, err := m.Session(ctx, id)
	if err != nil {
		return nil, err
	}
	resumed, err := s.Complete(ctx)

	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()

	return resumed, err
}

// Session tracks whether a visitor has completed the mandatory inquiry
// and holds at most one deferred action while the modal is showing.
type Session struct {
	mu         sync.Mutex
	id         string
	store      SessionStore
	clock      Clock
	interval   time.Duration
	submitted  bool
	prompting  bool
	pending    *Action
	lastPrompt time.Time
	lastSeen   time.Time
}

func (s *Session) ID() string { return s.id }

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = s.clock()
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// State reports the current gate state, applying the auto-prompt policy
// first: an unsubmitted session re-enters prompting once the configured
// interval has elapsed since it was last closed.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoPromptLocked()
	return s.stateLocked()
}

func (s *Session) IsSubmitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitted
}

func (s *Session) stateLocked() State {
	switch {
	case s.submitted:
		return StateOpenUngated
	case s.prompting:
		return StatePrompting
	default:
		return StateClosed
	}
}

func (s *Session) autoPromptLocked() {
	if s.submitted || s.prompting {
		return
	}
	if s.clock().Sub(s.lastPrompt) >= s.interval {
		s.prompting = true
	}
}

// RequestGatedAction is the interception contract. An ungated session
// executes the action immediately; otherwise the action is parked
// (last-write-wins, a previously pending action is discarded) and the
// modal opens.
func (s *Session) RequestGatedAction(a Action) Decision {
	s.mu.Lock()
	if s.submitted {
		s.mu.Unlock()
		if a.Run != nil {
			a.Run()
		}
		return DecisionExecuted
	}
	s.pending = &a
	s.prompting = true
	s.mu.Unlock()
	return DecisionDeferred
}

// Dismiss closes the modal without submitting. The pending action is
// discarded, never invoked, and the prompt timer re-arms.
func (s *Session) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitted {
		return
	}
	s.prompting = false
	s.pending = nil
	s.lastPrompt = s.clock()
}

// Complete marks the mandatory inquiry as submitted, persists the flag
// for the rest of the session, closes the modal and consumes the
// pending action exactly once. The submitted flag is monotonic: calling
// Complete again is a no-op. A store failure does not undo the
// in-memory transition; the error is returned for diagnostic logging.
func (s *Session) Complete(ctx context.Context) (*Action, error) {
	s.mu.Lock()
	if s.submitted {
		s.mu.Unlock()
		return nil, nil
	}
	s.submitted = true
	s.prompting = false
	resumed := s.pending
	s.pending = nil
	s.mu.Unlock()

	if resumed != nil && resumed.Run != nil {
		resumed.Run()
	}

	if err := s.store.MarkSubmitted(ctx, s.id); err != nil {
		return resumed, err
	}
	return resumed, nil
}
