package session

import (
	"log/slog"
	"sync"
	"time"
)

// State describes the lifecycle of a tracked session.
type State string

const (
	StateActive  State = "active"
	StateExpired State = "expired"
)

// DefaultIdleTimeout is how long a session may sit without activity
// before it is signed out.
const DefaultIdleTimeout = 15 * time.Minute

// ExpireFunc is invoked exactly once when a session idles out. It is
// never called for sessions removed via SignOut or Stop.
type ExpireFunc func(sessionID string)

type trackedSession struct {
	id       string
	state    State
	timer    *time.Timer
	lastSeen time.Time
}

// Guard watches authenticated sessions and expires the ones that stay
// idle past the configured timeout. All methods are safe for concurrent
// use.
type Guard struct {
	mu          sync.Mutex
	sessions    map[string]*trackedSession
	idleTimeout time.Duration
	onExpire    ExpireFunc
	logger      *slog.Logger
	closed      bool
}

func NewGuard(idleTimeout time.Duration, onExpire ExpireFunc, logger *slog.Logger) *Guard {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	return &Guard{
		sessions:    make(map[string]*trackedSession),
		idleTimeout: idleTimeout,
		onExpire:    onExpire,
		logger:      logger,
	}
}

// Start begins tracking a session. Starting an already tracked session
// resets its idle timer, same as Touch.
func (g *Guard) Start(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return
	}
	g.armLocked(sessionID)
}

// Touch records activity on a session and rearms its timer. Sessions
// the guard has never seen are registered on first touch, so a restart
// of the process does not strand tokens issued before it.
func (g *Guard) Touch(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return
	}
	if s, ok := g.sessions[sessionID]; ok && s.state == StateExpired {
		return
	}
	g.armLocked(sessionID)
}

// armLocked cancels any pending timer before arming a fresh one, so a
// session can never have two expiry timers in flight. Caller holds mu.
func (g *Guard) armLocked(sessionID string) {
	s, ok := g.sessions[sessionID]
	if ok {
		s.timer.Stop()
	} else {
		s = &trackedSession{id: sessionID, state: StateActive}
		g.sessions[sessionID] = s
	}
	s.lastSeen = time.Now()
	s.timer = time.AfterFunc(g.idleTimeout, func() {
		g.expire(sessionID)
	})
}

func (g *Guard) expire(sessionID string) {
	g.mu.Lock()
	s, ok := g.sessions[sessionID]
	if !ok || s.state != StateActive || g.closed {
		g.mu.Unlock()
		return
	}
	s.state = StateExpired
	onExpire := g.onExpire
	g.mu.Unlock()

	if g.logger != nil {
		g.logger.Info("session expired after inactivity", "session_id", sessionID)
	}
	if onExpire != nil {
		onExpire(sessionID)
	}
}

// IsActive reports whether the session is tracked and not yet expired.
func (g *Guard) IsActive(sessionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	s, ok := g.sessions[sessionID]
	return ok && s.state == StateActive
}

// IsExpired reports whether the session idled out. Unknown sessions are
// not expired; they get registered on their next Touch.
func (g *Guard) IsExpired(sessionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	s, ok := g.sessions[sessionID]
	return ok && s.state == StateExpired
}

// SignOut removes a session without firing the expiry callback. Used on
// explicit logout.
func (g *Guard) SignOut(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if s, ok := g.sessions[sessionID]; ok {
		s.timer.Stop()
		delete(g.sessions, sessionID)
	}
}

// Close drops all sessions and prevents any further expiry callbacks.
func (g *Guard) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.closed = true
	for id, s := range g.sessions {
		s.timer.Stop()
		delete(g.sessions, id)
	}
}
