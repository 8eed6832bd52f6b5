package sdk

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// GateState is the access gate's resolved view of the current visitor.
type GateState string

const (
	// GateChecking means no resolution has completed yet.
	GateChecking GateState = "checking"
	// GateAnonymous means there is no session.
	GateAnonymous GateState = "anonymous"
	// GateMember means an authenticated session without admin privileges.
	GateMember GateState = "member"
	// GateAdmin means an authenticated session with a resolved admin role.
	GateAdmin GateState = "admin"
)

// Decision is the gate's verdict for a page request.
type Decision string

const (
	// DecisionWait means resolution is still in flight.
	DecisionWait Decision = "wait"
	// DecisionAllow grants access to the page.
	DecisionAllow Decision = "allow"
	// DecisionRedirectSignIn sends an anonymous visitor to sign-in.
	DecisionRedirectSignIn Decision = "redirect-sign-in"
	// DecisionRedirectHome sends an unprivileged member home.
	DecisionRedirectHome Decision = "redirect-home"
)

// DefaultResolveTimeout bounds a single role resolution. A resolver that
// hangs past it falls back to the unprivileged state for the session kind.
const DefaultResolveTimeout = 10 * time.Second

// roleResolver is satisfied by *RoleResolver.
type roleResolver interface {
	Resolve(ctx context.Context, session *Session) Role
}

// AccessGate turns session changes into access states. It starts in
// GateChecking and, once any resolution completes, never returns there:
// later session changes swap the state directly between resolved values.
//
// Every session change increments a monotonic generation. A resolution
// result tagged with a stale generation is discarded, so out-of-order
// completions can never let an older session's role win.
type AccessGate struct {
	resolver roleResolver
	cache    *RoleCache
	timeout  time.Duration

	generation atomic.Uint64

	mu      sync.Mutex
	state   GateState
	onState []func(GateState)
}

// GateOption mutates gate construction.
type GateOption func(*AccessGate)

// WithResolveTimeout overrides the per-resolution timeout.
func WithResolveTimeout(d time.Duration) GateOption {
	return func(g *AccessGate) {
		g.timeout = d
	}
}

// NewAccessGate creates a gate. The cache is optional; when present it is
// kept in sync with completed resolutions.
func NewAccessGate(resolver roleResolver, cache *RoleCache, opts ...GateOption) *AccessGate {
	g := &AccessGate{
		resolver: resolver,
		cache:    cache,
		timeout:  DefaultResolveTimeout,
		state:    GateChecking,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// State returns the current gate state.
func (g *AccessGate) State() GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// OnState registers a listener fired on every committed state change.
func (g *AccessGate) OnState(fn func(GateState)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onState = append(g.onState, fn)
}

// OptimisticRole returns the cached role for first render. It never feeds
// the gate state; decisions wait for a real resolution.
func (g *AccessGate) OptimisticRole() (Role, bool) {
	if g.cache == nil {
		return RoleUnknown, false
	}
	role, ok := g.cache.ReadInitial()
	return Role(role), ok
}

// SetSession feeds a session transition into the gate. A nil session
// resolves to anonymous immediately; otherwise resolution runs in the
// background bounded by the gate's timeout. SetSession is the only path
// that triggers a fresh resolution.
func (g *AccessGate) SetSession(session *Session) {
	gen := g.generation.Add(1)

	if session == nil {
		if g.cache != nil {
			_ = g.cache.Clear()
		}
		g.commit(gen, GateAnonymous)
		return
	}

	go g.resolve(gen, session)
}

func (g *AccessGate) resolve(gen uint64, session *Session) {
	ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
	defer cancel()

	role := g.resolver.Resolve(ctx, session)

	switch role {
	case RoleAdmin, RoleMember:
		if g.cache != nil {
			_ = g.cache.Write(string(role))
		}
	default:
		// Null resolution: the identity has no role record (or the lookup
		// failed). The cached value must not survive it.
		if g.cache != nil {
			_ = g.cache.Clear()
		}
	}

	state := GateMember
	if role == RoleAdmin {
		state = GateAdmin
	}
	g.commit(gen, state)
}

// commit applies a state transition unless a newer session change has
// superseded the generation it belongs to. The staleness check runs under
// the mutex: checking before acquiring it would leave a window where a
// newer commit lands between the check and the lock, and the stale result
// would overwrite it.
func (g *AccessGate) commit(gen uint64, state GateState) {
	g.mu.Lock()
	if gen != g.generation.Load() {
		g.mu.Unlock()
		return
	}
	if g.state == state {
		g.mu.Unlock()
		return
	}
	g.state = state
	listeners := make([]func(GateState), len(g.onState))
	copy(listeners, g.onState)
	g.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}

// DecideAdminPage returns the gate's verdict for an admin-only page.
func (g *AccessGate) DecideAdminPage() Decision {
	switch g.State() {
	case GateChecking:
		return DecisionWait
	case GateAnonymous:
		return DecisionRedirectSignIn
	case GateMember:
		return DecisionRedirectHome
	default:
		return DecisionAllow
	}
}

// ShowAdminNav reports whether admin navigation affordances should render.
func (g *AccessGate) ShowAdminNav() bool {
	return g.State() == GateAdmin
}
