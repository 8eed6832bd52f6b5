package sdk

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubResolver lets tests script resolution outcomes and timing.
type stubResolver struct {
	fn func(ctx context.Context, session *Session) Role
}

func (s *stubResolver) Resolve(ctx context.Context, session *Session) Role {
	return s.fn(ctx, session)
}

func staticResolver(role Role) *stubResolver {
	return &stubResolver{fn: func(context.Context, *Session) Role { return role }}
}

// awaitState subscribes before the transition is triggered and returns a
// channel of committed states.
func awaitState(g *AccessGate) <-chan GateState {
	ch := make(chan GateState, 8)
	g.OnState(func(state GateState) { ch <- state })
	return ch
}

func waitFor(t *testing.T, ch <-chan GateState) GateState {
	t.Helper()
	select {
	case state := <-ch:
		return state
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for gate state")
		return ""
	}
}

func TestGateStartsChecking(t *testing.T) {
	gate := NewAccessGate(staticResolver(RoleMember), nil)

	assert.Equal(t, GateChecking, gate.State())
	assert.Equal(t, DecisionWait, gate.DecideAdminPage())
	assert.False(t, gate.ShowAdminNav())
}

func TestGateAnonymous(t *testing.T) {
	cache, err := NewRoleCacheAt(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, cache.Write("admin"))

	gate := NewAccessGate(staticResolver(RoleUnknown), cache)
	states := awaitState(gate)

	gate.SetSession(nil)

	require.Equal(t, GateAnonymous, waitFor(t, states))
	assert.Equal(t, DecisionRedirectSignIn, gate.DecideAdminPage())

	_, ok := cache.ReadInitial()
	assert.False(t, ok, "signing out must clear the cached role")
}

func TestGateMemberRedirectsHome(t *testing.T) {
	gate := NewAccessGate(staticResolver(RoleMember), nil)
	states := awaitState(gate)

	gate.SetSession(&Session{AccessToken: "tok"})

	require.Equal(t, GateMember, waitFor(t, states))
	assert.Equal(t, DecisionRedirectHome, gate.DecideAdminPage())
	assert.False(t, gate.ShowAdminNav())
}

func TestGateAdminAllowed(t *testing.T) {
	cache, err := NewRoleCacheAt(t.TempDir())
	require.NoError(t, err)

	gate := NewAccessGate(staticResolver(RoleAdmin), cache)
	states := awaitState(gate)

	gate.SetSession(&Session{AccessToken: "tok"})

	require.Equal(t, GateAdmin, waitFor(t, states))
	assert.Equal(t, DecisionAllow, gate.DecideAdminPage())
	assert.True(t, gate.ShowAdminNav())

	role, ok := cache.ReadInitial()
	require.True(t, ok)
	assert.Equal(t, "admin", role)
}

func TestGateFailedResolutionNeverAdmin(t *testing.T) {
	cache, err := NewRoleCacheAt(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, cache.Write("admin"))

	gate := NewAccessGate(staticResolver(RoleUnknown), cache)
	states := awaitState(gate)

	gate.SetSession(&Session{AccessToken: "tok"})

	require.Equal(t, GateMember, waitFor(t, states))
	assert.NotEqual(t, DecisionAllow, gate.DecideAdminPage())

	_, ok := cache.ReadInitial()
	assert.False(t, ok, "null resolution must clear the cached role")
}

func TestGateResolveTimeout(t *testing.T) {
	resolver := &stubResolver{fn: func(ctx context.Context, _ *Session) Role {
		<-ctx.Done()
		return RoleUnknown
	}}

	gate := NewAccessGate(resolver, nil, WithResolveTimeout(50*time.Millisecond))
	states := awaitState(gate)

	gate.SetSession(&Session{AccessToken: "tok"})

	require.Equal(t, GateMember, waitFor(t, states))
	assert.Equal(t, DecisionRedirectHome, gate.DecideAdminPage())
}

func TestGateStaleResolutionDiscarded(t *testing.T) {
	// The first session's resolution is held until after the second
	// session's completes. The older result must be discarded even though
	// it arrives last.
	release := make(chan struct{})
	resolver := &stubResolver{fn: func(_ context.Context, session *Session) Role {
		if session.AccessToken == "old" {
			<-release
			return RoleAdmin
		}
		return RoleMember
	}}

	gate := NewAccessGate(resolver, nil)
	states := awaitState(gate)

	gate.SetSession(&Session{AccessToken: "old"})
	gate.SetSession(&Session{AccessToken: "new"})

	require.Equal(t, GateMember, waitFor(t, states))

	close(release)
	// Give the stale goroutine time to attempt its commit.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, GateMember, gate.State())
	assert.False(t, gate.ShowAdminNav())
}

func TestGateSignOutSupersedesInFlightResolution(t *testing.T) {
	// A sign-out races a resolution that is already running. The sign-out
	// carries the newer generation, so whatever order the commits land in,
	// the gate must settle anonymous and the older resolution's admin
	// result must never stick. Repeated to exercise the scheduler.
	for i := 0; i < 200; i++ {
		gate := NewAccessGate(staticResolver(RoleAdmin), nil)

		gate.SetSession(&Session{AccessToken: "tok"})
		gate.SetSession(nil)

		require.Eventually(t, func() bool {
			return gate.State() == GateAnonymous
		}, 2*time.Second, time.Millisecond, "iteration %d: stale resolution overwrote sign-out", i)
	}
}

func TestGateNeverReturnsToChecking(t *testing.T) {
	gate := NewAccessGate(staticResolver(RoleAdmin), nil)
	states := awaitState(gate)

	gate.SetSession(&Session{AccessToken: "tok"})
	require.Equal(t, GateAdmin, waitFor(t, states))

	gate.SetSession(nil)
	require.Equal(t, GateAnonymous, waitFor(t, states))

	gate.SetSession(&Session{AccessToken: "tok2"})
	require.Equal(t, GateAdmin, waitFor(t, states))
}

func TestGateOptimisticRole(t *testing.T) {
	cache, err := NewRoleCacheAt(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, cache.Write("admin"))

	gate := NewAccessGate(staticResolver(RoleMember), cache)

	role, ok := gate.OptimisticRole()
	require.True(t, ok)
	assert.Equal(t, RoleAdmin, role)

	// The optimistic value never feeds the gate state.
	assert.Equal(t, GateChecking, gate.State())
	assert.Equal(t, DecisionWait, gate.DecideAdminPage())
}
