package gate

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, store SessionStore) (*Manager, *time.Time) {
	t.Helper()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager(store, Config{
		PromptInterval: 60 * time.Second,
		SessionTTL:     30 * time.Minute,
		Clock:          func() time.Time { return now },
	})
	return m, &now
}

func liveSessions(m *Manager) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func TestInitialStateResolvesFromStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.MarkSubmitted(ctx, "returning"))

	m, _ := newTestManager(t, store)

	returning, err := m.Session(ctx, "returning")
	require.NoError(t, err)
	require.Equal(t, StateOpenUngated, returning.State())

	fresh, err := m.Session(ctx, "fresh")
	require.NoError(t, err)
	require.Equal(t, StateClosed, fresh.State())
}

func TestGatedActionDeferredThenResumedOnce(t *testing.T) {
	// Scenario: fresh session clicks a generic "Learn More" button. The
	// modal opens, the action does not fire. After a successful
	// submission the gate opens and the action fires exactly once.
	ctx := context.Background()
	m, _ := newTestManager(t, NewMemoryStore())

	s, err := m.Session(ctx, "visitor")
	require.NoError(t, err)

	fired := 0
	decision := s.RequestGatedAction(Action{
		Kind:   "navigate",
		Target: "#learn-more",
		Run:    func() { fired++ },
	})

	require.Equal(t, DecisionDeferred, decision)
	require.Equal(t, 0, fired)
	require.Equal(t, StatePrompting, s.State())

	resumed, err := s.Complete(ctx)
	require.NoError(t, err)
	require.NotNil(t, resumed)
	require.Equal(t, "#learn-more", resumed.Target)
	require.Equal(t, 1, fired)
	require.Equal(t, StateOpenUngated, s.State())

	// Completing again is a no-op; the action never re-fires.
	again, err := s.Complete(ctx)
	require.NoError(t, err)
	require.Nil(t, again)
	require.Equal(t, 1, fired)
}

func TestDismissDiscardsPendingAction(t *testing.T) {
	// Scenario: the visitor closes the modal without submitting. The
	// original action is dropped, and the next generic click re-opens
	// the modal.
	ctx := context.Background()
	m, _ := newTestManager(t, NewMemoryStore())

	s, err := m.Session(ctx, "visitor")
	require.NoError(t, err)

	fired := 0
	s.RequestGatedAction(Action{Run: func() { fired++ }})
	require.Equal(t, StatePrompting, s.State())

	s.Dismiss()
	require.Equal(t, StateClosed, s.State())
	require.Equal(t, 0, fired)

	// A later submission must not revive the discarded action.
	_, err = s.Complete(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, fired)
}

func TestDismissThenNextClickReopensModal(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t, NewMemoryStore())

	s, err := m.Session(ctx, "visitor")
	require.NoError(t, err)

	s.RequestGatedAction(Action{})
	s.Dismiss()

	decision := s.RequestGatedAction(Action{})
	require.Equal(t, DecisionDeferred, decision)
	require.Equal(t, StatePrompting, s.State())
}

func TestPendingActionLastWriteWins(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t, NewMemoryStore())

	s, err := m.Session(ctx, "visitor")
	require.NoError(t, err)

	firstFired, secondFired := 0, 0
	s.RequestGatedAction(Action{Target: "first", Run: func() { firstFired++ }})
	s.RequestGatedAction(Action{Target: "second", Run: func() { secondFired++ }})

	resumed, err := s.Complete(ctx)
	require.NoError(t, err)
	require.NotNil(t, resumed)
	require.Equal(t, "second", resumed.Target)
	require.Equal(t, 0, firstFired)
	require.Equal(t, 1, secondFired)
}

func TestSubmittedIsMonotonic(t *testing.T) {
	ctx := context.Background()
	m, now := newTestManager(t, NewMemoryStore())

	s, err := m.Session(ctx, "visitor")
	require.NoError(t, err)

	_, err = s.Complete(ctx)
	require.NoError(t, err)
	require.True(t, s.IsSubmitted())

	// No sequence of dismissals, timer firings, or intercepted clicks
	// may close the gate again.
	s.Dismiss()
	*now = now.Add(10 * time.Minute)
	require.Equal(t, StateOpenUngated, s.State())

	fired := 0
	decision := s.RequestGatedAction(Action{Run: func() { fired++ }})
	require.Equal(t, DecisionExecuted, decision)
	require.Equal(t, 1, fired)
	require.Equal(t, StateOpenUngated, s.State())
}

func TestAutoPromptAfterInterval(t *testing.T) {
	ctx := context.Background()
	m, now := newTestManager(t, NewMemoryStore())

	s, err := m.Session(ctx, "visitor")
	require.NoError(t, err)
	require.Equal(t, StateClosed, s.State())

	*now = now.Add(59 * time.Second)
	require.Equal(t, StateClosed, s.State())

	*now = now.Add(time.Second)
	require.Equal(t, StatePrompting, s.State())

	// Dismissing re-arms the timer from the dismissal.
	s.Dismiss()
	require.Equal(t, StateClosed, s.State())

	*now = now.Add(60 * time.Second)
	require.Equal(t, StatePrompting, s.State())
}

func TestAutoPromptStopsAfterSubmission(t *testing.T) {
	ctx := context.Background()
	m, now := newTestManager(t, NewMemoryStore())

	s, err := m.Session(ctx, "visitor")
	require.NoError(t, err)

	_, err = s.Complete(ctx)
	require.NoError(t, err)

	*now = now.Add(time.Hour)
	require.Equal(t, StateOpenUngated, s.State())
}

func TestCompleteReleasesLiveSession(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	m, _ := newTestManager(t, store)

	s, err := m.Session(ctx, "visitor")
	require.NoError(t, err)
	s.RequestGatedAction(Action{Target: "brochure"})

	resumed, err := m.Complete(ctx, "visitor")
	require.NoError(t, err)
	require.NotNil(t, resumed)
	require.Equal(t, "brochure", resumed.Target)

	require.Equal(t, 0, liveSessions(m), "completed sessions must not stay resident")

	// The next request rebuilds the session from the persisted flag.
	rebuilt, err := m.Session(ctx, "visitor")
	require.NoError(t, err)
	require.Equal(t, StateOpenUngated, rebuilt.State())
}

func TestIdleSessionsEvicted(t *testing.T) {
	ctx := context.Background()
	m, now := newTestManager(t, NewMemoryStore())

	for i := 0; i < 100; i++ {
		_, err := m.Session(ctx, fmt.Sprintf("tab-%d", i))
		require.NoError(t, err)
	}
	_, err := m.Session(ctx, "active")
	require.NoError(t, err)

	// "active" is seen again halfway through; the rest go idle.
	*now = now.Add(20 * time.Minute)
	_, err = m.Session(ctx, "active")
	require.NoError(t, err)

	*now = now.Add(20 * time.Minute)
	_, err = m.Session(ctx, "fresh")
	require.NoError(t, err)

	// Creating "fresh" sweeps the 100 tabs idle past the 30m TTL while
	// the recently seen session survives.
	require.Equal(t, 2, liveSessions(m))
}

func TestCompletePersistsFlagAcrossManagers(t *testing.T) {
	// Simulates a page reload: a new manager sees the same store.
	ctx := context.Background()
	store := NewMemoryStore()

	m1, _ := newTestManager(t, store)
	s1, err := m1.Session(ctx, "visitor")
	require.NoError(t, err)
	_, err = s1.Complete(ctx)
	require.NoError(t, err)

	m2, _ := newTestManager(t, store)
	s2, err := m2.Session(ctx, "visitor")
	require.NoError(t, err)
	require.Equal(t, StateOpenUngated, s2.State())
}
