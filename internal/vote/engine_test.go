package vote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citysafe/citysafe-go/internal/models"
)

// stubGateway answers every vote call with a fixed result or error. The
// enter/release channels let a test hold a call open to observe the
// in-flight guard.
type stubGateway struct {
	result  models.VoteResult
	err     error
	calls   int
	enter   chan struct{}
	release chan struct{}
}

func (g *stubGateway) vote(context.Context) (models.VoteResult, error) {
	g.calls++
	if g.enter != nil {
		g.enter <- struct{}{}
		<-g.release
	}
	return g.result, g.err
}

func (g *stubGateway) Like(ctx context.Context, postID string) (models.VoteResult, error) {
	return g.vote(ctx)
}

func (g *stubGateway) Downvote(ctx context.Context, postID string) (models.VoteResult, error) {
	return g.vote(ctx)
}

// manualClock steps time only when told to, putting the collapse window
// under test control.
type manualClock struct {
	t time.Time
}

func (c *manualClock) now() time.Time          { return c.t }
func (c *manualClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestEngine(gw Gateway, clock *manualClock) *Engine {
	return NewEngine(gw, WithClock(clock.now))
}

func TestApplyLikeFromNone(t *testing.T) {
	gw := &stubGateway{}
	clock := &manualClock{t: time.Now()}
	e := newTestEngine(gw, clock)
	e.Seed("p1", State{Likes: 5, DownVotes: 2})

	got, err := e.Apply(context.Background(), "p1", KindLike)
	require.NoError(t, err)
	assert.Equal(t, State{Likes: 6, DownVotes: 2, Stance: StanceLiked}, got)
	assert.Equal(t, 1, gw.calls)
}

func TestApplyLikeTogglesOff(t *testing.T) {
	gw := &stubGateway{}
	clock := &manualClock{t: time.Now()}
	e := newTestEngine(gw, clock)
	e.Seed("p1", State{Likes: 6, DownVotes: 2, Stance: StanceLiked})

	got, err := e.Apply(context.Background(), "p1", KindLike)
	require.NoError(t, err)
	assert.Equal(t, State{Likes: 5, DownVotes: 2, Stance: StanceNone}, got)
}

func TestApplySwitchesStance(t *testing.T) {
	gw := &stubGateway{}
	clock := &manualClock{t: time.Now()}
	e := newTestEngine(gw, clock)
	e.Seed("p1", State{Likes: 5, DownVotes: 2, Stance: StanceDownvoted})

	got, err := e.Apply(context.Background(), "p1", KindLike)
	require.NoError(t, err)
	assert.Equal(t, State{Likes: 6, DownVotes: 1, Stance: StanceLiked}, got)
	assert.True(t, got.ViewerHasLiked())
	assert.False(t, got.ViewerHasDownvoted())
}

func TestApplyNeverGoesNegative(t *testing.T) {
	gw := &stubGateway{}
	clock := &manualClock{t: time.Now()}
	e := newTestEngine(gw, clock)
	// Inconsistent seed: stance says liked but the count is already zero.
	e.Seed("p1", State{Likes: 0, Stance: StanceLiked})

	got, err := e.Apply(context.Background(), "p1", KindLike)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Likes)
	assert.Equal(t, StanceNone, got.Stance)
}

func TestApplyRollsBackOnFailure(t *testing.T) {
	gw := &stubGateway{err: errors.New("boom")}
	clock := &manualClock{t: time.Now()}
	e := newTestEngine(gw, clock)
	seed := State{Likes: 5, DownVotes: 2, Stance: StanceDownvoted}
	e.Seed("p1", seed)

	got, err := e.Apply(context.Background(), "p1", KindLike)
	require.Error(t, err)
	assert.Equal(t, seed, got)
	assert.Equal(t, seed, e.State("p1"))
}

func TestApplyFailureAllowsImmediateRetry(t *testing.T) {
	gw := &stubGateway{err: errors.New("boom")}
	clock := &manualClock{t: time.Now()}
	e := newTestEngine(gw, clock)
	e.Seed("p1", State{Likes: 5})

	_, err := e.Apply(context.Background(), "p1", KindLike)
	require.Error(t, err)

	// Retrying right away is a fresh action, not a double activation.
	gw.err = nil
	got, err := e.Apply(context.Background(), "p1", KindLike)
	require.NoError(t, err)
	assert.Equal(t, State{Likes: 6, Stance: StanceLiked}, got)
	assert.Equal(t, 2, gw.calls)
}

func TestApplyServerCountsWin(t *testing.T) {
	likes, downs := 42, 3
	liked := true
	gw := &stubGateway{result: models.VoteResult{
		Liked:          &liked,
		LikesCount:     &likes,
		DownVotesCount: &downs,
	}}
	clock := &manualClock{t: time.Now()}
	e := newTestEngine(gw, clock)
	e.Seed("p1", State{Likes: 5, DownVotes: 2})

	got, err := e.Apply(context.Background(), "p1", KindLike)
	require.NoError(t, err)
	assert.Equal(t, State{Likes: 42, DownVotes: 3, Stance: StanceLiked}, got)
}

func TestApplyOmittedServerFieldsKeepLocal(t *testing.T) {
	gw := &stubGateway{result: models.VoteResult{}}
	clock := &manualClock{t: time.Now()}
	e := newTestEngine(gw, clock)
	e.Seed("p1", State{Likes: 5, DownVotes: 2})

	got, err := e.Apply(context.Background(), "p1", KindDownvote)
	require.NoError(t, err)
	assert.Equal(t, State{Likes: 5, DownVotes: 3, Stance: StanceDownvoted}, got)
}

func TestApplyServerClearsStance(t *testing.T) {
	liked := false
	gw := &stubGateway{result: models.VoteResult{Liked: &liked}}
	clock := &manualClock{t: time.Now()}
	e := newTestEngine(gw, clock)
	e.Seed("p1", State{Likes: 1, Stance: StanceLiked})

	got, err := e.Apply(context.Background(), "p1", KindLike)
	require.NoError(t, err)
	assert.Equal(t, StanceNone, got.Stance)
}

func TestApplyUnknownKind(t *testing.T) {
	e := NewEngine(&stubGateway{})
	_, err := e.Apply(context.Background(), "p1", Kind("sideways"))
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestApplyDropsInFlightDuplicate(t *testing.T) {
	gw := &stubGateway{
		enter:   make(chan struct{}),
		release: make(chan struct{}),
	}
	clock := &manualClock{t: time.Now()}
	e := newTestEngine(gw, clock)
	e.Seed("p1", State{Likes: 5})

	done := make(chan State)
	go func() {
		s, err := e.Apply(context.Background(), "p1", KindLike)
		assert.NoError(t, err)
		done <- s
	}()
	<-gw.enter // first call is now inside the gateway

	// Step past the collapse window so the guard tested is single-flight,
	// not the window.
	clock.advance(DefaultCollapseWindow + time.Millisecond)
	_, err := e.Apply(context.Background(), "p1", KindLike)
	assert.ErrorIs(t, err, ErrInFlight)

	gw.release <- struct{}{}
	s := <-done
	assert.Equal(t, 1, gw.calls)
	assert.Equal(t, 6, s.Likes)
}

func TestApplyCollapsesDoubleActivation(t *testing.T) {
	gw := &stubGateway{}
	clock := &manualClock{t: time.Now()}
	e := newTestEngine(gw, clock)
	e.Seed("p1", State{Likes: 5})

	first, err := e.Apply(context.Background(), "p1", KindLike)
	require.NoError(t, err)

	clock.advance(100 * time.Millisecond)
	got, err := e.Apply(context.Background(), "p1", KindLike)
	assert.ErrorIs(t, err, ErrCollapsed)
	assert.Equal(t, first, got)
	assert.Equal(t, 1, gw.calls)

	clock.advance(DefaultCollapseWindow)
	_, err = e.Apply(context.Background(), "p1", KindLike)
	require.NoError(t, err)
	assert.Equal(t, 2, gw.calls)
}

func TestApplyOppositeKindsDoNotCollapse(t *testing.T) {
	gw := &stubGateway{}
	clock := &manualClock{t: time.Now()}
	e := newTestEngine(gw, clock)
	e.Seed("p1", State{Likes: 5, DownVotes: 2})

	_, err := e.Apply(context.Background(), "p1", KindLike)
	require.NoError(t, err)

	// Immediately downvoting is a stance switch, not a double activation.
	got, err := e.Apply(context.Background(), "p1", KindDownvote)
	require.NoError(t, err)
	assert.Equal(t, State{Likes: 5, DownVotes: 3, Stance: StanceDownvoted}, got)
}

func TestPostsAreIndependent(t *testing.T) {
	gw := &stubGateway{}
	clock := &manualClock{t: time.Now()}
	e := newTestEngine(gw, clock)
	e.Seed("p1", State{Likes: 1})
	e.Seed("p2", State{Likes: 10})

	_, err := e.Apply(context.Background(), "p1", KindLike)
	require.NoError(t, err)

	assert.Equal(t, 2, e.State("p1").Likes)
	assert.Equal(t, 10, e.State("p2").Likes)
}

func TestSeedFromPost(t *testing.T) {
	p := &models.Post{
		ID:        "p1",
		Likes:     models.VoteBlock{Count: 3, Users: []string{"u1", "u2", "u3"}},
		DownVotes: models.VoteBlock{Count: 1, Users: []string{"u4"}},
	}

	e := NewEngine(&stubGateway{})
	e.SeedFromPost(p, "u2")
	assert.Equal(t, State{Likes: 3, DownVotes: 1, Stance: StanceLiked}, e.State("p1"))

	e.SeedFromPost(p, "u4")
	assert.Equal(t, StanceDownvoted, e.State("p1").Stance)

	e.SeedFromPost(p, "stranger")
	assert.Equal(t, StanceNone, e.State("p1").Stance)
}
