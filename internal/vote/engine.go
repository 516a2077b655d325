// Package vote holds the optimistic vote state for posts the viewer has on
// screen. A vote is applied locally first, then submitted; the server's
// answer overwrites the guess, and a failed submit rolls the guess back
// exactly. Each post's state is independent of every other post's.
package vote

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/citysafe/citysafe-go/internal/models"
)

type Kind string

const (
	KindLike     Kind = "like"
	KindDownvote Kind = "downvote"
)

// Stance is the viewer's current vote on a post. The three values replace
// the pair of booleans the web client juggled; mutual exclusivity is now
// structural rather than maintained by hand.
type Stance int

const (
	StanceNone Stance = iota
	StanceLiked
	StanceDownvoted
)

// State is the vote view of one post: both counts and the viewer's stance.
type State struct {
	Likes     int
	DownVotes int
	Stance    Stance
}

func (s State) ViewerHasLiked() bool     { return s.Stance == StanceLiked }
func (s State) ViewerHasDownvoted() bool { return s.Stance == StanceDownvoted }

// Gateway is the slice of the API client the engine needs.
type Gateway interface {
	Like(ctx context.Context, postID string) (models.VoteResult, error)
	Downvote(ctx context.Context, postID string) (models.VoteResult, error)
}

// DefaultCollapseWindow is how close together two activations of the same
// kind must land to count as one gesture (a double tap registering as a tap
// plus a button press, say).
const DefaultCollapseWindow = 300 * time.Millisecond

var (
	// ErrInFlight means a request of this kind is already outstanding for
	// the post. The activation is dropped, not queued.
	ErrInFlight = errors.New("vote already in flight")

	// ErrCollapsed means the activation landed inside the collapse window
	// of the previous one and was folded into it.
	ErrCollapsed = errors.New("vote collapsed into previous activation")

	ErrUnknownKind = errors.New("unknown vote kind")
)

type postState struct {
	state    State
	inFlight map[Kind]bool
	lastAt   map[Kind]time.Time
}

type Engine struct {
	gw     Gateway
	window time.Duration
	now    func() time.Time

	mu    sync.Mutex
	posts map[string]*postState
}

type Option func(*Engine)

// WithCollapseWindow overrides the double-activation window.
func WithCollapseWindow(d time.Duration) Option {
	return func(e *Engine) { e.window = d }
}

// WithClock substitutes the time source. Tests use this to step through the
// collapse window deterministically.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(gw Gateway, opts ...Option) *Engine {
	e := &Engine{
		gw:     gw,
		window: DefaultCollapseWindow,
		now:    time.Now,
		posts:  make(map[string]*postState),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) post(postID string) *postState {
	ps, ok := e.posts[postID]
	if !ok {
		ps = &postState{
			inFlight: make(map[Kind]bool),
			lastAt:   make(map[Kind]time.Time),
		}
		e.posts[postID] = ps
	}
	return ps
}

// Seed installs the fetched counts and stance for a post, replacing whatever
// was tracked before. Called when a post view loads.
func (e *Engine) Seed(postID string, s State) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.post(postID).state = s
}

// SeedFromPost derives the seed state from a fetched post and the viewer id.
func (e *Engine) SeedFromPost(p *models.Post, viewerID string) {
	s := State{Likes: p.Likes.Count, DownVotes: p.DownVotes.Count}
	switch {
	case p.HasLiked(viewerID):
		s.Stance = StanceLiked
	case p.HasDownvoted(viewerID):
		s.Stance = StanceDownvoted
	}
	e.Seed(p.ID, s)
}

// State returns the current view of a post's votes.
func (e *Engine) State(postID string) State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.post(postID).state
}

// Apply toggles the viewer's vote of the given kind on a post and returns
// the state once it has settled. The sequence:
//
//  1. Drop the activation if one of the same kind is in flight, or if it
//     falls inside the collapse window of the previous one.
//  2. Snapshot, apply the optimistic transition, submit.
//  3. On success, any counts or flags the server returned win over the
//     optimistic guess. On failure, restore the snapshot exactly.
//
// The in-flight marker is released on every path.
func (e *Engine) Apply(ctx context.Context, postID string, kind Kind) (State, error) {
	if kind != KindLike && kind != KindDownvote {
		return State{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	e.mu.Lock()
	ps := e.post(postID)

	if ps.inFlight[kind] {
		s := ps.state
		e.mu.Unlock()
		return s, ErrInFlight
	}
	now := e.now()
	if last, ok := ps.lastAt[kind]; ok && now.Sub(last) < e.window {
		s := ps.state
		e.mu.Unlock()
		return s, ErrCollapsed
	}
	ps.lastAt[kind] = now
	ps.inFlight[kind] = true

	snapshot := ps.state
	ps.state = transition(ps.state, kind)
	e.mu.Unlock()

	var res models.VoteResult
	var err error
	switch kind {
	case KindLike:
		res, err = e.gw.Like(ctx, postID)
	case KindDownvote:
		res, err = e.gw.Downvote(ctx, postID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	ps.inFlight[kind] = false

	if err != nil {
		ps.state = snapshot
		// A failed activation should not arm the collapse window; the
		// user's immediate retry is a fresh action, not a double tap.
		delete(ps.lastAt, kind)
		return snapshot, fmt.Errorf("apply %s: %w", kind, err)
	}

	ps.state = merge(ps.state, res)
	return ps.state, nil
}

// transition is the optimistic step: toggling a vote off decrements its
// count (never below zero); toggling it on increments it and clears an
// opposing vote, so the two flags can never both hold.
func transition(s State, kind Kind) State {
	switch kind {
	case KindLike:
		if s.Stance == StanceLiked {
			s.Likes = dec(s.Likes)
			s.Stance = StanceNone
			return s
		}
		s.Likes++
		if s.Stance == StanceDownvoted {
			s.DownVotes = dec(s.DownVotes)
		}
		s.Stance = StanceLiked
	case KindDownvote:
		if s.Stance == StanceDownvoted {
			s.DownVotes = dec(s.DownVotes)
			s.Stance = StanceNone
			return s
		}
		s.DownVotes++
		if s.Stance == StanceLiked {
			s.Likes = dec(s.Likes)
		}
		s.Stance = StanceDownvoted
	}
	return s
}

// merge lets the server correct the optimistic guess. Fields the server
// omitted keep their local values; fields it sent win, which folds in the
// effect of concurrent voters.
func merge(s State, res models.VoteResult) State {
	if res.LikesCount != nil {
		s.Likes = *res.LikesCount
	}
	if res.DownVotesCount != nil {
		s.DownVotes = *res.DownVotesCount
	}
	if res.Liked != nil {
		if *res.Liked {
			s.Stance = StanceLiked
		} else if s.Stance == StanceLiked {
			s.Stance = StanceNone
		}
	}
	if res.DownVoted != nil {
		if *res.DownVoted {
			s.Stance = StanceDownvoted
		} else if s.Stance == StanceDownvoted {
			s.Stance = StanceNone
		}
	}
	return s
}

func dec(n int) int {
	if n <= 0 {
		return 0
	}
	return n - 1
}
