package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citysafe/citysafe-go/internal/models"
)

func ids(posts []models.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func samplePosts() []models.Post {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []models.Post{
		{
			ID: "p1", Type: "alert", Text: "Chain snatching near the station",
			Location: "andheri", Tags: []string{"theft"},
			User: models.User{Name: "Asha"}, Time: base,
			Views: 50, Likes: models.VoteBlock{Count: 3}, DownVotes: models.VoteBlock{Count: 1},
		},
		{
			ID: "p2", Type: "update", Text: "Street lights fixed on the main road",
			Location: "bandra", Tags: []string{"infrastructure"},
			User: models.User{Name: "Ravi"}, Time: base.Add(2 * time.Hour),
			Views: 10, Likes: models.VoteBlock{Count: 8},
		},
		{
			ID: "p3", Type: "alert", Text: "Suspicious activity reported",
			Location: "kurla", Tags: []string{"watch", "night"},
			User: models.User{Name: "Meera"}, Time: base.Add(time.Hour),
			Views: 50, Likes: models.VoteBlock{Count: 2},
		},
	}
}

func TestApplyFilterByType(t *testing.T) {
	got := Apply(samplePosts(), Query{Filter: "alert"})
	assert.Equal(t, []string{"p1", "p3"}, ids(got))

	got = Apply(samplePosts(), Query{Filter: "ALERT"})
	assert.Equal(t, []string{"p1", "p3"}, ids(got))
}

func TestApplyFilterAllPassesEverything(t *testing.T) {
	assert.Len(t, Apply(samplePosts(), Query{Filter: FilterAll}), 3)
	assert.Len(t, Apply(samplePosts(), Query{}), 3)
}

func TestApplySearchFields(t *testing.T) {
	cases := []struct {
		search string
		want   []string
	}{
		{"snatching", []string{"p1"}},    // text
		{"meera", []string{"p3"}},        // author name
		{"bandra", []string{"p2"}},       // location
		{"night", []string{"p3"}},        // tag
		{"NOTHING HERE", []string{}},     // no match
		{"", []string{"p1", "p2", "p3"}}, // empty matches all
	}
	for _, tc := range cases {
		got := Apply(samplePosts(), Query{Search: tc.search})
		assert.Equal(t, tc.want, ids(got), "search %q", tc.search)
	}
}

func TestApplySortRecent(t *testing.T) {
	got := Apply(samplePosts(), Query{Sort: SortRecent})
	assert.Equal(t, []string{"p2", "p3", "p1"}, ids(got))
}

func TestApplySortPopular(t *testing.T) {
	// Scores: p1 = 3-1 = 2, p2 = 8, p3 = 2.
	got := Apply(samplePosts(), Query{Sort: SortPopular})
	assert.Equal(t, []string{"p2", "p1", "p3"}, ids(got))
}

func TestApplySortViewsTiesKeepOrder(t *testing.T) {
	// p1 and p3 tie at 50 views; stable sort keeps p1 before p3.
	got := Apply(samplePosts(), Query{Sort: SortViews})
	assert.Equal(t, []string{"p1", "p3", "p2"}, ids(got))
}

func TestApplyDoesNotModifyInput(t *testing.T) {
	posts := samplePosts()
	Apply(posts, Query{Sort: SortPopular})
	assert.Equal(t, []string{"p1", "p2", "p3"}, ids(posts))
}

func TestApplyFilterSearchAndSortCompose(t *testing.T) {
	got := Apply(samplePosts(), Query{Filter: "alert", Search: "a", Sort: SortRecent})
	require.NotEmpty(t, got)
	assert.Equal(t, []string{"p3", "p1"}, ids(got))
}

func TestRecommendations(t *testing.T) {
	posts := samplePosts()
	got := Recommendations(posts, &posts[0])
	assert.Equal(t, []string{"p3"}, ids(got))

	// A post with a unique type recommends nothing, but never nil.
	got = Recommendations(posts, &posts[1])
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
