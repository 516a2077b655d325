package fakeapi_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citysafe/citysafe-go/internal/api"
	"github.com/citysafe/citysafe-go/internal/fakeapi"
	"github.com/citysafe/citysafe-go/internal/models"
)

// tokenHolder lets the test swap bearer tokens mid-flow, the way the session
// does after login.
type tokenHolder struct {
	token string
}

func (h *tokenHolder) Token() string { return h.token }

func newClient(t *testing.T) (*api.Client, *tokenHolder, *fakeapi.Store) {
	t.Helper()
	store := fakeapi.NewStore()
	srv := httptest.NewServer(fakeapi.NewServer(store).Handler())
	t.Cleanup(srv.Close)

	holder := &tokenHolder{}
	return api.New(srv.URL+"/api", api.WithTokenSource(holder)), holder, store
}

func register(t *testing.T, client *api.Client, holder *tokenHolder, userID string) models.User {
	t.Helper()
	creds, err := client.Register(context.Background(), models.RegisterInput{
		Name:     strings.ToUpper(userID[:1]) + userID[1:],
		UserID:   userID,
		Email:    userID + "@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, creds.Token)
	holder.token = creds.Token
	return creds.User
}

func TestRegisterLoginAndMe(t *testing.T) {
	client, holder, _ := newClient(t)
	user := register(t, client, holder, "asha")

	me, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, user.ID, me.ID)

	// Fresh login replaces the token and still resolves the same user.
	creds, err := client.Login(context.Background(), "asha@example.com", "secret1")
	require.NoError(t, err)
	holder.token = creds.Token
	me, err = client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "asha", me.UserID)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	client, holder, _ := newClient(t)
	register(t, client, holder, "asha")

	_, err := client.Login(context.Background(), "asha@example.com", "wrong")
	var authErr *api.AuthError
	assert.ErrorAs(t, err, &authErr)
}

func TestRegisterRejectsDuplicateUserID(t *testing.T) {
	client, holder, _ := newClient(t)
	register(t, client, holder, "asha")

	_, err := client.Register(context.Background(), models.RegisterInput{
		Name:     "Asha Again",
		UserID:   "asha",
		Email:    "other@example.com",
		Password: "secret1",
	})
	var apiErr *api.APIError
	assert.ErrorAs(t, err, &apiErr)
}

func TestProtectedRoutesNeedAuth(t *testing.T) {
	client, _, _ := newClient(t)

	_, err := client.AllPosts(context.Background())
	var authErr *api.AuthError
	assert.ErrorAs(t, err, &authErr)
}

func TestPostLifecycle(t *testing.T) {
	client, holder, _ := newClient(t)
	register(t, client, holder, "asha")
	ctx := context.Background()

	post, err := client.AddPost(ctx, models.AddPostInput{
		Text:     "Streetlight out near the crossing, very dark after ten",
		Type:     "alert",
		Location: "andheri",
		Tags:     []string{"infrastructure", "night"},
		Images:   []models.Upload{{Name: "street.jpg", Content: []byte("bytes")}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, post.ID)
	require.Len(t, post.Images, 1)
	assert.True(t, strings.HasPrefix(post.Images[0], "/uploads/"))

	all, err := client.AllPosts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	view, err := client.PostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, view.IsSame, "the author is viewing their own post")
	assert.Equal(t, []string{"infrastructure", "night"}, view.Post.Tags)

	edited, err := client.EditPost(ctx, models.EditPostInput{
		ID:   post.ID,
		Text: "Streetlight fixed, crossing lit again",
	})
	require.NoError(t, err)
	assert.Equal(t, "Streetlight fixed, crossing lit again", edited.Text)
	assert.Equal(t, "alert", edited.Type, "unsent fields keep their values")

	require.NoError(t, client.DeletePost(ctx, post.ID))
	_, err = client.PostByID(ctx, post.ID)
	var nfErr *api.NotFoundError
	assert.ErrorAs(t, err, &nfErr)
}

func TestVoteToggleAndExclusivity(t *testing.T) {
	client, holder, _ := newClient(t)
	register(t, client, holder, "asha")
	ctx := context.Background()

	post, err := client.AddPost(ctx, models.AddPostInput{
		Text:     "Pothole swallowing scooters on the service road",
		Type:     "alert",
		Location: "kurla",
		Tags:     []string{"roads"},
	})
	require.NoError(t, err)

	res, err := client.Like(ctx, post.ID)
	require.NoError(t, err)
	require.NotNil(t, res.Liked)
	assert.True(t, *res.Liked)
	assert.Equal(t, 1, *res.LikesCount)

	// Downvoting flips the stance; the like must drop with it.
	res, err = client.Downvote(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, *res.DownVoted)
	assert.False(t, *res.Liked)
	assert.Equal(t, 0, *res.LikesCount)
	assert.Equal(t, 1, *res.DownVotesCount)

	// Downvoting again toggles it off.
	res, err = client.Downvote(ctx, post.ID)
	require.NoError(t, err)
	assert.False(t, *res.DownVoted)
	assert.Equal(t, 0, *res.DownVotesCount)
}

func TestCommentFlow(t *testing.T) {
	client, holder, _ := newClient(t)
	author := register(t, client, holder, "asha")
	ctx := context.Background()

	post, err := client.AddPost(ctx, models.AddPostInput{
		Text:     "Stray dogs gathering near the school gate every morning",
		Type:     "notice",
		Location: "dadar",
		Tags:     []string{"school"},
	})
	require.NoError(t, err)

	comment, err := client.AddComment(ctx, post.ID, author.ID, "Saw them too, someone is leaving food out")
	require.NoError(t, err)
	require.NotEmpty(t, comment.ID)
	assert.Equal(t, author.ID, comment.User.ID)

	view, err := client.PostByID(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, view.Post.Comments, 1)

	require.NoError(t, client.DeleteComment(ctx, comment.ID, post.ID))
	view, err = client.PostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Post.Comments)
}

func TestOwnershipIsEnforced(t *testing.T) {
	client, holder, _ := newClient(t)
	author := register(t, client, holder, "asha")
	ctx := context.Background()

	post, err := client.AddPost(ctx, models.AddPostInput{
		Text:     "Parked trucks blocking the ambulance lane again",
		Type:     "alert",
		Location: "sion",
		Tags:     []string{"traffic"},
	})
	require.NoError(t, err)
	comment, err := client.AddComment(ctx, post.ID, author.ID, "Reported to the ward office")
	require.NoError(t, err)

	// Someone else takes over the token holder.
	register(t, client, holder, "ravi")

	var apiErr *api.APIError
	err = client.DeletePost(ctx, post.ID)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.StatusCode)

	err = client.DeleteComment(ctx, comment.ID, post.ID)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.StatusCode)

	view, err := client.PostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.False(t, view.IsSame)
	assert.Len(t, view.Post.Comments, 1, "nothing was deleted")
}

func TestProfileFlow(t *testing.T) {
	client, holder, _ := newClient(t)
	user := register(t, client, holder, "asha")
	ctx := context.Background()

	_, err := client.AddPost(ctx, models.AddPostInput{
		Text:     "Community cleanup drive this Saturday at the lake",
		Type:     "update",
		Location: "powai",
		Tags:     []string{"community"},
	})
	require.NoError(t, err)

	profile, err := client.OwnProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.User.ID)
	assert.Len(t, profile.Posts, 1)

	updated, err := client.EditProfile(ctx, api.EditProfileInput{
		ID:       user.ID,
		Name:     "Asha K",
		Username: "asha",
		Bio:      "Neighbourhood watch volunteer",
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha K", updated.Name)
	assert.Equal(t, "Neighbourhood watch volunteer", updated.Bio)

	other, err := client.UserProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha K", other.User.Name)
}

func TestCrimeEndpointsArePublic(t *testing.T) {
	client, _, store := newClient(t)
	store.SeedLocations([]models.LocationCount{
		{Name: "andheri", Count: 12},
		{Name: "bandra", Count: 4},
	})
	store.SeedReports([]models.CrimeReport{
		{ID: "r1", Title: "Theft at the market", LocationName: "andheri"},
	})
	ctx := context.Background()

	counts, err := client.AllCrimeLocations(ctx)
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, 12, counts[0].Count)

	reports, err := client.AllCrimeReports(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "Theft at the market", reports[0].Title)
}
