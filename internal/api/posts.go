package api

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/citysafe/citysafe-go/internal/models"
)

// AllPosts returns every post, newest first as the backend orders them.
func (c *Client) AllPosts(ctx context.Context) ([]models.Post, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/post/getAllPosts", nil, &raw); err != nil {
		return nil, err
	}
	posts := []models.Post{}
	if err := decodeList(raw, &posts); err != nil {
		return nil, &TransportError{Op: "GET /post/getAllPosts", Err: err}
	}
	return posts, nil
}

// PostByID fetches a single post with its comments and the viewer-ownership
// flag.
func (c *Client) PostByID(ctx context.Context, id string) (models.PostView, error) {
	var raw json.RawMessage
	query := url.Values{"id": {id}}
	if err := c.get(ctx, "/post/getPostById", query, &raw); err != nil {
		return models.PostView{}, err
	}
	var view models.PostView
	if err := decodeObject(raw, &view); err != nil {
		return models.PostView{}, &TransportError{Op: "GET /post/getPostById", Err: err}
	}
	if view.Post.ID == "" {
		return models.PostView{}, &NotFoundError{Resource: "post"}
	}
	return view, nil
}

// AddPost submits a new incident report as a multipart form.
func (c *Client) AddPost(ctx context.Context, in models.AddPostInput) (models.Post, error) {
	fields := map[string][]string{
		"text":     {in.Text},
		"type":     {in.Type},
		"location": {in.Location},
		"tags":     in.Tags,
	}
	return c.submitPostForm(ctx, "/post/addPost", fields, in.Images)
}

// EditPost rewrites an existing report. The backend takes the full form
// again, keyed by id.
func (c *Client) EditPost(ctx context.Context, in models.EditPostInput) (models.Post, error) {
	fields := map[string][]string{
		"id":       {in.ID},
		"text":     {in.Text},
		"type":     {in.Type},
		"location": {in.Location},
		"tags":     in.Tags,
	}
	return c.submitPostForm(ctx, "/post/edit-post", fields, in.Images)
}

func (c *Client) submitPostForm(ctx context.Context, path string, fields map[string][]string, images []models.Upload) (models.Post, error) {
	files := map[string][]filePart{}
	for _, img := range images {
		files["images"] = append(files["images"], filePart{filename: img.Name, content: img.Content})
	}

	var raw json.RawMessage
	if err := c.multipartForm(ctx, "POST", path, fields, files, &raw); err != nil {
		return models.Post{}, err
	}
	var post models.Post
	if err := decodeObject(raw, &post); err != nil {
		return models.Post{}, &TransportError{Op: "POST " + path, Err: err}
	}
	return post, nil
}

// DeletePost removes the viewer's own post.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.delete(ctx, "/post/delete-post/"+url.PathEscape(id), nil, nil)
}

// Like toggles the viewer's like on a post. Absent response fields mean the
// caller keeps its optimistic values.
func (c *Client) Like(ctx context.Context, postID string) (models.VoteResult, error) {
	var out models.VoteResult
	if err := c.postJSON(ctx, "/post/like/"+url.PathEscape(postID), nil, &out); err != nil {
		return models.VoteResult{}, err
	}
	return out, nil
}

// Downvote toggles the viewer's downvote on a post.
func (c *Client) Downvote(ctx context.Context, postID string) (models.VoteResult, error) {
	var out models.VoteResult
	if err := c.postJSON(ctx, "/post/downvote/"+url.PathEscape(postID), nil, &out); err != nil {
		return models.VoteResult{}, err
	}
	return out, nil
}

// AddComment posts a comment and returns the server-assigned comment record.
// Blank text is rejected here so no request is ever sent for it.
func (c *Client) AddComment(ctx context.Context, postID, authorID, text string) (models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return models.Comment{}, &ValidationError{Field: "text", Message: "comment cannot be empty"}
	}

	in := map[string]any{
		"user": map[string]string{"_id": authorID},
		"text": text,
		"post": postID,
	}
	var out struct {
		Comment models.Comment `json:"comment"`
	}
	if err := c.postJSON(ctx, "/post/add-comment", in, &out); err != nil {
		return models.Comment{}, err
	}
	return out.Comment, nil
}

// DeleteComment removes a comment. The server checks authorship; the client
// only hides the control for other users' comments.
func (c *Client) DeleteComment(ctx context.Context, commentID, postID string) error {
	query := url.Values{"postId": {postID}}
	return c.delete(ctx, "/post/delete-comment/"+url.PathEscape(commentID), query, nil)
}
