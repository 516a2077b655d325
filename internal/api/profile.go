package api

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/citysafe/citysafe-go/internal/models"
)

// UserProfile fetches another user's profile and posts.
func (c *Client) UserProfile(ctx context.Context, id string) (models.Profile, error) {
	return c.fetchProfile(ctx, "/profile/getUserProfile/"+url.PathEscape(id))
}

// OwnProfile fetches the authenticated user's profile.
func (c *Client) OwnProfile(ctx context.Context) (models.Profile, error) {
	return c.fetchProfile(ctx, "/profile/getUserProfile")
}

func (c *Client) fetchProfile(ctx context.Context, path string) (models.Profile, error) {
	var raw json.RawMessage
	if err := c.get(ctx, path, nil, &raw); err != nil {
		return models.Profile{}, err
	}
	var profile models.Profile
	if err := decodeObject(raw, &profile); err != nil {
		return models.Profile{}, &TransportError{Op: "GET " + path, Err: err}
	}
	if profile.User.ID == "" {
		return models.Profile{}, &NotFoundError{Resource: "profile"}
	}
	return profile, nil
}

type EditProfileInput struct {
	ID         string
	Name       string
	Username   string
	Bio        string
	ProfilePic *models.Upload
}

// EditProfile updates the viewer's profile as a multipart form. Only the
// actual picture file goes in the form, never a preview data URL.
func (c *Client) EditProfile(ctx context.Context, in EditProfileInput) (models.User, error) {
	fields := map[string][]string{
		"id":       {in.ID},
		"name":     {in.Name},
		"username": {in.Username},
		"bio":      {in.Bio},
	}
	files := map[string][]filePart{}
	if in.ProfilePic != nil {
		files["profilePic"] = []filePart{{filename: in.ProfilePic.Name, content: in.ProfilePic.Content}}
	}

	var raw json.RawMessage
	if err := c.multipartForm(ctx, "PUT", "/profile/edit-profile", fields, files, &raw); err != nil {
		return models.User{}, err
	}
	var out struct {
		User models.User `json:"user"`
	}
	if err := decodeObject(raw, &out); err != nil {
		return models.User{}, &TransportError{Op: "PUT /profile/edit-profile", Err: err}
	}
	return out.User, nil
}
