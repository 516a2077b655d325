package models

import "time"

// VoteBlock mirrors the backend's likes/downVotes sub-documents: a count plus
// the ids of the users who cast that vote.
type VoteBlock struct {
	Count int      `json:"count"`
	Users []string `json:"users"`
}

type Post struct {
	ID        string    `json:"_id"`
	Text      string    `json:"text"`
	Type      string    `json:"type"`
	Location  string    `json:"location"`
	Tags      []string  `json:"tags"`
	Images    []string  `json:"images"`
	User      User      `json:"user"`
	Time      time.Time `json:"time"`
	Views     int       `json:"views"`
	Likes     VoteBlock `json:"likes"`
	DownVotes VoteBlock `json:"downVotes"`
	Comments  []Comment `json:"comments"`
}

// PostView is the single-post payload. IsSame reports whether the viewer is
// the author, which gates the edit/delete controls client-side.
type PostView struct {
	Post   Post `json:"resp"`
	IsSame bool `json:"isSame"`
}

// HasLiked reports whether userID appears in the post's like voters.
func (p *Post) HasLiked(userID string) bool {
	for _, u := range p.Likes.Users {
		if u == userID {
			return true
		}
	}
	return false
}

// HasDownvoted reports whether userID appears in the post's downvote voters.
func (p *Post) HasDownvoted(userID string) bool {
	for _, u := range p.DownVotes.Users {
		if u == userID {
			return true
		}
	}
	return false
}

// Score is the popularity metric used by the feed's "popular" sort.
func (p *Post) Score() int {
	return p.Likes.Count - p.DownVotes.Count
}

type AddPostInput struct {
	Text     string
	Type     string
	Location string
	Tags     []string
	Images   []Upload
}

type EditPostInput struct {
	ID       string
	Text     string
	Type     string
	Location string
	Tags     []string
	Images   []Upload
}

// Upload is a file attachment for a multipart request.
type Upload struct {
	Name    string
	Content []byte
}
