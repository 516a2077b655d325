package models

import "time"

type Comment struct {
	ID        string    `json:"_id"`
	User      User      `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthorID returns the id of the comment's author. Only the author may
// delete a comment; the server enforces this, the client only pre-filters.
func (c *Comment) AuthorID() string {
	return c.User.ID
}
