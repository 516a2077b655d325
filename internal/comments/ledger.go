// Package comments keeps the client-side mirror of a post's comment list.
// The mirror is append-only on confirmed posts and only ever shrinks when
// the server confirms a delete; a slow or failed delete never hides a
// comment the server still has.
package comments

import (
	"context"
	"strings"

	"github.com/citysafe/citysafe-go/internal/api"
	"github.com/citysafe/citysafe-go/internal/models"
)

// Gateway is the slice of the API client the ledger needs.
type Gateway interface {
	AddComment(ctx context.Context, postID, authorID, text string) (models.Comment, error)
	DeleteComment(ctx context.Context, commentID, postID string) error
}

// Ledger is the ordered comment sequence for one post. Order is arrival
// order: the fetched list first, then confirmed appends.
type Ledger struct {
	postID  string
	gw      Gateway
	entries []models.Comment
}

func NewLedger(postID string, gw Gateway, fetched []models.Comment) *Ledger {
	entries := make([]models.Comment, len(fetched))
	copy(entries, fetched)
	return &Ledger{postID: postID, gw: gw, entries: entries}
}

// Comments returns a copy of the current sequence.
func (l *Ledger) Comments() []models.Comment {
	out := make([]models.Comment, len(l.entries))
	copy(out, l.entries)
	return out
}

// Post submits a comment and appends the server-returned record, so the
// ledger carries the server-assigned id and timestamp rather than the local
// draft. Blank text is rejected without a network call; a failed submit
// appends nothing, leaving the draft for the caller to retry.
func (l *Ledger) Post(ctx context.Context, authorID, text string) (models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return models.Comment{}, &api.ValidationError{Field: "text", Message: "comment cannot be empty"}
	}

	comment, err := l.gw.AddComment(ctx, l.postID, authorID, text)
	if err != nil {
		return models.Comment{}, err
	}
	l.entries = append(l.entries, comment)
	return comment, nil
}

// Delete removes a comment after the server confirms. There is no optimistic
// removal: on failure the sequence is untouched.
func (l *Ledger) Delete(ctx context.Context, commentID string) error {
	if err := l.gw.DeleteComment(ctx, commentID, l.postID); err != nil {
		return err
	}
	for i, c := range l.entries {
		if c.ID == commentID {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			break
		}
	}
	return nil
}

// CanDelete reports whether the viewer authored the comment. This only gates
// control visibility; authorization itself is the server's.
func CanDelete(c *models.Comment, viewerID string) bool {
	return viewerID != "" && c.AuthorID() == viewerID
}
