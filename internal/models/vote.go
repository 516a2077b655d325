package models

// VoteResult is the vote-mutation response. Every field is optional: the
// backend may omit any of them, in which case the caller keeps its local
// optimistic value for that field.
type VoteResult struct {
	Liked          *bool `json:"liked,omitempty"`
	DownVoted      *bool `json:"downVoted,omitempty"`
	LikesCount     *int  `json:"likesCount,omitempty"`
	DownVotesCount *int  `json:"downVotesCount,omitempty"`
}
