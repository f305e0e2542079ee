package model

import "time"

// NoteType is the GitLab note type tag. The empty value means the API sent null.
type NoteType string

// Note types that count as review comments.
const (
	NoteTypeNone           NoteType = ""
	NoteTypeDiscussion     NoteType = "Discussion"
	NoteTypeDiffNote       NoteType = "DiffNote"
	NoteTypeDiscussionNote NoteType = "DiscussionNote"
)

// Note is a single activity record attached to a merge request.
type Note struct {
	ID        int       `json:"id"`
	Author    Author    `json:"author"`
	Body      string    `json:"body"`
	System    bool      `json:"system"`
	Type      NoteType  `json:"type,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	// MergeRequest is the owning merge request.
	MergeRequest Key `json:"merge_request"`
}

// Class is the outcome of note classification.
type Class int

// Note classes.
const (
	ClassIgnored Class = iota
	ClassApproval
	ClassUnapproval
	ClassComment
)

// String implements fmt.Stringer.
func (c Class) String() string {
	switch c {
	case ClassApproval:
		return "approval"
	case ClassUnapproval:
		return "unapproval"
	case ClassComment:
		return "comment"
	default:
		return "ignored"
	}
}

// IsApprovalEvent reports whether c is an approval or unapproval.
func (c Class) IsApprovalEvent() bool {
	return c == ClassApproval || c == ClassUnapproval
}
