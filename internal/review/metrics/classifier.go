package metrics

import (
	"strings"
	"unicode/utf8"

	"github.com/festy23/review_metrics/internal/review/model"
)

// Classifier sorts notes into approvals, unapprovals, comments and the rest.
type Classifier struct {
	match        MatchMode
	minLength    int
	commentTypes map[model.NoteType]struct{}
}

// NewClassifier creates a Classifier.
func NewClassifier(match MatchMode, minCommentLength int) *Classifier {
	return &Classifier{
		match:     match,
		minLength: minCommentLength,
		commentTypes: map[model.NoteType]struct{}{
			model.NoteTypeDiscussion:     {},
			model.NoteTypeDiffNote:       {},
			model.NoteTypeDiscussionNote: {},
		},
	}
}

// Classify maps a note to exactly one class. Approval events are recognised
// by body text alone, so system notes can be approvals.
func (c *Classifier) Classify(note model.Note) model.Class {
	// The unapproval phrase contains the approval phrase.
	if c.matches(note.Body, UnapprovalPhrase) {
		return model.ClassUnapproval
	}
	if c.matches(note.Body, ApprovalPhrase) {
		return model.ClassApproval
	}
	if c.IsComment(note) {
		return model.ClassComment
	}
	return model.ClassIgnored
}

// IsComment reports whether note is a human review comment of useful length.
func (c *Classifier) IsComment(note model.Note) bool {
	if note.System {
		return false
	}
	if _, ok := c.commentTypes[note.Type]; !ok {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(note.Body)) >= c.minLength
}

func (c *Classifier) matches(body, phrase string) bool {
	if c.match == MatchContains {
		return strings.Contains(body, phrase)
	}
	return body == phrase
}
