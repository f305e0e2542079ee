package metrics

import (
	"sort"

	"github.com/festy23/review_metrics/internal/review/model"
)

// Resolver finds the first response on a merge request from someone other
// than its author.
type Resolver struct {
	calc       *Calculator
	classifier *Classifier
}

// NewResolver creates a Resolver.
func NewResolver(calc *Calculator, classifier *Classifier) *Resolver {
	return &Resolver{calc: calc, classifier: classifier}
}

// Qualifies reports whether note counts as feedback on mr: written by
// someone else, and either human or an approval event.
func (r *Resolver) Qualifies(mr model.MergeRequest, note model.Note) bool {
	if note.MergeRequest != (model.Key{}) && note.MergeRequest != mr.Key() {
		return false
	}
	if note.Author.SameAs(mr.Author) {
		return false
	}
	return !note.System || r.classifier.Classify(note).IsApprovalEvent()
}

// Resolve returns the feedback record for mr, or false when no note
// qualifies. Among notes sharing the earliest timestamp the lowest note id
// wins.
func (r *Resolver) Resolve(mr model.MergeRequest, notes []model.Note) (model.FeedbackRecord, bool) {
	qualifying := make([]model.Note, 0, len(notes))
	for _, n := range notes {
		if r.Qualifies(mr, n) {
			qualifying = append(qualifying, n)
		}
	}
	if len(qualifying) == 0 {
		return model.FeedbackRecord{}, false
	}

	sort.Slice(qualifying, func(i, j int) bool {
		a, b := qualifying[i], qualifying[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})

	first := qualifying[0]
	return model.FeedbackRecord{
		MergeRequest: mr.Key(),
		NoteID:       first.ID,
		Duration:     r.calc.Between(mr.CreatedAt, &first.CreatedAt),
	}, true
}
