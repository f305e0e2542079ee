package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/festy23/review_metrics/internal/review/model"
)

func TestParseOptions(t *testing.T) {
	dm, err := ParseDurationMode("naive")
	require.NoError(t, err)
	assert.Equal(t, DurationNaive, dm)

	mm, err := ParseMatchMode("contains")
	require.NoError(t, err)
	assert.Equal(t, MatchContains, mm)

	km, err := ParseKeyMode("first_name")
	require.NoError(t, err)
	assert.Equal(t, KeyFirstName, km)

	_, err = ParseDurationMode("calendar")
	assert.True(t, errors.Is(err, model.ErrInvalidOption))
	_, err = ParseMatchMode("regex")
	assert.ErrorIs(t, err, model.ErrInvalidOption)
	_, err = ParseKeyMode("email")
	assert.ErrorIs(t, err, model.ErrInvalidOption)
}

func TestEngine_Build(t *testing.T) {
	engine := NewEngine(DefaultOptions(), zap.NewNop().Sugar())

	sameDay := model.MergeRequest{
		IID: 1, ProjectID: 2282, Author: mrAuthor,
		CreatedAt: at("2023-05-01T08:00:00Z"),
		MergedAt:  ptr(at("2023-05-01T14:00:00Z")),
	}
	overWeekend := model.MergeRequest{
		IID: 2, ProjectID: 2282, Author: reviewer,
		CreatedAt: at("2023-05-05T08:00:00Z"),
		MergedAt:  ptr(at("2023-05-08T14:00:00Z")),
	}
	open := model.MergeRequest{
		IID: 3, ProjectID: 2061, Author: other,
		CreatedAt: at("2023-05-03T08:00:00Z"),
	}

	notes := map[model.Key][]model.Note{
		sameDay.Key(): {
			{ID: 100, Author: reviewer, Body: "Consider a table driven test here.", Type: model.NoteTypeDiffNote,
				CreatedAt: at("2023-05-01T09:00:00Z")},
			{ID: 101, Author: reviewer, Body: ApprovalPhrase, System: true, CreatedAt: at("2023-05-01T13:00:00Z")},
			{ID: 102, Author: other, Body: ApprovalPhrase, System: true, CreatedAt: at("2023-05-01T13:30:00Z")},
		},
		overWeekend.Key(): {
			{ID: 200, Author: reviewer, Body: "rebased", CreatedAt: at("2023-05-05T09:00:00Z")},
			{ID: 201, Author: mrAuthor, Body: UnapprovalPhrase, System: true, CreatedAt: at("2023-05-08T10:00:00Z")},
			{ID: 202, Author: mrAuthor, Body: "This needs a changelog entry.", Type: model.NoteTypeDiscussionNote,
				CreatedAt: at("2023-05-08T11:00:00Z")},
		},
	}

	interval := model.Interval{
		Start: at("2023-05-01T00:00:00Z"),
		End:   at("2023-05-08T23:59:59Z"),
	}
	interval.Label = IntervalLabel(interval.Start, interval.End)

	report := engine.Build(Input{
		Interval:      interval,
		MergeRequests: []model.MergeRequest{sameDay, overWeekend, open},
		Notes:         notes,
	})

	assert.Equal(t, "2023-05-01 - 2023-05-08", report.Interval.Label)
	require.Len(t, report.MergeRequests, 3)
	assert.Equal(t, (6 * time.Hour).Milliseconds(), report.MergeRequests[0].TimeInReview.Milliseconds())
	assert.Equal(t, (30 * time.Hour).Milliseconds(), report.MergeRequests[1].TimeInReview.Milliseconds())
	assert.True(t, report.MergeRequests[2].TimeInReview.IsUnmerged())
	assert.Equal(t, "Mihai Ionescu", report.MergeRequests[1].Author)

	// (6h + 30h) / 2, the open merge request is excluded.
	require.True(t, report.AverageTimeInReview.Defined())
	assert.Equal(t, (18 * time.Hour).Milliseconds(), report.AverageTimeInReview.Mean.Milliseconds())
	assert.Equal(t, 2, report.AverageTimeInReview.Included)
	assert.Equal(t, 1, report.AverageTimeInReview.Excluded)

	require.Len(t, report.Feedback, 2)
	assert.Equal(t, 100, report.Feedback[0].NoteID)
	assert.Equal(t, time.Hour.Milliseconds(), report.Feedback[0].Duration.Milliseconds())
	assert.Equal(t, 201, report.Feedback[1].NoteID)
	assert.Equal(t, (26 * time.Hour).Milliseconds(), report.Feedback[1].Duration.Milliseconds())

	require.True(t, report.AverageFeedbackTime.Defined())
	assert.Equal(t, (27 * time.Hour / 2).Milliseconds(), report.AverageFeedbackTime.Mean.Milliseconds())
	assert.Equal(t, 1, report.AverageFeedbackTime.Excluded)

	assert.Equal(t, model.AuthorAggregate{
		"Mihai Ionescu": {ID: 2, Count: 1},
		"Radu Dobre":    {ID: 3, Count: 1},
	}, report.Approvals)
	assert.Equal(t, model.AuthorAggregate{
		"Mihai Ionescu": {ID: 2, Count: 1},
		"Ana Popescu":   {ID: 1, Count: 1},
	}, report.Comments)
}

func TestEngine_Build_UnapprovalsNotCounted(t *testing.T) {
	for _, match := range []MatchMode{MatchExact, MatchContains} {
		opts := DefaultOptions()
		opts.ApprovalMatch = match
		engine := NewEngine(opts, zap.NewNop().Sugar())
		mr := testMR()

		report := engine.Build(Input{
			MergeRequests: []model.MergeRequest{mr},
			Notes: map[model.Key][]model.Note{
				mr.Key(): {
					{ID: 1, Author: reviewer, Body: ApprovalPhrase, System: true, CreatedAt: at("2023-05-01T09:00:00Z")},
					{ID: 2, Author: reviewer, Body: UnapprovalPhrase, System: true, CreatedAt: at("2023-05-01T10:00:00Z")},
					{ID: 3, Author: other, Body: UnapprovalPhrase, System: true, CreatedAt: at("2023-05-01T11:00:00Z")},
				},
			},
		})

		assert.Equal(t, model.AuthorAggregate{"Mihai Ionescu": {ID: 2, Count: 1}}, report.Approvals, "match mode %d", match)
		assert.Equal(t, 1, report.Approvals.Total())
		require.Len(t, report.Feedback, 1)
		assert.Equal(t, 1, report.Feedback[0].NoteID)
	}
}

func TestEngine_Build_CommentSource(t *testing.T) {
	engine := NewEngine(DefaultOptions(), zap.NewNop().Sugar())
	mr := testMR()

	in := Input{
		MergeRequests: []model.MergeRequest{mr},
		Notes: map[model.Key][]model.Note{
			mr.Key(): {{ID: 1, Author: reviewer, Body: "Comment in the notes feed.", Type: model.NoteTypeDiffNote,
				CreatedAt: at("2023-05-01T09:00:00Z")}},
		},
		CommentNotes: map[model.Key][]model.Note{
			mr.Key(): {
				{ID: 1, Author: reviewer, Body: "Comment in the notes feed.", Type: model.NoteTypeDiffNote},
				{ID: 2, Author: other, Body: "Thread reply from discussions.", Type: model.NoteTypeDiscussionNote},
			},
		},
	}

	report := engine.Build(in)
	assert.Equal(t, 2, report.Comments.Total())
	assert.Equal(t, 1, report.Comments["Radu Dobre"].Count)
}

func TestEngine_Build_Empty(t *testing.T) {
	engine := NewEngine(DefaultOptions(), zap.NewNop().Sugar())

	report := engine.Build(Input{})

	assert.Empty(t, report.MergeRequests)
	assert.NotNil(t, report.Feedback)
	assert.False(t, report.AverageTimeInReview.Defined())
	assert.False(t, report.AverageFeedbackTime.Defined())
	assert.Empty(t, report.Approvals)
	assert.Empty(t, report.Comments)
}

func TestEngine_DeltaAverageTime(t *testing.T) {
	engine := NewEngine(DefaultOptions(), zap.NewNop().Sugar())

	mtd := []model.MergeRequest{
		{CreatedAt: at("2023-05-02T08:00:00Z"), MergedAt: ptr(at("2023-05-02T10:00:00Z"))},
	}
	ytd := append([]model.MergeRequest{
		{CreatedAt: at("2023-02-01T08:00:00Z"), MergedAt: ptr(at("2023-02-01T14:00:00Z"))},
		{CreatedAt: at("2023-03-01T08:00:00Z")},
	}, mtd...)

	delta := engine.DeltaAverageTime(mtd, ytd)
	assert.Equal(t, (2 * time.Hour).Milliseconds(), delta.MonthToDate.Mean.Milliseconds())
	assert.Equal(t, (4 * time.Hour).Milliseconds(), delta.YearToDate.Mean.Milliseconds())
	assert.Equal(t, 1, delta.YearToDate.Excluded)
	require.NotNil(t, delta.DeltaMilliseconds)
	assert.Equal(t, -(2 * time.Hour).Milliseconds(), *delta.DeltaMilliseconds)

	empty := engine.DeltaAverageTime(nil, ytd)
	assert.Nil(t, empty.DeltaMilliseconds)
}
