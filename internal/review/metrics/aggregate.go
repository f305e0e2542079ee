package metrics

import (
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/festy23/review_metrics/internal/review/model"
)

// Aggregator counts occurrences per author key.
type Aggregator struct {
	key    KeyMode
	logger *zap.SugaredLogger
}

// NewAggregator creates an Aggregator.
func NewAggregator(key KeyMode, logger *zap.SugaredLogger) *Aggregator {
	return &Aggregator{key: key, logger: logger}
}

// Key derives the aggregation key from an author name. Keys are case
// sensitive and not normalised.
func (a *Aggregator) Key(name string) string {
	if a.key == KeyFirstName {
		fields := strings.Fields(name)
		if len(fields) == 0 {
			return ""
		}
		return fields[0]
	}
	return name
}

// Aggregate groups authors by key. The stored id is the one seen first for
// a key; later authors with a different id that map to the same key are
// folded into that entry. Counts do not depend on input order, the stored
// id does.
func (a *Aggregator) Aggregate(authors []model.Author) model.AuthorAggregate {
	result := make(model.AuthorAggregate)
	for _, author := range authors {
		key := a.Key(author.Name)
		entry, ok := result[key]
		if !ok {
			result[key] = model.AuthorCount{ID: author.ID, Count: 1}
			continue
		}
		if entry.ID != author.ID {
			a.logger.Warnw("distinct authors share an aggregation key",
				"key", key,
				"kept_id", entry.ID,
				"folded_id", author.ID,
			)
		}
		entry.Count++
		result[key] = entry
	}
	return result
}

// Average returns the arithmetic mean of the completed durations. Unmerged
// entries are left out of both numerator and denominator and counted in
// Excluded. The mean is nil when no completed duration remains.
func Average(durations []model.Duration) model.Average {
	var (
		sum int64
		avg model.Average
	)
	for _, d := range durations {
		if d.IsUnmerged() {
			avg.Excluded++
			continue
		}
		sum += d.Milliseconds()
		avg.Included++
	}
	if avg.Included == 0 {
		return avg
	}
	mean := model.FromMilliseconds(int64(math.Round(float64(sum) / float64(avg.Included))))
	avg.Mean = &mean
	return avg
}

// Delta returns current minus baseline in milliseconds, or nil when either
// mean is undefined.
func Delta(current, baseline model.Average) *int64 {
	if !current.Defined() || !baseline.Defined() {
		return nil
	}
	d := current.Mean.Milliseconds() - baseline.Mean.Milliseconds()
	return &d
}
