package model

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	msPerMinute = int64(time.Minute / time.Millisecond)
	msPerHour   = int64(time.Hour / time.Millisecond)
	msPerDay    = 24 * msPerHour
)

// UnmergedLabel is how an unmerged duration renders.
const UnmergedLabel = "Not yet merged"

// Duration is a non-negative elapsed review time, or the unmerged sentinel.
// The zero value is a completed duration of length zero.
type Duration struct {
	millis   int64
	unmerged bool
}

// Unmerged is the sentinel for merge requests without a merge timestamp.
var Unmerged = Duration{unmerged: true}

// FromMilliseconds builds a completed Duration. Negative input clamps to zero.
func FromMilliseconds(ms int64) Duration {
	if ms < 0 {
		ms = 0
	}
	return Duration{millis: ms}
}

// FromStd builds a completed Duration from a time.Duration, truncated to milliseconds.
func FromStd(d time.Duration) Duration {
	return FromMilliseconds(d.Milliseconds())
}

// IsUnmerged reports whether d is the unmerged sentinel.
func (d Duration) IsUnmerged() bool { return d.unmerged }

// Milliseconds returns the raw total. It is zero for the unmerged sentinel.
func (d Duration) Milliseconds() int64 { return d.millis }

// Days returns the whole days in d.
func (d Duration) Days() int64 { return d.millis / msPerDay }

// Hours returns the whole hours left after removing whole days.
func (d Duration) Hours() int64 { return d.millis / msPerHour % 24 }

// Minutes returns the whole minutes left after removing whole hours.
func (d Duration) Minutes() int64 { return d.millis / msPerMinute % 60 }

// Std converts d to a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d.millis) * time.Millisecond
}

// String implements fmt.Stringer.
func (d Duration) String() string {
	if d.unmerged {
		return UnmergedLabel
	}
	return fmt.Sprintf("%dd %dh %dm", d.Days(), d.Hours(), d.Minutes())
}

type durationJSON struct {
	Days         int64 `json:"days"`
	Hours        int64 `json:"hours"`
	Mins         int64 `json:"mins"`
	Milliseconds int64 `json:"milliseconds"`
}

// MarshalJSON renders the unmerged sentinel as a string and completed
// durations as their day/hour/minute decomposition plus the raw total.
func (d Duration) MarshalJSON() ([]byte, error) {
	if d.unmerged {
		return json.Marshal(UnmergedLabel)
	}
	return json.Marshal(durationJSON{
		Days:         d.Days(),
		Hours:        d.Hours(),
		Mins:         d.Minutes(),
		Milliseconds: d.millis,
	})
}

// UnmarshalJSON accepts both forms produced by MarshalJSON.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		if label != UnmergedLabel {
			return fmt.Errorf("unknown duration label %q", label)
		}
		*d = Unmerged
		return nil
	}

	var raw durationJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*d = FromMilliseconds(raw.Milliseconds)
	return nil
}
