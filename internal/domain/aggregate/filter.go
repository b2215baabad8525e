package aggregate

import (
	"sort"

	"github.com/goldinfc/scorebook/internal/domain/model"
)

// Mode selects which sessions feed an aggregate.
type Mode string

const (
	// ModeAll includes every session.
	ModeAll Mode = "all"
	// ModeSeason includes sessions in one half-year season.
	ModeSeason Mode = "season"
	// ModeRange includes sessions between two inclusive dates.
	ModeRange Mode = "range"
)

// Filter is a time window over session dates.
type Filter struct {
	Mode Mode `json:"mode"`
	// Season is a half-year id like "2025-1". Empty means the latest
	// season present in the data.
	Season string `json:"season,omitempty"`
	// Start and End bound ModeRange inclusively; they are swapped when
	// given in reverse and default to the full span when empty.
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// Seasons lists the half-year season ids present among the session
// dates, newest first.
func Seasons(sessions map[string]model.Session) []string {
	seen := map[string]bool{}
	for date := range sessions {
		if sid := model.SeasonID(date); sid != "" {
			seen[sid] = true
		}
	}
	out := make([]string, 0, len(seen))
	for sid := range seen {
		out = append(out, sid)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}

// SelectDates returns the session date keys admitted by the filter,
// in ascending order. Unknown modes fall back to ModeAll.
func SelectDates(sessions map[string]model.Session, f Filter) []string {
	dates := make([]string, 0, len(sessions))
	for date := range sessions {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	if len(dates) == 0 {
		return dates
	}

	switch f.Mode {
	case ModeSeason:
		sid := f.Season
		if sid == "" {
			if latest := Seasons(sessions); len(latest) > 0 {
				sid = latest[0]
			}
		}
		if sid == "" {
			return dates
		}
		var out []string
		for _, date := range dates {
			if model.SeasonID(date) == sid {
				out = append(out, date)
			}
		}
		return out

	case ModeRange:
		start, end := f.Start, f.End
		if start == "" {
			start = dates[0]
		}
		if end == "" {
			end = dates[len(dates)-1]
		}
		if start > end {
			start, end = end, start
		}
		var out []string
		for _, date := range dates {
			if date >= start && date <= end {
				out = append(out, date)
			}
		}
		return out
	}
	return dates
}
