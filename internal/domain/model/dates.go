package model

import "time"

const isoDate = "2006-01-02"

// NormalizeDate rolls an ISO date forward to the Sunday that closes
// its week and returns it in ISO form. Unparseable input falls back to
// the upcoming Sunday from today, so a session key always exists.
func NormalizeDate(iso string) string {
	d, err := time.Parse(isoDate, iso)
	if err != nil {
		d = time.Now()
	}
	add := (7 - int(d.Weekday())) % 7
	return d.AddDate(0, 0, add).Format(isoDate)
}

// SeasonID maps an ISO date to its half-year season id:
// Jan-Jun is "YYYY-1", Jul-Dec is "YYYY-2". Empty for bad input.
func SeasonID(iso string) string {
	d, err := time.Parse(isoDate, iso)
	if err != nil {
		return ""
	}
	half := "1"
	if d.Month() > time.June {
		half = "2"
	}
	return d.Format("2006") + "-" + half
}
