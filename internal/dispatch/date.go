package dispatch

import (
	"regexp"
	"strconv"
	"time"
)

// timeNow is the reference clock for implicit-year resolution. Tests
// override it to pin the December→January rollover rule.
var timeNow = time.Now

var (
	dateRe      = regexp.MustCompile(`(\d{1,2})[/／](\d{1,2})`)
	dateRangeRe = regexp.MustCompile(`(\d{1,2})[/／](\d{1,2})-(\d{1,2})`)
	dateListRe  = regexp.MustCompile(`(\d{1,2})[/／](\d{1,2})[、,]\s*(\d{1,2})`)
	cnDateRe    = regexp.MustCompile(`\d{1,2}月\d{1,2}[號日]?`)
)

// resolveYear picks the calendar year for a parsed month: messages posted
// in December that mention month 1 refer to January of the next year.
func resolveYear(month int, now time.Time) int {
	if now.Month() == time.December && month == 1 {
		return now.Year() + 1
	}
	return now.Year()
}

// makeDate builds a UTC midnight date, rejecting invalid calendar
// combinations like 2/30 (time.Date would silently normalize them).
func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

// ParseDate finds the first M/D pattern (ASCII or fullwidth slash) in text
// and resolves it to a calendar date. The second return is false when no
// pattern is found or the combination is not a valid date.
func ParseDate(text string) (time.Time, bool) {
	m := dateRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	return makeDate(resolveYear(month, timeNow()), month, day)
}

// ParseDateRange parses the date expressions a dispatch block may carry,
// in priority order:
//
//  1. dash range "M/D1-D2", expanded to every date from D1 to D2. A
//     shorthand like "12/25-7" is read as 12/25-27: when D2 < D1, D2 is a
//     single digit and D1 >= 20, D2 is reinterpreted as the ones digit of
//     a two-digit day sharing D1's tens digit.
//  2. two-date list "M/D1、D2" (fullwidth or ASCII comma).
//  3. a single date, yielding a one-element slice.
//
// Invalid calendar dates are silently dropped. Returns an empty slice when
// nothing matches.
func ParseDateRange(text string) []time.Time {
	if m := dateRangeRe.FindStringSubmatch(text); m != nil {
		month, _ := strconv.Atoi(m[1])
		dayStart, _ := strconv.Atoi(m[2])
		dayEnd, _ := strconv.Atoi(m[3])
		year := resolveYear(month, timeNow())

		if dayEnd < dayStart && dayEnd < 10 && dayStart >= 20 {
			if rec := (dayStart/10)*10 + dayEnd; rec > dayStart {
				dayEnd = rec
			}
		}

		var dates []time.Time
		for day := dayStart; day <= dayEnd; day++ {
			if d, ok := makeDate(year, month, day); ok {
				dates = append(dates, d)
			}
		}
		return dates
	}

	if m := dateListRe.FindStringSubmatch(text); m != nil {
		month, _ := strconv.Atoi(m[1])
		day1, _ := strconv.Atoi(m[2])
		day2, _ := strconv.Atoi(m[3])
		year := resolveYear(month, timeNow())

		var dates []time.Time
		if d1, ok := makeDate(year, month, day1); ok {
			dates = append(dates, d1)
			if d2, ok := makeDate(year, month, day2); ok {
				dates = append(dates, d2)
			}
		}
		return dates
	}

	if d, ok := ParseDate(text); ok {
		return []time.Time{d}
	}
	return nil
}

// HasDate reports whether text contains any date pattern, including the
// Chinese "12月5號" form that the parser itself does not accept. The bot
// uses it to nudge users who posted a date in an unrecognized format.
func HasDate(text string) bool {
	return dateRe.MatchString(text) || cnDateRe.MatchString(text)
}
