package dispatch

import (
	"testing"
	"time"
)

// withNow pins the reference clock for implicit-year resolution.
func withNow(t *testing.T, now time.Time) {
	t.Helper()
	prev := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = prev })
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate_ASCIISlash(t *testing.T) {
	withNow(t, date(2025, time.June, 15))

	d, ok := ParseDate("12/2")
	if !ok {
		t.Fatal("ParseDate returned no date")
	}
	if want := date(2025, time.December, 2); !d.Equal(want) {
		t.Errorf("date = %v, want %v", d, want)
	}
}

func TestParseDate_FullwidthSlash(t *testing.T) {
	withNow(t, date(2025, time.June, 15))

	d, ok := ParseDate("12／17")
	if !ok {
		t.Fatal("ParseDate returned no date")
	}
	if want := date(2025, time.December, 17); !d.Equal(want) {
		t.Errorf("date = %v, want %v", d, want)
	}
}

func TestParseDate_EmbeddedInText(t *testing.T) {
	withNow(t, date(2025, time.November, 1))

	d, ok := ParseDate("原定11/11三分隊線巡")
	if !ok {
		t.Fatal("ParseDate returned no date")
	}
	if want := date(2025, time.November, 11); !d.Equal(want) {
		t.Errorf("date = %v, want %v", d, want)
	}
}

func TestParseDate_JanuaryInDecemberIsNextYear(t *testing.T) {
	withNow(t, date(2025, time.December, 30))

	d, ok := ParseDate("1/2")
	if !ok {
		t.Fatal("ParseDate returned no date")
	}
	if want := date(2026, time.January, 2); !d.Equal(want) {
		t.Errorf("date = %v, want %v", d, want)
	}
}

func TestParseDate_InvalidCalendarDate(t *testing.T) {
	withNow(t, date(2025, time.June, 15))

	if _, ok := ParseDate("2/30"); ok {
		t.Error("ParseDate accepted 2/30")
	}
	if _, ok := ParseDate("13/5"); ok {
		t.Error("ParseDate accepted month 13")
	}
}

func TestParseDate_NoPattern(t *testing.T) {
	if _, ok := ParseDate("no dates here"); ok {
		t.Error("ParseDate found a date in plain text")
	}
}

func TestParseDateRange_DashRange(t *testing.T) {
	withNow(t, date(2025, time.June, 15))

	got := ParseDateRange("12/25-27")
	want := []time.Time{
		date(2025, time.December, 25),
		date(2025, time.December, 26),
		date(2025, time.December, 27),
	}
	assertDates(t, got, want)
}

func TestParseDateRange_TensDigitReconstruction(t *testing.T) {
	withNow(t, date(2025, time.June, 15))

	// 12/25-7 means 12/25-27: the 7 is the ones digit of a day sharing
	// 25's tens digit.
	got := ParseDateRange("12/25-7")
	want := []time.Time{
		date(2025, time.December, 25),
		date(2025, time.December, 26),
		date(2025, time.December, 27),
	}
	assertDates(t, got, want)
}

func TestParseDateRange_CommaList(t *testing.T) {
	withNow(t, date(2025, time.June, 15))

	got := ParseDateRange("11/19、20")
	want := []time.Time{
		date(2025, time.November, 19),
		date(2025, time.November, 20),
	}
	assertDates(t, got, want)
}

func TestParseDateRange_SingleDateFallback(t *testing.T) {
	withNow(t, date(2025, time.June, 15))

	got := ParseDateRange("12/17 佈覽")
	want := []time.Time{date(2025, time.December, 17)}
	assertDates(t, got, want)
}

func TestParseDateRange_DropsInvalidDaysInRange(t *testing.T) {
	withNow(t, date(2025, time.June, 15))

	got := ParseDateRange("11/29-31")
	want := []time.Time{
		date(2025, time.November, 29),
		date(2025, time.November, 30),
	}
	assertDates(t, got, want)
}

func TestParseDateRange_NothingMatches(t *testing.T) {
	if got := ParseDateRange("nothing to see"); len(got) != 0 {
		t.Errorf("ParseDateRange = %v, want empty", got)
	}
}

func assertDates(t *testing.T, got, want []time.Time) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("dates[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestHasDate(t *testing.T) {
	if !HasDate("12/5 派車") {
		t.Error("HasDate missed slash form")
	}
	if !HasDate("12月5號有任務") {
		t.Error("HasDate missed Chinese month form")
	}
	if HasDate("今天沒事") {
		t.Error("HasDate matched text without a date")
	}
}
