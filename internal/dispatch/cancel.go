package dispatch

import (
	"regexp"
	"strings"
)

// cancelRe captures the date and the task fragment between the date and
// the 取消 keyword (or end of string), e.g. "原定11／11三分隊線巡取消".
var cancelRe = regexp.MustCompile(`(\d{1,2})[/／](\d{1,2})([^\n取]*?)(?:取消|$)`)

// ExtractCancellation returns a cancellation notice when content carries
// the 取消 keyword together with a date. An empty TaskName means "cancel
// everything on that date". Returns nil when the keyword or a valid date
// is missing.
func ExtractCancellation(content string) *CancellationNotice {
	if !strings.Contains(content, "取消") {
		return nil
	}

	m := cancelRe.FindStringSubmatch(content)
	if m == nil {
		return nil
	}

	date, ok := ParseDate(m[1] + "/" + m[2])
	if !ok {
		return nil
	}

	return &CancellationNotice{
		Date:     date,
		TaskName: strings.TrimSpace(m[3]),
	}
}
