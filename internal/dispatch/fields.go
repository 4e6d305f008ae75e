package dispatch

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	dayOfWeekRes = []*regexp.Regexp{
		regexp.MustCompile(`\(([一二三四五六日])\)`),
		regexp.MustCompile(`\(週([一二三四五六日])\)`),
		regexp.MustCompile(`（([一二三四五六日])）`),
		regexp.MustCompile(`（週([一二三四五六日])）`),
	}

	plateRe           = regexp.MustCompile(`軍[A-Z]?-?\d+`)
	plateNormalizedRe = regexp.MustCompile(`^軍[A-Z]?-`)
	plateLetterRe     = regexp.MustCompile(`^軍[A-Z]\d`)
	plateWithStatusRe = regexp.MustCompile(`(軍[A-Z]?\d*-\d+)(待搶用車|用車|出車)?`)
	plainVehicleRe    = regexp.MustCompile(`\d{1,2}[/／]\d{1,2}\s+(\d+)`)

	taskFieldRes = []*regexp.Regexp{
		regexp.MustCompile(`任務說明[:：]?\s*([^\n]+)`),
		regexp.MustCompile(`任務[:：]\s*([^\n]+)`),
		regexp.MustCompile(`說明[:：]\s*([^\n]+)`),
	}
	personnelTailRe = regexp.MustCompile(`(車長|駕駛).*`)
	afterDateTaskRe = regexp.MustCompile(`\d{1,2}[/／]\d{1,2}(?:-\d{1,2})?(?:\([一二三四五六日]\))?\s+(.+)`)
	plateStripRe    = regexp.MustCompile(`軍[A-Z]?\d*-\d+`)
	numericOnlyRe   = regexp.MustCompile(`^\d+$`)
	fieldLineRe     = regexp.MustCompile(`^.+[:：]`)

	commanderRe = regexp.MustCompile(`車長[:：\s]*([^\n\r駕駛:：]+)`)
	driverRe    = regexp.MustCompile(`駕駛[:：\s]*([^\n\r:：]+)`)
	deputyRe    = regexp.MustCompile(`副隊\s+(.+)`)
)

// taskKeywords are task names preferred verbatim over raw trailing text
// when found as a substring after a date token.
var taskKeywords = []string{"人員載運用車", "線巡", "觀測", "佈纫", "佈覽", "抗滑", "預保", "搶修"}

// statusOnlyLines are lines that hold a bare status keyword, never a task name.
var statusOnlyLines = []string{"待搶用車", "用車", "出車", "派車"}

// taskSkipKeywords mark a second line as something other than a task name.
var taskSkipKeywords = []string{"車長", "駕駛", "副隊", "任務說明", "任務:", "任務：", "說明:", "車號:", "車號：", "車牌:"}

// ExtractDayOfWeek returns the weekday tag from markers like (二), （二）,
// (週二) or （週二）. The tag is advisory only; it is never validated
// against the resolved date.
func ExtractDayOfWeek(content string) string {
	for _, re := range dayOfWeekRes {
		if m := re.FindStringSubmatch(content); m != nil {
			return m[1]
		}
	}
	return ""
}

// NormalizePlate rewrites a raw military plate into the canonical
// 軍-NNNN or 軍X-NNNN form.
func NormalizePlate(plate string) string {
	if plateNormalizedRe.MatchString(plate) {
		return plate
	}
	r := []rune(plate)
	if plateLetterRe.MatchString(plate) {
		return string(r[:2]) + "-" + string(r[2:])
	}
	return "軍-" + string(r[1:])
}

// ExtractVehiclePlate returns the first normalized military plate in
// content, or the empty string.
func ExtractVehiclePlate(content string) string {
	if m := plateRe.FindString(content); m != "" {
		return NormalizePlate(m)
	}
	return ""
}

// ExtractTaskNameField pulls the task description out of a block, trying in
// priority order: an explicit labelled field (任務說明/任務/說明), text
// following a date token on the first line, then a qualifying second line.
// Returns the empty string when nothing qualifies; callers treat absence as
// "no task name", not as an error.
func ExtractTaskNameField(content string) string {
	for _, re := range taskFieldRes {
		if m := re.FindStringSubmatch(content); m != nil {
			task := strings.TrimSpace(personnelTailRe.ReplaceAllString(strings.TrimSpace(m[1]), ""))
			if task != "" {
				return task
			}
		}
	}

	lines := strings.Split(strings.TrimSpace(content), "\n")
	firstLine := strings.TrimSpace(lines[0])

	// Text after a date-range token, e.g. "12/25-7 9A觀測所佈纜".
	if m := afterDateTaskRe.FindStringSubmatch(firstLine); m != nil {
		extracted := strings.TrimSpace(m[1])

		for _, kw := range taskKeywords {
			if strings.Contains(extracted, kw) {
				return kw
			}
		}

		extracted = strings.TrimSpace(plateStripRe.ReplaceAllString(extracted, ""))
		if extracted != "" && !numericOnlyRe.MatchString(extracted) {
			return extracted
		}
	}

	// Second line as task name, when the first line carries a plate and the
	// second is neither a personnel/labelled field nor a bare status keyword.
	if len(lines) >= 2 {
		secondLine := strings.TrimSpace(lines[1])
		if plateRe.MatchString(firstLine) && secondLine != "" {
			skip := false
			for _, kw := range taskSkipKeywords {
				if strings.Contains(secondLine, kw) {
					skip = true
					break
				}
			}

			prefix, _, _ := strings.Cut(secondLine, ":")
			isFieldLine := fieldLineRe.MatchString(secondLine) && utf8.RuneCountInString(prefix) <= 4

			statusOnly := false
			for _, s := range statusOnlyLines {
				if secondLine == s {
					statusOnly = true
					break
				}
			}

			if !skip && !isFieldLine && !statusOnly {
				return secondLine
			}
		}

		// First line is a bare date with the plate on the second line;
		// derive the task from what follows the plate there.
		if dateRe.MatchString(firstLine) && !plateRe.MatchString(firstLine) && plateRe.MatchString(secondLine) {
			rest := strings.TrimSpace(plateRe.ReplaceAllString(secondLine, ""))

			for _, kw := range taskKeywords {
				if strings.Contains(rest, kw) {
					return kw
				}
			}

			skip := false
			for _, kw := range taskSkipKeywords {
				if strings.Contains(rest, kw) {
					skip = true
					break
				}
			}
			if !skip && rest != "" && !numericOnlyRe.MatchString(rest) {
				return rest
			}
		}
	}

	return ""
}

// ExtractVehicleInfo extracts the vehicle entries of a block, in priority
// order:
//
//  1. every military plate in the content, deduplicated by normalized
//     plate, with an adjacent status keyword when present (else the
//     message-wide 待搶用車 if it appears anywhere);
//  2. a bare number following the date on the first line, with status
//     inferred from message-wide keywords;
//  3. when neither exists but a task name does, a single synthesized entry
//     whose VehicleID is the task name itself — this is what lets
//     vehicle-less dispatches be stored.
func ExtractVehicleInfo(content string) []VehicleInfo {
	var vehicles []VehicleInfo
	seen := make(map[string]bool)

	firstLine, _, _ := strings.Cut(content, "\n")
	taskName := ExtractTaskNameField(content)

	for _, m := range plateWithStatusRe.FindAllStringSubmatch(content, -1) {
		plate := NormalizePlate(m[1])
		if seen[plate] {
			continue
		}
		seen[plate] = true

		status := m[2]
		if status == "" && strings.Contains(content, "待搶用車") {
			status = "待搶用車"
		}

		vehicles = append(vehicles, VehicleInfo{
			VehicleID:    plate,
			VehiclePlate: plate,
			TaskName:     taskName,
			Status:       status,
		})
	}

	if len(vehicles) == 0 {
		if m := plainVehicleRe.FindStringSubmatch(firstLine); m != nil {
			status := ""
			if strings.Contains(content, "待搶用車") {
				status = "待搶用車"
			} else if strings.Contains(content, "人員載運") {
				status = "人員載運用車"
			}

			vehicles = append(vehicles, VehicleInfo{
				VehicleID:    m[1],
				VehiclePlate: m[1],
				TaskName:     taskName,
				Status:       status,
			})
		}
	}

	if len(vehicles) == 0 && taskName != "" {
		vehicles = append(vehicles, VehicleInfo{
			VehicleID: taskName,
			TaskName:  taskName,
		})
	}

	return vehicles
}

// ExtractPersonnel scans line by line for 車長 (commander) and 駕駛
// (driver) labels. Later matching lines overwrite earlier ones. The 副隊
// shorthand — a line like "副隊 楊修" — sets the commander to the literal
// tag and the trailing name as driver, but only while no commander has
// been found yet.
func ExtractPersonnel(content string) (commander, driver string) {
	for _, line := range strings.Split(content, "\n") {
		stripped := strings.TrimSpace(line)

		if strings.Contains(line, "車長") {
			if m := commanderRe.FindStringSubmatch(line); m != nil {
				if v := strings.TrimSpace(m[1]); v != "" && v != ":" && v != "：" {
					commander = v
				}
			}
		}

		if strings.Contains(line, "駕駛") {
			if m := driverRe.FindStringSubmatch(line); m != nil {
				if v := strings.TrimSpace(m[1]); v != "" && v != ":" && v != "：" {
					driver = v
				}
			}
		}

		if strings.Contains(stripped, "副隊") && commander == "" {
			commander = "副隊"
			if m := deputyRe.FindStringSubmatch(stripped); m != nil {
				if v := strings.TrimSpace(m[1]); v != "" {
					driver = v
				}
			}
		}
	}
	return commander, driver
}
