package dispatch

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/zulandar/motorpool/internal/models"
)

// NoActiveDispatches is returned by FormatList for an empty roster.
const NoActiveDispatches = "目前沒有派車資訊。"

// weekdayNames indexed Monday-first, matching the roster's (一)…(日) tags.
var weekdayNames = [7]string{"一", "二", "三", "四", "五", "六", "日"}

// displayDate renders an ISO date as "M/D(weekday)". The weekday comes
// from the date itself, never from the stored advisory tag.
func displayDate(iso string) string {
	d, err := time.Parse(models.DateLayout, iso)
	if err != nil {
		return iso
	}
	weekday := weekdayNames[(int(d.Weekday())+6)%7]
	return fmt.Sprintf("%d/%d(%s)", int(d.Month()), d.Day(), weekday)
}

// FormatRecord renders a single record for display.
func FormatRecord(r models.DispatchRecord) string {
	var lines []string
	if r.VehicleID != "" {
		lines = append(lines, fmt.Sprintf("**%s   %s%s**", displayDate(r.DispatchDate), r.VehicleID, r.VehicleStatus))
	}
	lines = append(lines, "車長: "+r.Commander, "駕駛: "+r.Driver)
	return strings.Join(lines, "\n")
}

// FormatList renders the dispatch roster grouped by date ascending,
// preserving storage order within a date. Records without a task name are
// skipped entirely; a horizontal rule separates distinct dates.
func FormatList(records []models.DispatchRecord) string {
	if len(records) == 0 {
		return NoActiveDispatches
	}

	grouped := make(map[string][]models.DispatchRecord)
	var dates []string
	for _, r := range records {
		if _, ok := grouped[r.DispatchDate]; !ok {
			dates = append(dates, r.DispatchDate)
		}
		grouped[r.DispatchDate] = append(grouped[r.DispatchDate], r)
	}
	sort.Strings(dates)

	lines := []string{"📋 **派車表單**", ""}
	for i, dateKey := range dates {
		dd := displayDate(dateKey)
		for _, r := range grouped[dateKey] {
			if r.TaskName == "" {
				continue
			}
			lines = append(lines, dd, "任務: "+r.TaskName)
			if r.VehiclePlate != "" {
				lines = append(lines, "車號: "+r.VehiclePlate)
			}
			lines = append(lines, "車長: "+r.Commander, "駕駛: "+r.Driver, "")
		}
		if i < len(dates)-1 {
			lines = append(lines, strings.Repeat("─", 20), "")
		}
	}
	return strings.Join(lines, "\n")
}
