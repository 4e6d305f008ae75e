package dispatch

import (
	"strings"
	"testing"

	"github.com/zulandar/motorpool/internal/models"
)

func TestFormatList_Empty(t *testing.T) {
	if got := FormatList(nil); got != NoActiveDispatches {
		t.Errorf("FormatList(nil) = %q, want %q", got, NoActiveDispatches)
	}
}

func TestFormatList_GroupsAndSeparates(t *testing.T) {
	records := []models.DispatchRecord{
		{DispatchDate: "2025-12-05", TaskName: "線巡", VehiclePlate: "軍-1234", Commander: "張三", Driver: "李四"},
		{DispatchDate: "2025-12-06", TaskName: "觀測", VehiclePlate: "軍-5678", Commander: "王五", Driver: "趙六"},
	}
	got := FormatList(records)

	if !strings.HasPrefix(got, "📋 **派車表單**") {
		t.Errorf("missing header: %q", got)
	}
	// 2025-12-05 is a Friday.
	if !strings.Contains(got, "12/5(五)") {
		t.Errorf("missing formatted date: %q", got)
	}
	if !strings.Contains(got, "任務: 線巡") || !strings.Contains(got, "車號: 軍-1234") {
		t.Errorf("missing first record fields: %q", got)
	}
	if !strings.Contains(got, strings.Repeat("─", 20)) {
		t.Errorf("missing date separator: %q", got)
	}
	if strings.Count(got, strings.Repeat("─", 20)) != 1 {
		t.Errorf("separator count = %d, want 1", strings.Count(got, strings.Repeat("─", 20)))
	}
}

func TestFormatList_SkipsEmptyTaskName(t *testing.T) {
	records := []models.DispatchRecord{
		{DispatchDate: "2025-12-05", TaskName: "", VehiclePlate: "軍-1234", Commander: "張三", Driver: "李四"},
		{DispatchDate: "2025-12-05", TaskName: "線巡", Commander: "王五", Driver: "趙六"},
	}
	got := FormatList(records)
	if strings.Contains(got, "軍-1234") {
		t.Errorf("record without task name was rendered: %q", got)
	}
	if !strings.Contains(got, "任務: 線巡") {
		t.Errorf("record with task name missing: %q", got)
	}
	// Plateless record omits the 車號 line.
	if strings.Contains(got, "車號:") {
		t.Errorf("plateless record rendered a plate line: %q", got)
	}
}

func TestFormatList_SortsDates(t *testing.T) {
	records := []models.DispatchRecord{
		{DispatchDate: "2025-12-06", TaskName: "觀測", Commander: "王五", Driver: "趙六"},
		{DispatchDate: "2025-12-05", TaskName: "線巡", Commander: "張三", Driver: "李四"},
	}
	got := FormatList(records)
	if strings.Index(got, "12/5(五)") > strings.Index(got, "12/6(六)") {
		t.Errorf("dates out of order: %q", got)
	}
}

func TestFormatRecord(t *testing.T) {
	r := models.DispatchRecord{
		DispatchDate:  "2025-12-05",
		VehicleID:     "軍-1234",
		VehicleStatus: "用車",
		Commander:     "張三",
		Driver:        "李四",
	}
	got := FormatRecord(r)
	want := "**12/5(五)   軍-1234用車**\n車長: 張三\n駕駛: 李四"
	if got != want {
		t.Errorf("FormatRecord = %q, want %q", got, want)
	}
}
