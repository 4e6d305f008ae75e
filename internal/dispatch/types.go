// Package dispatch extracts structured vehicle-dispatch records from
// free-form Traditional-Chinese chat messages. The extractors are
// best-effort heuristics: on unrecognized input they return zero values,
// never errors.
package dispatch

import "time"

// VehicleInfo is one extracted vehicle/task entry.
//
// VehicleID is the dedup key: the normalized plate when one exists, a bare
// numeric ID, or the task name for task-only dispatches. VehiclePlate is
// empty for task-only entries.
type VehicleInfo struct {
	VehicleID    string
	VehiclePlate string
	TaskName     string
	Status       string
}

// ParsedDispatch is the parse result for one resolved calendar date.
// A block covering a date range expands to one ParsedDispatch per date,
// all sharing the same vehicles and personnel.
type ParsedDispatch struct {
	Date      time.Time
	DayOfWeek string
	Vehicles  []VehicleInfo
	Commander string
	Driver    string
}

// CancellationNotice asks for deletion of dispatches on a date. An empty
// TaskName means every dispatch on that date.
type CancellationNotice struct {
	Date     time.Time
	TaskName string
}
