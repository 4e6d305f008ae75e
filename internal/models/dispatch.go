package models

import "time"

// DateLayout is the ISO-8601 calendar-date form DispatchDate is stored in.
const DateLayout = "2006-01-02"

// DispatchRecord is one vehicle/task assignment for one calendar date.
// DispatchDate is stored as an ISO-8601 string (YYYY-MM-DD) so that
// string comparison and ordering match chronological order.
//
// VehicleID is the dedup/display key: a normalized plate, a bare numeric
// ID, or — for task-only records with no vehicle identifier — the task
// name itself. VehiclePlate is kept separately so task-only records can
// be told apart from plated ones.
type DispatchRecord struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"`
	DispatchDate  string `gorm:"size:10;not null;index"`
	DayOfWeek     string `gorm:"size:4"` // advisory tag; display derives weekday from the date
	VehicleID     string `gorm:"size:128;not null;index"`
	VehicleStatus string `gorm:"size:64"`
	VehiclePlate  string `gorm:"size:32;index"`
	TaskName      string `gorm:"size:128"`
	Commander     string `gorm:"size:64"`
	Driver        string `gorm:"size:64"`
	MessageID     string `gorm:"size:32"`
	ChannelID     string `gorm:"size:32"`
	CreatedAt     time.Time
}
