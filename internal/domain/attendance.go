package domain

import "time"

// AttendanceStatus is the lifecycle state of a human attendance
type AttendanceStatus string

const (
	AttendanceWaiting AttendanceStatus = "waiting"
	AttendanceActive  AttendanceStatus = "active"
	AttendanceClosed  AttendanceStatus = "closed"
)

// Attendance is a handoff of a user to a department's attendants
type Attendance struct {
	ID           string
	UserID       int64
	DepartmentID int64
	MenuID       int64
	Status       AttendanceStatus
	OpenedAt     time.Time
	ClosedAt     *time.Time
}
