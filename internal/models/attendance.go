package models

import "time"

// Attendance records a student's daily status. At most one row exists per
// (student, date); the composite unique index backs the storage-level upsert.
type Attendance struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	StudentID  uint      `gorm:"not null;uniqueIndex:idx_attendance_student_date" json:"student_id"`
	Date       time.Time `gorm:"type:date;not null;uniqueIndex:idx_attendance_student_date" json:"date"`
	Status     string    `gorm:"size:16;not null" json:"status"`
	Notes      string    `gorm:"type:text" json:"notes"`
	RecordedBy *uint     `json:"recorded_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Student    Profile   `gorm:"foreignKey:StudentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student"`
}

// Daily attendance statuses.
const (
	AttendanceStatusPresent = "present"
	AttendanceStatusAbsent  = "absent"
	AttendanceStatusLate    = "late"
)

// CountsAsAttended reports whether the status counts toward the attendance
// rate; late students attended, they were just not on time.
func (a Attendance) CountsAsAttended() bool {
	return a.Status == AttendanceStatusPresent || a.Status == AttendanceStatusLate
}
