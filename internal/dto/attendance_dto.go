package dto

import (
	"time"

	"github.com/edubridge/academy-api/internal/models"
)

// AttendanceMarkRequest assigns a daily status to a student.
type AttendanceMarkRequest struct {
	StudentID uint   `json:"student_id" validate:"required,gt=0"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Status    string `json:"status" validate:"required,oneof=present absent late"`
	Notes     string `json:"notes"`
}

// AttendanceRecordResponse serializes one attendance row.
type AttendanceRecordResponse struct {
	ID         uint      `json:"id"`
	StudentID  uint      `json:"student_id"`
	Date       string    `json:"date"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes"`
	RecordedBy *uint     `json:"recorded_by"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewAttendanceRecordResponse converts a model into a DTO.
func NewAttendanceRecordResponse(model models.Attendance) AttendanceRecordResponse {
	return AttendanceRecordResponse{
		ID:         model.ID,
		StudentID:  model.StudentID,
		Date:       model.Date.Format("2006-01-02"),
		Status:     model.Status,
		Notes:      model.Notes,
		RecordedBy: model.RecordedBy,
		UpdatedAt:  model.UpdatedAt,
	}
}

// AttendanceRosterEntry pairs a student with their record for the roster date,
// if one exists.
type AttendanceRosterEntry struct {
	Student StudentLite               `json:"student"`
	Record  *AttendanceRecordResponse `json:"record"`
}

// AttendanceRosterResponse is the admin view for a single date.
type AttendanceRosterResponse struct {
	Date    string                  `json:"date"`
	Entries []AttendanceRosterEntry `json:"entries"`
}

// AttendanceSummary aggregates a student's history. Rate counts late as
// attended; it is tracked separately for display.
type AttendanceSummary struct {
	Present int     `json:"present"`
	Late    int     `json:"late"`
	Absent  int     `json:"absent"`
	Total   int     `json:"total"`
	Rate    float64 `json:"rate"`
}

// StudentAttendanceResponse is the student view of their own history.
type StudentAttendanceResponse struct {
	Records []AttendanceRecordResponse `json:"records"`
	Summary AttendanceSummary          `json:"summary"`
}
