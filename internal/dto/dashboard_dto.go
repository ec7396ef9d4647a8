package dto

// DashboardSummary aggregates the student's progress across all content kinds.
type DashboardSummary struct {
	TotalItems        int     `json:"total_items"`
	Submitted         int     `json:"submitted"`
	Graded            int     `json:"graded"`
	Pending           int     `json:"pending"`
	Overdue           int     `json:"overdue"`
	AveragePercentage float64 `json:"average_percentage"`
	AttendanceRate    float64 `json:"attendance_rate"`
}

// StudentDashboardResponse is the cached aggregate served to students.
type StudentDashboardResponse struct {
	Summary     DashboardSummary `json:"summary"`
	Assignments int              `json:"assignments"`
	Quizzes     int              `json:"quizzes"`
	Projects    int              `json:"projects"`
}
