package models

import "time"

// Submission represents a student's link-based deliverable for an assignment.
type Submission struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	AssignmentID uint       `gorm:"not null;uniqueIndex:idx_submission_assignment_student" json:"assignment_id"`
	StudentID    uint       `gorm:"not null;uniqueIndex:idx_submission_assignment_student" json:"student_id"`
	GithubURL    string     `gorm:"size:512;not null" json:"github_url"`
	VideoURL     string     `gorm:"size:512;not null" json:"video_url"`
	SubmittedAt  time.Time  `gorm:"not null" json:"submitted_at"`
	Status       string     `gorm:"size:32;not null" json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Assignment   Assignment `json:"assignment"`
	Student      Profile    `gorm:"foreignKey:StudentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student"`
}

const (
	// SubmissionStatusPending indicates the submission awaits grading.
	SubmissionStatusPending = "pending"
	// SubmissionStatusGraded indicates a grade has been recorded.
	SubmissionStatusGraded = "graded"
)

// IsGraded reports whether the submission has been evaluated.
func (s Submission) IsGraded() bool {
	return s.Status == SubmissionStatusGraded
}
