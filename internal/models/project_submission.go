package models

import "time"

// ProjectSubmission mirrors Submission, scoped to a project.
type ProjectSubmission struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProjectID   uint      `gorm:"not null;uniqueIndex:idx_project_submission_project_student" json:"project_id"`
	StudentID   uint      `gorm:"not null;uniqueIndex:idx_project_submission_project_student" json:"student_id"`
	GithubURL   string    `gorm:"size:512;not null" json:"github_url"`
	VideoURL    string    `gorm:"size:512;not null" json:"video_url"`
	SubmittedAt time.Time `gorm:"not null" json:"submitted_at"`
	Status      string    `gorm:"size:32;not null" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Project     Project   `json:"project"`
	Student     Profile   `gorm:"foreignKey:StudentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student"`
}

// IsGraded reports whether the submission has been evaluated.
func (s ProjectSubmission) IsGraded() bool {
	return s.Status == SubmissionStatusGraded
}
