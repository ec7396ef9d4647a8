package models

import "time"

// Grade is a scored, feedback-bearing evaluation of exactly one submission.
// Exactly one of SubmissionID, QuizSubmissionID and ProjectSubmissionID is set;
// AssignmentID/QuizID are denormalized from the graded item for display
// queries.
type Grade struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	StudentID           uint      `gorm:"not null;index" json:"student_id"`
	AssignmentID        *uint     `json:"assignment_id"`
	QuizID              *uint     `json:"quiz_id"`
	ProjectID           *uint     `json:"project_id"`
	SubmissionID        *uint     `gorm:"uniqueIndex" json:"submission_id"`
	QuizSubmissionID    *uint     `gorm:"uniqueIndex" json:"quiz_submission_id"`
	ProjectSubmissionID *uint     `gorm:"uniqueIndex" json:"project_submission_id"`
	Grade               float64   `gorm:"not null" json:"grade"`
	MaxGrade            float64   `gorm:"not null" json:"max_grade"`
	Feedback            string    `gorm:"type:text" json:"feedback"`
	GradedBy            *uint     `json:"graded_by"`
	GradedAt            time.Time `gorm:"not null" json:"graded_at"`
	CreatedAt           time.Time `json:"created_at"`

	// Deleting a submission, or the content it answers, removes its grade.
	Submission        *Submission        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	QuizSubmission    *QuizSubmission    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ProjectSubmission *ProjectSubmission `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// Percentage returns the unclamped score share; a grade above max is not
// rejected and yields more than 100.
func (g Grade) Percentage() float64 {
	if g.MaxGrade == 0 {
		return 0
	}
	return g.Grade / g.MaxGrade * 100
}
