package models

import "time"

// QuizSubmission tracks a student's attempt at a quiz from start to grading.
type QuizSubmission struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	QuizID      uint       `gorm:"not null;uniqueIndex:idx_quiz_submission_quiz_student" json:"quiz_id"`
	StudentID   uint       `gorm:"not null;uniqueIndex:idx_quiz_submission_quiz_student" json:"student_id"`
	GithubURL   *string    `gorm:"size:512" json:"github_url"`
	VideoURL    *string    `gorm:"size:512" json:"video_url"`
	StartedAt   time.Time  `gorm:"not null" json:"started_at"`
	SubmittedAt *time.Time `json:"submitted_at"`
	Status      string     `gorm:"size:32;not null" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Quiz        Quiz       `json:"quiz"`
	Student     Profile    `gorm:"foreignKey:StudentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student"`
}

// Quiz attempt states. Transitions are monotonic: in_progress moves to
// submitted, submitted moves to graded, never backwards.
const (
	QuizSubmissionStatusInProgress = "in_progress"
	QuizSubmissionStatusSubmitted  = "submitted"
	QuizSubmissionStatusGraded     = "graded"
)

var quizStatusRank = map[string]int{
	QuizSubmissionStatusInProgress: 0,
	QuizSubmissionStatusSubmitted:  1,
	QuizSubmissionStatusGraded:     2,
}

// CanTransitionTo reports whether moving to the given status preserves the
// monotonic attempt lifecycle.
func (s QuizSubmission) CanTransitionTo(status string) bool {
	from, ok := quizStatusRank[s.Status]
	if !ok {
		return false
	}
	to, ok := quizStatusRank[status]
	if !ok {
		return false
	}
	return to > from
}

// IsGraded reports whether the attempt has been evaluated.
func (s QuizSubmission) IsGraded() bool {
	return s.Status == QuizSubmissionStatusGraded
}
