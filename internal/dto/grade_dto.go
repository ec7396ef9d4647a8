package dto

import (
	"time"

	"github.com/edubridge/academy-api/internal/models"
)

// Submission kinds accepted by the grading endpoint.
const (
	GradeKindAssignment = "assignment"
	GradeKindQuiz       = "quiz"
	GradeKindProject    = "project"
)

// GradeCreateRequest records an evaluation for one submission. A grade above
// MaxGrade is accepted; percentage displays are simply unclamped.
type GradeCreateRequest struct {
	Kind         string  `json:"kind" validate:"required,oneof=assignment quiz project"`
	SubmissionID uint    `json:"submission_id" validate:"required,gt=0"`
	Grade        float64 `json:"grade" validate:"gte=0"`
	MaxGrade     float64 `json:"max_grade" validate:"required,gt=0"`
	Feedback     string  `json:"feedback"`
}

// GradeListRequest describes query filters for listing evaluations.
type GradeListRequest struct {
	StudentID *uint `query:"student_id"`
	GradedBy  *uint `query:"graded_by"`
}

// GradeResponse serializes an evaluation.
type GradeResponse struct {
	ID                  uint      `json:"id"`
	StudentID           uint      `json:"student_id"`
	AssignmentID        *uint     `json:"assignment_id"`
	QuizID              *uint     `json:"quiz_id"`
	ProjectID           *uint     `json:"project_id"`
	SubmissionID        *uint     `json:"submission_id"`
	QuizSubmissionID    *uint     `json:"quiz_submission_id"`
	ProjectSubmissionID *uint     `json:"project_submission_id"`
	Grade               float64   `json:"grade"`
	MaxGrade            float64   `json:"max_grade"`
	Percentage          float64   `json:"percentage"`
	Feedback            string    `json:"feedback"`
	GradedBy            *uint     `json:"graded_by"`
	GradedAt            time.Time `json:"graded_at"`
}

// NewGradeResponse converts a model into a DTO.
func NewGradeResponse(model models.Grade) GradeResponse {
	return GradeResponse{
		ID:                  model.ID,
		StudentID:           model.StudentID,
		AssignmentID:        model.AssignmentID,
		QuizID:              model.QuizID,
		ProjectID:           model.ProjectID,
		SubmissionID:        model.SubmissionID,
		QuizSubmissionID:    model.QuizSubmissionID,
		ProjectSubmissionID: model.ProjectSubmissionID,
		Grade:               model.Grade,
		MaxGrade:            model.MaxGrade,
		Percentage:          model.Percentage(),
		Feedback:            model.Feedback,
		GradedBy:            model.GradedBy,
		GradedAt:            model.GradedAt,
	}
}

// GradeLite is the per-submission view a student sees of their evaluation.
type GradeLite struct {
	Grade      float64 `json:"grade"`
	MaxGrade   float64 `json:"max_grade"`
	Percentage float64 `json:"percentage"`
	Feedback   string  `json:"feedback"`
}

// NewGradeLite converts a grade into its compact form.
func NewGradeLite(model models.Grade) GradeLite {
	return GradeLite{
		Grade:      model.Grade,
		MaxGrade:   model.MaxGrade,
		Percentage: model.Percentage(),
		Feedback:   model.Feedback,
	}
}
