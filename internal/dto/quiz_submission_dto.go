package dto

import (
	"time"

	"github.com/edubridge/academy-api/internal/models"
)

// QuizStartRequest opens a quiz attempt for the acting student.
type QuizStartRequest struct {
	QuizID uint `json:"quiz_id" validate:"required,gt=0"`
}

// QuizSubmitRequest finishes a quiz attempt with the deliverable links.
type QuizSubmitRequest struct {
	QuizID    uint   `json:"quiz_id" validate:"required,gt=0"`
	GithubURL string `json:"github_url" validate:"required,url"`
	VideoURL  string `json:"video_url" validate:"required,url"`
}

// QuizSubmissionListRequest describes query filters for listing quiz attempts.
type QuizSubmissionListRequest struct {
	QuizID    *uint   `query:"quiz_id"`
	StudentID *uint   `query:"student_id"`
	Status    *string `query:"status" validate:"omitempty,oneof=in_progress submitted graded"`
}

// QuizSubmissionResponse serializes a quiz attempt.
type QuizSubmissionResponse struct {
	ID          uint        `json:"id"`
	QuizID      uint        `json:"quiz_id"`
	StudentID   uint        `json:"student_id"`
	GithubURL   *string     `json:"github_url"`
	VideoURL    *string     `json:"video_url"`
	StartedAt   time.Time   `json:"started_at"`
	SubmittedAt *time.Time  `json:"submitted_at"`
	Status      string      `json:"status"`
	Quiz        QuizLite    `json:"quiz"`
	Student     StudentLite `json:"student"`
}

// NewQuizSubmissionResponse converts a model into a DTO.
func NewQuizSubmissionResponse(model models.QuizSubmission) QuizSubmissionResponse {
	return QuizSubmissionResponse{
		ID:          model.ID,
		QuizID:      model.QuizID,
		StudentID:   model.StudentID,
		GithubURL:   model.GithubURL,
		VideoURL:    model.VideoURL,
		StartedAt:   model.StartedAt,
		SubmittedAt: model.SubmittedAt,
		Status:      model.Status,
		Quiz: QuizLite{
			ID:               model.Quiz.ID,
			Title:            model.Quiz.Title,
			TimeLimitMinutes: model.Quiz.TimeLimitMinutes,
			TargetPhase:      string(model.Quiz.TargetPhase),
		},
		Student: NewStudentLite(model.Student),
	}
}

// NewQuizSubmissionResponseSlice converts a slice of models into DTOs.
func NewQuizSubmissionResponseSlice(submissions []models.QuizSubmission) []QuizSubmissionResponse {
	responses := make([]QuizSubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, NewQuizSubmissionResponse(submission))
	}

	return responses
}
