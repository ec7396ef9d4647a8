package dto

import (
	"time"

	"github.com/edubridge/academy-api/internal/models"
)

// SubmissionCreateRequest is a student's link-based deliverable for an
// assignment. Both links are required by contract.
type SubmissionCreateRequest struct {
	AssignmentID uint   `json:"assignment_id" validate:"required,gt=0"`
	GithubURL    string `json:"github_url" validate:"required,url"`
	VideoURL     string `json:"video_url" validate:"required,url"`
}

// SubmissionListRequest describes query string filters for listing submissions.
type SubmissionListRequest struct {
	AssignmentID *uint   `query:"assignment_id"`
	StudentID    *uint   `query:"student_id"`
	Status       *string `query:"status" validate:"omitempty,oneof=pending graded"`
}

// SubmissionResponse is returned to API clients when viewing submissions.
type SubmissionResponse struct {
	ID           uint           `json:"id"`
	AssignmentID uint           `json:"assignment_id"`
	StudentID    uint           `json:"student_id"`
	GithubURL    string         `json:"github_url"`
	VideoURL     string         `json:"video_url"`
	SubmittedAt  time.Time      `json:"submitted_at"`
	Status       string         `json:"status"`
	Assignment   AssignmentLite `json:"assignment"`
	Student      StudentLite    `json:"student"`
}

// NewSubmissionResponse converts a Submission model into a DTO.
func NewSubmissionResponse(model models.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:           model.ID,
		AssignmentID: model.AssignmentID,
		StudentID:    model.StudentID,
		GithubURL:    model.GithubURL,
		VideoURL:     model.VideoURL,
		SubmittedAt:  model.SubmittedAt,
		Status:       model.Status,
		Assignment: AssignmentLite{
			ID:          model.Assignment.ID,
			Title:       model.Assignment.Title,
			DueDate:     model.Assignment.DueDate,
			TargetPhase: string(model.Assignment.TargetPhase),
		},
		Student: NewStudentLite(model.Student),
	}
}

// NewSubmissionResponseSlice converts a slice of models into DTOs.
func NewSubmissionResponseSlice(submissions []models.Submission) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, NewSubmissionResponse(submission))
	}

	return responses
}
