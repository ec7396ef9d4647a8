package dto

import (
	"time"

	"github.com/edubridge/academy-api/internal/models"
)

// ProjectSubmissionCreateRequest is a student's deliverable for a project.
type ProjectSubmissionCreateRequest struct {
	ProjectID uint   `json:"project_id" validate:"required,gt=0"`
	GithubURL string `json:"github_url" validate:"required,url"`
	VideoURL  string `json:"video_url" validate:"required,url"`
}

// ProjectSubmissionListRequest describes query filters for project submissions.
type ProjectSubmissionListRequest struct {
	ProjectID *uint   `query:"project_id"`
	StudentID *uint   `query:"student_id"`
	Status    *string `query:"status" validate:"omitempty,oneof=pending graded"`
}

// ProjectSubmissionResponse serializes a project submission.
type ProjectSubmissionResponse struct {
	ID          uint        `json:"id"`
	ProjectID   uint        `json:"project_id"`
	StudentID   uint        `json:"student_id"`
	GithubURL   string      `json:"github_url"`
	VideoURL    string      `json:"video_url"`
	SubmittedAt time.Time   `json:"submitted_at"`
	Status      string      `json:"status"`
	Project     ProjectLite `json:"project"`
	Student     StudentLite `json:"student"`
}

// NewProjectSubmissionResponse converts a model into a DTO.
func NewProjectSubmissionResponse(model models.ProjectSubmission) ProjectSubmissionResponse {
	return ProjectSubmissionResponse{
		ID:          model.ID,
		ProjectID:   model.ProjectID,
		StudentID:   model.StudentID,
		GithubURL:   model.GithubURL,
		VideoURL:    model.VideoURL,
		SubmittedAt: model.SubmittedAt,
		Status:      model.Status,
		Project: ProjectLite{
			ID:          model.Project.ID,
			Title:       model.Project.Title,
			DueDate:     model.Project.DueDate,
			TargetPhase: string(model.Project.TargetPhase),
		},
		Student: NewStudentLite(model.Student),
	}
}

// NewProjectSubmissionResponseSlice converts a slice of models into DTOs.
func NewProjectSubmissionResponseSlice(submissions []models.ProjectSubmission) []ProjectSubmissionResponse {
	responses := make([]ProjectSubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, NewProjectSubmissionResponse(submission))
	}

	return responses
}
