package dto

import (
	"time"

	"github.com/edubridge/academy-api/internal/models"
)

// ProjectCreateRequest describes the payload for creating a project.
type ProjectCreateRequest struct {
	Title           string  `json:"title" validate:"required,min=3"`
	Description     string  `json:"description" validate:"required,min=3"`
	Guidelines      string  `json:"guidelines"`
	TargetPhase     string  `json:"target_phase" validate:"required,oneof=phase1 phase2 both"`
	DueDate         *string `json:"due_date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	IsCollaborative bool    `json:"is_collaborative"`
}

// ProjectUpdateRequest describes the payload for updating a project.
type ProjectUpdateRequest struct {
	Title           *string `json:"title" validate:"omitempty,min=3"`
	Description     *string `json:"description" validate:"omitempty,min=3"`
	Guidelines      *string `json:"guidelines"`
	TargetPhase     *string `json:"target_phase" validate:"omitempty,oneof=phase1 phase2 both"`
	DueDate         *string `json:"due_date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	IsCollaborative *bool   `json:"is_collaborative"`
}

// ProjectResponse is the serialized representation returned to API clients.
type ProjectResponse struct {
	ID              uint               `json:"id"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Guidelines      string             `json:"guidelines"`
	TargetPhase     models.TargetPhase `json:"target_phase"`
	DueDate         *time.Time         `json:"due_date"`
	IsCollaborative bool               `json:"is_collaborative"`
	CreatedBy       *uint              `json:"created_by"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// NewProjectResponse converts a model into a DTO.
func NewProjectResponse(model models.Project) ProjectResponse {
	return ProjectResponse{
		ID:              model.ID,
		Title:           model.Title,
		Description:     model.Description,
		Guidelines:      model.Guidelines,
		TargetPhase:     model.TargetPhase,
		DueDate:         model.DueDate,
		IsCollaborative: model.IsCollaborative,
		CreatedBy:       model.CreatedBy,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

// NewProjectResponseSlice converts a slice of models into DTOs.
func NewProjectResponseSlice(projects []models.Project) []ProjectResponse {
	responses := make([]ProjectResponse, 0, len(projects))
	for _, project := range projects {
		responses = append(responses, NewProjectResponse(project))
	}

	return responses
}

// ProjectLite summarizes a project in submission responses.
type ProjectLite struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	DueDate     *time.Time `json:"due_date"`
	TargetPhase string     `json:"target_phase"`
}
