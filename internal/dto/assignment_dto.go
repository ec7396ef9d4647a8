package dto

import (
	"time"

	"github.com/edubridge/academy-api/internal/models"
)

// AssignmentCreateRequest describes the payload for creating an assignment.
type AssignmentCreateRequest struct {
	Title        string  `json:"title" validate:"required,min=3"`
	Description  string  `json:"description" validate:"required,min=3"`
	Instructions string  `json:"instructions"`
	TargetPhase  string  `json:"target_phase" validate:"required,oneof=phase1 phase2 both"`
	DueDate      *string `json:"due_date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	DocumentURL  string  `json:"document_url" validate:"omitempty,url"`
}

// AssignmentUpdateRequest describes the payload for updating an assignment.
type AssignmentUpdateRequest struct {
	Title        *string `json:"title" validate:"omitempty,min=3"`
	Description  *string `json:"description" validate:"omitempty,min=3"`
	Instructions *string `json:"instructions"`
	TargetPhase  *string `json:"target_phase" validate:"omitempty,oneof=phase1 phase2 both"`
	DueDate      *string `json:"due_date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	DocumentURL  *string `json:"document_url" validate:"omitempty,url"`
}

// AssignmentResponse is the serialized representation returned to API clients.
type AssignmentResponse struct {
	ID           uint               `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Instructions string             `json:"instructions"`
	TargetPhase  models.TargetPhase `json:"target_phase"`
	DueDate      *time.Time         `json:"due_date"`
	DocumentURL  string             `json:"document_url"`
	CreatedBy    *uint              `json:"created_by"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// NewAssignmentResponse converts a model into a DTO.
func NewAssignmentResponse(model models.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:           model.ID,
		Title:        model.Title,
		Description:  model.Description,
		Instructions: model.Instructions,
		TargetPhase:  model.TargetPhase,
		DueDate:      model.DueDate,
		DocumentURL:  model.DocumentURL,
		CreatedBy:    model.CreatedBy,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

// NewAssignmentResponseSlice converts a slice of models into DTOs.
func NewAssignmentResponseSlice(assignments []models.Assignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, NewAssignmentResponse(assignment))
	}

	return responses
}

// AssignmentLite summarizes an assignment in submission responses.
type AssignmentLite struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	DueDate     *time.Time `json:"due_date"`
	TargetPhase string     `json:"target_phase"`
}
