package dto

import (
	"time"

	"github.com/edubridge/academy-api/internal/models"
)

// QuizCreateRequest describes the payload for creating a quiz.
type QuizCreateRequest struct {
	Title            string  `json:"title" validate:"required,min=3"`
	Description      string  `json:"description" validate:"required,min=3"`
	Instructions     string  `json:"instructions"`
	TargetPhase      string  `json:"target_phase" validate:"required,oneof=phase1 phase2 both"`
	TimeLimitMinutes int     `json:"time_limit_minutes" validate:"required,gt=0,lte=480"`
	StartTime        *string `json:"start_time" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// QuizUpdateRequest describes the payload for updating a quiz.
type QuizUpdateRequest struct {
	Title            *string `json:"title" validate:"omitempty,min=3"`
	Description      *string `json:"description" validate:"omitempty,min=3"`
	Instructions     *string `json:"instructions"`
	TargetPhase      *string `json:"target_phase" validate:"omitempty,oneof=phase1 phase2 both"`
	TimeLimitMinutes *int    `json:"time_limit_minutes" validate:"omitempty,gt=0,lte=480"`
	StartTime        *string `json:"start_time" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// QuizResponse is the serialized representation returned to API clients.
type QuizResponse struct {
	ID               uint               `json:"id"`
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	Instructions     string             `json:"instructions"`
	TargetPhase      models.TargetPhase `json:"target_phase"`
	TimeLimitMinutes int                `json:"time_limit_minutes"`
	StartTime        *time.Time         `json:"start_time"`
	CreatedBy        *uint              `json:"created_by"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// NewQuizResponse converts a model into a DTO.
func NewQuizResponse(model models.Quiz) QuizResponse {
	return QuizResponse{
		ID:               model.ID,
		Title:            model.Title,
		Description:      model.Description,
		Instructions:     model.Instructions,
		TargetPhase:      model.TargetPhase,
		TimeLimitMinutes: model.TimeLimitMinutes,
		StartTime:        model.StartTime,
		CreatedBy:        model.CreatedBy,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}

// NewQuizResponseSlice converts a slice of models into DTOs.
func NewQuizResponseSlice(quizzes []models.Quiz) []QuizResponse {
	responses := make([]QuizResponse, 0, len(quizzes))
	for _, quiz := range quizzes {
		responses = append(responses, NewQuizResponse(quiz))
	}

	return responses
}

// QuizLite summarizes a quiz in attempt responses.
type QuizLite struct {
	ID               uint   `json:"id"`
	Title            string `json:"title"`
	TimeLimitMinutes int    `json:"time_limit_minutes"`
	TargetPhase      string `json:"target_phase"`
}
