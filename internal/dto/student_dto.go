package dto

import (
	"time"

	"github.com/edubridge/academy-api/internal/models"
)

// ProfileResponse is the serialized representation of a portal account.
type ProfileResponse struct {
	ID        uint          `json:"id"`
	Email     string        `json:"email"`
	FullName  string        `json:"full_name"`
	Role      string        `json:"role"`
	Phase     *models.Phase `json:"phase"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// NewProfileResponse converts a model into a DTO.
func NewProfileResponse(model models.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        model.ID,
		Email:     model.Email,
		FullName:  model.FullName,
		Role:      model.Role,
		Phase:     model.Phase,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// StudentCreateRequest provisions a new student account.
type StudentCreateRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required,min=2"`
	Phase    string `json:"phase" validate:"required,oneof=phase1 phase2"`
}

// StudentUpdateRequest updates a student's mutable fields.
type StudentUpdateRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=2"`
	Phase    *string `json:"phase" validate:"omitempty,oneof=phase1 phase2"`
}

// StudentListRequest captures query parameters for listing students.
type StudentListRequest struct {
	Search   string `query:"search"`
	Phase    string `query:"phase" validate:"omitempty,oneof=phase1 phase2"`
	Page     int    `query:"page" validate:"omitempty,gte=1"`
	PageSize int    `query:"page_size" validate:"omitempty,gte=1,lte=100"`
}

// StudentListResponse wraps a page of students.
type StudentListResponse struct {
	Items      []ProfileResponse `json:"items"`
	Pagination PaginationMeta    `json:"pagination"`
}

// StudentLite summarizes a student inside submission and attendance payloads.
type StudentLite struct {
	ID       uint          `json:"id"`
	FullName string        `json:"full_name"`
	Email    string        `json:"email"`
	Phase    *models.Phase `json:"phase"`
}

// NewStudentLite converts a profile into its compact form.
func NewStudentLite(model models.Profile) StudentLite {
	return StudentLite{
		ID:       model.ID,
		FullName: model.FullName,
		Email:    model.Email,
		Phase:    model.Phase,
	}
}
