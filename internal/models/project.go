package models

import "time"

// Project represents a larger deliverable, optionally collaborative.
type Project struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	Title           string      `gorm:"size:255;not null" json:"title"`
	Description     string      `gorm:"type:text" json:"description"`
	Guidelines      string      `gorm:"type:text" json:"guidelines"`
	TargetPhase     TargetPhase `gorm:"size:16;not null" json:"target_phase"`
	DueDate         *time.Time  `json:"due_date"`
	IsCollaborative bool        `gorm:"not null;default:false" json:"is_collaborative"`
	CreatedBy       *uint       `json:"created_by"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	Submissions     []ProjectSubmission `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// IsPastDue returns true when the project deadline has already passed.
func (p Project) IsPastDue(reference time.Time) bool {
	return p.DueDate != nil && reference.After(*p.DueDate)
}
