package models

import "time"

// Assignment represents a graded deliverable scoped to a cohort phase.
type Assignment struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Title        string      `gorm:"size:255;not null" json:"title"`
	Description  string      `gorm:"type:text" json:"description"`
	Instructions string      `gorm:"type:text" json:"instructions"`
	TargetPhase  TargetPhase `gorm:"size:16;not null" json:"target_phase"`
	DueDate      *time.Time  `json:"due_date"`
	DocumentURL  string      `gorm:"size:512" json:"document_url"`
	CreatedBy    *uint       `json:"created_by"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	Submissions  []Submission `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// IsPastDue returns true when the assignment deadline has already passed.
func (a Assignment) IsPastDue(reference time.Time) bool {
	return a.DueDate != nil && reference.After(*a.DueDate)
}
