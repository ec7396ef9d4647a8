package models

import "time"

// Quiz represents a timed assessment scoped to a cohort phase.
type Quiz struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	Title            string      `gorm:"size:255;not null" json:"title"`
	Description      string      `gorm:"type:text" json:"description"`
	Instructions     string      `gorm:"type:text" json:"instructions"`
	TargetPhase      TargetPhase `gorm:"size:16;not null" json:"target_phase"`
	TimeLimitMinutes int         `gorm:"not null;default:30" json:"time_limit_minutes"`
	StartTime        *time.Time  `json:"start_time"`
	CreatedBy        *uint       `json:"created_by"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
	Submissions      []QuizSubmission `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
