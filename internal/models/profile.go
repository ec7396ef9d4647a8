package models

import "time"

// Profile represents a portal account, either an administrator or a student.
type Profile struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FullName     string    `gorm:"size:255;not null" json:"full_name"`
	Role         string    `gorm:"size:32;not null" json:"role"`
	Phase        *Phase    `gorm:"size:16" json:"phase"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const (
	// RoleAdmin marks accounts that manage content, grading and attendance.
	RoleAdmin = "admin"
	// RoleStudent marks learner accounts; students always carry a phase.
	RoleStudent = "student"
)

// IsStudent reports whether the profile belongs to a learner.
func (p Profile) IsStudent() bool {
	return p.Role == RoleStudent
}

// CurrentPhase returns the student's phase, defaulting to phase1 when unset.
func (p Profile) CurrentPhase() Phase {
	if p.Phase != nil && p.Phase.Valid() {
		return *p.Phase
	}
	return PhaseOne
}
