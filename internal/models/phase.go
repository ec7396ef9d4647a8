package models

// Phase identifies the cohort a student belongs to.
type Phase string

// Cohort phases.
const (
	PhaseOne Phase = "phase1"
	PhaseTwo Phase = "phase2"
)

// Valid reports whether the phase is a known cohort tag.
func (p Phase) Valid() bool {
	return p == PhaseOne || p == PhaseTwo
}

// TargetPhase scopes a content item to an audience of students.
type TargetPhase string

// Audience scopes for content items.
const (
	TargetPhaseOne  TargetPhase = "phase1"
	TargetPhaseTwo  TargetPhase = "phase2"
	TargetPhaseBoth TargetPhase = "both"
)

// Valid reports whether the target phase is a known audience scope.
func (t TargetPhase) Valid() bool {
	return t == TargetPhaseOne || t == TargetPhaseTwo || t == TargetPhaseBoth
}

// EligibleFor reports whether content with this audience scope is visible to a
// student in the given phase.
func (t TargetPhase) EligibleFor(phase Phase) bool {
	return t == TargetPhaseBoth || string(t) == string(phase)
}
