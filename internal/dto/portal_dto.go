package dto

// Portal DTOs shape the student-facing feed: each eligible content item joined
// with the student's own submission (at most one) and its grade (0 or 1).

// StudentSubmissionState is the compact submission view inside the feed.
type StudentSubmissionState struct {
	ID          uint       `json:"id"`
	GithubURL   *string    `json:"github_url"`
	VideoURL    *string    `json:"video_url"`
	Status      string     `json:"status"`
	SubmittedAt *string    `json:"submitted_at"`
	Grade       *GradeLite `json:"grade"`
}

// StudentAssignmentView is one assignment with the student's progress.
type StudentAssignmentView struct {
	Assignment AssignmentResponse      `json:"assignment"`
	Submission *StudentSubmissionState `json:"submission"`
}

// StudentQuizView is one quiz with the student's attempt state.
type StudentQuizView struct {
	Quiz       QuizResponse            `json:"quiz"`
	Submission *StudentSubmissionState `json:"submission"`
}

// StudentProjectView is one project with the student's progress.
type StudentProjectView struct {
	Project    ProjectResponse         `json:"project"`
	Submission *StudentSubmissionState `json:"submission"`
}

// StudentFeedResponse bundles all eligible content for the acting student.
type StudentFeedResponse struct {
	Assignments []StudentAssignmentView `json:"assignments"`
	Quizzes     []StudentQuizView       `json:"quizzes"`
	Projects    []StudentProjectView    `json:"projects"`
}
