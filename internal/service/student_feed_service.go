package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/edubridge/academy-api/internal/dto"
	"github.com/edubridge/academy-api/internal/models"
	"github.com/edubridge/academy-api/internal/repository"
)

// StudentFeedService assembles the student portal feed: every content item the
// student's phase makes visible, joined with their own submission and grade.
type StudentFeedService interface {
	Feed(ctx context.Context, studentID uint) (dto.StudentFeedResponse, error)
}

type studentFeedService struct {
	profiles           repository.ProfileRepository
	assignments        repository.AssignmentRepository
	quizzes            repository.QuizRepository
	projects           repository.ProjectRepository
	submissions        repository.SubmissionRepository
	quizSubmissions    repository.QuizSubmissionRepository
	projectSubmissions repository.ProjectSubmissionRepository
	grades             repository.GradeRepository
	logger             zerolog.Logger
}

// NewStudentFeedService constructs the feed service.
func NewStudentFeedService(profiles repository.ProfileRepository, assignments repository.AssignmentRepository, quizzes repository.QuizRepository, projects repository.ProjectRepository, submissions repository.SubmissionRepository, quizSubmissions repository.QuizSubmissionRepository, projectSubmissions repository.ProjectSubmissionRepository, grades repository.GradeRepository, logger zerolog.Logger) StudentFeedService {
	return &studentFeedService{
		profiles:           profiles,
		assignments:        assignments,
		quizzes:            quizzes,
		projects:           projects,
		submissions:        submissions,
		quizSubmissions:    quizSubmissions,
		projectSubmissions: projectSubmissions,
		grades:             grades,
		logger:             logger.With().Str("component", "student_feed_service").Logger(),
	}
}

func (s *studentFeedService) Feed(ctx context.Context, studentID uint) (dto.StudentFeedResponse, error) {
	student, err := s.profiles.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentFeedResponse{}, ErrStudentNotFound
		}
		return dto.StudentFeedResponse{}, err
	}

	phase := student.CurrentPhase()

	grades, err := s.grades.ListByStudent(ctx, studentID)
	if err != nil {
		return dto.StudentFeedResponse{}, err
	}
	gradeIndex := indexGrades(grades)

	feed := dto.StudentFeedResponse{
		Assignments: []dto.StudentAssignmentView{},
		Quizzes:     []dto.StudentQuizView{},
		Projects:    []dto.StudentProjectView{},
	}

	if feed.Assignments, err = s.assignmentViews(ctx, phase, studentID, gradeIndex); err != nil {
		return dto.StudentFeedResponse{}, err
	}
	if feed.Quizzes, err = s.quizViews(ctx, phase, studentID, gradeIndex); err != nil {
		return dto.StudentFeedResponse{}, err
	}
	if feed.Projects, err = s.projectViews(ctx, phase, studentID, gradeIndex); err != nil {
		return dto.StudentFeedResponse{}, err
	}

	return feed, nil
}

// gradeIndex keys grades by the submission row they evaluate, per kind.
type gradeIndex struct {
	byAssignmentSubmission map[uint]models.Grade
	byQuizSubmission       map[uint]models.Grade
	byProjectSubmission    map[uint]models.Grade
}

func indexGrades(grades []models.Grade) gradeIndex {
	index := gradeIndex{
		byAssignmentSubmission: make(map[uint]models.Grade),
		byQuizSubmission:       make(map[uint]models.Grade),
		byProjectSubmission:    make(map[uint]models.Grade),
	}
	for _, grade := range grades {
		switch {
		case grade.SubmissionID != nil:
			if _, seen := index.byAssignmentSubmission[*grade.SubmissionID]; !seen {
				index.byAssignmentSubmission[*grade.SubmissionID] = grade
			}
		case grade.QuizSubmissionID != nil:
			if _, seen := index.byQuizSubmission[*grade.QuizSubmissionID]; !seen {
				index.byQuizSubmission[*grade.QuizSubmissionID] = grade
			}
		case grade.ProjectSubmissionID != nil:
			if _, seen := index.byProjectSubmission[*grade.ProjectSubmissionID]; !seen {
				index.byProjectSubmission[*grade.ProjectSubmissionID] = grade
			}
		}
	}
	return index
}

func (s *studentFeedService) assignmentViews(ctx context.Context, phase models.Phase, studentID uint, grades gradeIndex) ([]dto.StudentAssignmentView, error) {
	assignments, err := s.assignments.ListEligible(ctx, phase)
	if err != nil {
		return nil, err
	}

	submissions, err := s.submissions.List(ctx, repository.SubmissionFilter{StudentID: &studentID})
	if err != nil {
		return nil, err
	}
	byAssignment := make(map[uint]models.Submission, len(submissions))
	for _, submission := range submissions {
		if _, seen := byAssignment[submission.AssignmentID]; !seen {
			byAssignment[submission.AssignmentID] = submission
		}
	}

	views := make([]dto.StudentAssignmentView, 0, len(assignments))
	for _, assignment := range assignments {
		view := dto.StudentAssignmentView{Assignment: dto.NewAssignmentResponse(assignment)}
		if submission, ok := byAssignment[assignment.ID]; ok {
			state := submissionState(submission.ID, &submission.GithubURL, &submission.VideoURL, submission.Status, &submission.SubmittedAt)
			if grade, graded := grades.byAssignmentSubmission[submission.ID]; graded {
				lite := dto.NewGradeLite(grade)
				state.Grade = &lite
			}
			view.Submission = state
		}
		views = append(views, view)
	}

	return views, nil
}

func (s *studentFeedService) quizViews(ctx context.Context, phase models.Phase, studentID uint, grades gradeIndex) ([]dto.StudentQuizView, error) {
	quizzes, err := s.quizzes.ListEligible(ctx, phase)
	if err != nil {
		return nil, err
	}

	attempts, err := s.quizSubmissions.List(ctx, repository.QuizSubmissionFilter{StudentID: &studentID})
	if err != nil {
		return nil, err
	}
	byQuiz := make(map[uint]models.QuizSubmission, len(attempts))
	for _, attempt := range attempts {
		if _, seen := byQuiz[attempt.QuizID]; !seen {
			byQuiz[attempt.QuizID] = attempt
		}
	}

	views := make([]dto.StudentQuizView, 0, len(quizzes))
	for _, quiz := range quizzes {
		view := dto.StudentQuizView{Quiz: dto.NewQuizResponse(quiz)}
		if attempt, ok := byQuiz[quiz.ID]; ok {
			state := submissionState(attempt.ID, attempt.GithubURL, attempt.VideoURL, attempt.Status, attempt.SubmittedAt)
			if grade, graded := grades.byQuizSubmission[attempt.ID]; graded {
				lite := dto.NewGradeLite(grade)
				state.Grade = &lite
			}
			view.Submission = state
		}
		views = append(views, view)
	}

	return views, nil
}

func (s *studentFeedService) projectViews(ctx context.Context, phase models.Phase, studentID uint, grades gradeIndex) ([]dto.StudentProjectView, error) {
	projects, err := s.projects.ListEligible(ctx, phase)
	if err != nil {
		return nil, err
	}

	submissions, err := s.projectSubmissions.List(ctx, repository.ProjectSubmissionFilter{StudentID: &studentID})
	if err != nil {
		return nil, err
	}
	byProject := make(map[uint]models.ProjectSubmission, len(submissions))
	for _, submission := range submissions {
		if _, seen := byProject[submission.ProjectID]; !seen {
			byProject[submission.ProjectID] = submission
		}
	}

	views := make([]dto.StudentProjectView, 0, len(projects))
	for _, project := range projects {
		view := dto.StudentProjectView{Project: dto.NewProjectResponse(project)}
		if submission, ok := byProject[project.ID]; ok {
			state := submissionState(submission.ID, &submission.GithubURL, &submission.VideoURL, submission.Status, &submission.SubmittedAt)
			if grade, graded := grades.byProjectSubmission[submission.ID]; graded {
				lite := dto.NewGradeLite(grade)
				state.Grade = &lite
			}
			view.Submission = state
		}
		views = append(views, view)
	}

	return views, nil
}

func submissionState(id uint, githubURL, videoURL *string, status string, submittedAt *time.Time) *dto.StudentSubmissionState {
	state := &dto.StudentSubmissionState{
		ID:        id,
		GithubURL: githubURL,
		VideoURL:  videoURL,
		Status:    status,
	}
	if submittedAt != nil && !submittedAt.IsZero() {
		formatted := submittedAt.UTC().Format(time.RFC3339)
		state.SubmittedAt = &formatted
	}
	return state
}
