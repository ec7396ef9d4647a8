package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/edubridge/academy-api/internal/dto"
	"github.com/edubridge/academy-api/internal/models"
	"github.com/edubridge/academy-api/internal/repository"
)

// StudentDashboardService aggregates a student's progress across assignments,
// quizzes, projects and attendance. Results are cached in Redis per student;
// the cache is best-effort and the aggregate is rebuilt on a miss.
type StudentDashboardService interface {
	GetDashboard(ctx context.Context, studentID uint) (dto.StudentDashboardResponse, error)
}

type studentDashboardService struct {
	profiles           repository.ProfileRepository
	assignments        repository.AssignmentRepository
	quizzes            repository.QuizRepository
	projects           repository.ProjectRepository
	submissions        repository.SubmissionRepository
	quizSubmissions    repository.QuizSubmissionRepository
	projectSubmissions repository.ProjectSubmissionRepository
	grades             repository.GradeRepository
	attendance         repository.AttendanceRepository
	cache              *redis.Client
	cacheTTL           time.Duration
	logger             zerolog.Logger
	now                func() time.Time
}

// NewStudentDashboardService builds the dashboard aggregator.
func NewStudentDashboardService(profiles repository.ProfileRepository, assignments repository.AssignmentRepository, quizzes repository.QuizRepository, projects repository.ProjectRepository, submissions repository.SubmissionRepository, quizSubmissions repository.QuizSubmissionRepository, projectSubmissions repository.ProjectSubmissionRepository, grades repository.GradeRepository, attendance repository.AttendanceRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) StudentDashboardService {
	return &studentDashboardService{
		profiles:           profiles,
		assignments:        assignments,
		quizzes:            quizzes,
		projects:           projects,
		submissions:        submissions,
		quizSubmissions:    quizSubmissions,
		projectSubmissions: projectSubmissions,
		grades:             grades,
		attendance:         attendance,
		cache:              cache,
		cacheTTL:           ttl,
		logger:             logger.With().Str("component", "student_dashboard_service").Logger(),
		now:                time.Now,
	}
}

func (s *studentDashboardService) GetDashboard(ctx context.Context, studentID uint) (dto.StudentDashboardResponse, error) {
	cacheKey := fmt.Sprintf("dashboard:student:%d", studentID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.StudentDashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("student_id", studentID).Msg("dashboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	response, err := s.buildResponse(ctx, studentID)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	if s.cache != nil {
		payload, err := json.Marshal(response)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return response, nil
}

func (s *studentDashboardService) buildResponse(ctx context.Context, studentID uint) (dto.StudentDashboardResponse, error) {
	student, err := s.profiles.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentDashboardResponse{}, ErrStudentNotFound
		}
		return dto.StudentDashboardResponse{}, err
	}
	phase := student.CurrentPhase()

	assignments, err := s.assignments.ListEligible(ctx, phase)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}
	quizzes, err := s.quizzes.ListEligible(ctx, phase)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}
	projects, err := s.projects.ListEligible(ctx, phase)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	submissions, err := s.submissions.List(ctx, repository.SubmissionFilter{StudentID: &studentID})
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}
	attempts, err := s.quizSubmissions.List(ctx, repository.QuizSubmissionFilter{StudentID: &studentID})
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}
	projectSubmissions, err := s.projectSubmissions.List(ctx, repository.ProjectSubmissionFilter{StudentID: &studentID})
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	grades, err := s.grades.ListByStudent(ctx, studentID)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	attendanceRecords, err := s.attendance.ListByStudent(ctx, studentID)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	now := s.now()
	summary := dto.DashboardSummary{
		TotalItems: len(assignments) + len(quizzes) + len(projects),
	}

	submittedAssignments := make(map[uint]models.Submission, len(submissions))
	for _, submission := range submissions {
		if _, seen := submittedAssignments[submission.AssignmentID]; !seen {
			submittedAssignments[submission.AssignmentID] = submission
		}
	}
	for _, assignment := range assignments {
		submission, submitted := submittedAssignments[assignment.ID]
		switch {
		case submitted && submission.IsGraded():
			summary.Submitted++
			summary.Graded++
		case submitted:
			summary.Submitted++
			summary.Pending++
		default:
			summary.Pending++
			if assignment.IsPastDue(now) {
				summary.Overdue++
			}
		}
	}

	attemptedQuizzes := make(map[uint]models.QuizSubmission, len(attempts))
	for _, attempt := range attempts {
		if _, seen := attemptedQuizzes[attempt.QuizID]; !seen {
			attemptedQuizzes[attempt.QuizID] = attempt
		}
	}
	for _, quiz := range quizzes {
		attempt, attempted := attemptedQuizzes[quiz.ID]
		switch {
		case attempted && attempt.IsGraded():
			summary.Submitted++
			summary.Graded++
		case attempted && attempt.Status == models.QuizSubmissionStatusSubmitted:
			summary.Submitted++
			summary.Pending++
		default:
			summary.Pending++
		}
	}

	submittedProjects := make(map[uint]models.ProjectSubmission, len(projectSubmissions))
	for _, submission := range projectSubmissions {
		if _, seen := submittedProjects[submission.ProjectID]; !seen {
			submittedProjects[submission.ProjectID] = submission
		}
	}
	for _, project := range projects {
		submission, submitted := submittedProjects[project.ID]
		switch {
		case submitted && submission.IsGraded():
			summary.Submitted++
			summary.Graded++
		case submitted:
			summary.Submitted++
			summary.Pending++
		default:
			summary.Pending++
			if project.IsPastDue(now) {
				summary.Overdue++
			}
		}
	}

	if len(grades) > 0 {
		var total float64
		for _, grade := range grades {
			total += grade.Percentage()
		}
		summary.AveragePercentage = total / float64(len(grades))
	}

	if len(attendanceRecords) > 0 {
		attended := 0
		for _, record := range attendanceRecords {
			if record.CountsAsAttended() {
				attended++
			}
		}
		summary.AttendanceRate = float64(attended) / float64(len(attendanceRecords)) * 100
	}

	return dto.StudentDashboardResponse{
		Summary:     summary,
		Assignments: len(assignments),
		Quizzes:     len(quizzes),
		Projects:    len(projects),
	}, nil
}
