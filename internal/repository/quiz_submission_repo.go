package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edubridge/academy-api/internal/models"
)

// QuizSubmissionFilter allows narrowing quiz attempt queries.
type QuizSubmissionFilter struct {
	QuizID    *uint
	StudentID *uint
	Status    *string
}

// QuizSubmissionRepository defines data operations for quiz attempts.
type QuizSubmissionRepository interface {
	List(ctx context.Context, filter QuizSubmissionFilter) ([]models.QuizSubmission, error)
	GetByID(ctx context.Context, id uint) (models.QuizSubmission, error)
	GetByQuizAndStudent(ctx context.Context, quizID, studentID uint) (models.QuizSubmission, error)
	Create(ctx context.Context, submission *models.QuizSubmission) error
	Update(ctx context.Context, submission *models.QuizSubmission) error
}

type quizSubmissionRepository struct {
	db *gorm.DB
}

// NewQuizSubmissionRepository instantiates the repository.
func NewQuizSubmissionRepository(db *gorm.DB) QuizSubmissionRepository {
	return &quizSubmissionRepository{db: db}
}

func (r *quizSubmissionRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.QuizSubmission{}).
		Preload("Quiz").
		Preload("Student")
}

func (r *quizSubmissionRepository) List(ctx context.Context, filter QuizSubmissionFilter) ([]models.QuizSubmission, error) {
	query := r.baseQuery(ctx)

	if filter.QuizID != nil {
		query = query.Where("quiz_id = ?", *filter.QuizID)
	}

	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var submissions []models.QuizSubmission
	if err := query.Order("started_at DESC").Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *quizSubmissionRepository) GetByID(ctx context.Context, id uint) (models.QuizSubmission, error) {
	var submission models.QuizSubmission
	if err := r.baseQuery(ctx).First(&submission, id).Error; err != nil {
		return models.QuizSubmission{}, err
	}

	return submission, nil
}

func (r *quizSubmissionRepository) GetByQuizAndStudent(ctx context.Context, quizID, studentID uint) (models.QuizSubmission, error) {
	var submission models.QuizSubmission
	if err := r.baseQuery(ctx).
		Where("quiz_id = ? AND student_id = ?", quizID, studentID).
		First(&submission).Error; err != nil {
		return models.QuizSubmission{}, err
	}

	return submission, nil
}

func (r *quizSubmissionRepository) Create(ctx context.Context, submission *models.QuizSubmission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *quizSubmissionRepository) Update(ctx context.Context, submission *models.QuizSubmission) error {
	return r.db.WithContext(ctx).Save(submission).Error
}
