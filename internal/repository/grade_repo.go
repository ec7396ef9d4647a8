package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/edubridge/academy-api/internal/models"
)

// ErrGradeTargetMissing indicates a grade without a submission reference.
var ErrGradeTargetMissing = errors.New("grade references no submission")

// GradeFilter narrows grade queries.
type GradeFilter struct {
	StudentID *uint
	GradedBy  *uint
}

// GradeRepository persists evaluations. Record writes the grade row and the
// parent submission's status flip as a single transaction, so a submission can
// never end up graded-in-record but pending-in-status.
type GradeRepository interface {
	Record(ctx context.Context, grade *models.Grade) error
	List(ctx context.Context, filter GradeFilter) ([]models.Grade, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.Grade, error)
}

type gradeRepository struct {
	db *gorm.DB
}

// NewGradeRepository instantiates the repository.
func NewGradeRepository(db *gorm.DB) GradeRepository {
	return &gradeRepository{db: db}
}

func (r *gradeRepository) Record(ctx context.Context, grade *models.Grade) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(grade).Error; err != nil {
			return err
		}

		switch {
		case grade.SubmissionID != nil:
			return tx.Model(&models.Submission{}).
				Where("id = ?", *grade.SubmissionID).
				Update("status", models.SubmissionStatusGraded).Error
		case grade.QuizSubmissionID != nil:
			return tx.Model(&models.QuizSubmission{}).
				Where("id = ?", *grade.QuizSubmissionID).
				Update("status", models.QuizSubmissionStatusGraded).Error
		case grade.ProjectSubmissionID != nil:
			return tx.Model(&models.ProjectSubmission{}).
				Where("id = ?", *grade.ProjectSubmissionID).
				Update("status", models.SubmissionStatusGraded).Error
		default:
			return ErrGradeTargetMissing
		}
	})
}

func (r *gradeRepository) List(ctx context.Context, filter GradeFilter) ([]models.Grade, error) {
	query := r.db.WithContext(ctx).Model(&models.Grade{})

	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}

	if filter.GradedBy != nil {
		query = query.Where("graded_by = ?", *filter.GradedBy)
	}

	var grades []models.Grade
	if err := query.Order("graded_at DESC").Find(&grades).Error; err != nil {
		return nil, err
	}

	return grades, nil
}

func (r *gradeRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Grade, error) {
	return r.List(ctx, GradeFilter{StudentID: &studentID})
}
