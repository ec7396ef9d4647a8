package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edubridge/academy-api/internal/models"
)

// ProjectSubmissionFilter allows narrowing project submission queries.
type ProjectSubmissionFilter struct {
	ProjectID *uint
	StudentID *uint
	Status    *string
}

// ProjectSubmissionRepository defines data operations for project submissions.
type ProjectSubmissionRepository interface {
	List(ctx context.Context, filter ProjectSubmissionFilter) ([]models.ProjectSubmission, error)
	GetByID(ctx context.Context, id uint) (models.ProjectSubmission, error)
	ExistsForStudent(ctx context.Context, projectID, studentID uint) (bool, error)
	Create(ctx context.Context, submission *models.ProjectSubmission) error
}

type projectSubmissionRepository struct {
	db *gorm.DB
}

// NewProjectSubmissionRepository instantiates the repository.
func NewProjectSubmissionRepository(db *gorm.DB) ProjectSubmissionRepository {
	return &projectSubmissionRepository{db: db}
}

func (r *projectSubmissionRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.ProjectSubmission{}).
		Preload("Project").
		Preload("Student")
}

func (r *projectSubmissionRepository) List(ctx context.Context, filter ProjectSubmissionFilter) ([]models.ProjectSubmission, error) {
	query := r.baseQuery(ctx)

	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}

	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var submissions []models.ProjectSubmission
	if err := query.Order("submitted_at DESC").Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *projectSubmissionRepository) GetByID(ctx context.Context, id uint) (models.ProjectSubmission, error) {
	var submission models.ProjectSubmission
	if err := r.baseQuery(ctx).First(&submission, id).Error; err != nil {
		return models.ProjectSubmission{}, err
	}

	return submission, nil
}

func (r *projectSubmissionRepository) ExistsForStudent(ctx context.Context, projectID, studentID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ProjectSubmission{}).
		Where("project_id = ? AND student_id = ?", projectID, studentID).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *projectSubmissionRepository) Create(ctx context.Context, submission *models.ProjectSubmission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}
