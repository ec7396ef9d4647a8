package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/edubridge/academy-api/internal/models"
)

// StudentFilter narrows student listings from the admin panel.
type StudentFilter struct {
	Search   string
	Phase    *models.Phase
	Page     int
	PageSize int
}

// ProfileRepository defines persistence operations for portal accounts.
type ProfileRepository interface {
	ListStudents(ctx context.Context, filter StudentFilter) ([]models.Profile, int64, error)
	GetByID(ctx context.Context, id uint) (models.Profile, error)
	GetByEmail(ctx context.Context, email string) (models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Profile, error)
	Delete(ctx context.Context, id uint) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository instantiates a GORM-backed repository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) ListStudents(ctx context.Context, filter StudentFilter) ([]models.Profile, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Profile{}).
		Where("role = ?", models.RoleStudent)

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(strings.TrimSpace(filter.Search)) + "%"
		query = query.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}

	if filter.Phase != nil {
		query = query.Where("phase = ?", *filter.Phase)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var students []models.Profile
	if err := query.Order("full_name ASC").Find(&students).Error; err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

func (r *profileRepository) GetByID(ctx context.Context, id uint) (models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		return models.Profile{}, err
	}

	return profile, nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&profile).Error; err != nil {
		return models.Profile{}, err
	}

	return profile, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Profile, error) {
	result := r.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return models.Profile{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Profile{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *profileRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Profile{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
