package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/edubridge/academy-api/internal/models"
)

// AttendanceRepository persists daily attendance records. Upsert is keyed on
// the (student_id, date) unique index, replacing the racy read-then-write a
// naive implementation would use.
type AttendanceRepository interface {
	Upsert(ctx context.Context, record *models.Attendance) error
	ListByDate(ctx context.Context, date time.Time) ([]models.Attendance, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.Attendance, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository instantiates the repository.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Upsert(ctx context.Context, record *models.Attendance) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "notes", "recorded_by", "updated_at"}),
	}).Create(record).Error
}

func (r *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]models.Attendance, error) {
	var records []models.Attendance
	if err := r.db.WithContext(ctx).Model(&models.Attendance{}).
		Preload("Student").
		Where("date >= ? AND date < ?", date, date.AddDate(0, 0, 1)).
		Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *attendanceRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Attendance, error) {
	var records []models.Attendance
	if err := r.db.WithContext(ctx).Model(&models.Attendance{}).
		Where("student_id = ?", studentID).
		Order("date DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}
