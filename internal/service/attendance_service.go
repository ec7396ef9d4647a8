package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/edubridge/academy-api/internal/dto"
	"github.com/edubridge/academy-api/internal/models"
	"github.com/edubridge/academy-api/internal/observability"
	"github.com/edubridge/academy-api/internal/repository"
)

// AttendanceService tracks daily attendance. Marking is idempotent per
// (student, date): re-marking overwrites the earlier status instead of
// producing a second row.
type AttendanceService interface {
	Mark(ctx context.Context, payload dto.AttendanceMarkRequest, actor ActivityActor) (dto.AttendanceRecordResponse, error)
	Roster(ctx context.Context, date time.Time) (dto.AttendanceRosterResponse, error)
	StudentHistory(ctx context.Context, studentID uint) (dto.StudentAttendanceResponse, error)
}

type attendanceService struct {
	attendance repository.AttendanceRepository
	profiles   repository.ProfileRepository
	validator  *validator.Validate
	activity   ActivityRecorder
	events     EventPublisher
	logger     zerolog.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(attendance repository.AttendanceRepository, profiles repository.ProfileRepository, validate *validator.Validate, activity ActivityRecorder, events EventPublisher, logger zerolog.Logger) AttendanceService {
	return &attendanceService{
		attendance: attendance,
		profiles:   profiles,
		validator:  validate,
		activity:   activity,
		events:     events,
		logger:     logger.With().Str("component", "attendance_service").Logger(),
	}
}

func (s *attendanceService) Mark(ctx context.Context, payload dto.AttendanceMarkRequest, actor ActivityActor) (dto.AttendanceRecordResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AttendanceRecordResponse{}, err
	}

	student, err := s.profiles.GetByID(ctx, payload.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AttendanceRecordResponse{}, ErrStudentNotFound
		}
		return dto.AttendanceRecordResponse{}, err
	}

	date, err := time.ParseInLocation("2006-01-02", payload.Date, time.UTC)
	if err != nil {
		return dto.AttendanceRecordResponse{}, err
	}

	recordedBy := actor.ID
	record := models.Attendance{
		StudentID:  student.ID,
		Date:       date,
		Status:     payload.Status,
		Notes:      payload.Notes,
		RecordedBy: &recordedBy,
	}

	if err := s.attendance.Upsert(ctx, &record); err != nil {
		return dto.AttendanceRecordResponse{}, err
	}

	observability.AttendanceMarkedTotal().WithLabelValues(payload.Status).Inc()

	s.recordActivity(ctx, actor, record)
	s.publishEvent(ctx, EventAttendanceMarked, map[string]interface{}{
		"student_id": record.StudentID,
		"date":       payload.Date,
		"status":     record.Status,
	})

	return dto.NewAttendanceRecordResponse(record), nil
}

// Roster returns every student paired with their record for the date, present
// or not, so the admin sheet shows unmarked students too.
func (s *attendanceService) Roster(ctx context.Context, date time.Time) (dto.AttendanceRosterResponse, error) {
	students, _, err := s.profiles.ListStudents(ctx, repository.StudentFilter{})
	if err != nil {
		return dto.AttendanceRosterResponse{}, err
	}

	records, err := s.attendance.ListByDate(ctx, date)
	if err != nil {
		return dto.AttendanceRosterResponse{}, err
	}

	byStudent := make(map[uint]models.Attendance, len(records))
	for _, record := range records {
		byStudent[record.StudentID] = record
	}

	entries := make([]dto.AttendanceRosterEntry, 0, len(students))
	for _, student := range students {
		entry := dto.AttendanceRosterEntry{Student: dto.NewStudentLite(student)}
		if record, ok := byStudent[student.ID]; ok {
			response := dto.NewAttendanceRecordResponse(record)
			entry.Record = &response
		}
		entries = append(entries, entry)
	}

	return dto.AttendanceRosterResponse{
		Date:    date.Format("2006-01-02"),
		Entries: entries,
	}, nil
}

func (s *attendanceService) StudentHistory(ctx context.Context, studentID uint) (dto.StudentAttendanceResponse, error) {
	records, err := s.attendance.ListByStudent(ctx, studentID)
	if err != nil {
		return dto.StudentAttendanceResponse{}, err
	}

	responses := make([]dto.AttendanceRecordResponse, 0, len(records))
	summary := dto.AttendanceSummary{}
	for _, record := range records {
		responses = append(responses, dto.NewAttendanceRecordResponse(record))
		summary.Total++
		switch record.Status {
		case models.AttendanceStatusPresent:
			summary.Present++
		case models.AttendanceStatusLate:
			summary.Late++
		case models.AttendanceStatusAbsent:
			summary.Absent++
		}
	}

	if summary.Total > 0 {
		summary.Rate = float64(summary.Present+summary.Late) / float64(summary.Total) * 100
	}

	return dto.StudentAttendanceResponse{
		Records: responses,
		Summary: summary,
	}, nil
}

func (s *attendanceService) recordActivity(ctx context.Context, actor ActivityActor, record models.Attendance) {
	if s.activity == nil {
		return
	}
	entityID := record.StudentID
	_, _ = s.activity.Record(ctx, ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     "attendance.marked",
		EntityType: "attendance",
		EntityID:   &entityID,
		Metadata: map[string]interface{}{
			"date":   record.Date.Format("2006-01-02"),
			"status": record.Status,
		},
	})
}

func (s *attendanceService) publishEvent(ctx context.Context, name string, metadata map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, Event{Name: name, Metadata: metadata}); err != nil {
		s.logger.Warn().Err(err).Str("event", name).Msg("failed to publish event")
	}
}
