package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/edubridge/academy-api/internal/dto"
	"github.com/edubridge/academy-api/internal/models"
	"github.com/edubridge/academy-api/internal/repository"
)

// ErrStudentNotFound indicates the student was not located.
var ErrStudentNotFound = errors.New("student not found")

// ErrEmailTaken indicates an account with this email already exists.
var ErrEmailTaken = errors.New("email already registered")

// StudentAdminService covers the administrator's student management flows:
// provisioning accounts, reassigning phases and removing students.
type StudentAdminService interface {
	List(ctx context.Context, req dto.StudentListRequest) (dto.StudentListResponse, error)
	Provision(ctx context.Context, payload dto.StudentCreateRequest, actor ActivityActor) (dto.ProfileResponse, error)
	Update(ctx context.Context, id uint, payload dto.StudentUpdateRequest, actor ActivityActor) (dto.ProfileResponse, error)
	Delete(ctx context.Context, id uint, actor ActivityActor) error
}

type studentAdminService struct {
	profiles   repository.ProfileRepository
	validator  *validator.Validate
	activity   ActivityRecorder
	events     EventPublisher
	bcryptCost int
	logger     zerolog.Logger
}

// NewStudentAdminService constructs the student management service.
func NewStudentAdminService(profiles repository.ProfileRepository, validate *validator.Validate, activity ActivityRecorder, events EventPublisher, logger zerolog.Logger) StudentAdminService {
	return &studentAdminService{
		profiles:   profiles,
		validator:  validate,
		activity:   activity,
		events:     events,
		bcryptCost: bcrypt.DefaultCost,
		logger:     logger.With().Str("component", "student_admin_service").Logger(),
	}
}

func (s *studentAdminService) List(ctx context.Context, req dto.StudentListRequest) (dto.StudentListResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.StudentListResponse{}, err
	}

	filter := repository.StudentFilter{
		Search:   strings.TrimSpace(req.Search),
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.Phase != "" {
		phase := models.Phase(req.Phase)
		filter.Phase = &phase
	}

	students, total, err := s.profiles.ListStudents(ctx, filter)
	if err != nil {
		return dto.StudentListResponse{}, err
	}

	items := make([]dto.ProfileResponse, 0, len(students))
	for _, student := range students {
		items = append(items, dto.NewProfileResponse(student))
	}

	pagination := dto.PaginationMeta{
		Page:       maxInt(req.Page, 1),
		PageSize:   req.PageSize,
		TotalItems: total,
	}
	if req.PageSize > 0 {
		pagination.TotalPages = int(math.Ceil(float64(total) / float64(req.PageSize)))
	} else {
		pagination.TotalPages = 1
	}

	return dto.StudentListResponse{Items: items, Pagination: pagination}, nil
}

// Provision creates the auth identity and the profile as one row, so a student
// can never end up with credentials but no profile.
func (s *studentAdminService) Provision(ctx context.Context, payload dto.StudentCreateRequest, actor ActivityActor) (dto.ProfileResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProfileResponse{}, err
	}

	if _, err := s.profiles.GetByEmail(ctx, payload.Email); err == nil {
		return dto.ProfileResponse{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ProfileResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), s.bcryptCost)
	if err != nil {
		return dto.ProfileResponse{}, err
	}

	phase := models.Phase(payload.Phase)
	profile := models.Profile{
		Email:        strings.ToLower(strings.TrimSpace(payload.Email)),
		FullName:     strings.TrimSpace(payload.FullName),
		Role:         models.RoleStudent,
		Phase:        &phase,
		PasswordHash: string(hash),
	}

	if err := s.profiles.Create(ctx, &profile); err != nil {
		return dto.ProfileResponse{}, err
	}

	s.recordActivity(ctx, actor, "student.provisioned", profile.ID, map[string]interface{}{
		"email": profile.Email,
		"phase": string(phase),
	})
	s.publishEvent(ctx, EventStudentProvisioned, map[string]interface{}{
		"student_id": profile.ID,
		"phase":      string(phase),
	})

	return dto.NewProfileResponse(profile), nil
}

func (s *studentAdminService) Update(ctx context.Context, id uint, payload dto.StudentUpdateRequest, actor ActivityActor) (dto.ProfileResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProfileResponse{}, err
	}

	updates := make(map[string]interface{})
	if payload.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*payload.FullName)
	}
	if payload.Phase != nil {
		updates["phase"] = *payload.Phase
	}

	if len(updates) == 0 {
		profile, err := s.profiles.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.ProfileResponse{}, ErrStudentNotFound
			}
			return dto.ProfileResponse{}, err
		}
		return dto.NewProfileResponse(profile), nil
	}

	profile, err := s.profiles.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProfileResponse{}, ErrStudentNotFound
		}
		return dto.ProfileResponse{}, err
	}

	s.recordActivity(ctx, actor, "student.updated", profile.ID, map[string]interface{}{
		"fields": updateKeys(updates),
	})

	return dto.NewProfileResponse(profile), nil
}

func (s *studentAdminService) Delete(ctx context.Context, id uint, actor ActivityActor) error {
	if err := s.profiles.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}

	s.recordActivity(ctx, actor, "student.deleted", id, nil)

	return nil
}

func (s *studentAdminService) recordActivity(ctx context.Context, actor ActivityActor, action string, entityID uint, metadata map[string]interface{}) {
	if s.activity == nil {
		return
	}
	_, _ = s.activity.Record(ctx, ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		EntityType: "student",
		EntityID:   &entityID,
		Metadata:   metadata,
	})
}

func (s *studentAdminService) publishEvent(ctx context.Context, name string, metadata map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, Event{Name: name, Metadata: metadata}); err != nil {
		s.logger.Warn().Err(err).Str("event", name).Msg("failed to publish event")
	}
}

func updateKeys(updates map[string]interface{}) []string {
	keys := make([]string, 0, len(updates))
	for key := range updates {
		keys = append(keys, key)
	}
	return keys
}
