package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/edubridge/academy-api/internal/dto"
	"github.com/edubridge/academy-api/internal/models"
	"github.com/edubridge/academy-api/internal/repository"
)

// ErrProjectNotFound indicates the project was not located.
var ErrProjectNotFound = errors.New("project not found")

// ProjectService exposes the administrator project workflows.
type ProjectService interface {
	List(ctx context.Context) ([]dto.ProjectResponse, error)
	Get(ctx context.Context, id uint) (dto.ProjectResponse, error)
	Create(ctx context.Context, payload dto.ProjectCreateRequest, actor ActivityActor) (dto.ProjectResponse, error)
	Update(ctx context.Context, id uint, payload dto.ProjectUpdateRequest, actor ActivityActor) (dto.ProjectResponse, error)
	Delete(ctx context.Context, id uint, actor ActivityActor) error
}

type projectService struct {
	repo      repository.ProjectRepository
	validator *validator.Validate
	activity  ActivityRecorder
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewProjectService constructs the project service.
func NewProjectService(repo repository.ProjectRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) ProjectService {
	return &projectService{
		repo:      repo,
		validator: validate,
		activity:  activity,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger.With().Str("component", "project_service").Logger(),
	}
}

func (s *projectService) List(ctx context.Context) ([]dto.ProjectResponse, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewProjectResponseSlice(projects), nil
}

func (s *projectService) Get(ctx context.Context, id uint) (dto.ProjectResponse, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProjectResponse{}, ErrProjectNotFound
		}
		return dto.ProjectResponse{}, err
	}

	return dto.NewProjectResponse(project), nil
}

func (s *projectService) Create(ctx context.Context, payload dto.ProjectCreateRequest, actor ActivityActor) (dto.ProjectResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProjectResponse{}, err
	}

	dueDate, err := parseTimePtr(payload.DueDate)
	if err != nil {
		return dto.ProjectResponse{}, err
	}

	createdBy := actor.ID
	project := models.Project{
		Title:           strings.TrimSpace(payload.Title),
		Description:     strings.TrimSpace(payload.Description),
		Guidelines:      s.sanitizer.Sanitize(payload.Guidelines),
		TargetPhase:     models.TargetPhase(payload.TargetPhase),
		DueDate:         dueDate,
		IsCollaborative: payload.IsCollaborative,
		CreatedBy:       &createdBy,
	}

	if err := s.repo.Create(ctx, &project); err != nil {
		return dto.ProjectResponse{}, err
	}

	s.recordActivity(ctx, actor, "project.created", project.ID, map[string]interface{}{
		"title":        project.Title,
		"target_phase": string(project.TargetPhase),
	})

	return dto.NewProjectResponse(project), nil
}

func (s *projectService) Update(ctx context.Context, id uint, payload dto.ProjectUpdateRequest, actor ActivityActor) (dto.ProjectResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProjectResponse{}, err
	}

	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProjectResponse{}, ErrProjectNotFound
		}
		return dto.ProjectResponse{}, err
	}

	if payload.Title != nil {
		project.Title = strings.TrimSpace(*payload.Title)
	}
	if payload.Description != nil {
		project.Description = strings.TrimSpace(*payload.Description)
	}
	if payload.Guidelines != nil {
		project.Guidelines = s.sanitizer.Sanitize(*payload.Guidelines)
	}
	if payload.TargetPhase != nil {
		project.TargetPhase = models.TargetPhase(*payload.TargetPhase)
	}
	if payload.DueDate != nil {
		dueDate, err := parseTimePtr(payload.DueDate)
		if err != nil {
			return dto.ProjectResponse{}, err
		}
		project.DueDate = dueDate
	}
	if payload.IsCollaborative != nil {
		project.IsCollaborative = *payload.IsCollaborative
	}

	if err := s.repo.Update(ctx, &project); err != nil {
		return dto.ProjectResponse{}, err
	}

	s.recordActivity(ctx, actor, "project.updated", project.ID, nil)

	return dto.NewProjectResponse(project), nil
}

func (s *projectService) Delete(ctx context.Context, id uint, actor ActivityActor) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return err
	}

	s.recordActivity(ctx, actor, "project.deleted", id, nil)

	return nil
}

func (s *projectService) recordActivity(ctx context.Context, actor ActivityActor, action string, entityID uint, metadata map[string]interface{}) {
	if s.activity == nil {
		return
	}
	_, _ = s.activity.Record(ctx, ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		EntityType: "project",
		EntityID:   &entityID,
		Metadata:   metadata,
	})
}
