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

// ErrQuizNotFound indicates the quiz was not located.
var ErrQuizNotFound = errors.New("quiz not found")

// QuizService exposes the administrator quiz workflows.
type QuizService interface {
	List(ctx context.Context) ([]dto.QuizResponse, error)
	Get(ctx context.Context, id uint) (dto.QuizResponse, error)
	Create(ctx context.Context, payload dto.QuizCreateRequest, actor ActivityActor) (dto.QuizResponse, error)
	Update(ctx context.Context, id uint, payload dto.QuizUpdateRequest, actor ActivityActor) (dto.QuizResponse, error)
	Delete(ctx context.Context, id uint, actor ActivityActor) error
}

type quizService struct {
	repo      repository.QuizRepository
	validator *validator.Validate
	activity  ActivityRecorder
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewQuizService constructs the quiz service.
func NewQuizService(repo repository.QuizRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) QuizService {
	return &quizService{
		repo:      repo,
		validator: validate,
		activity:  activity,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger.With().Str("component", "quiz_service").Logger(),
	}
}

func (s *quizService) List(ctx context.Context) ([]dto.QuizResponse, error) {
	quizzes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewQuizResponseSlice(quizzes), nil
}

func (s *quizService) Get(ctx context.Context, id uint) (dto.QuizResponse, error) {
	quiz, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QuizResponse{}, ErrQuizNotFound
		}
		return dto.QuizResponse{}, err
	}

	return dto.NewQuizResponse(quiz), nil
}

func (s *quizService) Create(ctx context.Context, payload dto.QuizCreateRequest, actor ActivityActor) (dto.QuizResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuizResponse{}, err
	}

	startTime, err := parseTimePtr(payload.StartTime)
	if err != nil {
		return dto.QuizResponse{}, err
	}

	createdBy := actor.ID
	quiz := models.Quiz{
		Title:            strings.TrimSpace(payload.Title),
		Description:      strings.TrimSpace(payload.Description),
		Instructions:     s.sanitizer.Sanitize(payload.Instructions),
		TargetPhase:      models.TargetPhase(payload.TargetPhase),
		TimeLimitMinutes: payload.TimeLimitMinutes,
		StartTime:        startTime,
		CreatedBy:        &createdBy,
	}

	if err := s.repo.Create(ctx, &quiz); err != nil {
		return dto.QuizResponse{}, err
	}

	s.recordActivity(ctx, actor, "quiz.created", quiz.ID, map[string]interface{}{
		"title":        quiz.Title,
		"target_phase": string(quiz.TargetPhase),
	})

	return dto.NewQuizResponse(quiz), nil
}

func (s *quizService) Update(ctx context.Context, id uint, payload dto.QuizUpdateRequest, actor ActivityActor) (dto.QuizResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuizResponse{}, err
	}

	quiz, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.QuizResponse{}, ErrQuizNotFound
		}
		return dto.QuizResponse{}, err
	}

	if payload.Title != nil {
		quiz.Title = strings.TrimSpace(*payload.Title)
	}
	if payload.Description != nil {
		quiz.Description = strings.TrimSpace(*payload.Description)
	}
	if payload.Instructions != nil {
		quiz.Instructions = s.sanitizer.Sanitize(*payload.Instructions)
	}
	if payload.TargetPhase != nil {
		quiz.TargetPhase = models.TargetPhase(*payload.TargetPhase)
	}
	if payload.TimeLimitMinutes != nil {
		quiz.TimeLimitMinutes = *payload.TimeLimitMinutes
	}
	if payload.StartTime != nil {
		startTime, err := parseTimePtr(payload.StartTime)
		if err != nil {
			return dto.QuizResponse{}, err
		}
		quiz.StartTime = startTime
	}

	if err := s.repo.Update(ctx, &quiz); err != nil {
		return dto.QuizResponse{}, err
	}

	s.recordActivity(ctx, actor, "quiz.updated", quiz.ID, nil)

	return dto.NewQuizResponse(quiz), nil
}

func (s *quizService) Delete(ctx context.Context, id uint, actor ActivityActor) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuizNotFound
		}
		return err
	}

	s.recordActivity(ctx, actor, "quiz.deleted", id, nil)

	return nil
}

func (s *quizService) recordActivity(ctx context.Context, actor ActivityActor, action string, entityID uint, metadata map[string]interface{}) {
	if s.activity == nil {
		return
	}
	_, _ = s.activity.Record(ctx, ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		EntityType: "quiz",
		EntityID:   &entityID,
		Metadata:   metadata,
	})
}
