package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shreyansh232/wysa/internal"
	"github.com/shreyansh232/wysa/internal/storage"
)

var validate = validator.New()

// Update type labels as sent by the step UI. The server validates the
// shape of each answer but not the order the labels arrive in; sequencing
// is a client policy.
const (
	UpdateTypeSleepStruggle = "Sleep Struggle"
	UpdateTypeBedTime       = "Bed Time"
	UpdateTypeWakeTime      = "Wake Time"
	UpdateTypeSleepHours    = "Sleep Hours"
)

const (
	minSleepHours = 3
	maxSleepHours = 12
)

var (
	ErrAssessmentNotFound  = errors.New("sleep assessment not found")
	ErrAssessmentCompleted = errors.New("assessment already completed")
	ErrInvalidUpdateType   = errors.New("invalid update type")
	ErrInvalidValue        = errors.New("invalid value")
)

type UpdateRequest struct {
	ID                    string  `json:"id" validate:"required"`
	UpdateType            string  `json:"updateType" validate:"required"`
	SleepStruggleDuration *string `json:"sleepStruggleDuration"`
	BedTime               *string `json:"bedTime"`
	WakeTime              *string `json:"wakeTime"`
	SleepHours            *int    `json:"sleepHours"`
}

func ValidateUpdateRequest(req *UpdateRequest) error {
	return validate.Struct(req)
}

type AssessmentService struct {
	assessments storage.AssessmentRepository
	scorer      Scorer
}

func NewAssessmentService(assessments storage.AssessmentRepository, scorer Scorer) *AssessmentService {
	return &AssessmentService{assessments: assessments, scorer: scorer}
}

// Start inserts a fresh IN_PROGRESS record with every answer absent.
// Repeated starts for the same user create independent records.
func (s *AssessmentService) Start(ctx context.Context, userID string) (*internal.Assessment, error) {
	now := time.Now()
	a := &internal.Assessment{
		ID:        uuid.NewString(),
		UserID:    userID,
		Status:    internal.StatusInProgress,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.assessments.CreateAssessment(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Update applies exactly one labeled answer to the record. Completed
// records are frozen; the status never changes here.
func (s *AssessmentService) Update(ctx context.Context, req *UpdateRequest) (*internal.Assessment, error) {
	a, err := s.assessments.GetAssessment(ctx, req.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrAssessmentNotFound
		}
		return nil, err
	}
	if a.Status == internal.StatusCompleted {
		return nil, ErrAssessmentCompleted
	}

	field, value, err := answerFromRequest(req)
	if err != nil {
		return nil, err
	}

	updated, err := s.assessments.SetAnswer(ctx, req.ID, field, value, time.Now())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrAssessmentNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Complete scores the record from whatever answers are present and flips
// it to COMPLETED. Completing twice is rejected rather than recomputed so
// a score never changes after the user has seen it.
func (s *AssessmentService) Complete(ctx context.Context, id string) (*internal.Assessment, error) {
	a, err := s.assessments.GetAssessment(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrAssessmentNotFound
		}
		return nil, err
	}
	if a.Status == internal.StatusCompleted {
		return nil, ErrAssessmentCompleted
	}

	score := clampScore(s.scorer.Score(a))
	completed, err := s.assessments.CompleteAssessment(ctx, id, score, time.Now())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrAssessmentNotFound
		}
		return nil, err
	}
	return completed, nil
}

func answerFromRequest(req *UpdateRequest) (internal.AnswerField, any, error) {
	switch req.UpdateType {
	case UpdateTypeSleepStruggle:
		if req.SleepStruggleDuration == nil {
			return "", nil, fmt.Errorf("%w: sleepStruggleDuration is required", ErrInvalidValue)
		}
		if !internal.SleepStruggleDurations[*req.SleepStruggleDuration] {
			return "", nil, fmt.Errorf("%w: unknown sleepStruggleDuration %q", ErrInvalidValue, *req.SleepStruggleDuration)
		}
		return internal.FieldSleepStruggle, *req.SleepStruggleDuration, nil
	case UpdateTypeBedTime:
		if req.BedTime == nil {
			return "", nil, fmt.Errorf("%w: bedTime is required", ErrInvalidValue)
		}
		if _, err := time.Parse("15:04:05", *req.BedTime); err != nil {
			return "", nil, fmt.Errorf("%w: bedTime must be HH:MM:SS", ErrInvalidValue)
		}
		return internal.FieldBedTime, *req.BedTime, nil
	case UpdateTypeWakeTime:
		if req.WakeTime == nil {
			return "", nil, fmt.Errorf("%w: wakeTime is required", ErrInvalidValue)
		}
		if _, err := time.Parse("15:04:05", *req.WakeTime); err != nil {
			return "", nil, fmt.Errorf("%w: wakeTime must be HH:MM:SS", ErrInvalidValue)
		}
		return internal.FieldWakeTime, *req.WakeTime, nil
	case UpdateTypeSleepHours:
		if req.SleepHours == nil {
			return "", nil, fmt.Errorf("%w: sleepHours is required", ErrInvalidValue)
		}
		if *req.SleepHours < minSleepHours || *req.SleepHours > maxSleepHours {
			return "", nil, fmt.Errorf("%w: sleepHours must be between %d and %d", ErrInvalidValue, minSleepHours, maxSleepHours)
		}
		return internal.FieldSleepHours, *req.SleepHours, nil
	default:
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidUpdateType, req.UpdateType)
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
