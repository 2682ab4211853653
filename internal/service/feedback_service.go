package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"outfit-planner/internal/domain"
	"outfit-planner/internal/repository"
)

var ErrInvalidFeedback = errors.New("invalid feedback")

// FeedbackInput es el cuerpo de POST /api/feedback.
type FeedbackInput struct {
	OutfitID int64
	Worn     *bool
	Rating   *int
	Comments *string
}

type outfitChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// FeedbackService registra la reaccion del usuario a un outfit.
type FeedbackService struct {
	logger   *zap.Logger
	feedback repository.FeedbackRepository
	outfits  outfitChecker
}

func NewFeedbackService(logger *zap.Logger, feedback repository.FeedbackRepository, outfits outfitChecker) *FeedbackService {
	return &FeedbackService{logger: logger, feedback: feedback, outfits: outfits}
}

func (s *FeedbackService) Create(ctx context.Context, input FeedbackInput) (domain.Feedback, error) {
	if input.OutfitID <= 0 {
		return domain.Feedback{}, &ValidationError{Field: "outfitId", Message: "Required", kind: ErrInvalidFeedback}
	}
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		return domain.Feedback{}, &ValidationError{Field: "rating", Message: "Must be between 1 and 5", kind: ErrInvalidFeedback}
	}
	if err := s.ensureOutfit(ctx, input.OutfitID); err != nil {
		return domain.Feedback{}, err
	}

	fb := domain.Feedback{OutfitID: input.OutfitID, Worn: true, Rating: input.Rating}
	if input.Worn != nil {
		fb.Worn = *input.Worn
	}
	if input.Comments != nil {
		if comments := strings.TrimSpace(*input.Comments); comments != "" {
			fb.Comments = &comments
		}
	}

	created, err := s.feedback.Create(ctx, fb)
	if err != nil {
		s.logger.Error("persist feedback failed", zap.Int64("outfit_id", input.OutfitID), zap.Error(err))
		return domain.Feedback{}, fmt.Errorf("create feedback: %w", err)
	}
	return created, nil
}

func (s *FeedbackService) ListByOutfit(ctx context.Context, outfitID int64) ([]domain.Feedback, error) {
	if err := s.ensureOutfit(ctx, outfitID); err != nil {
		return nil, err
	}
	items, err := s.feedback.ListByOutfitID(ctx, outfitID)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return items, nil
}

func (s *FeedbackService) ensureOutfit(ctx context.Context, outfitID int64) error {
	ok, err := s.outfits.Exists(ctx, outfitID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOutfitNotFound
	}
	return nil
}
