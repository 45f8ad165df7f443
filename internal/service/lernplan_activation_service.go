package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tnglf1337/studyhuppy/internal/repository"
)

// LernplanActivationService maintains the invariant that at most one
// Lernplan of a user is active at any time.
type LernplanActivationService interface {
	// SetActiveLernplan deactivates every plan of the user and then
	// activates the given one. Both steps run in a single transaction;
	// activating the already active plan is idempotent. The plan must
	// belong to the user, otherwise ErrLernplanNotFound is returned and
	// the previous activation state is kept.
	SetActiveLernplan(ctx context.Context, lernplanID, username string) error
}

type lernplanActivationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLernplanActivationService creates the LernplanActivationService.
func NewLernplanActivationService(repo *repository.Repository, logger *zap.Logger) LernplanActivationService {
	return &lernplanActivationService{repo: repo, logger: logger}
}

func (s *lernplanActivationService) SetActiveLernplan(ctx context.Context, lernplanID, username string) error {
	if lernplanID == "" {
		return ErrLernplanNotFound
	}

	activated, err := s.repo.Lernplan.ActivateExclusively(ctx, lernplanID, username)
	if err != nil {
		s.logger.Error("activating lernplan failed",
			zap.String("lernplan_id", lernplanID),
			zap.Error(err),
		)
		return fmt.Errorf("activating lernplan %s: %w", lernplanID, err)
	}
	if activated == 0 {
		return ErrLernplanNotFound
	}

	s.logger.Info("lernplan activated",
		zap.String("lernplan_id", lernplanID),
		zap.String("username", username),
	)
	return nil
}
