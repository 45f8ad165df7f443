package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tnglf1337/studyhuppy/config"
	"github.com/tnglf1337/studyhuppy/internal/model"
	"github.com/tnglf1337/studyhuppy/internal/repository"
)

var ErrNotEnoughSecondsLearned = errors.New("learn interval too short, event not recorded")

// ModulEventService records ModulGelerntEvents. The events are append-only
// facts owned by their Modul; DeleteModul purges them through the
// repository, never through this service.
type ModulEventService interface {
	// SaveEvent records that the user learned the Modul for the given
	// seconds today. Intervals below the configured minimum are rejected
	// with ErrNotEnoughSecondsLearned.
	SaveEvent(ctx context.Context, modulID, username string, secondsLearned int) error
	FindAllByUsername(ctx context.Context, username string) ([]model.ModulGelerntEvent, error)
}

type modulEventService struct {
	cfg    *config.TrackConfig
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewModulEventService creates the ModulEventService.
func NewModulEventService(cfg *config.TrackConfig, repo *repository.Repository, logger *zap.Logger) ModulEventService {
	return &modulEventService{cfg: cfg, repo: repo, logger: logger, now: time.Now}
}

func (s *modulEventService) SaveEvent(ctx context.Context, modulID, username string, secondsLearned int) error {
	if secondsLearned < s.cfg.MinLearnSeconds {
		return ErrNotEnoughSecondsLearned
	}

	event := &model.ModulGelerntEvent{
		EventID:        uuid.NewString(),
		ModulID:        modulID,
		Username:       username,
		SecondsLearned: secondsLearned,
		DateGelernt:    s.now().Truncate(24 * time.Hour),
	}
	if err := s.repo.ModulEvent.Save(ctx, event); err != nil {
		return err
	}

	s.logger.Info("saved modul gelernt event",
		zap.String("modul_id", modulID),
		zap.Int("seconds", secondsLearned),
	)
	return nil
}

func (s *modulEventService) FindAllByUsername(ctx context.Context, username string) ([]model.ModulGelerntEvent, error) {
	return s.repo.ModulEvent.ListByUsername(ctx, username)
}
