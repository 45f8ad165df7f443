package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tnglf1337/studyhuppy/internal/dto"
	"github.com/tnglf1337/studyhuppy/internal/model"
	"github.com/tnglf1337/studyhuppy/internal/repository"
)

var ErrInvalidBewertung = errors.New("bewertung must be between 0 and 10")

// SessionEventService records SessionBeendetEvents, the completion facts
// of session runs.
type SessionEventService interface {
	SaveSessionBeendetEvent(ctx context.Context, req *dto.SessionBeendetRequest, username string) error
	FindAllByUsername(ctx context.Context, username string) ([]model.SessionBeendetEvent, error)
}

type sessionEventService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewSessionEventService creates the SessionEventService.
func NewSessionEventService(repo *repository.Repository, logger *zap.Logger) SessionEventService {
	return &sessionEventService{repo: repo, logger: logger, now: time.Now}
}

func (s *sessionEventService) SaveSessionBeendetEvent(ctx context.Context, req *dto.SessionBeendetRequest, username string) error {
	for _, b := range []int{req.Konzentration, req.Produktivitaet, req.Schwierigkeit} {
		if b < 0 || b > 10 {
			return ErrInvalidBewertung
		}
	}

	beendetAt := req.BeendetAt
	if beendetAt.IsZero() {
		beendetAt = s.now()
	}

	event := &model.SessionBeendetEvent{
		EventID:        uuid.NewString(),
		SessionID:      req.SessionID,
		Username:       username,
		BeendetAt:      beendetAt,
		Konzentration:  req.Konzentration,
		Produktivitaet: req.Produktivitaet,
		Schwierigkeit:  req.Schwierigkeit,
	}
	if err := s.repo.SessionEvent.Save(ctx, event); err != nil {
		return err
	}

	s.logger.Info("saved session beendet event", zap.String("session_id", req.SessionID))
	return nil
}

func (s *sessionEventService) FindAllByUsername(ctx context.Context, username string) ([]model.SessionBeendetEvent, error) {
	return s.repo.SessionEvent.ListByUsername(ctx, username)
}
