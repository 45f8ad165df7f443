package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tnglf1337/studyhuppy/internal/dto"
	"github.com/tnglf1337/studyhuppy/internal/model"
	"github.com/tnglf1337/studyhuppy/internal/repository"
)

var ErrSessionNotFound = errors.New("session does not exist")

// SessionService is the application service for the Session aggregate.
type SessionService interface {
	CreateSession(ctx context.Context, req *dto.CreateSessionRequest, username string) (*model.Session, error)
	// SaveEditedSession replaces titel, beschreibung and the block list
	// of the session wholesale.
	SaveEditedSession(ctx context.Context, req *dto.EditSessionRequest) error
	GetSessionByFachID(ctx context.Context, fachID string) (*model.Session, error)
	GetSessionsByUsername(ctx context.Context, username string) ([]model.Session, error)
	// GetSessionInfos returns the compact listing used when assigning
	// sessions to Lernplan days.
	GetSessionInfos(ctx context.Context, username string) ([]dto.SessionInfo, error)

	// DeleteSession deletes the Session and purges its references from
	// every Lernplan of the user, plus its completion events. Deleting a
	// non-existent id is not an error; the reference purge runs
	// regardless, so a dangling id can be repaired by calling this
	// again. Between the row deletion and the purge there is a window in
	// which a Lernplan still references the gone Session; readers of the
	// weekly overview tolerate that.
	DeleteSession(ctx context.Context, fachID, username string) error
}

type sessionService struct {
	repo    *repository.Repository
	cleanup CleanupService
	logger  *zap.Logger
}

// NewSessionService creates the SessionService.
func NewSessionService(repo *repository.Repository, cleanup CleanupService, logger *zap.Logger) SessionService {
	return &sessionService{repo: repo, cleanup: cleanup, logger: logger}
}

func blocksFromRequests(reqs []dto.BlockRequest) []model.Block {
	blocks := make([]model.Block, 0, len(reqs))
	for i, b := range reqs {
		blocks = append(blocks, model.Block{
			BlockID:           uuid.NewString(),
			ModulID:           b.ModulID,
			LernzeitSeconds:   b.LernzeitSeconds,
			PausenzeitSeconds: b.PausenzeitSeconds,
			Position:          i,
		})
	}
	return blocks
}

func (s *sessionService) CreateSession(ctx context.Context, req *dto.CreateSessionRequest, username string) (*model.Session, error) {
	session := &model.Session{
		FachID:       uuid.NewString(),
		Username:     username,
		Titel:        req.Titel,
		Beschreibung: req.Beschreibung,
		Blocks:       blocksFromRequests(req.Blocks),
	}
	if err := s.repo.Session.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	s.logger.Info("saved new session",
		zap.String("fach_id", session.FachID),
		zap.String("titel", session.Titel),
	)
	return session, nil
}

func (s *sessionService) SaveEditedSession(ctx context.Context, req *dto.EditSessionRequest) error {
	session, err := s.GetSessionByFachID(ctx, req.FachID)
	if err != nil {
		return err
	}
	session.Titel = req.Titel
	session.Beschreibung = req.Beschreibung
	session.Blocks = blocksFromRequests(req.Blocks)
	return s.repo.Session.Save(ctx, session)
}

func (s *sessionService) GetSessionByFachID(ctx context.Context, fachID string) (*model.Session, error) {
	session, err := s.repo.Session.GetByFachID(ctx, fachID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

func (s *sessionService) GetSessionsByUsername(ctx context.Context, username string) ([]model.Session, error) {
	return s.repo.Session.ListByUsername(ctx, username)
}

func (s *sessionService) GetSessionInfos(ctx context.Context, username string) ([]dto.SessionInfo, error) {
	sessions, err := s.repo.Session.ListByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	infos := make([]dto.SessionInfo, 0, len(sessions))
	for i := range sessions {
		infos = append(infos, dto.SessionInfo{
			FachID:    sessions[i].FachID,
			Titel:     sessions[i].Titel,
			TotalZeit: sessions[i].TotalZeitSeconds(),
		})
	}
	return infos, nil
}

func (s *sessionService) DeleteSession(ctx context.Context, fachID, username string) error {
	rows, err := s.repo.Session.DeleteByFachID(ctx, fachID)
	if err != nil {
		return fmt.Errorf("deleting session %s: %w", fachID, err)
	}

	// The purge runs even when the row was already gone: redelivery or a
	// repeated call then still repairs dangling references.
	if _, err := s.cleanup.RemoveSessionFromLernplaene(ctx, fachID, username); err != nil {
		s.logger.Error("session deleted but lernplan cleanup failed",
			zap.String("fach_id", fachID),
			zap.Error(err),
		)
		return fmt.Errorf("cleaning up lernplaene for session %s: %w", fachID, err)
	}
	if _, err := s.repo.SessionEvent.DeleteAllBySessionID(ctx, fachID); err != nil {
		s.logger.Error("session deleted but event cleanup failed",
			zap.String("fach_id", fachID),
			zap.Error(err),
		)
		return fmt.Errorf("cleaning up events of session %s: %w", fachID, err)
	}

	if rows > 0 {
		s.logger.Warn("deleted session", zap.String("fach_id", fachID))
	}
	return nil
}
