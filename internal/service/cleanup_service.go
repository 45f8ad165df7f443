package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tnglf1337/studyhuppy/internal/repository"
)

// CleanupService removes dangling cross-aggregate references after a
// deletion. The aggregates only hold by-id references to each other, so
// nothing breaks structurally when a target disappears; these two
// operations are what keeps the references consistent procedurally.
//
// Blank ids or empty payloads are no-ops that report "nothing changed";
// they never produce an error.
type CleanupService interface {
	// RemoveModulFromBlocks strips every Block referencing modulID from
	// every Session of the user and persists each visited Session, even
	// when it was unchanged (idempotent overwrite). All sessions of the
	// user must be visited: the only available index is the username.
	RemoveModulFromBlocks(ctx context.Context, modulID, username string) (bool, error)
	// RemoveSessionFromLernplaene strips every Tag referencing sessionID
	// from every Lernplan of the user. A plan is only persisted when at
	// least one Tag was actually removed.
	RemoveSessionFromLernplaene(ctx context.Context, sessionID, username string) (bool, error)
}

type cleanupService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCleanupService creates the CleanupService.
func NewCleanupService(repo *repository.Repository, logger *zap.Logger) CleanupService {
	return &cleanupService{repo: repo, logger: logger}
}

func (s *cleanupService) RemoveModulFromBlocks(ctx context.Context, modulID, username string) (bool, error) {
	if modulID == "" || username == "" {
		return false, nil
	}

	sessions, err := s.repo.Session.ListByUsername(ctx, username)
	if err != nil {
		return false, fmt.Errorf("listing sessions of %q: %w", username, err)
	}

	changed := false
	for i := range sessions {
		session := &sessions[i]
		filtered := session.Blocks[:0]
		for _, block := range session.Blocks {
			if block.ModulID != modulID {
				filtered = append(filtered, block)
			}
		}
		if len(filtered) < len(session.Blocks) {
			changed = true
		}
		session.Blocks = filtered
		if err := s.repo.Session.Save(ctx, session); err != nil {
			return changed, fmt.Errorf("saving session %s: %w", session.FachID, err)
		}
	}

	if changed {
		s.logger.Info("removed modul from session blocks",
			zap.String("modul_id", modulID),
			zap.String("username", username),
		)
	}
	return changed, nil
}

func (s *cleanupService) RemoveSessionFromLernplaene(ctx context.Context, sessionID, username string) (bool, error) {
	if sessionID == "" || username == "" {
		return false, nil
	}

	lernplaene, err := s.repo.Lernplan.ListByUsername(ctx, username)
	if err != nil {
		return false, fmt.Errorf("listing lernplaene of %q: %w", username, err)
	}

	changed := false
	for i := range lernplaene {
		lernplan := &lernplaene[i]
		filtered := lernplan.Tage[:0]
		removed := false
		for _, tag := range lernplan.Tage {
			if tag.ReferencesSession(sessionID) {
				removed = true
				continue
			}
			filtered = append(filtered, tag)
		}
		if !removed {
			continue
		}
		lernplan.Tage = filtered
		if err := s.repo.Lernplan.Save(ctx, lernplan); err != nil {
			return changed, fmt.Errorf("saving lernplan %s: %w", lernplan.FachID, err)
		}
		changed = true
	}

	if changed {
		s.logger.Info("removed session from lernplan tage",
			zap.String("session_id", sessionID),
			zap.String("username", username),
		)
	}
	return changed, nil
}
