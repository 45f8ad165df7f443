package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tnglf1337/studyhuppy/internal/repository"
)

// UserDeletionService removes every aggregate a user owns in reaction to
// the account-deletion event of the identity service.
//
// The cascade runs best-effort, three phases in fixed order: Module
// first (each delete already cleans the user's session blocks and learn
// events), then Lernplaene by raw delete (the whole graph goes, no
// reference purge needed), then Sessions (each delete purges its plan
// references and completion events). The phases do not share a
// transaction and there is no durable cursor: an abort leaves the
// already-processed aggregates deleted. Every sub-operation treats an
// already-absent target as a non-error, so a redelivered event safely
// re-runs the cascade.
type UserDeletionService interface {
	DeleteAllUserData(ctx context.Context, username string) error
}

type userDeletionService struct {
	repo     *repository.Repository
	module   ModulService
	sessions SessionService
	logger   *zap.Logger
}

// NewUserDeletionService creates the UserDeletionService.
func NewUserDeletionService(repo *repository.Repository, module ModulService, sessions SessionService, logger *zap.Logger) UserDeletionService {
	return &userDeletionService{repo: repo, module: module, sessions: sessions, logger: logger}
}

func (s *userDeletionService) DeleteAllUserData(ctx context.Context, username string) error {
	module, err := s.repo.Modul.ListByUsername(ctx, username)
	if err != nil {
		return s.abort(username, fmt.Errorf("listing module: %w", err))
	}
	lernplaene, err := s.repo.Lernplan.ListByUsername(ctx, username)
	if err != nil {
		return s.abort(username, fmt.Errorf("listing lernplaene: %w", err))
	}
	sessions, err := s.repo.Session.ListByUsername(ctx, username)
	if err != nil {
		return s.abort(username, fmt.Errorf("listing sessions: %w", err))
	}

	for i := range module {
		if _, err := s.module.DeleteModul(ctx, module[i].FachID, username); err != nil {
			return s.abort(username, fmt.Errorf("deleting modul %s: %w", module[i].FachID, err))
		}
	}
	for i := range lernplaene {
		if _, err := s.repo.Lernplan.DeleteByFachID(ctx, lernplaene[i].FachID); err != nil {
			return s.abort(username, fmt.Errorf("deleting lernplan %s: %w", lernplaene[i].FachID, err))
		}
	}
	for i := range sessions {
		if err := s.sessions.DeleteSession(ctx, sessions[i].FachID, username); err != nil {
			return s.abort(username, fmt.Errorf("deleting session %s: %w", sessions[i].FachID, err))
		}
	}

	s.logger.Info("deleted all user data",
		zap.String("username", username),
		zap.Int("module", len(module)),
		zap.Int("lernplaene", len(lernplaene)),
		zap.Int("sessions", len(sessions)),
	)
	return nil
}

// abort logs the terminal failure of the whole user-deletion job. Data
// deleted before the failure stays deleted.
func (s *userDeletionService) abort(username string, err error) error {
	s.logger.Error("user deletion cascade aborted",
		zap.String("username", username),
		zap.Error(err),
	)
	return fmt.Errorf("user deletion for %q: %w", username, err)
}
