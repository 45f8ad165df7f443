package service

import (
	"go.uber.org/zap"

	"github.com/tnglf1337/studyhuppy/config"
	"github.com/tnglf1337/studyhuppy/internal/repository"
)

// Service bundles the application services of the track module.
type Service struct {
	Modul              ModulService
	ModulEvent         ModulEventService
	Session            SessionService
	SessionEvent       SessionEventService
	Lernplan           LernplanService
	LernplanActivation LernplanActivationService
	Cleanup            CleanupService
	UserDeletion       UserDeletionService
	Export             ExportService
}

// NewService wires the service bundle.
func NewService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) *Service {
	cleanup := NewCleanupService(repo, logger)
	modul := NewModulService(&cfg.Track, repo, cleanup, logger)
	session := NewSessionService(repo, cleanup, logger)
	lernplan := NewLernplanService(repo, logger)

	return &Service{
		Modul:              modul,
		ModulEvent:         NewModulEventService(&cfg.Track, repo, logger),
		Session:            session,
		SessionEvent:       NewSessionEventService(repo, logger),
		Lernplan:           lernplan,
		LernplanActivation: NewLernplanActivationService(repo, logger),
		Cleanup:            cleanup,
		UserDeletion:       NewUserDeletionService(repo, modul, session, logger),
		Export:             NewExportService(lernplan, logger),
	}
}
