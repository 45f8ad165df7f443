package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tnglf1337/studyhuppy/config"
	"github.com/tnglf1337/studyhuppy/internal/dto"
	"github.com/tnglf1337/studyhuppy/internal/model"
	"github.com/tnglf1337/studyhuppy/internal/repository"
)

var (
	ErrModulNotFound    = errors.New("modul does not exist")
	ErrModulLimit       = errors.New("modul limit for this user reached")
	ErrNegativeSeconds  = errors.New("seconds to add must be non-negative")
	ErrTerminNotFound   = errors.New("modultermin does not exist")
	ErrInvalidTerminart = errors.New("unknown terminart")
)

// ModulService is the application service for the Modul aggregate.
type ModulService interface {
	CreateModul(ctx context.Context, req *dto.CreateModulRequest, username string) (*model.Modul, error)
	// SaveAllNewModule bulk-creates Module, e.g. on semester import.
	SaveAllNewModule(ctx context.Context, module []model.Modul) error
	FindByFachID(ctx context.Context, fachID string) (*model.Modul, error)
	FindAllByUsername(ctx context.Context, username string) ([]model.Modul, error)
	FindActiveModuleByUsername(ctx context.Context, active bool, username string) ([]model.Modul, error)
	// AddSeconds adds learned time to the accumulator of the Modul.
	AddSeconds(ctx context.Context, req *dto.AddSecondsRequest) error
	ResetSecondsLearned(ctx context.Context, fachID string) error
	ToggleModulActivity(ctx context.Context, fachID string) error
	SaveNewModultermin(ctx context.Context, req *dto.NeuerModulterminRequest) error
	RemoveModultermin(ctx context.Context, fachID, terminID string) error
	GetKlausurtermine(ctx context.Context, fachID string) ([]model.Modultermin, error)

	// DeleteModul deletes the Modul and all data that exists because of
	// it: blocks referencing it in the user's sessions and its learn
	// events. It returns (false, nil) when the Modul did not exist.
	//
	// There is no rollback of the row deletion: when the follow-up
	// cleanup fails the Modul is already gone and dependent data may
	// remain. The error is propagated so callers see the deletion as
	// failed and operators can detect the drift.
	DeleteModul(ctx context.Context, fachID, username string) (bool, error)
}

type modulService struct {
	cfg     *config.TrackConfig
	repo    *repository.Repository
	cleanup CleanupService
	logger  *zap.Logger
}

// NewModulService creates the ModulService.
func NewModulService(cfg *config.TrackConfig, repo *repository.Repository, cleanup CleanupService, logger *zap.Logger) ModulService {
	return &modulService{cfg: cfg, repo: repo, cleanup: cleanup, logger: logger}
}

func (s *modulService) CreateModul(ctx context.Context, req *dto.CreateModulRequest, username string) (*model.Modul, error) {
	count, err := s.repo.Modul.CountByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("counting module of %q: %w", username, err)
	}
	if count >= int64(s.cfg.ModulLimit) {
		return nil, ErrModulLimit
	}

	modul := &model.Modul{
		FachID:               uuid.NewString(),
		Name:                 req.Name,
		Username:             username,
		Active:               true,
		Semesterstufe:        req.Semesterstufe,
		KontaktzeitStunden:   req.KontaktzeitStunden,
		SelbststudiumStunden: req.SelbststudiumStunden,
	}
	if err := s.repo.Modul.Save(ctx, modul); err != nil {
		return nil, fmt.Errorf("saving modul: %w", err)
	}

	s.logger.Info("saved new modul",
		zap.String("fach_id", modul.FachID),
		zap.String("name", modul.Name),
	)
	return modul, nil
}

func (s *modulService) SaveAllNewModule(ctx context.Context, module []model.Modul) error {
	for i := range module {
		if module[i].FachID == "" {
			module[i].FachID = uuid.NewString()
		}
	}
	return s.repo.Modul.SaveAll(ctx, module)
}

func (s *modulService) FindByFachID(ctx context.Context, fachID string) (*model.Modul, error) {
	modul, err := s.repo.Modul.GetByFachID(ctx, fachID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrModulNotFound
		}
		return nil, err
	}
	return modul, nil
}

func (s *modulService) FindAllByUsername(ctx context.Context, username string) ([]model.Modul, error) {
	return s.repo.Modul.ListByUsername(ctx, username)
}

func (s *modulService) FindActiveModuleByUsername(ctx context.Context, active bool, username string) ([]model.Modul, error) {
	return s.repo.Modul.ListByUsernameAndActive(ctx, username, active)
}

func (s *modulService) AddSeconds(ctx context.Context, req *dto.AddSecondsRequest) error {
	if req.Seconds < 0 {
		return ErrNegativeSeconds
	}
	modul, err := s.FindByFachID(ctx, req.ModulID)
	if err != nil {
		return err
	}
	modul.AddSeconds(req.Seconds)
	return s.repo.Modul.Save(ctx, modul)
}

func (s *modulService) ResetSecondsLearned(ctx context.Context, fachID string) error {
	modul, err := s.FindByFachID(ctx, fachID)
	if err != nil {
		return err
	}
	modul.ResetSecondsLearned()
	if err := s.repo.Modul.Save(ctx, modul); err != nil {
		return err
	}
	s.logger.Info("reset seconds learned", zap.String("fach_id", fachID))
	return nil
}

func (s *modulService) ToggleModulActivity(ctx context.Context, fachID string) error {
	modul, err := s.FindByFachID(ctx, fachID)
	if err != nil {
		return err
	}
	modul.ToggleActivity()
	return s.repo.Modul.Save(ctx, modul)
}

func (s *modulService) SaveNewModultermin(ctx context.Context, req *dto.NeuerModulterminRequest) error {
	switch req.Terminart {
	case model.TerminartVorlesung, model.TerminartUebung, model.TerminartKlausur, model.TerminartSonstiges:
	default:
		return ErrInvalidTerminart
	}

	modul, err := s.FindByFachID(ctx, req.ModulID)
	if err != nil {
		return err
	}
	modul.Modultermine = append(modul.Modultermine, model.Modultermin{
		TerminID:     uuid.NewString(),
		ModulID:      modul.FachID,
		Terminart:    req.Terminart,
		Beschreibung: req.Beschreibung,
		Datum:        req.Datum,
	})
	return s.repo.Modul.Save(ctx, modul)
}

func (s *modulService) RemoveModultermin(ctx context.Context, fachID, terminID string) error {
	modul, err := s.FindByFachID(ctx, fachID)
	if err != nil {
		return err
	}

	termine := modul.Modultermine[:0]
	found := false
	for _, t := range modul.Modultermine {
		if t.TerminID == terminID {
			found = true
			continue
		}
		termine = append(termine, t)
	}
	if !found {
		return ErrTerminNotFound
	}
	modul.Modultermine = termine
	return s.repo.Modul.Save(ctx, modul)
}

func (s *modulService) GetKlausurtermine(ctx context.Context, fachID string) ([]model.Modultermin, error) {
	modul, err := s.FindByFachID(ctx, fachID)
	if err != nil {
		return nil, err
	}
	return modul.Klausurtermine(), nil
}

func (s *modulService) DeleteModul(ctx context.Context, fachID, username string) (bool, error) {
	rows, err := s.repo.Modul.DeleteByFachID(ctx, fachID)
	if err != nil {
		return false, fmt.Errorf("deleting modul %s: %w", fachID, err)
	}
	if rows == 0 {
		return false, nil
	}

	// From here on the Modul row is gone. A failure below leaves the
	// dependent data behind; it is reported, not rolled back.
	if _, err := s.cleanup.RemoveModulFromBlocks(ctx, fachID, username); err != nil {
		s.logger.Error("modul deleted but block cleanup failed",
			zap.String("fach_id", fachID),
			zap.Error(err),
		)
		return false, fmt.Errorf("cleaning up blocks of modul %s: %w", fachID, err)
	}
	if _, err := s.repo.ModulEvent.DeleteAllByModulID(ctx, fachID); err != nil {
		s.logger.Error("modul deleted but event cleanup failed",
			zap.String("fach_id", fachID),
			zap.Error(err),
		)
		return false, fmt.Errorf("cleaning up events of modul %s: %w", fachID, err)
	}

	s.logger.Warn("deleted modul", zap.String("fach_id", fachID))
	return true, nil
}
