package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tnglf1337/studyhuppy/internal/dto"
	"github.com/tnglf1337/studyhuppy/internal/model"
	"github.com/tnglf1337/studyhuppy/internal/repository"
)

var (
	ErrLernplanNotFound = errors.New("lernplan does not exist")
	ErrInvalidTag       = errors.New("tag has an invalid weekday or start time")
)

// wochentagLabels maps the stored weekday keys to the labels shown in
// the weekly overview.
var wochentagLabels = map[string]string{
	"MONDAY":    "Montags",
	"TUESDAY":   "Dienstags",
	"WEDNESDAY": "Mittwochs",
	"THURSDAY":  "Donnerstags",
	"FRIDAY":    "Freitags",
	"SATURDAY":  "Samstags",
	"SUNDAY":    "Sonntags",
}

// LernplanService is the application service for the Lernplan aggregate.
type LernplanService interface {
	// CreateLernplan stores a new plan. Plans are always created
	// inactive; activation is a separate operation.
	CreateLernplan(ctx context.Context, req *dto.CreateLernplanRequest, username string) (*model.Lernplan, error)
	// SaveBearbeitetenLernplan replaces the Tag list of the plan wholesale.
	SaveBearbeitetenLernplan(ctx context.Context, req *dto.EditLernplanRequest) error
	FindByFachID(ctx context.Context, fachID string) (*model.Lernplan, error)
	FindAllByUsername(ctx context.Context, username string) ([]model.Lernplan, error)
	// DeleteLernplan removes the plan. No reference purge is needed:
	// nothing references a Lernplan by id. Returns false when the id did
	// not exist.
	DeleteLernplan(ctx context.Context, fachID string) (bool, error)

	// CollectWeeklyOverview assembles the day-by-day view of the user's
	// active plan. Day entries follow the stored Tag order. A Tag whose
	// Session no longer exists yields a degraded entry (weekday and
	// start time, no session data) instead of an error. Returns nil when
	// the user has no active plan.
	CollectWeeklyOverview(ctx context.Context, username string) (*dto.Wochenuebersicht, error)
}

type lernplanService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLernplanService creates the LernplanService.
func NewLernplanService(repo *repository.Repository, logger *zap.Logger) LernplanService {
	return &lernplanService{repo: repo, logger: logger}
}

func tageFromRequests(reqs []dto.TagRequest) ([]model.Tag, error) {
	tage := make([]model.Tag, 0, len(reqs))
	for i, t := range reqs {
		if _, ok := wochentagLabels[t.Wochentag]; !ok {
			return nil, ErrInvalidTag
		}
		if _, err := time.Parse("15:04", t.Beginn); err != nil {
			return nil, ErrInvalidTag
		}
		var sessionID *string
		if t.SessionID != "" {
			id := t.SessionID
			sessionID = &id
		}
		tage = append(tage, model.Tag{
			TagID:     uuid.NewString(),
			Wochentag: t.Wochentag,
			Beginn:    t.Beginn,
			SessionID: sessionID,
			Position:  i,
		})
	}
	return tage, nil
}

func (s *lernplanService) CreateLernplan(ctx context.Context, req *dto.CreateLernplanRequest, username string) (*model.Lernplan, error) {
	tage, err := tageFromRequests(req.Tage)
	if err != nil {
		return nil, err
	}

	lernplan := &model.Lernplan{
		FachID:   uuid.NewString(),
		Username: username,
		Titel:    req.Titel,
		IsActive: false,
		Tage:     tage,
	}
	if err := s.repo.Lernplan.Save(ctx, lernplan); err != nil {
		return nil, fmt.Errorf("saving lernplan: %w", err)
	}

	s.logger.Info("saved new lernplan",
		zap.String("fach_id", lernplan.FachID),
		zap.String("titel", lernplan.Titel),
	)
	return lernplan, nil
}

func (s *lernplanService) SaveBearbeitetenLernplan(ctx context.Context, req *dto.EditLernplanRequest) error {
	lernplan, err := s.FindByFachID(ctx, req.FachID)
	if err != nil {
		return err
	}
	tage, err := tageFromRequests(req.Tage)
	if err != nil {
		return err
	}
	lernplan.AktualisiereTagesliste(tage)
	return s.repo.Lernplan.Save(ctx, lernplan)
}

func (s *lernplanService) FindByFachID(ctx context.Context, fachID string) (*model.Lernplan, error) {
	lernplan, err := s.repo.Lernplan.GetByFachID(ctx, fachID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLernplanNotFound
		}
		return nil, err
	}
	return lernplan, nil
}

func (s *lernplanService) FindAllByUsername(ctx context.Context, username string) ([]model.Lernplan, error) {
	return s.repo.Lernplan.ListByUsername(ctx, username)
}

func (s *lernplanService) DeleteLernplan(ctx context.Context, fachID string) (bool, error) {
	rows, err := s.repo.Lernplan.DeleteByFachID(ctx, fachID)
	if err != nil {
		return false, fmt.Errorf("deleting lernplan %s: %w", fachID, err)
	}
	if rows > 0 {
		s.logger.Warn("deleted lernplan", zap.String("fach_id", fachID))
	}
	return rows > 0, nil
}

func (s *lernplanService) CollectWeeklyOverview(ctx context.Context, username string) (*dto.Wochenuebersicht, error) {
	lernplan, err := s.repo.Lernplan.GetActiveByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("looking up active lernplan of %q: %w", username, err)
	}

	tage := make([]dto.Tagesuebersicht, 0, len(lernplan.Tage))
	for _, tag := range lernplan.Tage {
		entry := dto.Tagesuebersicht{
			Wochentag: wochentagLabels[tag.Wochentag],
			Beginn:    tag.Beginn,
		}
		if tag.SessionID != nil {
			session, err := s.repo.Session.GetByFachID(ctx, *tag.SessionID)
			switch {
			case err == nil:
				entry.SessionID = session.FachID
				entry.Titel = session.Titel
				for _, b := range session.Blocks {
					entry.Blocks = append(entry.Blocks, dto.BlockOverview{
						ModulID:           b.ModulID,
						LernzeitSeconds:   b.LernzeitSeconds,
						PausenzeitSeconds: b.PausenzeitSeconds,
					})
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				// Dangling reference, possible while a session deletion
				// cascade is still in flight. The day is shown without
				// session data.
				s.logger.Warn("lernplan references missing session",
					zap.String("lernplan_id", lernplan.FachID),
					zap.String("session_id", *tag.SessionID),
				)
			default:
				return nil, fmt.Errorf("resolving session %s: %w", *tag.SessionID, err)
			}
		}
		tage = append(tage, entry)
	}

	return &dto.Wochenuebersicht{Titel: lernplan.Titel, Tage: tage}, nil
}
