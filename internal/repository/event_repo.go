package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tnglf1337/studyhuppy/internal/model"
)

// ModulGelerntEventRepository is the data access interface for learn events.
type ModulGelerntEventRepository interface {
	Save(ctx context.Context, event *model.ModulGelerntEvent) error
	ListByUsername(ctx context.Context, username string) ([]model.ModulGelerntEvent, error)
	// DeleteAllByModulID purges every event of the Modul and returns the
	// number of affected rows.
	DeleteAllByModulID(ctx context.Context, modulID string) (int64, error)
}

type modulGelerntEventRepo struct {
	db *gorm.DB
}

// NewModulGelerntEventRepo creates the GORM-backed event repository.
func NewModulGelerntEventRepo(db *gorm.DB) ModulGelerntEventRepository {
	return &modulGelerntEventRepo{db: db}
}

func (r *modulGelerntEventRepo) Save(ctx context.Context, event *model.ModulGelerntEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *modulGelerntEventRepo) ListByUsername(ctx context.Context, username string) ([]model.ModulGelerntEvent, error) {
	var events []model.ModulGelerntEvent
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("date_gelernt ASC").
		Find(&events).Error
	return events, err
}

func (r *modulGelerntEventRepo) DeleteAllByModulID(ctx context.Context, modulID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("modul_id = ?", modulID).
		Delete(&model.ModulGelerntEvent{})
	return res.RowsAffected, res.Error
}

// SessionBeendetEventRepository is the data access interface for session
// completion events.
type SessionBeendetEventRepository interface {
	Save(ctx context.Context, event *model.SessionBeendetEvent) error
	ListByUsername(ctx context.Context, username string) ([]model.SessionBeendetEvent, error)
	// DeleteAllBySessionID purges every event of the Session and returns
	// the number of affected rows.
	DeleteAllBySessionID(ctx context.Context, sessionID string) (int64, error)
}

type sessionBeendetEventRepo struct {
	db *gorm.DB
}

// NewSessionBeendetEventRepo creates the GORM-backed event repository.
func NewSessionBeendetEventRepo(db *gorm.DB) SessionBeendetEventRepository {
	return &sessionBeendetEventRepo{db: db}
}

func (r *sessionBeendetEventRepo) Save(ctx context.Context, event *model.SessionBeendetEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *sessionBeendetEventRepo) ListByUsername(ctx context.Context, username string) ([]model.SessionBeendetEvent, error) {
	var events []model.SessionBeendetEvent
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("beendet_at ASC").
		Find(&events).Error
	return events, err
}

func (r *sessionBeendetEventRepo) DeleteAllBySessionID(ctx context.Context, sessionID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&model.SessionBeendetEvent{})
	return res.RowsAffected, res.Error
}
