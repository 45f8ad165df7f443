package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tnglf1337/studyhuppy/internal/model"
)

// SessionRepository is the data access interface for the Session aggregate.
type SessionRepository interface {
	// Save upserts the Session together with its Blocks.
	Save(ctx context.Context, session *model.Session) error
	GetByFachID(ctx context.Context, fachID string) (*model.Session, error)
	ListByUsername(ctx context.Context, username string) ([]model.Session, error)
	// DeleteByFachID removes the Session row and returns the number of
	// affected rows (0 when the id does not exist).
	DeleteByFachID(ctx context.Context, fachID string) (int64, error)
}

type sessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo creates the GORM-backed SessionRepository.
func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Save(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Blocks").
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(session).Error; err != nil {
			return err
		}
		// Blocks are replaced wholesale; an unchanged save rewrites them.
		if err := tx.Where("session_id = ?", session.FachID).
			Delete(&model.Block{}).Error; err != nil {
			return err
		}
		if len(session.Blocks) == 0 {
			return nil
		}
		for i := range session.Blocks {
			if session.Blocks[i].BlockID == "" {
				session.Blocks[i].BlockID = uuid.NewString()
			}
			session.Blocks[i].SessionID = session.FachID
			session.Blocks[i].Position = i
		}
		return tx.Create(&session.Blocks).Error
	})
}

func (r *sessionRepo) GetByFachID(ctx context.Context, fachID string) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).
		Preload("Blocks", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("fach_id = ?", fachID).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) ListByUsername(ctx context.Context, username string) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.WithContext(ctx).
		Preload("Blocks", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("username = ?", username).
		Order("created_at ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepo) DeleteByFachID(ctx context.Context, fachID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("fach_id = ?", fachID).
		Delete(&model.Session{})
	return res.RowsAffected, res.Error
}
