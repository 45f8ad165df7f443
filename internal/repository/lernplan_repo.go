package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tnglf1337/studyhuppy/internal/model"
)

// LernplanRepository is the data access interface for the Lernplan aggregate.
type LernplanRepository interface {
	// Save upserts the Lernplan together with its Tage.
	Save(ctx context.Context, lernplan *model.Lernplan) error
	GetByFachID(ctx context.Context, fachID string) (*model.Lernplan, error)
	// GetActiveByUsername returns the single active plan of the user or
	// gorm.ErrRecordNotFound.
	GetActiveByUsername(ctx context.Context, username string) (*model.Lernplan, error)
	ListByUsername(ctx context.Context, username string) ([]model.Lernplan, error)
	// DeleteByFachID removes the Lernplan row and returns the number of
	// affected rows (0 when the id does not exist).
	DeleteByFachID(ctx context.Context, fachID string) (int64, error)
	// ActivateExclusively deactivates every plan of the user and then
	// activates the given plan, both inside one transaction. The returned
	// count is the number of rows hit by the activation step; 0 means the
	// plan does not exist or belongs to a different user, in which case
	// the deactivation is rolled back as well.
	ActivateExclusively(ctx context.Context, fachID, username string) (int64, error)
}

type lernplanRepo struct {
	db *gorm.DB
}

// NewLernplanRepo creates the GORM-backed LernplanRepository.
func NewLernplanRepo(db *gorm.DB) LernplanRepository {
	return &lernplanRepo{db: db}
}

func (r *lernplanRepo) Save(ctx context.Context, lernplan *model.Lernplan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tage").
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(lernplan).Error; err != nil {
			return err
		}
		if err := tx.Where("lernplan_id = ?", lernplan.FachID).
			Delete(&model.Tag{}).Error; err != nil {
			return err
		}
		if len(lernplan.Tage) == 0 {
			return nil
		}
		for i := range lernplan.Tage {
			if lernplan.Tage[i].TagID == "" {
				lernplan.Tage[i].TagID = uuid.NewString()
			}
			lernplan.Tage[i].LernplanID = lernplan.FachID
			lernplan.Tage[i].Position = i
		}
		return tx.Create(&lernplan.Tage).Error
	})
}

func (r *lernplanRepo) GetByFachID(ctx context.Context, fachID string) (*model.Lernplan, error) {
	var lernplan model.Lernplan
	err := r.db.WithContext(ctx).
		Preload("Tage", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("fach_id = ?", fachID).
		First(&lernplan).Error
	if err != nil {
		return nil, err
	}
	return &lernplan, nil
}

func (r *lernplanRepo) GetActiveByUsername(ctx context.Context, username string) (*model.Lernplan, error) {
	var lernplan model.Lernplan
	err := r.db.WithContext(ctx).
		Preload("Tage", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("username = ? AND is_active = ?", username, true).
		First(&lernplan).Error
	if err != nil {
		return nil, err
	}
	return &lernplan, nil
}

func (r *lernplanRepo) ListByUsername(ctx context.Context, username string) ([]model.Lernplan, error) {
	var lernplaene []model.Lernplan
	err := r.db.WithContext(ctx).
		Preload("Tage", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("username = ?", username).
		Order("created_at ASC").
		Find(&lernplaene).Error
	return lernplaene, err
}

func (r *lernplanRepo) DeleteByFachID(ctx context.Context, fachID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("fach_id = ?", fachID).
		Delete(&model.Lernplan{})
	return res.RowsAffected, res.Error
}

func (r *lernplanRepo) ActivateExclusively(ctx context.Context, fachID, username string) (int64, error) {
	var activated int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Deactivate first so that re-activating the already active plan
		// is idempotent inside the same transaction.
		if err := tx.Model(&model.Lernplan{}).
			Where("username = ?", username).
			Update("is_active", false).Error; err != nil {
			return err
		}
		res := tx.Model(&model.Lernplan{}).
			Where("fach_id = ? AND username = ?", fachID, username).
			Update("is_active", true)
		if res.Error != nil {
			return res.Error
		}
		activated = res.RowsAffected
		if activated == 0 {
			// Unknown or foreign plan: leave the previous activation
			// state untouched.
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err == gorm.ErrRecordNotFound {
		return 0, nil
	}
	return activated, err
}
