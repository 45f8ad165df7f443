package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tnglf1337/studyhuppy/internal/model"
)

// ModulRepository is the data access interface for the Modul aggregate.
type ModulRepository interface {
	// Save upserts the Modul together with its Modultermine.
	Save(ctx context.Context, modul *model.Modul) error
	// SaveAll upserts several Module in one transaction.
	SaveAll(ctx context.Context, module []model.Modul) error
	GetByFachID(ctx context.Context, fachID string) (*model.Modul, error)
	ListByUsername(ctx context.Context, username string) ([]model.Modul, error)
	ListByUsernameAndActive(ctx context.Context, username string, active bool) ([]model.Modul, error)
	CountByUsername(ctx context.Context, username string) (int64, error)
	// DeleteByFachID removes the Modul row and returns the number of
	// affected rows (0 when the id does not exist).
	DeleteByFachID(ctx context.Context, fachID string) (int64, error)
}

type modulRepo struct {
	db *gorm.DB
}

// NewModulRepo creates the GORM-backed ModulRepository.
func NewModulRepo(db *gorm.DB) ModulRepository {
	return &modulRepo{db: db}
}

func (r *modulRepo) Save(ctx context.Context, modul *model.Modul) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveModul(tx, modul)
	})
}

func (r *modulRepo) SaveAll(ctx context.Context, module []model.Modul) error {
	if len(module) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range module {
			if err := saveModul(tx, &module[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// saveModul writes the whole aggregate: the row is upserted and the
// Modultermine are replaced wholesale.
func saveModul(tx *gorm.DB, modul *model.Modul) error {
	if err := tx.Omit("Modultermine").
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(modul).Error; err != nil {
		return err
	}
	if err := tx.Where("modul_id = ?", modul.FachID).
		Delete(&model.Modultermin{}).Error; err != nil {
		return err
	}
	if len(modul.Modultermine) == 0 {
		return nil
	}
	for i := range modul.Modultermine {
		if modul.Modultermine[i].TerminID == "" {
			modul.Modultermine[i].TerminID = uuid.NewString()
		}
		modul.Modultermine[i].ModulID = modul.FachID
	}
	return tx.Create(&modul.Modultermine).Error
}

func (r *modulRepo) GetByFachID(ctx context.Context, fachID string) (*model.Modul, error) {
	var modul model.Modul
	err := r.db.WithContext(ctx).
		Preload("Modultermine").
		Where("fach_id = ?", fachID).
		First(&modul).Error
	if err != nil {
		return nil, err
	}
	return &modul, nil
}

func (r *modulRepo) ListByUsername(ctx context.Context, username string) ([]model.Modul, error) {
	var module []model.Modul
	err := r.db.WithContext(ctx).
		Preload("Modultermine").
		Where("username = ?", username).
		Order("created_at ASC").
		Find(&module).Error
	return module, err
}

func (r *modulRepo) ListByUsernameAndActive(ctx context.Context, username string, active bool) ([]model.Modul, error) {
	var module []model.Modul
	err := r.db.WithContext(ctx).
		Preload("Modultermine").
		Where("username = ? AND active = ?", username, active).
		Order("created_at ASC").
		Find(&module).Error
	return module, err
}

func (r *modulRepo) CountByUsername(ctx context.Context, username string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Modul{}).
		Where("username = ?", username).
		Count(&count).Error
	return count, err
}

func (r *modulRepo) DeleteByFachID(ctx context.Context, fachID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("fach_id = ?", fachID).
		Delete(&model.Modul{})
	return res.RowsAffected, res.Error
}
