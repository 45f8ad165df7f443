package repository

import "gorm.io/gorm"

// Repository bundles the per-aggregate repositories. The three aggregates
// (Modul, Session, Lernplan) are stored independently; references between
// them are by id only and are kept consistent by the service layer.
type Repository struct {
	Modul        ModulRepository
	ModulEvent   ModulGelerntEventRepository
	Session      SessionRepository
	SessionEvent SessionBeendetEventRepository
	Lernplan     LernplanRepository
}

// NewRepository creates the repository bundle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Modul:        NewModulRepo(db),
		ModulEvent:   NewModulGelerntEventRepo(db),
		Session:      NewSessionRepo(db),
		SessionEvent: NewSessionBeendetEventRepo(db),
		Lernplan:     NewLernplanRepo(db),
	}
}
