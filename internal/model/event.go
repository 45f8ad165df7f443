package model

import "time"

// ModulGelerntEvent is an append-only fact that the user learned a Modul
// for some seconds on a given day. Events are owned transitively by the
// Modul and are purged when it is deleted.
type ModulGelerntEvent struct {
	EventID        string    `gorm:"type:uuid;primaryKey"             json:"event_id"`
	ModulID        string    `gorm:"type:uuid;not null;index"         json:"modul_id"`
	Username       string    `gorm:"type:varchar(100);not null;index" json:"username"`
	SecondsLearned int       `gorm:"not null"                         json:"seconds_learned"`
	DateGelernt    time.Time `gorm:"type:date;not null"               json:"date_gelernt"`
}

func (ModulGelerntEvent) TableName() string { return "modul_gelernt_events" }

// SessionBeendetEvent records the completion of a Session run together
// with the user's ratings. Owned transitively by the Session.
type SessionBeendetEvent struct {
	EventID   string    `gorm:"type:uuid;primaryKey"             json:"event_id"`
	SessionID string    `gorm:"type:uuid;not null;index"         json:"session_id"`
	Username  string    `gorm:"type:varchar(100);not null;index" json:"username"`
	BeendetAt time.Time `gorm:"not null"                         json:"beendet_at"`

	// Ratings on a 0..10 scale.
	Konzentration  int `gorm:"not null" json:"konzentration"`
	Produktivitaet int `gorm:"not null" json:"produktivitaet"`
	Schwierigkeit  int `gorm:"not null" json:"schwierigkeit"`
}

func (SessionBeendetEvent) TableName() string { return "session_beendet_events" }
