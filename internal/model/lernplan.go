package model

import "time"

// Lernplan is a weekly study plan. Each Tag assigns an optional Session
// to a weekday. At most one Lernplan per user is active at any time; the
// activation service maintains that invariant.
type Lernplan struct {
	FachID   string `gorm:"type:uuid;primaryKey"             json:"fach_id"`
	Username string `gorm:"type:varchar(100);not null;index" json:"username"`
	Titel    string `gorm:"type:varchar(255);not null"       json:"titel"`
	IsActive bool   `gorm:"not null;default:false"           json:"is_active"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Tage are owned by the Lernplan row and die with it. Order follows
	// Position (insertion order), not calendar weekday order.
	Tage []Tag `gorm:"foreignKey:LernplanID;references:FachID;constraint:OnDelete:CASCADE" json:"tage,omitempty"`
}

func (Lernplan) TableName() string { return "lernplaene" }

// AktualisiereTagesliste replaces the Tag list wholesale.
func (l *Lernplan) AktualisiereTagesliste(tage []Tag) {
	l.Tage = tage
}

// Tag is one weekday slot inside a Lernplan. SessionID is a weak,
// optional reference; nil means the day is unscheduled.
type Tag struct {
	TagID      string  `gorm:"type:uuid;primaryKey"      json:"tag_id"`
	LernplanID string  `gorm:"type:uuid;not null;index"  json:"lernplan_id"`
	Wochentag  string  `gorm:"type:varchar(10);not null" json:"wochentag"` // MONDAY .. SUNDAY
	Beginn     string  `gorm:"type:varchar(5);not null"  json:"beginn"`    // HH:MM
	SessionID  *string `gorm:"type:uuid"                 json:"session_id,omitempty"`
	Position   int     `gorm:"not null;default:0"        json:"position"`
}

func (Tag) TableName() string { return "tage" }

// ReferencesSession reports whether the Tag points at the given session id.
func (t *Tag) ReferencesSession(sessionID string) bool {
	return sessionID != "" && t.SessionID != nil && *t.SessionID == sessionID
}
