package model

import "time"

// Session is a reusable study session template composed of timed blocks.
// Each Block references a Modul only by id; the Modul row may disappear
// independently, in which case the block is purged procedurally.
type Session struct {
	FachID       string `gorm:"type:uuid;primaryKey"             json:"fach_id"`
	Username     string `gorm:"type:varchar(100);not null;index" json:"username"`
	Titel        string `gorm:"type:varchar(255);not null"       json:"titel"`
	Beschreibung string `gorm:"type:varchar(1000)"               json:"beschreibung,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Blocks are owned by the Session row and die with it.
	Blocks []Block `gorm:"foreignKey:SessionID;references:FachID;constraint:OnDelete:CASCADE" json:"blocks,omitempty"`
}

func (Session) TableName() string { return "sessions" }

// TotalZeitSeconds is the total time of the Session derived from its blocks.
func (s *Session) TotalZeitSeconds() int {
	total := 0
	for _, b := range s.Blocks {
		total += b.LernzeitSeconds + b.PausenzeitSeconds
	}
	return total
}

// Block is one timed segment of a Session. ModulID is a weak reference:
// no foreign key constraint points at the module table.
type Block struct {
	BlockID           string `gorm:"type:uuid;primaryKey"     json:"block_id"`
	SessionID         string `gorm:"type:uuid;not null;index" json:"session_id"`
	ModulID           string `gorm:"type:uuid;not null"       json:"modul_id"`
	LernzeitSeconds   int    `gorm:"not null;default:0"       json:"lernzeit_seconds"`
	PausenzeitSeconds int    `gorm:"not null;default:0"       json:"pausenzeit_seconds"`
	Position          int    `gorm:"not null;default:0"       json:"position"`
}

func (Block) TableName() string { return "blocks" }
