package dto

// TagRequest is one weekday slot in a plan request. SessionID may be
// empty for an unscheduled day.
type TagRequest struct {
	Wochentag string `json:"wochentag"` // MONDAY .. SUNDAY
	Beginn    string `json:"beginn"`    // HH:MM
	SessionID string `json:"session_id,omitempty"`
}

// CreateLernplanRequest carries the data for a new Lernplan. Plans are
// created inactive; activation is a separate operation.
type CreateLernplanRequest struct {
	Titel string       `json:"titel"`
	Tage  []TagRequest `json:"tage"`
}

// EditLernplanRequest replaces the Tag list of an existing plan wholesale.
type EditLernplanRequest struct {
	FachID string       `json:"fach_id"`
	Tage   []TagRequest `json:"tage"`
}

// Wochenuebersicht is the day-by-day view of the active Lernplan.
type Wochenuebersicht struct {
	Titel string              `json:"titel"`
	Tage  []Tagesuebersicht   `json:"tage"`
}

// Tagesuebersicht is one day entry of the weekly overview. For an
// unscheduled day, or when the referenced Session no longer exists,
// SessionID is empty and Blocks is nil.
type Tagesuebersicht struct {
	Wochentag string          `json:"wochentag"`
	Beginn    string          `json:"beginn"`
	SessionID string          `json:"session_id,omitempty"`
	Titel     string          `json:"titel,omitempty"`
	Blocks    []BlockOverview `json:"blocks,omitempty"`
}

// BlockOverview is one block of a resolved session in the overview.
type BlockOverview struct {
	ModulID           string `json:"modul_id"`
	LernzeitSeconds   int    `json:"lernzeit_seconds"`
	PausenzeitSeconds int    `json:"pausenzeit_seconds"`
}
