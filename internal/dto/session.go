package dto

import "time"

// BlockRequest is one timed segment inside a session request. The modul
// reference is carried by id only.
type BlockRequest struct {
	ModulID           string `json:"modul_id"`
	LernzeitSeconds   int    `json:"lernzeit_seconds"`
	PausenzeitSeconds int    `json:"pausenzeit_seconds"`
}

// CreateSessionRequest carries the data for a new Session.
type CreateSessionRequest struct {
	Titel        string         `json:"titel"`
	Beschreibung string         `json:"beschreibung"`
	Blocks       []BlockRequest `json:"blocks"`
}

// EditSessionRequest replaces titel, beschreibung and the block list of
// an existing Session wholesale.
type EditSessionRequest struct {
	FachID       string         `json:"fach_id"`
	Titel        string         `json:"titel"`
	Beschreibung string         `json:"beschreibung"`
	Blocks       []BlockRequest `json:"blocks"`
}

// SessionInfo is the compact session listing used by plan editing.
type SessionInfo struct {
	FachID    string `json:"fach_id"`
	Titel     string `json:"titel"`
	TotalZeit int    `json:"total_zeit_seconds"`
}

// SessionBeendetRequest records the completion of a session run.
type SessionBeendetRequest struct {
	SessionID      string    `json:"session_id"`
	BeendetAt      time.Time `json:"beendet_at"`
	Konzentration  int       `json:"konzentration"`
	Produktivitaet int       `json:"produktivitaet"`
	Schwierigkeit  int       `json:"schwierigkeit"`
}
