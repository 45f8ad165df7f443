package dto

import "time"

// CreateModulRequest carries the data for a new Modul.
type CreateModulRequest struct {
	Name                 string `json:"name"`
	Semesterstufe        int    `json:"semesterstufe"`
	KontaktzeitStunden   int    `json:"kontaktzeit_stunden"`
	SelbststudiumStunden int    `json:"selbststudium_stunden"`
}

// AddSecondsRequest submits learned time for a Modul.
type AddSecondsRequest struct {
	ModulID string `json:"modul_id"`
	Seconds int    `json:"seconds"`
}

// NeuerModulterminRequest adds a calendar appointment to a Modul.
type NeuerModulterminRequest struct {
	ModulID      string    `json:"modul_id"`
	Terminart    string    `json:"terminart"`
	Beschreibung string    `json:"beschreibung"`
	Datum        time.Time `json:"datum"`
}
