package model

import "time"

// Terminart classifies a Modultermin.
const (
	TerminartVorlesung = "VORLESUNG"
	TerminartUebung    = "UEBUNG"
	TerminartKlausur   = "KLAUSUR"
	TerminartSonstiges = "SONSTIGES"
)

// Modul is a study subject tracked for one user. It accumulates learned
// seconds and carries the calendar appointments of the subject.
type Modul struct {
	FachID         string `gorm:"type:uuid;primaryKey"               json:"fach_id"`
	Name           string `gorm:"type:varchar(255);not null"         json:"name"`
	Username       string `gorm:"type:varchar(100);not null;index"   json:"username"`
	SecondsLearned int    `gorm:"not null;default:0"                 json:"seconds_learned"`
	Active         bool   `gorm:"not null;default:true"              json:"active"`
	Semesterstufe  int    `gorm:"not null;default:1"                 json:"semesterstufe"`

	// Kreditpunkte workload split in hours.
	KontaktzeitStunden    int `gorm:"not null;default:0" json:"kontaktzeit_stunden"`
	SelbststudiumStunden  int `gorm:"not null;default:0" json:"selbststudium_stunden"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Modultermine are owned by the Modul row and die with it.
	Modultermine []Modultermin `gorm:"foreignKey:ModulID;references:FachID;constraint:OnDelete:CASCADE" json:"modultermine,omitempty"`
}

func (Modul) TableName() string { return "module" }

// Gesamtarbeitsaufwand is the total workload of the Modul in hours.
func (m *Modul) Gesamtarbeitsaufwand() int {
	return m.KontaktzeitStunden + m.SelbststudiumStunden
}

// UeberschreitetGesamtarbeitsaufwand reports whether the learned time
// already exceeds the total workload.
func (m *Modul) UeberschreitetGesamtarbeitsaufwand() bool {
	return m.SecondsLearned >= m.Gesamtarbeitsaufwand()*3600
}

// UeberschreitetSelbststudium reports whether the learned time already
// exceeds the self-study share of the workload.
func (m *Modul) UeberschreitetSelbststudium() bool {
	return m.SecondsLearned >= m.SelbststudiumStunden*3600
}

// RemainingSelbststudiumSeconds returns how much self-study time is left.
// May be negative once the budget is exceeded.
func (m *Modul) RemainingSelbststudiumSeconds() int {
	return m.SelbststudiumStunden*3600 - m.SecondsLearned
}

// AddSeconds adds learned time to the accumulator. Negative values are
// ignored so the accumulator never decreases through submissions.
func (m *Modul) AddSeconds(seconds int) bool {
	if seconds < 0 {
		return false
	}
	m.SecondsLearned += seconds
	return true
}

// ResetSecondsLearned sets the accumulator back to zero.
func (m *Modul) ResetSecondsLearned() {
	m.SecondsLearned = 0
}

// ToggleActivity flips the active flag.
func (m *Modul) ToggleActivity() {
	m.Active = !m.Active
}

// Klausurtermine returns all appointments of kind KLAUSUR.
func (m *Modul) Klausurtermine() []Modultermin {
	var termine []Modultermin
	for _, t := range m.Modultermine {
		if t.Terminart == TerminartKlausur {
			termine = append(termine, t)
		}
	}
	return termine
}

// HasKlausurtermin reports whether at least one exam date is registered.
func (m *Modul) HasKlausurtermin() bool {
	return len(m.Klausurtermine()) > 0
}

// Modultermin is one calendar appointment of a Modul.
type Modultermin struct {
	TerminID     string    `gorm:"type:uuid;primaryKey"       json:"termin_id"`
	ModulID      string    `gorm:"type:uuid;not null;index"   json:"modul_id"`
	Terminart    string    `gorm:"type:varchar(20);not null"  json:"terminart"`
	Beschreibung string    `gorm:"type:varchar(255)"          json:"beschreibung,omitempty"`
	Datum        time.Time `gorm:"not null"                   json:"datum"`
}

func (Modultermin) TableName() string { return "modultermine" }
