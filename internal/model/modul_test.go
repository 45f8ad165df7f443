package model

import "testing"

func TestModul_AddSeconds(t *testing.T) {
	m := &Modul{SecondsLearned: 100}

	if !m.AddSeconds(50) {
		t.Error("adding a positive value must be accepted")
	}
	if m.SecondsLearned != 150 {
		t.Errorf("expected 150, got %d", m.SecondsLearned)
	}
	if m.AddSeconds(-10) {
		t.Error("adding a negative value must be rejected")
	}
	if m.SecondsLearned != 150 {
		t.Errorf("accumulator must never decrease, got %d", m.SecondsLearned)
	}
	if !m.AddSeconds(0) {
		t.Error("adding zero is a valid no-op")
	}
}

func TestModul_Workload(t *testing.T) {
	m := &Modul{KontaktzeitStunden: 2, SelbststudiumStunden: 1}

	if m.Gesamtarbeitsaufwand() != 3 {
		t.Errorf("expected 3 hours total, got %d", m.Gesamtarbeitsaufwand())
	}

	m.SecondsLearned = 3599
	if m.UeberschreitetSelbststudium() {
		t.Error("3599s must not exceed a 1h self-study budget")
	}
	m.SecondsLearned = 3600
	if !m.UeberschreitetSelbststudium() {
		t.Error("3600s exceeds a 1h self-study budget")
	}
	if m.UeberschreitetGesamtarbeitsaufwand() {
		t.Error("3600s must not exceed a 3h total budget")
	}
	if got := m.RemainingSelbststudiumSeconds(); got != 0 {
		t.Errorf("expected 0 seconds remaining, got %d", got)
	}
}

func TestModul_Klausurtermine(t *testing.T) {
	m := &Modul{
		Modultermine: []Modultermin{
			{TerminID: "t1", Terminart: TerminartVorlesung},
			{TerminID: "t2", Terminart: TerminartKlausur},
		},
	}

	termine := m.Klausurtermine()
	if len(termine) != 1 || termine[0].TerminID != "t2" {
		t.Errorf("expected only the klausur termin, got %+v", termine)
	}
	if !m.HasKlausurtermin() {
		t.Error("expected HasKlausurtermin=true")
	}
}

func TestSession_TotalZeitSeconds(t *testing.T) {
	s := &Session{
		Blocks: []Block{
			{LernzeitSeconds: 1500, PausenzeitSeconds: 300},
			{LernzeitSeconds: 900},
		},
	}
	if got := s.TotalZeitSeconds(); got != 2700 {
		t.Errorf("expected 2700, got %d", got)
	}
}

func TestTag_ReferencesSession(t *testing.T) {
	id := "s1"
	tag := &Tag{SessionID: &id}

	if !tag.ReferencesSession("s1") {
		t.Error("tag references s1")
	}
	if tag.ReferencesSession("s2") {
		t.Error("tag does not reference s2")
	}
	if tag.ReferencesSession("") {
		t.Error("the empty id never matches")
	}
	unscheduled := &Tag{}
	if unscheduled.ReferencesSession("s1") {
		t.Error("an unscheduled tag references nothing")
	}
}
