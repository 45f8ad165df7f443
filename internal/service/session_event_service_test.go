package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/tnglf1337/studyhuppy/internal/dto"
)

func setupTestSessionEventService() (SessionEventService, *testRepos) {
	repos := newTestRepos()
	svc := NewSessionEventService(repos.repo, zap.NewNop())
	return svc, repos
}

func TestSessionEventService_SaveSessionBeendetEvent(t *testing.T) {
	svc, repos := setupTestSessionEventService()

	beendet := time.Date(2026, 3, 9, 16, 0, 0, 0, time.UTC)
	err := svc.SaveSessionBeendetEvent(context.Background(), &dto.SessionBeendetRequest{
		SessionID:      "s1",
		BeendetAt:      beendet,
		Konzentration:  8,
		Produktivitaet: 7,
		Schwierigkeit:  3,
	}, "heinz")
	if err != nil {
		t.Fatalf("SaveSessionBeendetEvent should succeed: %v", err)
	}
	if len(repos.sessionEvents.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repos.sessionEvents.events))
	}
	for _, event := range repos.sessionEvents.events {
		if event.SessionID != "s1" || event.Username != "heinz" {
			t.Errorf("unexpected event %+v", event)
		}
		if !event.BeendetAt.Equal(beendet) {
			t.Errorf("expected beendet_at %v, got %v", beendet, event.BeendetAt)
		}
	}
}

func TestSessionEventService_SaveSessionBeendetEvent_DefaultsTimestamp(t *testing.T) {
	svc, repos := setupTestSessionEventService()
	fixed := time.Date(2026, 3, 9, 16, 0, 0, 0, time.UTC)
	svc.(*sessionEventService).now = func() time.Time { return fixed }

	err := svc.SaveSessionBeendetEvent(context.Background(), &dto.SessionBeendetRequest{
		SessionID: "s1",
	}, "heinz")
	if err != nil {
		t.Fatalf("SaveSessionBeendetEvent should succeed: %v", err)
	}
	for _, event := range repos.sessionEvents.events {
		if !event.BeendetAt.Equal(fixed) {
			t.Errorf("a zero beendet_at defaults to now, got %v", event.BeendetAt)
		}
	}
}

func TestSessionEventService_SaveSessionBeendetEvent_InvalidBewertung(t *testing.T) {
	svc, repos := setupTestSessionEventService()
	ctx := context.Background()

	for _, req := range []*dto.SessionBeendetRequest{
		{SessionID: "s1", Konzentration: 11},
		{SessionID: "s1", Produktivitaet: -1},
		{SessionID: "s1", Schwierigkeit: 99},
	} {
		err := svc.SaveSessionBeendetEvent(ctx, req, "heinz")
		if !errors.Is(err, ErrInvalidBewertung) {
			t.Errorf("request %+v: expected ErrInvalidBewertung, got %v", req, err)
		}
	}
	if len(repos.sessionEvents.events) != 0 {
		t.Error("rejected events must not be recorded")
	}
}
