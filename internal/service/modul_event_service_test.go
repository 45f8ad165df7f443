package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func setupTestModulEventService() (ModulEventService, *testRepos) {
	repos := newTestRepos()
	svc := NewModulEventService(testTrackConfig(), repos.repo, zap.NewNop())
	return svc, repos
}

func TestModulEventService_SaveEvent(t *testing.T) {
	svc, repos := setupTestModulEventService()
	svc.(*modulEventService).now = func() time.Time {
		return time.Date(2026, 3, 9, 14, 35, 12, 0, time.UTC)
	}

	if err := svc.SaveEvent(context.Background(), "m1", "heinz", 1800); err != nil {
		t.Fatalf("SaveEvent should succeed: %v", err)
	}
	if len(repos.modulEvents.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repos.modulEvents.events))
	}
	for _, event := range repos.modulEvents.events {
		if event.ModulID != "m1" || event.SecondsLearned != 1800 {
			t.Errorf("unexpected event %+v", event)
		}
		want := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
		if !event.DateGelernt.Equal(want) {
			t.Errorf("expected date %v, got %v", want, event.DateGelernt)
		}
	}
}

func TestModulEventService_SaveEvent_TooShort(t *testing.T) {
	svc, repos := setupTestModulEventService()

	err := svc.SaveEvent(context.Background(), "m1", "heinz", 59)
	if !errors.Is(err, ErrNotEnoughSecondsLearned) {
		t.Errorf("expected ErrNotEnoughSecondsLearned, got %v", err)
	}
	if len(repos.modulEvents.events) != 0 {
		t.Error("a rejected interval must not be recorded")
	}
}

func TestModulEventService_FindAllByUsername(t *testing.T) {
	svc, _ := setupTestModulEventService()
	ctx := context.Background()

	if err := svc.SaveEvent(ctx, "m1", "heinz", 600); err != nil {
		t.Fatalf("SaveEvent should succeed: %v", err)
	}
	if err := svc.SaveEvent(ctx, "m2", "gerda", 600); err != nil {
		t.Fatalf("SaveEvent should succeed: %v", err)
	}

	events, err := svc.FindAllByUsername(ctx, "heinz")
	if err != nil {
		t.Fatalf("FindAllByUsername should succeed: %v", err)
	}
	if len(events) != 1 || events[0].ModulID != "m1" {
		t.Errorf("expected only heinz's event, got %+v", events)
	}
}
