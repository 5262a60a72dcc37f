package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mdzoubir/eventconnect-backend/internal/clock"
	"github.com/mdzoubir/eventconnect-backend/internal/domain"
	"github.com/mdzoubir/eventconnect-backend/internal/models"
	"github.com/mdzoubir/eventconnect-backend/internal/policy"
)

func newEventService(store *fakeStore) *EventService {
	log := zerolog.Nop()
	return NewEventService(store, clock.NewFixed(testNow), &log)
}

func TestCreateEvent(t *testing.T) {
	t.Parallel()

	organizer := policy.Identity{ID: uuid.New(), Role: models.RoleOrganizer}
	valid := func() CreateEventInput {
		return CreateEventInput{
			Title:       "Jazz Night",
			Description: "An evening of live jazz",
			StartTime:   testNow.Add(48 * time.Hour),
			EndTime:     testNow.Add(52 * time.Hour),
			Location:    LocationInput{Name: "Blue Hall"},
			Category:    "Music",
			Tags:        []string{"Jazz", "live", "jazz"},
			Capacity:    120,
			Price:       25,
		}
	}

	t.Run("creates event with resolved category and tags", func(t *testing.T) {
		store := newFakeStore()
		svc := newEventService(store)

		event, err := svc.CreateEvent(context.Background(), organizer, valid())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if event.CreatorID != organizer.ID {
			t.Fatalf("creator not recorded: %s", event.CreatorID)
		}
		if event.Status != models.EventDraft {
			t.Fatalf("expected default draft status, got %s", event.Status)
		}
		if event.Category == nil || event.Category.Name != "Music" {
			t.Fatalf("category not resolved: %+v", event.Category)
		}
		if len(event.Tags) != 2 {
			t.Fatalf("expected 2 deduplicated tags, got %d", len(event.Tags))
		}
		if len(store.locations) != 1 {
			t.Fatalf("expected 1 location, got %d", len(store.locations))
		}
	})

	t.Run("reuses existing category case-insensitively", func(t *testing.T) {
		store := newFakeStore()
		existing := models.EventCategory{Name: "music"}
		if err := store.CreateCategory(context.Background(), &existing); err != nil {
			t.Fatal(err)
		}
		svc := newEventService(store)

		event, err := svc.CreateEvent(context.Background(), organizer, valid())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if *event.CategoryID != existing.ID {
			t.Fatal("category duplicated instead of reused")
		}
		if len(store.categories) != 1 {
			t.Fatalf("expected 1 category, got %d", len(store.categories))
		}
	})

	t.Run("admin cannot create events", func(t *testing.T) {
		svc := newEventService(newFakeStore())
		_, err := svc.CreateEvent(context.Background(), policy.Identity{ID: uuid.New(), Role: models.RoleAdmin}, valid())
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("schedule validation", func(t *testing.T) {
		svc := newEventService(newFakeStore())

		past := valid()
		past.StartTime = testNow.Add(-time.Hour)
		if _, err := svc.CreateEvent(context.Background(), organizer, past); !domain.IsValidation(err) {
			t.Fatalf("past start: expected validation error, got %v", err)
		}

		inverted := valid()
		inverted.EndTime = inverted.StartTime.Add(-time.Hour)
		if _, err := svc.CreateEvent(context.Background(), organizer, inverted); !domain.IsValidation(err) {
			t.Fatalf("end before start: expected validation error, got %v", err)
		}

		empty := valid()
		empty.Title = "  "
		if _, err := svc.CreateEvent(context.Background(), organizer, empty); !domain.IsValidation(err) {
			t.Fatalf("blank title: expected validation error, got %v", err)
		}

		zeroCap := valid()
		zeroCap.Capacity = 0
		if _, err := svc.CreateEvent(context.Background(), organizer, zeroCap); !domain.IsValidation(err) {
			t.Fatalf("zero capacity: expected validation error, got %v", err)
		}
	})
}

func TestUpdateEvent(t *testing.T) {
	t.Parallel()

	creator := uuid.New()
	seed := func() (*fakeStore, *models.Event) {
		store := newFakeStore()
		event := store.addEvent(models.Event{
			Title:     "Original",
			StartTime: testNow.Add(24 * time.Hour),
			EndTime:   testNow.Add(26 * time.Hour),
			CreatorID: creator,
			Capacity:  50,
			Status:    models.EventPublished,
		})
		return store, event
	}

	t.Run("creator updates fields", func(t *testing.T) {
		store, event := seed()
		svc := newEventService(store)

		title := "Renamed"
		price := 15.0
		updated, err := svc.UpdateEvent(context.Background(), policy.Identity{ID: creator, Role: models.RoleOrganizer}, event.ID, UpdateEventInput{Title: &title, Price: &price})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated.Title != "Renamed" || updated.Price != 15 {
			t.Fatalf("update not applied: %+v", updated)
		}
	})

	t.Run("non-creator forbidden", func(t *testing.T) {
		store, event := seed()
		svc := newEventService(store)

		title := "Hijacked"
		_, err := svc.UpdateEvent(context.Background(), policy.Identity{ID: uuid.New(), Role: models.RoleOrganizer}, event.ID, UpdateEventInput{Title: &title})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
		if store.events[event.ID].Title != "Original" {
			t.Fatal("event must be unchanged")
		}
	})

	t.Run("soft-deleted event is invisible", func(t *testing.T) {
		store, event := seed()
		store.events[event.ID].IsDeleted = true
		svc := newEventService(store)

		title := "Ghost"
		_, err := svc.UpdateEvent(context.Background(), policy.Identity{ID: creator, Role: models.RoleOrganizer}, event.ID, UpdateEventInput{Title: &title})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("clearing category", func(t *testing.T) {
		store, event := seed()
		category := models.EventCategory{Name: "Music"}
		if err := store.CreateCategory(context.Background(), &category); err != nil {
			t.Fatal(err)
		}
		store.events[event.ID].CategoryID = &category.ID
		svc := newEventService(store)

		empty := ""
		updated, err := svc.UpdateEvent(context.Background(), policy.Identity{ID: creator, Role: models.RoleOrganizer}, event.ID, UpdateEventInput{Category: &empty})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated.CategoryID != nil {
			t.Fatal("category not cleared")
		}
	})

	t.Run("schedule stays consistent", func(t *testing.T) {
		store, event := seed()
		svc := newEventService(store)

		end := testNow.Add(23 * time.Hour)
		_, err := svc.UpdateEvent(context.Background(), policy.Identity{ID: creator, Role: models.RoleOrganizer}, event.ID, UpdateEventInput{EndTime: &end})
		if !domain.IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}
