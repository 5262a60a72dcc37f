package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mdzoubir/eventconnect-backend/internal/domain"
	"github.com/mdzoubir/eventconnect-backend/internal/models"
	"github.com/mdzoubir/eventconnect-backend/internal/policy"
)

func newStatsService(store *fakeStore) *StatsService {
	log := zerolog.Nop()
	return NewStatsService(store, &log)
}

func TestEventStatistics(t *testing.T) {
	t.Parallel()

	creator := uuid.New()

	seed := func() (*fakeStore, *models.Event, *models.Ticket) {
		store := newFakeStore()
		event := store.addEvent(models.Event{Title: "Conference", CreatorID: creator})
		ticket := store.addTicket(models.Ticket{EventID: event.ID, Name: "Standard", Price: 40, Quantity: 50, Remaining: 50})
		return store, event, ticket
	}

	t.Run("zero rows yield zero aggregates", func(t *testing.T) {
		store, event, _ := seed()
		svc := newStatsService(store)

		stats, err := svc.EventStatistics(context.Background(), policy.Identity{ID: creator, Role: models.RoleOrganizer}, event.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if stats.TransactionCount != 0 || stats.TotalRevenue != 0 || stats.WaitlistSize != 0 {
			t.Fatalf("expected zero aggregates, got %+v", stats)
		}
		if stats.AverageRating != 0 {
			t.Fatalf("zero reviews must yield average 0, got %v", stats.AverageRating)
		}
	})

	t.Run("counts completed transactions only", func(t *testing.T) {
		store, event, ticket := seed()
		for _, status := range []models.TransactionStatus{
			models.TransactionCompleted,
			models.TransactionCompleted,
			models.TransactionPending,
			models.TransactionFailed,
		} {
			txn := models.Transaction{UserID: uuid.New(), TicketID: ticket.ID, Amount: 40, Status: status}
			if err := store.CreateTransaction(context.Background(), &txn); err != nil {
				t.Fatal(err)
			}
		}
		store.waitlist = append(store.waitlist, &models.Waitlist{EventID: event.ID, UserID: uuid.New()})
		store.reviews = append(store.reviews,
			&models.Review{EventID: event.ID, Rating: 5},
			&models.Review{EventID: event.ID, Rating: 2},
		)
		svc := newStatsService(store)

		stats, err := svc.EventStatistics(context.Background(), policy.Identity{ID: creator, Role: models.RoleOrganizer}, event.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if stats.TransactionCount != 2 || stats.TotalRevenue != 80 {
			t.Fatalf("expected 2 completed transactions totalling 80, got %+v", stats)
		}
		if stats.WaitlistSize != 1 {
			t.Fatalf("expected waitlist size 1, got %d", stats.WaitlistSize)
		}
		if stats.AverageRating != 3.5 {
			t.Fatalf("expected average rating 3.5, got %v", stats.AverageRating)
		}
	})

	t.Run("restricted to creator or admin", func(t *testing.T) {
		store, event, _ := seed()
		svc := newStatsService(store)

		if _, err := svc.EventStatistics(context.Background(), policy.Identity{ID: uuid.New(), Role: models.RoleUser}, event.ID); !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("expected ErrForbidden for attendee, got %v", err)
		}
		if _, err := svc.EventStatistics(context.Background(), policy.Identity{ID: uuid.New(), Role: models.RoleAdmin}, event.ID); err != nil {
			t.Fatalf("admin must be allowed, got %v", err)
		}
	})

	t.Run("unknown event", func(t *testing.T) {
		store, _, _ := seed()
		svc := newStatsService(store)
		if _, err := svc.EventStatistics(context.Background(), policy.Identity{ID: creator, Role: models.RoleOrganizer}, uuid.New()); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
