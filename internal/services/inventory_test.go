package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mdzoubir/eventconnect-backend/internal/clock"
	"github.com/mdzoubir/eventconnect-backend/internal/domain"
	"github.com/mdzoubir/eventconnect-backend/internal/models"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newInventoryService(store *fakeStore) *InventoryService {
	log := zerolog.Nop()
	return NewInventoryService(store, clock.NewFixed(testNow), &log)
}

// seedEventWithTicket creates a published future event with one active tier.
func seedEventWithTicket(store *fakeStore, remaining int) (*models.Event, *models.Ticket) {
	event := store.addEvent(models.Event{
		Title:     "Launch Party",
		StartTime: testNow.Add(48 * time.Hour),
		EndTime:   testNow.Add(52 * time.Hour),
		CreatorID: uuid.New(),
		Status:    models.EventPublished,
	})
	ticket := store.addTicket(models.Ticket{
		EventID:   event.ID,
		Name:      "General Admission",
		Price:     25,
		Quantity:  100,
		Remaining: remaining,
		SaleStart: testNow.Add(-time.Hour),
		SaleEnd:   testNow.Add(24 * time.Hour),
		IsActive:  true,
	})
	return event, ticket
}

func TestReserveTicket(t *testing.T) {
	t.Parallel()

	t.Run("creates rsvp and pending transaction", func(t *testing.T) {
		store := newFakeStore()
		_, ticket := seedEventWithTicket(store, 10)
		svc := newInventoryService(store)
		userID := uuid.New()

		res, err := svc.ReserveTicket(context.Background(), userID, ReserveInput{
			TicketID:      ticket.ID,
			Quantity:      2,
			PaymentMethod: "card",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if res.RSVP.Status != models.RSVPAttending {
			t.Fatalf("expected attending status, got %s", res.RSVP.Status)
		}
		if res.Transaction.Status != models.TransactionPending {
			t.Fatalf("expected pending transaction, got %s", res.Transaction.Status)
		}
		if res.Transaction.Amount != 50 {
			t.Fatalf("expected amount 50, got %v", res.Transaction.Amount)
		}
		if got := store.tickets[ticket.ID].Remaining; got != 8 {
			t.Fatalf("expected remaining 8, got %d", got)
		}
		if len(store.notifications) != 1 || store.notifications[0].UserID != userID {
			t.Fatalf("expected one confirmation notification for the buyer, got %d", len(store.notifications))
		}
	})

	t.Run("sold out when remaining below quantity", func(t *testing.T) {
		store := newFakeStore()
		_, ticket := seedEventWithTicket(store, 1)
		svc := newInventoryService(store)

		_, err := svc.ReserveTicket(context.Background(), uuid.New(), ReserveInput{TicketID: ticket.ID, Quantity: 2})
		if !errors.Is(err, domain.ErrSoldOut) {
			t.Fatalf("expected ErrSoldOut, got %v", err)
		}
		if got := store.tickets[ticket.ID].Remaining; got != 1 {
			t.Fatalf("remaining changed on failed reservation: %d", got)
		}
	})

	t.Run("inactive ticket rejected", func(t *testing.T) {
		store := newFakeStore()
		_, ticket := seedEventWithTicket(store, 10)
		store.tickets[ticket.ID].IsActive = false
		svc := newInventoryService(store)

		_, err := svc.ReserveTicket(context.Background(), uuid.New(), ReserveInput{TicketID: ticket.ID, Quantity: 1})
		if !errors.Is(err, domain.ErrTicketInactive) {
			t.Fatalf("expected ErrTicketInactive, got %v", err)
		}
	})

	t.Run("outside sale window rejected", func(t *testing.T) {
		store := newFakeStore()
		_, ticket := seedEventWithTicket(store, 10)
		store.tickets[ticket.ID].SaleEnd = testNow.Add(-time.Minute)
		svc := newInventoryService(store)

		_, err := svc.ReserveTicket(context.Background(), uuid.New(), ReserveInput{TicketID: ticket.ID, Quantity: 1})
		if !errors.Is(err, domain.ErrTicketInactive) {
			t.Fatalf("expected ErrTicketInactive, got %v", err)
		}
	})

	t.Run("second rsvp for same event conflicts", func(t *testing.T) {
		store := newFakeStore()
		_, ticket := seedEventWithTicket(store, 10)
		svc := newInventoryService(store)
		userID := uuid.New()

		if _, err := svc.ReserveTicket(context.Background(), userID, ReserveInput{TicketID: ticket.ID, Quantity: 1}); err != nil {
			t.Fatalf("first reservation failed: %v", err)
		}
		_, err := svc.ReserveTicket(context.Background(), userID, ReserveInput{TicketID: ticket.ID, Quantity: 1})
		if !errors.Is(err, domain.ErrDuplicateRSVP) {
			t.Fatalf("expected ErrDuplicateRSVP, got %v", err)
		}
		if got := store.tickets[ticket.ID].Remaining; got != 9 {
			t.Fatalf("duplicate attempt must not decrement inventory, remaining %d", got)
		}
	})

	t.Run("started event rejected", func(t *testing.T) {
		store := newFakeStore()
		event, ticket := seedEventWithTicket(store, 10)
		store.events[event.ID].StartTime = testNow.Add(-time.Hour)
		svc := newInventoryService(store)

		_, err := svc.ReserveTicket(context.Background(), uuid.New(), ReserveInput{TicketID: ticket.ID, Quantity: 1})
		if !domain.IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("quantity below one rejected", func(t *testing.T) {
		svc := newInventoryService(newFakeStore())
		_, err := svc.ReserveTicket(context.Background(), uuid.New(), ReserveInput{TicketID: uuid.New(), Quantity: 0})
		if !domain.IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("soft deleted event invisible", func(t *testing.T) {
		store := newFakeStore()
		event, ticket := seedEventWithTicket(store, 10)
		store.events[event.ID].IsDeleted = true
		svc := newInventoryService(store)

		_, err := svc.ReserveTicket(context.Background(), uuid.New(), ReserveInput{TicketID: ticket.ID, Quantity: 1})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestReserveTicket_Concurrent(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	_, ticket := seedEventWithTicket(store, 1)
	svc := newInventoryService(store)

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.ReserveTicket(context.Background(), uuid.New(), ReserveInput{TicketID: ticket.ID, Quantity: 1})
		}(i)
	}
	wg.Wait()

	var wins, soldOut int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, domain.ErrSoldOut):
			soldOut++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || soldOut != attempts-1 {
		t.Fatalf("expected exactly one winner, got %d wins and %d sold-out", wins, soldOut)
	}
	if got := store.tickets[ticket.ID].Remaining; got != 0 {
		t.Fatalf("expected remaining 0, got %d", got)
	}
}

func TestJoinWaitlist(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	event, _ := seedEventWithTicket(store, 0)
	svc := newInventoryService(store)
	userID := uuid.New()

	entry, err := svc.JoinWaitlist(context.Background(), event.ID, userID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if entry.Notified {
		t.Fatal("new entry must be unnotified")
	}
	if !entry.JoinedAt.Equal(testNow) {
		t.Fatalf("expected joined_at %v, got %v", testNow, entry.JoinedAt)
	}

	_, err = svc.JoinWaitlist(context.Background(), event.ID, userID)
	if !errors.Is(err, domain.ErrAlreadyOnWaitlist) {
		t.Fatalf("expected ErrAlreadyOnWaitlist, got %v", err)
	}
}

func TestIsSoldOut(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	event, ticket := seedEventWithTicket(store, 0)
	svc := newInventoryService(store)

	soldOut, err := svc.IsSoldOut(context.Background(), event.ID)
	if err != nil || !soldOut {
		t.Fatalf("expected sold out, got %v err=%v", soldOut, err)
	}

	store.tickets[ticket.ID].Remaining = 3
	soldOut, err = svc.IsSoldOut(context.Background(), event.ID)
	if err != nil || soldOut {
		t.Fatalf("expected not sold out, got %v err=%v", soldOut, err)
	}

	// Inactive tiers do not count toward availability.
	store.tickets[ticket.ID].IsActive = false
	soldOut, err = svc.IsSoldOut(context.Background(), event.ID)
	if err != nil || !soldOut {
		t.Fatalf("expected sold out with only inactive inventory, got %v err=%v", soldOut, err)
	}
}

func TestCancelEvent(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	event, ticket := seedEventWithTicket(store, 5)
	svc := newInventoryService(store)

	holders := []uuid.UUID{uuid.New(), uuid.New()}
	for _, userID := range holders {
		if _, err := svc.ReserveTicket(context.Background(), userID, ReserveInput{TicketID: ticket.ID, Quantity: 1}); err != nil {
			t.Fatalf("seeding reservation failed: %v", err)
		}
	}
	store.notifications = nil

	if err := svc.CancelEvent(context.Background(), event.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !store.events[event.ID].IsDeleted {
		t.Fatal("event must be soft-deleted, not removed")
	}
	if _, ok := store.events[event.ID]; !ok {
		t.Fatal("event row must remain for historical references")
	}
	if len(store.notifications) != len(holders) {
		t.Fatalf("expected %d cancellation notifications, got %d", len(holders), len(store.notifications))
	}

	if err := svc.CancelEvent(context.Background(), uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown event, got %v", err)
	}
	if err := svc.CancelEvent(context.Background(), event.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for already cancelled event, got %v", err)
	}
}

func TestMarkPrimaryImage(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	event, _ := seedEventWithTicket(store, 5)
	first := &models.EventImage{ID: uuid.New(), EventID: event.ID, Path: "a.png", IsPrimary: true}
	second := &models.EventImage{ID: uuid.New(), EventID: event.ID, Path: "b.png"}
	store.images[first.ID] = first
	store.images[second.ID] = second
	svc := newInventoryService(store)

	if err := svc.MarkPrimaryImage(context.Background(), event.ID, second.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if store.images[first.ID].IsPrimary {
		t.Fatal("previous primary was not cleared")
	}
	if !store.images[second.ID].IsPrimary {
		t.Fatal("new primary was not set")
	}

	foreign := &models.EventImage{ID: uuid.New(), EventID: uuid.New(), Path: "c.png"}
	store.images[foreign.ID] = foreign
	if err := svc.MarkPrimaryImage(context.Background(), event.ID, foreign.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for image of another event, got %v", err)
	}
}

func TestPaymentTransitions(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	_, ticket := seedEventWithTicket(store, 10)
	svc := newInventoryService(store)
	userID := uuid.New()

	res, err := svc.ReserveTicket(context.Background(), userID, ReserveInput{TicketID: ticket.ID, Quantity: 1, PaymentMethod: "card"})
	if err != nil {
		t.Fatalf("reservation failed: %v", err)
	}

	t.Run("complete pending", func(t *testing.T) {
		txn, err := svc.CompletePayment(context.Background(), userID, res.Transaction.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if txn.Status != models.TransactionCompleted {
			t.Fatalf("expected completed, got %s", txn.Status)
		}
	})

	t.Run("double complete rejected", func(t *testing.T) {
		_, err := svc.CompletePayment(context.Background(), userID, res.Transaction.ID)
		if !domain.IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("refund completed", func(t *testing.T) {
		txn, err := svc.RefundPayment(context.Background(), userID, res.Transaction.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if txn.Status != models.TransactionRefunded {
			t.Fatalf("expected refunded, got %s", txn.Status)
		}
	})

	t.Run("foreign transaction invisible", func(t *testing.T) {
		_, err := svc.CompletePayment(context.Background(), uuid.New(), res.Transaction.ID)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
