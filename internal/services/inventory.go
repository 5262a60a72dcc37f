package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mdzoubir/eventconnect-backend/internal/clock"
	"github.com/mdzoubir/eventconnect-backend/internal/domain"
	"github.com/mdzoubir/eventconnect-backend/internal/models"
)

// InventoryRepository is the storage surface the inventory engine needs.
// WithTx must run fn inside one all-or-nothing transaction; repository
// methods called with the transactional context join it.
type InventoryRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	TicketForUpdate(ctx context.Context, ticketID uuid.UUID) (models.Ticket, error)
	EventByID(ctx context.Context, eventID uuid.UUID) (models.Event, error)
	HasRSVP(ctx context.Context, userID, eventID uuid.UUID) (bool, error)
	DecrementRemaining(ctx context.Context, ticketID uuid.UUID, quantity int) error
	CreateRSVP(ctx context.Context, rsvp *models.RSVP) error
	CreateTransaction(ctx context.Context, txn *models.Transaction) error
	CreateWaitlistEntry(ctx context.Context, entry *models.Waitlist) error
	ActiveTickets(ctx context.Context, eventID uuid.UUID) ([]models.Ticket, error)
	MarkEventDeleted(ctx context.Context, eventID uuid.UUID) error
	ImageByID(ctx context.Context, imageID uuid.UUID) (models.EventImage, error)
	ClearPrimaryImages(ctx context.Context, eventID uuid.UUID) error
	SetPrimaryImage(ctx context.Context, imageID uuid.UUID) error
	TransactionByID(ctx context.Context, id uuid.UUID) (models.Transaction, error)
	UpdateTransactionStatus(ctx context.Context, id uuid.UUID, status models.TransactionStatus) error
	CreateNotification(ctx context.Context, notification *models.Notification) error
	EventRSVPUserIDs(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error)
}

// InventoryService keeps ticket availability and event state consistent under
// concurrent reservation attempts.
type InventoryService struct {
	repo  InventoryRepository
	clock clock.Clock
	log   *zerolog.Logger
}

func NewInventoryService(repo InventoryRepository, clk clock.Clock, log *zerolog.Logger) *InventoryService {
	return &InventoryService{repo: repo, clock: clk, log: log}
}

type ReserveInput struct {
	TicketID      uuid.UUID
	Quantity      int
	Status        models.RSVPStatus
	Notes         string
	PaymentMethod string
}

type Reservation struct {
	RSVP        models.RSVP
	Transaction models.Transaction
}

// ReserveTicket decrements inventory and creates the RSVP/Transaction pair as
// one atomic unit. Under concurrent attempts on the last remaining seats at
// most one caller wins; the rest get ErrSoldOut.
func (s *InventoryService) ReserveTicket(ctx context.Context, userID uuid.UUID, in ReserveInput) (Reservation, error) {
	if in.Quantity < 1 {
		return Reservation{}, domain.Validation("quantity", "must be at least 1")
	}
	status := in.Status
	if status == "" {
		status = models.RSVPAttending
	}
	if !status.Valid() {
		return Reservation{}, domain.Validationf("status", "unknown RSVP status %q", in.Status)
	}

	var result Reservation
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		ticket, err := s.repo.TicketForUpdate(txCtx, in.TicketID)
		if err != nil {
			return err
		}
		event, err := s.repo.EventByID(txCtx, ticket.EventID)
		if err != nil {
			return err
		}
		if event.IsDeleted {
			return domain.ErrNotFound
		}

		now := s.clock.Now()
		if !now.Before(event.StartTime) {
			return domain.Validation("event", "cannot RSVP for an event that has already started")
		}
		if ticket.Remaining < in.Quantity {
			return domain.ErrSoldOut
		}
		if !ticket.OnSale(now) {
			return domain.ErrTicketInactive
		}

		exists, err := s.repo.HasRSVP(txCtx, userID, ticket.EventID)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicateRSVP
		}

		// The guarded update re-checks remaining >= quantity, so a racing
		// reservation that slipped past the read still cannot oversell.
		if err := s.repo.DecrementRemaining(txCtx, ticket.ID, in.Quantity); err != nil {
			return err
		}

		rsvp := models.RSVP{
			UserID:   userID,
			EventID:  ticket.EventID,
			TicketID: ticket.ID,
			Quantity: in.Quantity,
			Status:   status,
			Notes:    in.Notes,
		}
		if err := s.repo.CreateRSVP(txCtx, &rsvp); err != nil {
			return err
		}

		txn := models.Transaction{
			UserID:        userID,
			TicketID:      ticket.ID,
			Amount:        ticket.Price * float64(in.Quantity),
			PaymentMethod: in.PaymentMethod,
			Status:        models.TransactionPending,
		}
		if err := s.repo.CreateTransaction(txCtx, &txn); err != nil {
			return err
		}

		confirmation := models.Notification{
			UserID:  userID,
			Type:    models.NotificationUpdate,
			Content: fmt.Sprintf("Your RSVP for %s is confirmed.", event.Title),
		}
		if err := s.repo.CreateNotification(txCtx, &confirmation); err != nil {
			return err
		}

		result = Reservation{RSVP: rsvp, Transaction: txn}
		return nil
	})
	if err != nil {
		return Reservation{}, err
	}

	s.log.Info().
		Str("user_id", userID.String()).
		Str("ticket_id", in.TicketID.String()).
		Int("quantity", in.Quantity).
		Msg("ticket reserved")
	return result, nil
}

// JoinWaitlist inserts an unnotified entry; the unique (event, user)
// constraint rejects a concurrent duplicate join.
func (s *InventoryService) JoinWaitlist(ctx context.Context, eventID, userID uuid.UUID) (models.Waitlist, error) {
	event, err := s.repo.EventByID(ctx, eventID)
	if err != nil {
		return models.Waitlist{}, err
	}
	if event.IsDeleted {
		return models.Waitlist{}, domain.ErrNotFound
	}

	entry := models.Waitlist{
		EventID:  eventID,
		UserID:   userID,
		JoinedAt: s.clock.Now(),
	}
	if err := s.repo.CreateWaitlistEntry(ctx, &entry); err != nil {
		return models.Waitlist{}, err
	}
	return entry, nil
}

// IsSoldOut reports whether every active ticket tier of the event has zero
// remaining inventory.
func (s *InventoryService) IsSoldOut(ctx context.Context, eventID uuid.UUID) (bool, error) {
	tickets, err := s.repo.ActiveTickets(ctx, eventID)
	if err != nil {
		return false, err
	}
	for _, t := range tickets {
		if t.Remaining > 0 {
			return false, nil
		}
	}
	return true, nil
}

// CancelEvent soft-deletes the event and notifies everyone holding an RSVP.
// The row is never physically removed, so history keeps resolving.
func (s *InventoryService) CancelEvent(ctx context.Context, eventID uuid.UUID) error {
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		event, err := s.repo.EventByID(txCtx, eventID)
		if err != nil {
			return err
		}
		if event.IsDeleted {
			return domain.ErrNotFound
		}
		if err := s.repo.MarkEventDeleted(txCtx, eventID); err != nil {
			return err
		}

		userIDs, err := s.repo.EventRSVPUserIDs(txCtx, eventID)
		if err != nil {
			return err
		}
		for _, userID := range userIDs {
			notification := models.Notification{
				UserID:  userID,
				Type:    models.NotificationUpdate,
				Content: fmt.Sprintf("%s has been cancelled.", event.Title),
			}
			if err := s.repo.CreateNotification(txCtx, &notification); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info().Str("event_id", eventID.String()).Msg("event cancelled")
	return nil
}

// MarkPrimaryImage clears is_primary on the event's other images and sets the
// new one inside one transaction. If two primary-sets race, the last commit
// wins; only one survives as primary.
func (s *InventoryService) MarkPrimaryImage(ctx context.Context, eventID, imageID uuid.UUID) error {
	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		image, err := s.repo.ImageByID(txCtx, imageID)
		if err != nil {
			return err
		}
		if image.EventID != eventID {
			return domain.ErrNotFound
		}
		if err := s.repo.ClearPrimaryImages(txCtx, eventID); err != nil {
			return err
		}
		return s.repo.SetPrimaryImage(txCtx, imageID)
	})
}

// CompletePayment transitions a pending transaction to completed. No gateway
// is involved; payment is modeled as this status change only.
func (s *InventoryService) CompletePayment(ctx context.Context, userID, txnID uuid.UUID) (models.Transaction, error) {
	return s.transitionPayment(ctx, userID, txnID, models.TransactionPending, models.TransactionCompleted)
}

// RefundPayment transitions a completed transaction to refunded.
func (s *InventoryService) RefundPayment(ctx context.Context, userID, txnID uuid.UUID) (models.Transaction, error) {
	return s.transitionPayment(ctx, userID, txnID, models.TransactionCompleted, models.TransactionRefunded)
}

func (s *InventoryService) transitionPayment(ctx context.Context, userID, txnID uuid.UUID, from, to models.TransactionStatus) (models.Transaction, error) {
	txn, err := s.repo.TransactionByID(ctx, txnID)
	if err != nil {
		return models.Transaction{}, err
	}
	if txn.UserID != userID {
		// Foreign transactions are invisible, not merely forbidden.
		return models.Transaction{}, domain.ErrNotFound
	}
	if txn.Status != from {
		return models.Transaction{}, domain.Validationf("status", "transaction is %s, expected %s", txn.Status, from)
	}
	if err := s.repo.UpdateTransactionStatus(ctx, txnID, to); err != nil {
		return models.Transaction{}, err
	}
	txn.Status = to
	return txn, nil
}
