package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mdzoubir/eventconnect-backend/internal/domain"
	"github.com/mdzoubir/eventconnect-backend/internal/models"
)

// TicketForUpdate loads a ticket under a row lock so concurrent reservations
// of the same tier serialize. Call inside WithTx only.
func (s *Store) TicketForUpdate(ctx context.Context, ticketID uuid.UUID) (models.Ticket, error) {
	var ticket models.Ticket
	err := s.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ticket, "id = ?", ticketID).Error
	if err != nil {
		return models.Ticket{}, notFound(err)
	}
	return ticket, nil
}

func (s *Store) EventByID(ctx context.Context, eventID uuid.UUID) (models.Event, error) {
	var event models.Event
	err := s.conn(ctx).First(&event, "id = ?", eventID).Error
	if err != nil {
		return models.Event{}, notFound(err)
	}
	return event, nil
}

func (s *Store) HasRSVP(ctx context.Context, userID, eventID uuid.UUID) (bool, error) {
	var count int64
	err := s.conn(ctx).Model(&models.RSVP{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&count).Error
	return count > 0, err
}

// DecrementRemaining is guarded: the WHERE re-checks the remaining count, so
// even without the row lock a racing decrement cannot push inventory below
// zero. Zero affected rows means the seats are gone.
func (s *Store) DecrementRemaining(ctx context.Context, ticketID uuid.UUID, quantity int) error {
	res := s.conn(ctx).Model(&models.Ticket{}).
		Where("id = ? AND remaining >= ?", ticketID, quantity).
		UpdateColumn("remaining", gorm.Expr("remaining - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrSoldOut
	}
	return nil
}

func (s *Store) CreateRSVP(ctx context.Context, rsvp *models.RSVP) error {
	return duplicate(s.conn(ctx).Create(rsvp).Error, domain.ErrDuplicateRSVP)
}

func (s *Store) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	return s.conn(ctx).Create(txn).Error
}

func (s *Store) CreateWaitlistEntry(ctx context.Context, entry *models.Waitlist) error {
	return duplicate(s.conn(ctx).Create(entry).Error, domain.ErrAlreadyOnWaitlist)
}

func (s *Store) ActiveTickets(ctx context.Context, eventID uuid.UUID) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := s.conn(ctx).
		Where("event_id = ? AND is_active = ?", eventID, true).
		Order("price ASC").
		Find(&tickets).Error
	return tickets, err
}

func (s *Store) MarkEventDeleted(ctx context.Context, eventID uuid.UUID) error {
	res := s.conn(ctx).Model(&models.Event{}).
		Where("id = ? AND is_deleted = ?", eventID, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) ImageByID(ctx context.Context, imageID uuid.UUID) (models.EventImage, error) {
	var image models.EventImage
	err := s.conn(ctx).First(&image, "id = ?", imageID).Error
	if err != nil {
		return models.EventImage{}, notFound(err)
	}
	return image, nil
}

func (s *Store) CreateImage(ctx context.Context, image *models.EventImage) error {
	return s.conn(ctx).Create(image).Error
}

func (s *Store) ClearPrimaryImages(ctx context.Context, eventID uuid.UUID) error {
	return s.conn(ctx).Model(&models.EventImage{}).
		Where("event_id = ? AND is_primary = ?", eventID, true).
		Update("is_primary", false).Error
}

func (s *Store) SetPrimaryImage(ctx context.Context, imageID uuid.UUID) error {
	res := s.conn(ctx).Model(&models.EventImage{}).
		Where("id = ?", imageID).
		Update("is_primary", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) TransactionByID(ctx context.Context, id uuid.UUID) (models.Transaction, error) {
	var txn models.Transaction
	err := s.conn(ctx).First(&txn, "id = ?", id).Error
	if err != nil {
		return models.Transaction{}, notFound(err)
	}
	return txn, nil
}

func (s *Store) UpdateTransactionStatus(ctx context.Context, id uuid.UUID, status models.TransactionStatus) error {
	res := s.conn(ctx).Model(&models.Transaction{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) TransactionsByUser(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := s.conn(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&txns).Error
	return txns, err
}

func (s *Store) RSVPByID(ctx context.Context, id uuid.UUID) (models.RSVP, error) {
	var rsvp models.RSVP
	err := s.conn(ctx).Preload("Event").Preload("Ticket").First(&rsvp, "id = ?", id).Error
	if err != nil {
		return models.RSVP{}, notFound(err)
	}
	return rsvp, nil
}

func (s *Store) RSVPsByUser(ctx context.Context, userID uuid.UUID) ([]models.RSVP, error) {
	var rsvps []models.RSVP
	err := s.conn(ctx).
		Preload("Event").Preload("Ticket").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rsvps).Error
	return rsvps, err
}

func (s *Store) RSVPsByEvent(ctx context.Context, eventID uuid.UUID) ([]models.RSVP, error) {
	var rsvps []models.RSVP
	err := s.conn(ctx).
		Preload("User").Preload("Ticket").
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&rsvps).Error
	return rsvps, err
}

func (s *Store) SaveRSVP(ctx context.Context, rsvp *models.RSVP) error {
	return s.conn(ctx).Save(rsvp).Error
}

func (s *Store) HasAttendingRSVP(ctx context.Context, userID, eventID uuid.UUID) (bool, error) {
	var count int64
	err := s.conn(ctx).Model(&models.RSVP{}).
		Where("user_id = ? AND event_id = ? AND status = ?", userID, eventID, models.RSVPAttending).
		Count(&count).Error
	return count > 0, err
}

func (s *Store) EventRSVPUserIDs(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.conn(ctx).Model(&models.RSVP{}).
		Where("event_id = ?", eventID).
		Pluck("user_id", &ids).Error
	return ids, err
}

func (s *Store) WaitlistByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Waitlist, error) {
	var entries []models.Waitlist
	err := s.conn(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Order("joined_at ASC").
		Find(&entries).Error
	return entries, err
}
