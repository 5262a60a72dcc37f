package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/mdzoubir/eventconnect-backend/internal/domain"
	"github.com/mdzoubir/eventconnect-backend/internal/models"
)

func (s *Store) CreateReview(ctx context.Context, review *models.Review) error {
	return s.conn(ctx).Create(review).Error
}

func (s *Store) ReviewsByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := s.conn(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (s *Store) CreateNotification(ctx context.Context, notification *models.Notification) error {
	return s.conn(ctx).Create(notification).Error
}

func (s *Store) NotificationsByUser(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.conn(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

// MarkNotificationRead flips is_read for one notification, scoped to its
// owner so a foreign id reads as absent.
func (s *Store) MarkNotificationRead(ctx context.Context, id, userID uuid.UUID) error {
	res := s.conn(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := s.conn(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (s *Store) CreateMessage(ctx context.Context, message *models.Message) error {
	return s.conn(ctx).Create(message).Error
}

// MessagesForUser returns the user's sent and received messages, newest
// first.
func (s *Store) MessagesForUser(ctx context.Context, userID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := s.conn(ctx).
		Preload("Sender").Preload("Receiver").
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&messages).Error
	return messages, err
}

func (s *Store) CreateContact(ctx context.Context, contact *models.Contact) error {
	return s.conn(ctx).Create(contact).Error
}

func (s *Store) ListContacts(ctx context.Context) ([]models.Contact, error) {
	var contacts []models.Contact
	err := s.conn(ctx).Order("sent_at DESC").Find(&contacts).Error
	return contacts, err
}

func (s *Store) CreateSubscriber(ctx context.Context, subscriber *models.Subscriber) error {
	return duplicate(s.conn(ctx).Create(subscriber).Error, domain.ErrAlreadySubscribed)
}

func (s *Store) ListSubscribers(ctx context.Context) ([]models.Subscriber, error) {
	var subscribers []models.Subscriber
	err := s.conn(ctx).Order("subscribed_at DESC").Find(&subscribers).Error
	return subscribers, err
}
