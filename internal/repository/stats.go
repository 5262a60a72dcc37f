package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/mdzoubir/eventconnect-backend/internal/models"
)

// CompletedTransactionStats returns the count and revenue sum of completed
// transactions for the event's tickets. Zero rows yield zero values.
func (s *Store) CompletedTransactionStats(ctx context.Context, eventID uuid.UUID) (int64, float64, error) {
	var row struct {
		Count int64
		Total float64
	}
	err := s.conn(ctx).Model(&models.Transaction{}).
		Joins("JOIN tickets ON tickets.id = transactions.ticket_id").
		Where("tickets.event_id = ? AND transactions.status = ?", eventID, models.TransactionCompleted).
		Select("COUNT(*) AS count, COALESCE(SUM(transactions.amount), 0) AS total").
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Count, row.Total, nil
}

func (s *Store) WaitlistSize(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	err := s.conn(ctx).Model(&models.Waitlist{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

// AverageRating is 0 for events with no reviews, by the COALESCE default.
func (s *Store) AverageRating(ctx context.Context, eventID uuid.UUID) (float64, error) {
	var avg float64
	err := s.conn(ctx).Model(&models.Review{}).
		Where("event_id = ?", eventID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error
	return avg, err
}
