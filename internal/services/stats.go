package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mdzoubir/eventconnect-backend/internal/domain"
	"github.com/mdzoubir/eventconnect-backend/internal/models"
	"github.com/mdzoubir/eventconnect-backend/internal/policy"
)

// StatsRepository exposes the relational aggregates the rollup is built
// from. Implementations must return zero-row defaults (0 count, 0 sum,
// 0 average), never NULL or NaN.
type StatsRepository interface {
	EventAnyByID(ctx context.Context, id uuid.UUID) (models.Event, error)
	CompletedTransactionStats(ctx context.Context, eventID uuid.UUID) (count int64, total float64, err error)
	WaitlistSize(ctx context.Context, eventID uuid.UUID) (int64, error)
	AverageRating(ctx context.Context, eventID uuid.UUID) (float64, error)
}

// StatsService computes read-only per-event rollups, restricted to the
// event's creator or an admin.
type StatsService struct {
	repo StatsRepository
	log  *zerolog.Logger
}

func NewStatsService(repo StatsRepository, log *zerolog.Logger) *StatsService {
	return &StatsService{repo: repo, log: log}
}

type EventStatistics struct {
	EventID          uuid.UUID `json:"event_id"`
	TransactionCount int64     `json:"transaction_count"`
	TotalRevenue     float64   `json:"total_revenue"`
	WaitlistSize     int64     `json:"waitlist_size"`
	AverageRating    float64   `json:"average_rating"`
}

// EventStatistics aggregates over the full history, including soft-deleted
// events the caller still owns.
func (s *StatsService) EventStatistics(ctx context.Context, actor policy.Identity, eventID uuid.UUID) (EventStatistics, error) {
	event, err := s.repo.EventAnyByID(ctx, eventID)
	if err != nil {
		return EventStatistics{}, err
	}
	if !policy.Allowed(actor, policy.ActionStatisticsView, policy.Resource{EventOwnerID: event.CreatorID}) {
		return EventStatistics{}, domain.ErrForbidden
	}

	count, total, err := s.repo.CompletedTransactionStats(ctx, eventID)
	if err != nil {
		return EventStatistics{}, err
	}
	waitlist, err := s.repo.WaitlistSize(ctx, eventID)
	if err != nil {
		return EventStatistics{}, err
	}
	rating, err := s.repo.AverageRating(ctx, eventID)
	if err != nil {
		return EventStatistics{}, err
	}

	return EventStatistics{
		EventID:          eventID,
		TransactionCount: count,
		TotalRevenue:     total,
		WaitlistSize:     waitlist,
		AverageRating:    rating,
	}, nil
}
