package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mdzoubir/eventconnect-backend/internal/domain"
	"github.com/mdzoubir/eventconnect-backend/internal/models"
	"github.com/mdzoubir/eventconnect-backend/internal/query"
)

// ListEvents returns one page of active events matching the spec together
// with the total count before pagination.
func (s *Store) ListEvents(ctx context.Context, spec query.Spec, now time.Time) ([]models.Event, int64, error) {
	q := s.conn(ctx).Model(&models.Event{})
	if !spec.IncludeDeleted {
		q = q.Where("events.is_deleted = ?", false)
	}

	if spec.Category != "" {
		q = q.Joins("JOIN event_categories ON event_categories.id = events.category_id").
			Where("LOWER(event_categories.name) = LOWER(?)", spec.Category)
	}

	switch spec.Sorting {
	case query.SortRecent:
		q = q.Order("events.created_at DESC")
	case query.SortUpcoming:
		q = q.Where("events.start_time >= ?", now).Order("events.start_time ASC")
	default:
		q = q.Order("events.created_at DESC")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []models.Event
	err := q.
		Preload("Category").Preload("Location").Preload("Tags").
		Offset(spec.Offset()).Limit(spec.PageSize).
		Find(&events).Error
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// EventDetail loads an active event with its relations.
func (s *Store) EventDetail(ctx context.Context, id uuid.UUID) (models.Event, error) {
	var event models.Event
	err := s.conn(ctx).
		Preload("Category").Preload("Location").Preload("Tags").
		Preload("Images").Preload("Tickets").
		First(&event, "id = ? AND is_deleted = ?", id, false).Error
	if err != nil {
		return models.Event{}, notFound(err)
	}
	return event, nil
}

// EventAnyByID ignores the soft-delete flag; statistics and history views
// need cancelled events too.
func (s *Store) EventAnyByID(ctx context.Context, id uuid.UUID) (models.Event, error) {
	var event models.Event
	err := s.conn(ctx).First(&event, "id = ?", id).Error
	if err != nil {
		return models.Event{}, notFound(err)
	}
	return event, nil
}

// ActiveEvents returns all non-deleted events with categories preloaded.
func (s *Store) ActiveEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := s.conn(ctx).
		Preload("Category").
		Where("is_deleted = ?", false).
		Order("start_time ASC").
		Find(&events).Error
	return events, err
}

func (s *Store) EventsByCreator(ctx context.Context, creatorID uuid.UUID) ([]models.Event, error) {
	var events []models.Event
	err := s.conn(ctx).
		Preload("Category").Preload("Location").
		Where("creator_id = ? AND is_deleted = ?", creatorID, false).
		Order("created_at DESC").
		Find(&events).Error
	return events, err
}

func (s *Store) CreateEvent(ctx context.Context, event *models.Event) error {
	return s.conn(ctx).Create(event).Error
}

func (s *Store) SaveEvent(ctx context.Context, event *models.Event) error {
	return s.conn(ctx).Save(event).Error
}

func (s *Store) CategoryByName(ctx context.Context, name string) (models.EventCategory, error) {
	var category models.EventCategory
	err := s.conn(ctx).First(&category, "LOWER(name) = LOWER(?)", name).Error
	if err != nil {
		return models.EventCategory{}, notFound(err)
	}
	return category, nil
}

func (s *Store) CreateCategory(ctx context.Context, category *models.EventCategory) error {
	return s.conn(ctx).Create(category).Error
}

// CategoriesInUse lists only categories that currently have at least one
// active event.
func (s *Store) CategoriesInUse(ctx context.Context) ([]models.EventCategory, error) {
	var categories []models.EventCategory
	err := s.conn(ctx).
		Joins("JOIN events ON events.category_id = event_categories.id AND events.is_deleted = ?", false).
		Distinct().
		Order("event_categories.name ASC").
		Find(&categories).Error
	return categories, err
}

func (s *Store) TagByName(ctx context.Context, name string) (models.EventTag, error) {
	var tag models.EventTag
	err := s.conn(ctx).First(&tag, "name = ?", name).Error
	if err != nil {
		return models.EventTag{}, notFound(err)
	}
	return tag, nil
}

func (s *Store) CreateTag(ctx context.Context, tag *models.EventTag) error {
	return s.conn(ctx).Create(tag).Error
}

func (s *Store) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	return duplicate(s.conn(ctx).Create(ticket).Error, domain.ErrDuplicateTicketName)
}

func (s *Store) TicketByID(ctx context.Context, id uuid.UUID) (models.Ticket, error) {
	var ticket models.Ticket
	err := s.conn(ctx).First(&ticket, "id = ?", id).Error
	if err != nil {
		return models.Ticket{}, notFound(err)
	}
	return ticket, nil
}

func (s *Store) TicketsByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := s.conn(ctx).
		Where("event_id = ?", eventID).
		Order("price ASC").
		Find(&tickets).Error
	return tickets, err
}

func (s *Store) SaveTicket(ctx context.Context, ticket *models.Ticket) error {
	return duplicate(s.conn(ctx).Save(ticket).Error, domain.ErrDuplicateTicketName)
}

func (s *Store) DeleteTicket(ctx context.Context, id uuid.UUID) error {
	res := s.conn(ctx).Delete(&models.Ticket{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
