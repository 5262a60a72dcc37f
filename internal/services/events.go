package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mdzoubir/eventconnect-backend/internal/clock"
	"github.com/mdzoubir/eventconnect-backend/internal/domain"
	"github.com/mdzoubir/eventconnect-backend/internal/models"
	"github.com/mdzoubir/eventconnect-backend/internal/policy"
)

// EventRepository is the storage surface for event authoring.
type EventRepository interface {
	LocationRepository
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CategoryByName(ctx context.Context, name string) (models.EventCategory, error)
	CreateCategory(ctx context.Context, category *models.EventCategory) error
	TagByName(ctx context.Context, name string) (models.EventTag, error)
	CreateTag(ctx context.Context, tag *models.EventTag) error
	CreateEvent(ctx context.Context, event *models.Event) error
	EventAnyByID(ctx context.Context, id uuid.UUID) (models.Event, error)
	SaveEvent(ctx context.Context, event *models.Event) error
}

// EventService handles organizer-side event authoring: creation and updates
// with nested location, category and tag resolution.
type EventService struct {
	repo  EventRepository
	clock clock.Clock
	log   *zerolog.Logger
}

func NewEventService(repo EventRepository, clk clock.Clock, log *zerolog.Logger) *EventService {
	return &EventService{repo: repo, clock: clk, log: log}
}

type CreateEventInput struct {
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Location    LocationInput
	Category    string
	Tags        []string
	Capacity    int
	Price       float64
	MinimumAge  *int
	Status      models.EventStatus
}

// CreateEvent validates the schedule, resolves the nested location, category
// and tags, and persists the event in one transaction. Only organizers may
// create events.
func (s *EventService) CreateEvent(ctx context.Context, actor policy.Identity, in CreateEventInput) (models.Event, error) {
	if !policy.Allowed(actor, policy.ActionEventCreate, policy.Resource{}) {
		return models.Event{}, domain.ErrForbidden
	}
	if strings.TrimSpace(in.Title) == "" {
		return models.Event{}, domain.Validation("title", "is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return models.Event{}, domain.Validation("description", "is required")
	}
	now := s.clock.Now()
	if !in.StartTime.After(now) {
		return models.Event{}, domain.Validation("start_datetime", "must be in the future")
	}
	if in.EndTime.Before(in.StartTime) {
		return models.Event{}, domain.Validation("end_datetime", "must not be before start_datetime")
	}
	if in.Capacity < 1 {
		return models.Event{}, domain.Validation("capacity", "must be at least 1")
	}
	if in.Price < 0 {
		return models.Event{}, domain.Validation("price", "must not be negative")
	}
	if in.MinimumAge != nil && *in.MinimumAge < 0 {
		return models.Event{}, domain.Validation("minimum_age", "must not be negative")
	}
	status := in.Status
	if status == "" {
		status = models.EventDraft
	}
	if !status.Valid() {
		return models.Event{}, domain.Validationf("status", "unknown status %q", in.Status)
	}

	event := models.Event{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		CreatorID:   actor.ID,
		Capacity:    in.Capacity,
		Price:       in.Price,
		MinimumAge:  in.MinimumAge,
		Status:      status,
	}

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		location, err := resolveLocation(txCtx, s.repo, in.Location)
		if err != nil {
			return err
		}
		event.LocationID = location.ID
		event.Location = &location

		if name := strings.TrimSpace(in.Category); name != "" {
			category, err := s.resolveCategory(txCtx, name)
			if err != nil {
				return err
			}
			event.CategoryID = &category.ID
			event.Category = &category
		}

		tags, err := s.resolveTags(txCtx, in.Tags)
		if err != nil {
			return err
		}
		event.Tags = tags

		return s.repo.CreateEvent(txCtx, &event)
	})
	if err != nil {
		return models.Event{}, err
	}

	s.log.Info().
		Str("event_id", event.ID.String()).
		Str("creator_id", actor.ID.String()).
		Msg("event created")
	return event, nil
}

type UpdateEventInput struct {
	Title       *string
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
	Location    *LocationInput
	Category    *string
	Tags        []string
	Capacity    *int
	Price       *float64
	MinimumAge  *int
	Status      *models.EventStatus
}

// UpdateEvent applies a partial update. Only the creating organizer may
// update; soft-deleted events are invisible.
func (s *EventService) UpdateEvent(ctx context.Context, actor policy.Identity, eventID uuid.UUID, in UpdateEventInput) (models.Event, error) {
	var event models.Event
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		event, err = s.repo.EventAnyByID(txCtx, eventID)
		if err != nil {
			return err
		}
		if event.IsDeleted {
			return domain.ErrNotFound
		}
		if !policy.Allowed(actor, policy.ActionEventUpdate, policy.Resource{EventOwnerID: event.CreatorID}) {
			return domain.ErrForbidden
		}

		if in.Title != nil {
			if strings.TrimSpace(*in.Title) == "" {
				return domain.Validation("title", "is required")
			}
			event.Title = strings.TrimSpace(*in.Title)
		}
		if in.Description != nil {
			event.Description = *in.Description
		}
		if in.StartTime != nil {
			event.StartTime = *in.StartTime
		}
		if in.EndTime != nil {
			event.EndTime = *in.EndTime
		}
		if event.EndTime.Before(event.StartTime) {
			return domain.Validation("end_datetime", "must not be before start_datetime")
		}
		if in.Capacity != nil {
			if *in.Capacity < 1 {
				return domain.Validation("capacity", "must be at least 1")
			}
			event.Capacity = *in.Capacity
		}
		if in.Price != nil {
			if *in.Price < 0 {
				return domain.Validation("price", "must not be negative")
			}
			event.Price = *in.Price
		}
		if in.MinimumAge != nil {
			event.MinimumAge = in.MinimumAge
		}
		if in.Status != nil {
			if !in.Status.Valid() {
				return domain.Validationf("status", "unknown status %q", *in.Status)
			}
			event.Status = *in.Status
		}
		if in.Location != nil {
			location, err := resolveLocation(txCtx, s.repo, *in.Location)
			if err != nil {
				return err
			}
			event.LocationID = location.ID
			event.Location = &location
		}
		if in.Category != nil {
			if name := strings.TrimSpace(*in.Category); name == "" {
				event.CategoryID = nil
				event.Category = nil
			} else {
				category, err := s.resolveCategory(txCtx, name)
				if err != nil {
					return err
				}
				event.CategoryID = &category.ID
				event.Category = &category
			}
		}
		if in.Tags != nil {
			tags, err := s.resolveTags(txCtx, in.Tags)
			if err != nil {
				return err
			}
			event.Tags = tags
		}
		return s.repo.SaveEvent(txCtx, &event)
	})
	if err != nil {
		return models.Event{}, err
	}
	return event, nil
}

// resolveCategory reuses an existing category of the same name, creating it
// otherwise. Lookup is case-insensitive.
func (s *EventService) resolveCategory(ctx context.Context, name string) (models.EventCategory, error) {
	category, err := s.repo.CategoryByName(ctx, name)
	if err == nil {
		return category, nil
	}
	if err != domain.ErrNotFound {
		return models.EventCategory{}, err
	}
	category = models.EventCategory{Name: name}
	if err := s.repo.CreateCategory(ctx, &category); err != nil {
		return models.EventCategory{}, err
	}
	return category, nil
}

func (s *EventService) resolveTags(ctx context.Context, names []string) ([]models.EventTag, error) {
	var tags []models.EventTag
	seen := make(map[string]bool)
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		tag, err := s.repo.TagByName(ctx, name)
		if err == domain.ErrNotFound {
			tag = models.EventTag{Name: name}
			err = s.repo.CreateTag(ctx, &tag)
		}
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
