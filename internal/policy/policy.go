// Package policy decides whether an actor may perform an action on a
// resource. Decisions are a pure function of (actor role, actor identity,
// resource ownership, action) with no side effects, so the rules are
// unit-testable without any transport or storage mounted.
package policy

import (
	"github.com/google/uuid"

	"github.com/mdzoubir/eventconnect-backend/internal/models"
)

type Action string

const (
	ActionEventCreate      Action = "event.create"
	ActionEventUpdate      Action = "event.update"
	ActionEventDelete      Action = "event.delete"
	ActionTicketManage     Action = "ticket.manage"
	ActionUserUpdate       Action = "user.update"
	ActionUserRoleChange   Action = "user.role_change"
	ActionRecordRead       Action = "record.read"
	ActionContactCreate    Action = "contact.create"
	ActionContactList      Action = "contact.list"
	ActionStatisticsView   Action = "statistics.view"
	ActionNotificationRead Action = "notification.read"
)

// Identity is the resolved (user id, role) pair the transport layer hands to
// the core for each request. The zero value is an anonymous caller.
type Identity struct {
	ID   uuid.UUID
	Role models.Role
}

func (id Identity) Anonymous() bool {
	return id.ID == uuid.Nil
}

// Resource describes ownership of the thing being acted on. OwnerID is the
// user the record belongs to (RSVP holder, notification recipient, the user
// record itself). EventOwnerID is the creator of the event the record hangs
// off, for organizer-scoped visibility.
type Resource struct {
	OwnerID      uuid.UUID
	EventOwnerID uuid.UUID
}

type Decision int

const (
	Deny Decision = iota
	Allow
)

// Decide is the single rule table. Unknown actions are denied.
func Decide(actor Identity, action Action, res Resource) Decision {
	switch action {
	case ActionContactCreate:
		// Open to unauthenticated callers.
		return Allow

	case ActionEventCreate:
		return allowIf(actor.Role == models.RoleOrganizer)

	case ActionEventUpdate, ActionEventDelete, ActionTicketManage:
		return allowIf(actor.Role == models.RoleOrganizer && actor.ID == res.EventOwnerID)

	case ActionUserUpdate:
		return allowIf(actor.ID == res.OwnerID ||
			actor.Role == models.RoleAdmin || actor.Role == models.RoleOrganizer)

	case ActionUserRoleChange:
		// The role field is privileged even for the record's owner.
		return allowIf(actor.Role == models.RoleAdmin || actor.Role == models.RoleOrganizer)

	case ActionRecordRead, ActionNotificationRead:
		if actor.Anonymous() {
			return Deny
		}
		if actor.ID == res.OwnerID {
			return Allow
		}
		return allowIf(actor.Role == models.RoleOrganizer && actor.ID == res.EventOwnerID)

	case ActionContactList:
		return allowIf(actor.Role == models.RoleOrganizer)

	case ActionStatisticsView:
		return allowIf(actor.Role == models.RoleAdmin || actor.ID == res.EventOwnerID)
	}
	return Deny
}

// Allowed is a convenience wrapper for handlers.
func Allowed(actor Identity, action Action, res Resource) bool {
	return Decide(actor, action, res) == Allow
}

func allowIf(ok bool) Decision {
	if ok {
		return Allow
	}
	return Deny
}
