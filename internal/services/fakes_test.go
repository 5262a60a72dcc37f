package services

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mdzoubir/eventconnect-backend/internal/domain"
	"github.com/mdzoubir/eventconnect-backend/internal/models"
)

// fakeStore is an in-memory implementation of the repository interfaces.
// WithTx holds the store lock for the whole callback, mirroring the row-lock
// serialization the real store gets from SELECT ... FOR UPDATE.
type fakeStore struct {
	mu sync.Mutex

	tickets       map[uuid.UUID]*models.Ticket
	events        map[uuid.UUID]*models.Event
	images        map[uuid.UUID]*models.EventImage
	users         map[uuid.UUID]*models.User
	locations     map[uuid.UUID]*models.Location
	txns          map[uuid.UUID]*models.Transaction
	categories    map[uuid.UUID]*models.EventCategory
	tags          map[uuid.UUID]*models.EventTag
	rsvps         []*models.RSVP
	waitlist      []*models.Waitlist
	reviews       []*models.Review
	notifications []*models.Notification
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tickets:    make(map[uuid.UUID]*models.Ticket),
		events:     make(map[uuid.UUID]*models.Event),
		images:     make(map[uuid.UUID]*models.EventImage),
		users:      make(map[uuid.UUID]*models.User),
		locations:  make(map[uuid.UUID]*models.Location),
		txns:       make(map[uuid.UUID]*models.Transaction),
		categories: make(map[uuid.UUID]*models.EventCategory),
		tags:       make(map[uuid.UUID]*models.EventTag),
	}
}

func (f *fakeStore) addEvent(e models.Event) *models.Event {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	f.events[e.ID] = &e
	return &e
}

func (f *fakeStore) addTicket(t models.Ticket) *models.Ticket {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	f.tickets[t.ID] = &t
	return &t
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

func (f *fakeStore) TicketForUpdate(ctx context.Context, ticketID uuid.UUID) (models.Ticket, error) {
	t, ok := f.tickets[ticketID]
	if !ok {
		return models.Ticket{}, domain.ErrNotFound
	}
	return *t, nil
}

func (f *fakeStore) EventByID(ctx context.Context, eventID uuid.UUID) (models.Event, error) {
	e, ok := f.events[eventID]
	if !ok {
		return models.Event{}, domain.ErrNotFound
	}
	return *e, nil
}

func (f *fakeStore) HasRSVP(ctx context.Context, userID, eventID uuid.UUID) (bool, error) {
	for _, r := range f.rsvps {
		if r.UserID == userID && r.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) DecrementRemaining(ctx context.Context, ticketID uuid.UUID, quantity int) error {
	t, ok := f.tickets[ticketID]
	if !ok {
		return domain.ErrNotFound
	}
	if t.Remaining < quantity {
		return domain.ErrSoldOut
	}
	t.Remaining -= quantity
	return nil
}

func (f *fakeStore) CreateRSVP(ctx context.Context, rsvp *models.RSVP) error {
	for _, r := range f.rsvps {
		if r.UserID == rsvp.UserID && r.EventID == rsvp.EventID {
			return domain.ErrDuplicateRSVP
		}
	}
	if rsvp.ID == uuid.Nil {
		rsvp.ID = uuid.New()
	}
	stored := *rsvp
	f.rsvps = append(f.rsvps, &stored)
	return nil
}

func (f *fakeStore) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	if txn.TransactionID == "" {
		txn.TransactionID = uuid.New().String()
	}
	stored := *txn
	f.txns[txn.ID] = &stored
	return nil
}

func (f *fakeStore) CreateWaitlistEntry(ctx context.Context, entry *models.Waitlist) error {
	for _, w := range f.waitlist {
		if w.EventID == entry.EventID && w.UserID == entry.UserID {
			return domain.ErrAlreadyOnWaitlist
		}
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	stored := *entry
	f.waitlist = append(f.waitlist, &stored)
	return nil
}

func (f *fakeStore) ActiveTickets(ctx context.Context, eventID uuid.UUID) ([]models.Ticket, error) {
	var out []models.Ticket
	for _, t := range f.tickets {
		if t.EventID == eventID && t.IsActive {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeStore) MarkEventDeleted(ctx context.Context, eventID uuid.UUID) error {
	e, ok := f.events[eventID]
	if !ok {
		return domain.ErrNotFound
	}
	e.IsDeleted = true
	return nil
}

func (f *fakeStore) ImageByID(ctx context.Context, imageID uuid.UUID) (models.EventImage, error) {
	img, ok := f.images[imageID]
	if !ok {
		return models.EventImage{}, domain.ErrNotFound
	}
	return *img, nil
}

func (f *fakeStore) ClearPrimaryImages(ctx context.Context, eventID uuid.UUID) error {
	for _, img := range f.images {
		if img.EventID == eventID {
			img.IsPrimary = false
		}
	}
	return nil
}

func (f *fakeStore) SetPrimaryImage(ctx context.Context, imageID uuid.UUID) error {
	img, ok := f.images[imageID]
	if !ok {
		return domain.ErrNotFound
	}
	img.IsPrimary = true
	return nil
}

func (f *fakeStore) TransactionByID(ctx context.Context, id uuid.UUID) (models.Transaction, error) {
	t, ok := f.txns[id]
	if !ok {
		return models.Transaction{}, domain.ErrNotFound
	}
	return *t, nil
}

func (f *fakeStore) UpdateTransactionStatus(ctx context.Context, id uuid.UUID, status models.TransactionStatus) error {
	t, ok := f.txns[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.Status = status
	return nil
}

func (f *fakeStore) CreateNotification(ctx context.Context, notification *models.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	stored := *notification
	f.notifications = append(f.notifications, &stored)
	return nil
}

func (f *fakeStore) EventRSVPUserIDs(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, r := range f.rsvps {
		if r.EventID == eventID {
			ids = append(ids, r.UserID)
		}
	}
	return ids, nil
}

func (f *fakeStore) LocationByName(ctx context.Context, name string) (models.Location, error) {
	for _, l := range f.locations {
		if strings.EqualFold(l.Name, name) {
			return *l, nil
		}
	}
	return models.Location{}, domain.ErrNotFound
}

func (f *fakeStore) CreateLocation(ctx context.Context, location *models.Location) error {
	if location.ID == uuid.Nil {
		location.ID = uuid.New()
	}
	stored := *location
	f.locations[location.ID] = &stored
	return nil
}

func (f *fakeStore) SaveLocation(ctx context.Context, location *models.Location) error {
	stored := *location
	f.locations[location.ID] = &stored
	return nil
}

func (f *fakeStore) CreateUser(ctx context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeStore) UserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return models.User{}, domain.ErrNotFound
	}
	return *u, nil
}

func (f *fakeStore) SaveUser(ctx context.Context, user *models.User) error {
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeStore) EventAnyByID(ctx context.Context, id uuid.UUID) (models.Event, error) {
	return f.EventByID(ctx, id)
}

func (f *fakeStore) CategoryByName(ctx context.Context, name string) (models.EventCategory, error) {
	for _, c := range f.categories {
		if strings.EqualFold(c.Name, name) {
			return *c, nil
		}
	}
	return models.EventCategory{}, domain.ErrNotFound
}

func (f *fakeStore) CreateCategory(ctx context.Context, category *models.EventCategory) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	stored := *category
	f.categories[category.ID] = &stored
	return nil
}

func (f *fakeStore) TagByName(ctx context.Context, name string) (models.EventTag, error) {
	for _, tag := range f.tags {
		if tag.Name == name {
			return *tag, nil
		}
	}
	return models.EventTag{}, domain.ErrNotFound
}

func (f *fakeStore) CreateTag(ctx context.Context, tag *models.EventTag) error {
	if tag.ID == uuid.Nil {
		tag.ID = uuid.New()
	}
	stored := *tag
	f.tags[tag.ID] = &stored
	return nil
}

func (f *fakeStore) CreateEvent(ctx context.Context, event *models.Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	stored := *event
	f.events[event.ID] = &stored
	return nil
}

func (f *fakeStore) SaveEvent(ctx context.Context, event *models.Event) error {
	stored := *event
	f.events[event.ID] = &stored
	return nil
}

func (f *fakeStore) CompletedTransactionStats(ctx context.Context, eventID uuid.UUID) (int64, float64, error) {
	var count int64
	var total float64
	for _, t := range f.txns {
		if t.Status != models.TransactionCompleted {
			continue
		}
		ticket, ok := f.tickets[t.TicketID]
		if !ok || ticket.EventID != eventID {
			continue
		}
		count++
		total += t.Amount
	}
	return count, total, nil
}

func (f *fakeStore) WaitlistSize(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var n int64
	for _, w := range f.waitlist {
		if w.EventID == eventID {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) AverageRating(ctx context.Context, eventID uuid.UUID) (float64, error) {
	var sum, n int
	for _, r := range f.reviews {
		if r.EventID == eventID {
			sum += r.Rating
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}
