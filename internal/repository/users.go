package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/mdzoubir/eventconnect-backend/internal/domain"
	"github.com/mdzoubir/eventconnect-backend/internal/models"
)

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return duplicate(s.conn(ctx).Create(user).Error, domain.ErrEmailTaken)
}

func (s *Store) UserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	var user models.User
	err := s.conn(ctx).Preload("Location").First(&user, "id = ?", id).Error
	if err != nil {
		return models.User{}, notFound(err)
	}
	return user, nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.conn(ctx).First(&user, "email = ?", strings.ToLower(email)).Error
	if err != nil {
		return models.User{}, notFound(err)
	}
	return user, nil
}

func (s *Store) SaveUser(ctx context.Context, user *models.User) error {
	return duplicate(s.conn(ctx).Save(user).Error, domain.ErrEmailTaken)
}

func (s *Store) LocationByName(ctx context.Context, name string) (models.Location, error) {
	var location models.Location
	err := s.conn(ctx).First(&location, "LOWER(name) = LOWER(?)", name).Error
	if err != nil {
		return models.Location{}, notFound(err)
	}
	return location, nil
}

func (s *Store) CreateLocation(ctx context.Context, location *models.Location) error {
	return s.conn(ctx).Create(location).Error
}

func (s *Store) SaveLocation(ctx context.Context, location *models.Location) error {
	return s.conn(ctx).Save(location).Error
}
