package services

import (
	"context"
	"strings"

	"github.com/mdzoubir/eventconnect-backend/internal/domain"
	"github.com/mdzoubir/eventconnect-backend/internal/models"
)

// LocationRepository is the resolve-or-update surface shared by registration
// and event creation.
type LocationRepository interface {
	LocationByName(ctx context.Context, name string) (models.Location, error)
	CreateLocation(ctx context.Context, location *models.Location) error
	SaveLocation(ctx context.Context, location *models.Location) error
}

// resolveLocation finds a location by name and refreshes its geographic
// fields with the supplied values, or creates it when absent. Last write wins
// on reuse. Callers run it inside their enclosing transaction.
func resolveLocation(ctx context.Context, repo LocationRepository, in LocationInput) (models.Location, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Location{}, domain.Validation("location.name", "is required")
	}

	location, err := repo.LocationByName(ctx, name)
	if err == nil {
		if in.Latitude != nil {
			location.Latitude = in.Latitude
		}
		if in.Longitude != nil {
			location.Longitude = in.Longitude
		}
		if in.Address != "" {
			location.Address = in.Address
		}
		if in.Country != "" {
			location.Country = in.Country
		}
		if in.City != "" {
			location.City = in.City
		}
		if in.PostalCode != "" {
			location.PostalCode = in.PostalCode
		}
		if err := repo.SaveLocation(ctx, &location); err != nil {
			return models.Location{}, err
		}
		return location, nil
	}
	if err != domain.ErrNotFound {
		return models.Location{}, err
	}

	location = models.Location{
		Name:       name,
		Latitude:   in.Latitude,
		Longitude:  in.Longitude,
		Address:    in.Address,
		Country:    in.Country,
		City:       in.City,
		PostalCode: in.PostalCode,
	}
	if err := repo.CreateLocation(ctx, &location); err != nil {
		return models.Location{}, err
	}
	return location, nil
}
