package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mdzoubir/eventconnect-backend/internal/domain"
	"github.com/mdzoubir/eventconnect-backend/internal/models"
	"github.com/mdzoubir/eventconnect-backend/internal/policy"
)

// UserRepository is the storage surface for registration and user updates.
type UserRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	LocationByName(ctx context.Context, name string) (models.Location, error)
	CreateLocation(ctx context.Context, location *models.Location) error
	SaveLocation(ctx context.Context, location *models.Location) error
	CreateUser(ctx context.Context, user *models.User) error
	UserByID(ctx context.Context, id uuid.UUID) (models.User, error)
	SaveUser(ctx context.Context, user *models.User) error
}

// RegistrationService handles the nested location-resolve + user create/update
// use cases. Each multi-step sequence runs in one transaction so a partial
// failure rolls back the whole unit.
type RegistrationService struct {
	repo UserRepository
	log  *zerolog.Logger
}

func NewRegistrationService(repo UserRepository, log *zerolog.Logger) *RegistrationService {
	return &RegistrationService{repo: repo, log: log}
}

type LocationInput struct {
	Name       string   `json:"name" binding:"required"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	Address    string   `json:"address"`
	Country    string   `json:"country"`
	City       string   `json:"city"`
	PostalCode string   `json:"postal_code"`
}

type RegisterInput struct {
	Email       string
	Password    string
	Role        models.Role
	Interests   string
	Profile     map[string]any
	Preferences map[string]any
	Location    LocationInput
}

// Register creates the user together with its resolved location. An existing
// location of the same name is reused and its geographic fields refreshed
// with the newly supplied values.
func (s *RegistrationService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return models.User{}, domain.Validation("email", "a valid email address is required")
	}
	if len(in.Password) < 6 {
		return models.User{}, domain.Validation("password", "must be at least 6 characters")
	}
	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return models.User{}, domain.Validationf("role", "unknown role %q", in.Role)
	}
	if strings.TrimSpace(in.Location.Name) == "" {
		return models.User{}, domain.Validation("location.name", "is required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Email:       email,
		Password:    string(hashed),
		Role:        role,
		Status:      models.UserActive,
		Interests:   in.Interests,
		Profile:     in.Profile,
		Preferences: in.Preferences,
	}

	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		location, err := resolveLocation(txCtx, s.repo, in.Location)
		if err != nil {
			return err
		}
		user.LocationID = &location.ID
		user.Location = &location
		return s.repo.CreateUser(txCtx, &user)
	})
	if err != nil {
		return models.User{}, err
	}

	s.log.Info().Str("user_id", user.ID.String()).Str("role", string(user.Role)).Msg("user registered")
	return user, nil
}

type UpdateUserInput struct {
	Email       *string
	Role        *models.Role
	Status      *models.UserStatus
	Interests   *string
	Profile     map[string]any
	Preferences map[string]any
	Location    *LocationInput
}

// UpdateUser applies a partial update under the ownership-or-privileged rule.
// Only admins and organizers may touch the role field, and an admin user can
// never be transitioned to the deleted status.
func (s *RegistrationService) UpdateUser(ctx context.Context, actor policy.Identity, userID uuid.UUID, in UpdateUserInput) (models.User, error) {
	if !policy.Allowed(actor, policy.ActionUserUpdate, policy.Resource{OwnerID: userID}) {
		return models.User{}, domain.ErrForbidden
	}

	var user models.User
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		user, err = s.repo.UserByID(txCtx, userID)
		if err != nil {
			return err
		}

		if in.Role != nil {
			if !policy.Allowed(actor, policy.ActionUserRoleChange, policy.Resource{OwnerID: userID}) {
				return domain.ErrForbidden
			}
			if !in.Role.Valid() {
				return domain.Validationf("role", "unknown role %q", *in.Role)
			}
			user.Role = *in.Role
		}
		if in.Status != nil {
			if !in.Status.Valid() {
				return domain.Validationf("status", "unknown status %q", *in.Status)
			}
			if user.Role == models.RoleAdmin && *in.Status == models.UserDeleted {
				return domain.Validation("status", "admin users cannot be deleted")
			}
			user.Status = *in.Status
		}
		if in.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*in.Email))
			if email == "" || !strings.Contains(email, "@") {
				return domain.Validation("email", "a valid email address is required")
			}
			user.Email = email
		}
		if in.Interests != nil {
			user.Interests = *in.Interests
		}
		if in.Profile != nil {
			user.Profile = in.Profile
		}
		if in.Preferences != nil {
			user.Preferences = in.Preferences
		}
		if in.Location != nil {
			location, err := resolveLocation(txCtx, s.repo, *in.Location)
			if err != nil {
				return err
			}
			user.LocationID = &location.ID
			user.Location = &location
		}
		return s.repo.SaveUser(txCtx, &user)
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}
