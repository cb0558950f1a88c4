package services

import (
	"context"
	"errors"
	"fmt"

	"building/internal/models"
	"building/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles business logic related to tenant accounts.
type UserService struct {
	repo       repositories.UserRepository
	validate   *validator.Validate
	events     EventPublisher
	logger     *zap.Logger
	bcryptCost int
}

// NewUserService creates a new UserService. events may be nil.
func NewUserService(repo repositories.UserRepository, events EventPublisher, logger *zap.Logger, bcryptCost int) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		repo:       repo,
		validate:   validator.New(),
		events:     events,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

// GetAllUsers returns every user. Password hashes are never populated.
func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, notFoundError("No users found")
	}
	return users, nil
}

// CreateUser validates the input, rejects duplicate emails, hashes the
// password and stores the new user.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if err := s.validate.Struct(in); err != nil || !(in.Roles.IsList() || in.Roles.Malformed) {
		return nil, validationError("All fields are required")
	}

	if err := s.checkEmailFree(ctx, in.Email, ""); err != nil {
		return nil, err
	}

	hashed, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	roles := models.DefaultRoles()
	if in.Roles.IsList() {
		roles = in.Roles.Values
	}

	user := &models.User{
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Building:   in.Building,
		Appartment: in.Appartment,
		Password:   hashed,
		Roles:      roles,
		Debt:       *in.Debt,
		Active:     true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, conflictError("Duplicate email")
		}
		return nil, err
	}

	s.logger.Info("user created", zap.String("user_id", user.ID))
	publishEvent(s.events, s.logger, EventUserCreated, user.ID)
	return user, nil
}

// UpdateUser replaces every field of an existing user. The password is
// re-hashed only when a new one is supplied.
func (s *UserService) UpdateUser(ctx context.Context, in UpdateUserInput) (*models.User, error) {
	if err := s.validate.Struct(in); err != nil || !in.Roles.IsList() {
		return nil, validationError("All fields except password are required")
	}

	user, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFoundError("User not found")
		}
		return nil, err
	}

	// The user may keep its own email.
	if err := s.checkEmailFree(ctx, in.Email, in.ID); err != nil {
		return nil, err
	}

	user.Name = in.Name
	user.Email = in.Email
	user.Phone = in.Phone
	user.Building = in.Building
	user.Appartment = in.Appartment
	user.Debt = *in.Debt
	user.Roles = in.Roles.Values
	user.Active = *in.Active

	if in.Password != "" {
		if user.Password, err = s.hashPassword(in.Password); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateEmail):
			return nil, conflictError("Duplicate email")
		case errors.Is(err, repositories.ErrNotFound):
			return nil, notFoundError("User not found")
		}
		return nil, err
	}

	publishEvent(s.events, s.logger, EventUserUpdated, user.ID)
	return user, nil
}

// DeleteUser permanently removes a user and returns the removed record.
// Reports owned by the user are left in place.
func (s *UserService) DeleteUser(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, validationError("User ID Required")
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFoundError("User not found")
		}
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFoundError("User not found")
		}
		return nil, err
	}

	s.logger.Info("user deleted", zap.String("user_id", id))
	publishEvent(s.events, s.logger, EventUserDeleted, id)
	return user, nil
}

// EnsureAdmin creates an administrator account when no users exist yet.
// It reports whether an account was created.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}
	count, err := s.repo.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	hashed, err := s.hashPassword(password)
	if err != nil {
		return false, err
	}
	admin := &models.User{
		Name:     "Administrator",
		Email:    email,
		Phone:    "-",
		Password: hashed,
		Roles:    []string{models.RoleAdmin, models.RoleManager},
		Active:   true,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("failed to create admin user: %w", err)
	}
	s.logger.Info("bootstrap admin created", zap.String("user_id", admin.ID))
	return true, nil
}

// checkEmailFree fails with a conflict when a user other than exceptID holds email.
func (s *UserService) checkEmailFree(ctx context.Context, email, exceptID string) error {
	duplicate, err := s.repo.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return nil
	case err != nil:
		return err
	case duplicate.ID != exceptID:
		return conflictError("Duplicate email")
	}
	return nil
}

func (s *UserService) hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", validationError("Password must be at most 72 bytes")
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}
