package services

import (
	"context"
	"errors"
	"fmt"

	"bistro/internal/models"
	"bistro/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// UserExistsMessage is returned instead of an id when the email is already registered.
const UserExistsMessage = "User already exist"

// UserService handles business logic for users and roles.
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// GetAllUsers returns every user without password hashes.
func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

// CreateUser inserts the user unless one with the same email already
// exists, in which case nothing is written and InsertedID is nil.
func (s *UserService) CreateUser(ctx context.Context, user *models.User) (models.InsertResult, error) {
	existing, err := s.repo.GetByEmail(ctx, user.Email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return models.InsertResult{}, err
	}
	if existing != nil {
		return models.InsertResult{Message: UserExistsMessage}, nil
	}

	// Roles are granted through MakeAdmin only.
	user.ID = ""
	user.Role = ""
	if user.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.InsertResult{}, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashed)
	}

	if err := s.repo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration of the same email.
		if errors.Is(err, repositories.ErrDuplicate) {
			return models.InsertResult{Message: UserExistsMessage}, nil
		}
		return models.InsertResult{}, err
	}
	return models.Inserted(user.ID), nil
}

// DeleteUser removes the user with id.
func (s *UserService) DeleteUser(ctx context.Context, id string) (models.DeleteResult, error) {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return models.DeleteResult{}, err
	}
	return models.DeleteResult{DeletedCount: n}, nil
}

// MakeAdmin grants the admin role to the user with id.
func (s *UserService) MakeAdmin(ctx context.Context, id string) (models.UpdateResult, error) {
	return s.repo.SetRole(ctx, id, models.RoleAdmin)
}

// IsAdmin reports whether email belongs to an admin. Unknown emails are not admins.
func (s *UserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}
