// Package usecase implements the business rules of the user feature.
package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"newsportal/internal/apperr"
	"newsportal/internal/feature/user/domain/entity"
	"newsportal/internal/platform/paging"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention the interface is defined by the consumer
// (usecase), not the provider (adapters).
type UserRepository interface {
	// FindAllActive retrieves one page of non-deleted users ordered by
	// id, together with the total number of non-deleted users.
	FindAllActive(ctx context.Context, req paging.Request) ([]entity.User, int64, error)

	// FindByID retrieves a user by id, deleted ones included.
	// Returns apperr.NotFoundError when absent.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// IsUsernameTaken reports whether another user (id != excludeID)
	// already holds the username.
	IsUsernameTaken(ctx context.Context, username string, excludeID uint) (bool, error)

	// Create persists a new user. A concurrent duplicate username
	// surfaces as apperr.UniqueViolationError.
	Create(ctx context.Context, user *entity.User) error

	// Save persists changes to an existing user.
	Save(ctx context.Context, user *entity.User) error

	// SoftDeleteCascade marks the user deleted and hard-deletes all
	// news they own, atomically. Comments are left in place.
	SoftDeleteCascade(ctx context.Context, user *entity.User) error
}

// CreateInput carries the client-supplied fields for a new account.
// Password and audit fields are always system-managed.
type CreateInput struct {
	Username   string
	Name       string
	Surname    string
	ParentName string
	Role       entity.Role
}

// UpdateInput carries an account edit. Nil optional fields are left
// unchanged on the target user.
type UpdateInput struct {
	Username   string
	Name       *string
	Surname    *string
	ParentName *string
	Role       *entity.Role
}

// userUsecase implements the user business logic.
type userUsecase struct {
	users UserRepository
}

// NewUserUsecase creates a new userUsecase instance.
func NewUserUsecase(users UserRepository) *userUsecase {
	return &userUsecase{users: users}
}

// FindAllActive returns one page of non-deleted users.
func (u *userUsecase) FindAllActive(ctx context.Context, req paging.Request) ([]entity.User, int64, error) {
	return u.users.FindAllActive(ctx, req)
}

// FindByID returns the user with the given id, deleted ones included.
func (u *userUsecase) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}

// Create registers a new account. The initial password is random; the
// user cannot log in until an administrator communicates it or resets
// it through the password endpoint.
func (u *userUsecase) Create(ctx context.Context, in CreateInput) (*entity.User, error) {
	taken, err := u.users.IsUsernameTaken(ctx, in.Username, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &apperr.UniqueViolationError{Field: "username", Value: in.Username}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Username:   in.Username,
		Password:   string(hashed),
		Name:       in.Name,
		Surname:    in.Surname,
		ParentName: in.ParentName,
		Role:       in.Role,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateByID merges the edit onto the stored user. Password, deleted
// flag, id and timestamps are never taken from the input; omitted
// optional fields keep their stored values.
func (u *userUsecase) UpdateByID(ctx context.Context, id uint, in UpdateInput) (*entity.User, error) {
	user, err := u.findActive(ctx, id)
	if err != nil {
		return nil, err
	}

	taken, err := u.users.IsUsernameTaken(ctx, in.Username, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &apperr.UniqueViolationError{Field: "username", Value: in.Username}
	}

	user.Username = in.Username
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Surname != nil {
		user.Surname = *in.Surname
	}
	if in.ParentName != nil {
		user.ParentName = *in.ParentName
	}
	if in.Role != nil {
		user.Role = *in.Role
	}

	if err := u.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the old password and stores a hash of the new
// one. It returns false, without mutating anything, when the old
// password does not match; a missing user is an error.
func (u *userUsecase) ChangePassword(ctx context.Context, id uint, oldPassword, newPassword string) (bool, error) {
	user, err := u.findActive(ctx, id)
	if err != nil {
		return false, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return false, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)
	if err := u.users.Save(ctx, user); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteByID soft-deletes the user and removes every news article they
// own. Their comments stay.
func (u *userUsecase) DeleteByID(ctx context.Context, id uint) error {
	user, err := u.findActive(ctx, id)
	if err != nil {
		return err
	}
	return u.users.SoftDeleteCascade(ctx, user)
}

// findActive loads a user for mutation. A soft-deleted account is as
// good as absent for writes, so it reports NotFound.
func (u *userUsecase) findActive(ctx context.Context, id uint) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Deleted {
		return nil, apperr.NotFoundByID("User", id)
	}
	return user, nil
}
