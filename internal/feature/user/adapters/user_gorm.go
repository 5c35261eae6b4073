// Package adapters provides the gorm-backed repository of the user
// feature.
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"newsportal/internal/apperr"
	newsentity "newsportal/internal/feature/news/domain/entity"
	"newsportal/internal/feature/user/domain/entity"
	"newsportal/internal/feature/user/usecase"
	"newsportal/internal/platform/auth"
	"newsportal/internal/platform/paging"
)

// pgUniqueViolation is the SQLSTATE PostgreSQL reports for a unique
// constraint breach.
const pgUniqueViolation = "23505"

// userGorm is the gorm implementation of the user repositories.
type userGorm struct {
	db *gorm.DB
}

// Compile-time checks against the consumer-defined interfaces.
var (
	_ usecase.UserRepository = (*userGorm)(nil)
	_ auth.CredentialStore   = (*userGorm)(nil)
)

// NewUserGorm creates a new userGorm instance on the given connection.
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// FindAllActive retrieves one page of non-deleted users ordered by id,
// with the total count of non-deleted users.
func (r *userGorm) FindAllActive(ctx context.Context, req paging.Request) ([]entity.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.User{}).Where("is_deleted = ?", false)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []entity.User
	if err := query.Order("id").Offset(req.Offset()).Limit(req.Size).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// FindByID retrieves a user by id, deleted ones included.
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundByID("User", id)
		}
		return nil, err
	}
	return &user, nil
}

// FindActiveByUsername retrieves a non-deleted user by username.
func (r *userGorm) FindActiveByUsername(ctx context.Context, username string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).
		Where("username = ? AND is_deleted = ?", username, false).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.NotFoundError{Entity: "User", Field: "username", Value: username}
		}
		return nil, err
	}
	return &user, nil
}

// FindActiveByID retrieves a non-deleted user by id.
func (r *userGorm) FindActiveByID(ctx context.Context, id uint) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundByID("User", id)
		}
		return nil, err
	}
	return &user, nil
}

// ExistsByID reports whether a user row with the id exists, deleted
// ones included.
func (r *userGorm) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// IsUsernameTaken reports whether a different user already holds the
// username.
func (r *userGorm) IsUsernameTaken(ctx context.Context, username string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("username = ? AND id <> ?", username, excludeID).
		Count(&count).Error
	return count > 0, err
}

// Create inserts the user. A concurrent duplicate that slips past the
// usecase precheck is translated from the driver error.
func (r *userGorm) Create(ctx context.Context, user *entity.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return translateUnique(err, "username", user.Username)
	}
	return nil
}

// Save persists all fields of an existing user.
func (r *userGorm) Save(ctx context.Context, user *entity.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return translateUnique(err, "username", user.Username)
	}
	return nil
}

// SoftDeleteCascade marks the user deleted and removes their news in a
// single transaction. Comments keep their rows.
func (r *userGorm) SoftDeleteCascade(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.User{}).Where("id = ?", user.ID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Where("inserted_by_id = ?", user.ID).Delete(&newsentity.News{}).Error
	})
}

// translateUnique converts a driver-level unique violation into the
// domain error; anything else passes through untouched.
func translateUnique(err error, field, value string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return &apperr.UniqueViolationError{Field: field, Value: value}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &apperr.UniqueViolationError{Field: field, Value: value}
	}
	return err
}
