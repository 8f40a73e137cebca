package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"chronotask/internal/auth"
	"chronotask/internal/model"
)

// UserRepository defines credential-store operations. Every password write
// goes through this interface, which hashes before anything touches durable
// storage; plaintext is never persisted.
type UserRepository interface {
	// Create persists a new user, hashing the given plaintext password.
	Create(ctx context.Context, user *model.User, password string) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// FindByResetTokenDigest matches a stored reset-token digest that has not
	// expired as of now.
	FindByResetTokenDigest(ctx context.Context, digest string, now time.Time) (*model.User, error)
	MarkConfirmed(ctx context.Context, id uint) error
	SetResetToken(ctx context.Context, id uint, digest string, expires time.Time) error
	ClearResetToken(ctx context.Context, id uint) error
	// ResetPassword sets a new password hash, stamps password_changed_at and
	// clears the reset-token fields in one update.
	ResetPassword(ctx context.Context, id uint, password string, changedAt time.Time) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByResetTokenDigest(ctx context.Context, digest string, now time.Time) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("password_reset_token = ? AND password_reset_expires > ?", digest, now).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) MarkConfirmed(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("confirmed", true).Error
}

func (r *userRepository) SetResetToken(ctx context.Context, id uint, digest string, expires time.Time) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password_reset_token":   digest,
			"password_reset_expires": expires,
		}).Error
}

func (r *userRepository) ClearResetToken(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password_reset_token":   nil,
			"password_reset_expires": nil,
		}).Error
}

func (r *userRepository) ResetPassword(ctx context.Context, id uint, password string, changedAt time.Time) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password_hash":          hash,
			"password_changed_at":    changedAt,
			"password_reset_token":   nil,
			"password_reset_expires": nil,
		}).Error
}
