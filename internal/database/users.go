package database

import (
	"context"
	"errors"
	"time"

	"github.com/ghinaaj20-lang/luna-project/internal/auth"
	"github.com/ghinaaj20-lang/luna-project/internal/utils"
	"github.com/ghinaaj20-lang/luna-project/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateUser registers a new account with a hashed password and its
// profile in one transaction. Username and email must be unused; a
// concurrent duplicate slipping past the pre-check is caught by the
// unique indexes and reported the same way.
func (d *DB) CreateUser(ctx context.Context, username, email, password, firstName string) (*models.User, error) {
	var count int64
	if err := d.conn(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.NewDuplicateError("Username already exists")
	}
	if err := d.conn(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.NewDuplicateError("Email already exists")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		DateJoined:   now,
	}

	err = d.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile := &models.Profile{
			ID:       uuid.New(),
			UserID:   user.ID,
			JoinDate: now,
		}
		return tx.Create(profile).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.NewDuplicateError("Username or email already exists")
		}
		return nil, err
	}
	return user, nil
}

// Authenticate checks a username/password pair and returns the account
// on success.
func (d *DB) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	if err := d.conn(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewInvalidCredentialsError()
		}
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, utils.NewInvalidCredentialsError()
	}
	return &user, nil
}

// GetUser fetches an account by id.
func (d *DB) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := d.conn(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("User not found")
		}
		return nil, err
	}
	return &user, nil
}

// GetOrCreateProfile returns the user's profile, creating an empty one
// if a legacy registration path skipped it.
func (d *DB) GetOrCreateProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := d.conn(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	profile = models.Profile{
		ID:       uuid.New(),
		UserID:   userID,
		JoinDate: time.Now(),
	}
	if err := d.conn(ctx).Create(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a create race; the winner's row is the profile.
			if err := d.conn(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
				return nil, err
			}
			return &profile, nil
		}
		return nil, err
	}
	return &profile, nil
}

// ProfileUpdate carries the optional fields of a profile update; nil
// means "leave unchanged".
type ProfileUpdate struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Location  *string `json:"location"`
}

// UpdateProfile merges the provided fields into the account and its
// profile atomically.
func (d *DB) UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*models.User, *models.Profile, error) {
	user, err := d.GetUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	profile, err := d.GetOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Bio != nil {
		profile.Bio = *update.Bio
	}
	if update.Location != nil {
		profile.Location = *update.Location
	}

	err = d.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			return err
		}
		return tx.Save(profile).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, utils.NewDuplicateError("Email already exists")
		}
		return nil, nil, err
	}
	return user, profile, nil
}

// SetAvatar replaces the stored avatar URL on the user's profile.
func (d *DB) SetAvatar(ctx context.Context, userID uuid.UUID, url string) (*models.Profile, error) {
	profile, err := d.GetOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.AvatarURL = url
	if err := d.conn(ctx).Save(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// ChangePassword verifies the current password and persists a new hash.
func (d *DB) ChangePassword(ctx context.Context, userID uuid.UUID, current, newPassword string) error {
	user, err := d.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.PasswordHash, current) {
		return utils.NewAppError(utils.ErrInvalidCredentials, "Current password is incorrect", nil)
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return d.conn(ctx).Model(user).Update("password_hash", hash).Error
}

// ProfileStats aggregates activity over a user's own content.
type ProfileStats struct {
	ContentsCount int64 `json:"contents_count"`
	TotalLikes    int64 `json:"total_likes"`
	TotalComments int64 `json:"total_comments"`
}

// GetProfileStats counts the user's content and the likes and comments
// it has received.
func (d *DB) GetProfileStats(ctx context.Context, userID uuid.UUID) (*ProfileStats, error) {
	var stats ProfileStats
	if err := d.conn(ctx).Model(&models.Content{}).
		Where("author_id = ?", userID).
		Count(&stats.ContentsCount).Error; err != nil {
		return nil, err
	}
	if err := d.conn(ctx).Model(&models.Like{}).
		Joins("JOIN contents ON contents.id = likes.content_id").
		Where("contents.author_id = ?", userID).
		Count(&stats.TotalLikes).Error; err != nil {
		return nil, err
	}
	if err := d.conn(ctx).Model(&models.Comment{}).
		Joins("JOIN contents ON contents.id = comments.content_id").
		Where("contents.author_id = ?", userID).
		Count(&stats.TotalComments).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
