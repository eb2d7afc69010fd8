package database

import (
	"context"
	"errors"
	"time"

	"github.com/ghinaaj20-lang/luna-project/internal/utils"
	"github.com/ghinaaj20-lang/luna-project/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func withAssociations(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Author").
		Preload("Likes", func(db *gorm.DB) *gorm.DB {
			return db.Order("likes.created_at ASC")
		}).
		Preload("Likes.User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Comments.User")
}

// CreateContent persists a new content item. The caller fills the
// domain fields; id and timestamps are assigned here.
func (d *DB) CreateContent(ctx context.Context, content *models.Content) error {
	content.ID = uuid.New()
	now := time.Now()
	content.CreatedAt = now
	content.UpdatedAt = now
	return d.conn(ctx).Create(content).Error
}

// ListContent returns a page of content newest-first, optionally
// filtered to one author, along with the unpaginated total.
func (d *DB) ListContent(ctx context.Context, authorID *uuid.UUID, page, pageSize int) ([]models.Content, int64, error) {
	query := d.conn(ctx).Model(&models.Content{})
	if authorID != nil {
		query = query.Where("author_id = ?", *authorID)
	}
	// Reusable for both the count and the page query.
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var contents []models.Content
	err := withAssociations(query).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&contents).Error
	if err != nil {
		return nil, 0, err
	}
	return contents, total, nil
}

// GetContent fetches one content item with author, likes, and comments.
func (d *DB) GetContent(ctx context.Context, id uuid.UUID) (*models.Content, error) {
	var content models.Content
	err := withAssociations(d.conn(ctx)).First(&content, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("Content not found")
		}
		return nil, err
	}
	return &content, nil
}

// ContentUpdate carries the mutable content fields; nil leaves a field
// unchanged. The author is never part of an update.
type ContentUpdate struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Body        *string          `json:"content"`
	ImageURL    *string          `json:"image_url"`
	Location    *string          `json:"location"`
	Category    *models.Category `json:"category"`
}

// UpdateContent merges the provided fields into an existing item.
func (d *DB) UpdateContent(ctx context.Context, id uuid.UUID, update ContentUpdate) (*models.Content, error) {
	content, err := d.GetContent(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		content.Title = *update.Title
	}
	if update.Description != nil {
		content.Description = *update.Description
	}
	if update.Body != nil {
		content.Body = *update.Body
	}
	if update.ImageURL != nil {
		content.ImageURL = *update.ImageURL
	}
	if update.Location != nil {
		content.Location = *update.Location
	}
	if update.Category != nil {
		if !update.Category.Valid() {
			return nil, utils.NewValidationError("Invalid category")
		}
		content.Category = *update.Category
	}
	content.UpdatedAt = time.Now()

	err = d.conn(ctx).Omit("Author", "Likes", "Comments").Save(content).Error
	if err != nil {
		return nil, err
	}
	return content, nil
}

// DeleteContent removes a content item together with its likes and
// comments in one transaction.
func (d *DB) DeleteContent(ctx context.Context, id uuid.UUID) error {
	return d.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("content_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("content_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Content{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return utils.NewNotFoundError("Content not found")
		}
		return nil
	})
}

// Like records a like for (user, content). Returns true when a new like
// was created, false when one already existed. A race on the unique
// index counts as "already liked", not an error.
func (d *DB) Like(ctx context.Context, userID, contentID uuid.UUID) (bool, error) {
	var existing models.Like
	err := d.conn(ctx).Where("user_id = ? AND content_id = ?", userID, contentID).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	like := models.Like{
		ID:        uuid.New(),
		UserID:    userID,
		ContentID: contentID,
		CreatedAt: time.Now(),
	}
	if err := d.conn(ctx).Create(&like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Unlike removes the caller's like if present. Missing likes are a
// no-op, not an error.
func (d *DB) Unlike(ctx context.Context, userID, contentID uuid.UUID) error {
	return d.conn(ctx).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Delete(&models.Like{}).Error
}

// AddComment attaches a comment to content. A parent id pointing at a
// comment under different content is silently dropped so the comment
// lands top-level; the frontend depends on that leniency.
func (d *DB) AddComment(ctx context.Context, userID, contentID uuid.UUID, text string, parentID *uuid.UUID) (*models.Comment, error) {
	if parentID != nil {
		var parent models.Comment
		err := d.conn(ctx).Where("id = ? AND content_id = ?", *parentID, contentID).First(&parent).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			parentID = nil
		}
	}

	now := time.Now()
	comment := &models.Comment{
		ID:        uuid.New(),
		UserID:    userID,
		ContentID: contentID,
		ParentID:  parentID,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := d.conn(ctx).Create(comment).Error; err != nil {
		return nil, err
	}
	if err := d.conn(ctx).Preload("User").First(comment, "id = ?", comment.ID).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// GetComment fetches one comment.
func (d *DB) GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	if err := d.conn(ctx).First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("Comment not found")
		}
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a comment and, level by level, every reply
// under it, mirroring the content cascade.
func (d *DB) DeleteComment(ctx context.Context, id uuid.UUID) error {
	return d.conn(ctx).Transaction(func(tx *gorm.DB) error {
		doomed := []uuid.UUID{id}
		frontier := []uuid.UUID{id}
		for len(frontier) > 0 {
			var replies []uuid.UUID
			err := tx.Model(&models.Comment{}).
				Where("parent_id IN ?", frontier).
				Pluck("id", &replies).Error
			if err != nil {
				return err
			}
			doomed = append(doomed, replies...)
			frontier = replies
		}
		return tx.Delete(&models.Comment{}, "id IN ?", doomed).Error
	})
}
