package handlers

import (
	"time"

	"github.com/ghinaaj20-lang/luna-project/models"
	"github.com/google/uuid"
)

// The view types are the wire representations. They are assembled here
// from independently-fetched entities instead of marshaling models with
// lazy relations directly.

type UserView struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	DateJoined time.Time `json:"date_joined"`
}

func NewUserView(u *models.User) UserView {
	if u == nil {
		return UserView{}
	}
	return UserView{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		DateJoined: u.DateJoined,
	}
}

type LikeView struct {
	ID        uuid.UUID `json:"id"`
	User      UserView  `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentView struct {
	ID        uuid.UUID      `json:"id"`
	User      UserView       `json:"user"`
	Text      string         `json:"text"`
	Parent    *uuid.UUID     `json:"parent"`
	Replies   []*CommentView `json:"replies"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func NewCommentView(c *models.Comment) *CommentView {
	return &CommentView{
		ID:        c.ID,
		User:      NewUserView(c.User),
		Text:      c.Text,
		Parent:    c.ParentID,
		Replies:   make([]*CommentView, 0),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// buildCommentTree threads a flat, oldest-first comment list into a
// reply tree by parent-id lookup. Parents precede their replies in the
// input because replies are always created later.
func buildCommentTree(comments []models.Comment) []*CommentView {
	views := make(map[uuid.UUID]*CommentView, len(comments))
	roots := make([]*CommentView, 0, len(comments))

	for i := range comments {
		views[comments[i].ID] = NewCommentView(&comments[i])
	}
	for i := range comments {
		c := &comments[i]
		v := views[c.ID]
		if c.ParentID != nil {
			if parent, ok := views[*c.ParentID]; ok {
				parent.Replies = append(parent.Replies, v)
				continue
			}
		}
		roots = append(roots, v)
	}
	return roots
}

type ContentView struct {
	ID           uuid.UUID          `json:"id"`
	Author       UserView           `json:"author"`
	ContentType  models.ContentType `json:"content_type"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Content      string             `json:"content"`
	Image        string             `json:"image"`
	ImageURL     string             `json:"image_url"`
	Location     string             `json:"location"`
	Category     models.Category    `json:"category"`
	AIVerified   bool               `json:"ai_verified"`
	AIConfidence float64            `json:"ai_confidence"`
	AIReason     string             `json:"ai_reason"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`

	Comments      []*CommentView `json:"comments"`
	Likes         []LikeView     `json:"likes"`
	LikesCount    int            `json:"likes_count"`
	CommentsCount int            `json:"comments_count"`
	IsLiked       bool           `json:"is_liked"`
}

// NewContentView renders content for a particular viewer; viewer nil
// means anonymous, for whom is_liked is always false. The counts are
// computed here at read time, never stored.
func NewContentView(c *models.Content, viewer *uuid.UUID) ContentView {
	likes := make([]LikeView, 0, len(c.Likes))
	isLiked := false
	for i := range c.Likes {
		l := &c.Likes[i]
		likes = append(likes, LikeView{
			ID:        l.ID,
			User:      NewUserView(l.User),
			CreatedAt: l.CreatedAt,
		})
		if viewer != nil && l.UserID == *viewer {
			isLiked = true
		}
	}

	return ContentView{
		ID:            c.ID,
		Author:        NewUserView(c.Author),
		ContentType:   c.ContentType,
		Title:         c.Title,
		Description:   c.Description,
		Content:       c.Body,
		Image:         c.Image,
		ImageURL:      c.ImageURL,
		Location:      c.Location,
		Category:      c.Category,
		AIVerified:    c.AIVerified,
		AIConfidence:  c.AIConfidence,
		AIReason:      c.AIReason,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
		Comments:      buildCommentTree(c.Comments),
		Likes:         likes,
		LikesCount:    len(c.Likes),
		CommentsCount: len(c.Comments),
		IsLiked:       isLiked,
	}
}

// NewContentViews renders a page of content for one viewer.
func NewContentViews(contents []models.Content, viewer *uuid.UUID) []ContentView {
	views := make([]ContentView, 0, len(contents))
	for i := range contents {
		views = append(views, NewContentView(&contents[i], viewer))
	}
	return views
}
