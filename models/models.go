package models

import (
	"time"

	"github.com/google/uuid"
)

// ContentType distinguishes photo posts from written articles.
type ContentType string

const (
	ContentTypePhoto   ContentType = "photo"
	ContentTypeArticle ContentType = "article"
)

func (t ContentType) Valid() bool {
	return t == ContentTypePhoto || t == ContentTypeArticle
}

// Category classifies a piece of content. The set mirrors the browse
// filters offered by the frontend.
type Category string

const (
	CategoryGalaxy           Category = "galaxy"
	CategoryNebula           Category = "nebula"
	CategoryPlanet           Category = "planet"
	CategoryMoon             Category = "moon"
	CategoryStars            Category = "stars"
	CategoryEclipse          Category = "eclipse"
	CategoryAstrophotography Category = "astrophotography"
	CategoryObservation      Category = "observation"
	CategoryScience          Category = "science"
	CategoryEquipment        Category = "equipment"
	CategoryEvents           Category = "events"
	CategoryBeginners        Category = "beginners"
	CategoryOther            Category = "other"
)

var categories = map[Category]bool{
	CategoryGalaxy:           true,
	CategoryNebula:           true,
	CategoryPlanet:           true,
	CategoryMoon:             true,
	CategoryStars:            true,
	CategoryEclipse:          true,
	CategoryAstrophotography: true,
	CategoryObservation:      true,
	CategoryScience:          true,
	CategoryEquipment:        true,
	CategoryEvents:           true,
	CategoryBeginners:        true,
	CategoryOther:            true,
}

func (c Category) Valid() bool {
	return categories[c]
}

// EventType classifies a cosmic calendar event.
type EventType string

const (
	EventMeteorShower EventType = "meteor_shower"
	EventPlanet       EventType = "planet"
	EventEclipse      EventType = "eclipse"
	EventConjunction  EventType = "conjunction"
	EventOther        EventType = "other"
)

func (t EventType) Valid() bool {
	switch t {
	case EventMeteorShower, EventPlanet, EventEclipse, EventConjunction, EventOther:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Username     string    `json:"username" gorm:"size:150;not null;uniqueIndex"`
	Email        string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"not null"`
	FirstName    string    `json:"first_name" gorm:"size:150"`
	LastName     string    `json:"last_name" gorm:"size:150"`
	DateJoined   time.Time `json:"date_joined"`
}

// Profile holds the extended per-user metadata beyond core identity.
// There is at most one per user; it is created lazily on first access
// for accounts that predate profile creation at registration.
type Profile struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"-" gorm:"type:uuid;not null;uniqueIndex"`
	User      *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Bio       string    `json:"bio"`
	Location  string    `json:"location" gorm:"size:100"`
	AvatarURL string    `json:"profile_picture"`
	JoinDate  time.Time `json:"join_date"`
}

// Content is a user-authored photo or article. The author is fixed at
// creation and never reassigned.
type Content struct {
	ID           uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	AuthorID     uuid.UUID   `json:"-" gorm:"type:uuid;not null;index"`
	Author       *User       `json:"-"`
	ContentType  ContentType `json:"content_type" gorm:"size:10;not null"`
	Title        string      `json:"title" gorm:"size:200;not null"`
	Description  string      `json:"description"`
	Body         string      `json:"content"`
	Image        string      `json:"image"`
	ImageURL     string      `json:"image_url"`
	Location     string      `json:"location" gorm:"size:100"`
	Category     Category    `json:"category" gorm:"size:20;not null;index"`
	AIVerified   bool        `json:"ai_verified"`
	AIConfidence float64     `json:"ai_confidence"`
	AIReason     string      `json:"ai_reason" gorm:"size:200"`
	CreatedAt    time.Time   `json:"created_at" gorm:"index"`
	UpdatedAt    time.Time   `json:"updated_at"`
	Likes        []Like      `json:"-" gorm:"foreignKey:ContentID"`
	Comments     []Comment   `json:"-" gorm:"foreignKey:ContentID"`
}

// Like marks a user's endorsement of a piece of content. The composite
// unique index enforces at most one like per (user, content) pair even
// under concurrent requests.
type Like struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"-" gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_content"`
	User      *User     `json:"-"`
	ContentID uuid.UUID `json:"-" gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_content"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is a threaded reply attached to content. A comment with a
// parent is a reply; reply lists are derived at read time by parent-id
// lookup rather than stored on the parent.
type Comment struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID  `json:"-" gorm:"type:uuid;not null;index"`
	User      *User      `json:"-"`
	ContentID uuid.UUID  `json:"-" gorm:"type:uuid;not null;index"`
	ParentID  *uuid.UUID `json:"parent" gorm:"type:uuid;index"`
	Text      string     `json:"text" gorm:"not null"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

// CosmicEvent is an administrator-managed calendar entry. Read-only to
// normal users.
type CosmicEvent struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string    `json:"title" gorm:"size:200;not null"`
	Description string    `json:"description" gorm:"not null"`
	EventDate   time.Time `json:"event_date" gorm:"not null;index"`
	EventType   EventType `json:"event_type" gorm:"size:20;not null"`
	CreatedAt   time.Time `json:"created_at"`
}

// All lists every model for AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&Profile{},
		&Content{},
		&Like{},
		&Comment{},
		&CosmicEvent{},
	}
}
