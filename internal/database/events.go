package database

import (
	"context"
	"time"

	"github.com/ghinaaj20-lang/luna-project/models"
	"github.com/google/uuid"
)

// CreateEvent stores a calendar entry. No public route writes events;
// this backs the seeder and tests.
func (d *DB) CreateEvent(ctx context.Context, event *models.CosmicEvent) error {
	event.ID = uuid.New()
	event.CreatedAt = time.Now()
	return d.conn(ctx).Create(event).Error
}

// ListEvents returns every event ordered by event date ascending.
func (d *DB) ListEvents(ctx context.Context) ([]models.CosmicEvent, error) {
	var events []models.CosmicEvent
	err := d.conn(ctx).Order("event_date ASC").Find(&events).Error
	return events, err
}

// UpcomingEvents returns at most limit events at or after now, soonest
// first.
func (d *DB) UpcomingEvents(ctx context.Context, now time.Time, limit int) ([]models.CosmicEvent, error) {
	var events []models.CosmicEvent
	err := d.conn(ctx).
		Where("event_date >= ?", now).
		Order("event_date ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

// TodayEvents returns events whose date falls within [today, tomorrow)
// in the server's local time.
func (d *DB) TodayEvents(ctx context.Context, now time.Time) ([]models.CosmicEvent, error) {
	year, month, day := now.Date()
	today := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)

	var events []models.CosmicEvent
	err := d.conn(ctx).
		Where("event_date >= ? AND event_date < ?", today, tomorrow).
		Order("event_date ASC").
		Find(&events).Error
	return events, err
}
