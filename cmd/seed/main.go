// Command seed loads a starter set of cosmic calendar events. Events
// have no public write API; administrators run this against the
// configured database.
package main

import (
	"context"
	"log"
	"time"

	"github.com/ghinaaj20-lang/luna-project/internal/config"
	"github.com/ghinaaj20-lang/luna-project/internal/database"
	"github.com/ghinaaj20-lang/luna-project/models"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading configuration: ", err)
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}

	ctx := context.Background()
	existing, err := db.ListEvents(ctx)
	if err != nil {
		log.Fatalf("Failed to list events: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("Event catalog already has %d entries, nothing to do", len(existing))
		return
	}

	now := time.Now()
	events := []models.CosmicEvent{
		{
			Title:       "Perseid Meteor Shower Peak",
			Description: "Up to 100 meteors per hour radiating from Perseus. Best after midnight away from city lights.",
			EventDate:   now.AddDate(0, 1, 0),
			EventType:   models.EventMeteorShower,
		},
		{
			Title:       "Saturn at Opposition",
			Description: "Saturn rises at sunset and is visible all night at its brightest, rings tilted toward Earth.",
			EventDate:   now.AddDate(0, 0, 12),
			EventType:   models.EventPlanet,
		},
		{
			Title:       "Total Lunar Eclipse",
			Description: "The full Moon passes through Earth's umbra and turns a deep red for 85 minutes.",
			EventDate:   now.AddDate(0, 2, 5),
			EventType:   models.EventEclipse,
		},
		{
			Title:       "Venus-Jupiter Conjunction",
			Description: "The two brightest planets pass within half a degree of each other in the dawn sky.",
			EventDate:   now.AddDate(0, 0, 25),
			EventType:   models.EventConjunction,
		},
		{
			Title:       "International Observe the Moon Night",
			Description: "Worldwide public observation event celebrating lunar science.",
			EventDate:   now.AddDate(0, 1, 18),
			EventType:   models.EventOther,
		},
	}

	for i := range events {
		if err := db.CreateEvent(ctx, &events[i]); err != nil {
			log.Fatalf("Failed to seed event %q: %v", events[i].Title, err)
		}
	}
	log.Printf("Seeded %d cosmic events", len(events))
}
