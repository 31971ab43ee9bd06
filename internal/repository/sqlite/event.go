package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/eventsplanner/events-api/internal/domain"
)

// EventRepository implements domain.EventRepository using SQLite.
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new SQLite-backed EventRepository.
func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db.SqlDB}
}

func (r *EventRepository) Create(ctx context.Context, event *domain.Event) error {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO events (id, title, description, price, date)
		 VALUES (?, ?, ?, ?, ?)`,
		id, event.Title, event.Description, event.Price, event.Date.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	event.ID = id
	return nil
}

// List returns all events in insertion order.
func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, description, price, date FROM events ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		var (
			e    domain.Event
			date string
		)
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Price, &date); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Date, err = time.Parse(time.RFC3339Nano, date)
		if err != nil {
			return nil, fmt.Errorf("parse event date %q: %w", date, err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}
