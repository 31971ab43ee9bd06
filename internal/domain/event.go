package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Event is a priced, dated listing. Events are immutable once stored.
type Event struct {
	ID          string
	Title       string
	Description string
	Price       float64
	Date        time.Time
}

// EventRepository defines persistence operations for events.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	List(ctx context.Context) ([]Event, error)
}

// EventInput carries the raw createEvent arguments before coercion.
type EventInput struct {
	Title       string
	Description string
	Price       float64
	Date        string
}

// dateLayouts are tried in order; date-only and zone-less forms are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Event coerces the input into an Event ready to be stored.
func (in EventInput) Event() (*Event, error) {
	date, err := ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	return &Event{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Date:        date,
	}, nil
}

// ParseDate reads a date or date-time string and returns it in UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// FormatDate renders t as an ISO-8601 UTC timestamp with millisecond precision.
func FormatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
