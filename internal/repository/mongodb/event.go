package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eventsplanner/events-api/internal/domain"
)

type eventDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Date        time.Time          `bson:"date"`
}

func (d eventDocument) toDomain() domain.Event {
	return domain.Event{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price,
		Date:        d.Date.UTC(),
	}
}

// EventRepository implements domain.EventRepository on the events collection.
type EventRepository struct {
	coll *mongo.Collection
}

func (r *EventRepository) Create(ctx context.Context, event *domain.Event) error {
	doc := eventDocument{
		ID:          primitive.NewObjectID(),
		Title:       event.Title,
		Description: event.Description,
		Price:       event.Price,
		Date:        event.Date.UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	event.ID = doc.ID.Hex()
	// BSON dates keep millisecond precision; mirror what a later read returns.
	event.Date = doc.Date.Truncate(time.Millisecond)
	return nil
}

// List returns every event in natural (store) order.
func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}

	var docs []eventDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}

	events := make([]domain.Event, 0, len(docs))
	for _, d := range docs {
		events = append(events, d.toDomain())
	}
	return events, nil
}
