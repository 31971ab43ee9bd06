package mongodb_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/eventsplanner/events-api/internal/domain"
	"github.com/eventsplanner/events-api/internal/repository/mongodb"
)

const mockDB = "events_mock"

// newMockT runs against an in-process mock deployment, so these tests need no server.
func newMockT(t *testing.T) *mtest.T {
	t.Helper()
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func TestMigrate_CreatesUniqueEmailIndex(t *testing.T) {
	newMockT(t).Run("migrate", func(mt *mtest.T) {
		db := mongodb.New(mt.Client, mockDB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		if err := db.Migrate(context.Background()); err != nil {
			mt.Fatalf("Migrate: %v", err)
		}

		started := mt.GetStartedEvent()
		if started == nil || started.CommandName != "createIndexes" {
			mt.Fatalf("expected createIndexes command, got %+v", started)
		}
		if coll := started.Command.Lookup("createIndexes").StringValue(); coll != "users" {
			mt.Fatalf("expected index on users, got %q", coll)
		}
		index := started.Command.Lookup("indexes", "0")
		if unique, ok := index.Document().Lookup("unique").BooleanOK(); !ok || !unique {
			mt.Fatal("expected a unique index")
		}
		if name, _ := index.Document().Lookup("name").StringValueOK(); name != "email_unique" {
			mt.Fatalf("expected index name email_unique, got %q", name)
		}
	})
}

func TestUserRepository_Create_DuplicateKey(t *testing.T) {
	newMockT(t).Run("duplicate key", func(mt *mtest.T) {
		repo := mongodb.New(mt.Client, mockDB).Users()
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: events_mock.users index: email_unique",
		}))

		user := &domain.User{Email: "dup@example.com", PasswordHash: "h"}
		err := repo.Create(context.Background(), user)
		if !errors.Is(err, domain.ErrDuplicateUser) {
			mt.Fatalf("expected ErrDuplicateUser, got %v", err)
		}
		if user.ID != "" {
			mt.Fatalf("expected no ID on failed insert, got %q", user.ID)
		}
	})
}

func TestUserRepository_Create_OtherWriteError(t *testing.T) {
	newMockT(t).Run("write error", func(mt *mtest.T) {
		repo := mongodb.New(mt.Client, mockDB).Users()
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    121,
			Message: "Document failed validation",
		}))

		err := repo.Create(context.Background(), &domain.User{Email: "a@b.com", PasswordHash: "h"})
		if err == nil {
			mt.Fatal("expected error")
		}
		if errors.Is(err, domain.ErrDuplicateUser) {
			mt.Fatal("validation failure must not read as a duplicate")
		}
	})
}

func TestUserRepository_Create_AssignsObjectID(t *testing.T) {
	newMockT(t).Run("insert", func(mt *mtest.T) {
		repo := mongodb.New(mt.Client, mockDB).Users()
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		user := &domain.User{Email: "a@b.com", PasswordHash: "hash"}
		if err := repo.Create(context.Background(), user); err != nil {
			mt.Fatalf("Create: %v", err)
		}
		if _, err := primitive.ObjectIDFromHex(user.ID); err != nil {
			mt.Fatalf("expected ObjectID hex, got %q", user.ID)
		}
	})
}

func TestUserRepository_GetByEmail_Mock(t *testing.T) {
	mt := newMockT(t)

	mt.Run("not found", func(mt *mtest.T) {
		repo := mongodb.New(mt.Client, mockDB).Users()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mockDB+".users", mtest.FirstBatch))

		_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
		if !errors.Is(err, domain.ErrNotFound) {
			mt.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	mt.Run("found", func(mt *mtest.T) {
		repo := mongodb.New(mt.Client, mockDB).Users()
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mockDB+".users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "email", Value: "a@b.com"},
			{Key: "password", Value: "hash"},
		}))

		user, err := repo.GetByEmail(context.Background(), "a@b.com")
		if err != nil {
			mt.Fatalf("GetByEmail: %v", err)
		}
		if user.ID != id.Hex() || user.Email != "a@b.com" || user.PasswordHash != "hash" {
			mt.Fatalf("unexpected user: %+v", user)
		}
	})
}

func TestEventRepository_Create_TruncatesToMillis(t *testing.T) {
	newMockT(t).Run("insert", func(mt *mtest.T) {
		repo := mongodb.New(mt.Client, mockDB).Events()
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		date := time.Date(2024, 1, 1, 10, 30, 0, 123456789, time.FixedZone("CET", 3600))
		event := &domain.Event{Title: "Meetup", Description: "Talk", Price: 12.5, Date: date}
		if err := repo.Create(context.Background(), event); err != nil {
			mt.Fatalf("Create: %v", err)
		}

		want := time.Date(2024, 1, 1, 9, 30, 0, 123000000, time.UTC)
		if !event.Date.Equal(want) {
			mt.Fatalf("expected %v, got %v", want, event.Date)
		}
		if event.Date.Location() != time.UTC {
			mt.Fatalf("expected UTC, got %v", event.Date.Location())
		}
		if len(event.ID) != 24 {
			mt.Fatalf("expected 24 char ObjectID hex, got %q", event.ID)
		}
	})
}

func TestEventRepository_List_Mock(t *testing.T) {
	mt := newMockT(t)

	mt.Run("empty", func(mt *mtest.T) {
		repo := mongodb.New(mt.Client, mockDB).Events()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mockDB+".events", mtest.FirstBatch))

		events, err := repo.List(context.Background())
		if err != nil {
			mt.Fatalf("List: %v", err)
		}
		if events == nil || len(events) != 0 {
			mt.Fatalf("expected empty non-nil slice, got %#v", events)
		}
	})

	mt.Run("store order", func(mt *mtest.T) {
		repo := mongodb.New(mt.Client, mockDB).Events()
		first, second := primitive.NewObjectID(), primitive.NewObjectID()
		date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mockDB+".events", mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: first},
				{Key: "title", Value: "Meetup"},
				{Key: "description", Value: "Talk"},
				{Key: "price", Value: 12.5},
				{Key: "date", Value: primitive.NewDateTimeFromTime(date)},
			},
			bson.D{
				{Key: "_id", Value: second},
				{Key: "title", Value: "Workshop"},
				{Key: "description", Value: "Hands on"},
				{Key: "price", Value: 0.0},
				{Key: "date", Value: primitive.NewDateTimeFromTime(date.Add(24 * time.Hour))},
			},
		))

		events, err := repo.List(context.Background())
		if err != nil {
			mt.Fatalf("List: %v", err)
		}
		if len(events) != 2 {
			mt.Fatalf("expected 2 events, got %d", len(events))
		}
		if events[0].ID != first.Hex() || events[1].ID != second.Hex() {
			mt.Fatalf("unexpected order: %s, %s", events[0].ID, events[1].ID)
		}
		if events[0].Price != 12.5 || !events[0].Date.Equal(date) {
			mt.Fatalf("unexpected event: %+v", events[0])
		}
	})
}

func TestEventRepository_List_CommandError(t *testing.T) {
	newMockT(t).Run("find fails", func(mt *mtest.T) {
		repo := mongodb.New(mt.Client, mockDB).Events()
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized on events_mock to execute command",
		}))

		if _, err := repo.List(context.Background()); err == nil {
			mt.Fatal("expected error")
		}
	})
}
