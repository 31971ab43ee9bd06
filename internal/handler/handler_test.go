package handler_test

import (
	"context"
	"path/filepath"
	"testing"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/eventsplanner/events-api/internal/graph"
	"github.com/eventsplanner/events-api/internal/repository/sqlite"
	"github.com/eventsplanner/events-api/internal/service"
)

func newTestSchema(t *testing.T) (*graphql.Schema, *sqlite.DB) {
	t.Helper()
	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema, err := graph.NewSchema(
		service.NewEventService(db.Events()),
		service.NewUserService(db.Users(), 4),
	)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	return schema, db
}
