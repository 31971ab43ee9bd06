package graph

import (
	"context"
	"fmt"
	"log/slog"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/eventsplanner/events-api/internal/domain"
)

// EventService is what the resolvers need from the event layer.
type EventService interface {
	Create(ctx context.Context, in domain.EventInput) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
}

// UserService is what the resolvers need from the user layer.
type UserService interface {
	Create(ctx context.Context, in domain.UserInput) (*domain.User, error)
}

// Resolver is the root resolver for both RootQuery and RootMutation.
type Resolver struct {
	events EventService
	users  UserService
}

// NewResolver creates a root resolver over the given services.
func NewResolver(events EventService, users UserService) *Resolver {
	return &Resolver{events: events, users: users}
}

type eventInputArgs struct {
	Title       string
	Description string
	Price       float64
	Date        string
}

type userInputArgs struct {
	Email    string
	Password string
}

// Events resolves RootQuery.events.
func (r *Resolver) Events(ctx context.Context) ([]*eventResolver, error) {
	events, err := r.events.List(ctx)
	if err != nil {
		return nil, r.fail("events", err)
	}

	out := make([]*eventResolver, len(events))
	for i := range events {
		out[i] = &eventResolver{e: events[i]}
	}
	return out, nil
}

// CreateEvent resolves RootMutation.createEvent.
func (r *Resolver) CreateEvent(ctx context.Context, args struct{ EventInput *eventInputArgs }) (*eventResolver, error) {
	if refuseMutation(ctx) {
		return nil, &Error{Code: CodeMethodNotAllowed, Err: errMutationOverGET}
	}
	if args.EventInput == nil {
		return nil, r.fail("createEvent", fmt.Errorf("%w: eventInput is required", domain.ErrInvalidInput))
	}

	in := args.EventInput
	event, err := r.events.Create(ctx, domain.EventInput{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Date:        in.Date,
	})
	if err != nil {
		return nil, r.fail("createEvent", err)
	}
	return &eventResolver{e: *event}, nil
}

// CreateUser resolves RootMutation.createUser.
func (r *Resolver) CreateUser(ctx context.Context, args struct{ UserInput *userInputArgs }) (*userResolver, error) {
	if refuseMutation(ctx) {
		return nil, &Error{Code: CodeMethodNotAllowed, Err: errMutationOverGET}
	}
	if args.UserInput == nil {
		return nil, r.fail("createUser", fmt.Errorf("%w: userInput is required", domain.ErrInvalidInput))
	}

	user, err := r.users.Create(ctx, domain.UserInput{
		Email:    args.UserInput.Email,
		Password: args.UserInput.Password,
	})
	if err != nil {
		return nil, r.fail("createUser", err)
	}
	return &userResolver{u: *user}, nil
}

// fail classifies err and logs store failures; the error still reaches the client.
func (r *Resolver) fail(field string, err error) error {
	gqlErr := classify(err)
	if gqlErr.Code == CodePersistence {
		slog.Error("resolver failed", "field", field, "error", err)
	}
	return gqlErr
}

type eventResolver struct {
	e domain.Event
}

func (r *eventResolver) ID() graphql.ID      { return graphql.ID(r.e.ID) }
func (r *eventResolver) Title() string       { return r.e.Title }
func (r *eventResolver) Description() string { return r.e.Description }
func (r *eventResolver) Price() float64      { return r.e.Price }
func (r *eventResolver) Date() string        { return domain.FormatDate(r.e.Date) }

type userResolver struct {
	u domain.User
}

func (r *userResolver) ID() graphql.ID { return graphql.ID(r.u.ID) }
func (r *userResolver) Email() string  { return r.u.Email }

// Password is always null; the stored hash never leaves the service.
func (r *userResolver) Password() *string { return nil }
