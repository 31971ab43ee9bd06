// Package graph holds the GraphQL schema and the resolvers that serve it.
package graph

import (
	"fmt"

	graphql "github.com/graph-gophers/graphql-go"
)

// SDL is the public API surface. Field and type names are part of the
// contract with existing clients and must not change.
const SDL = `
type Event {
	_id: ID!
	title: String!
	description: String!
	price: Float!
	date: String!
}

type User {
	_id: ID!
	email: String!
	password: String
}

input EventInput {
	title: String!
	description: String!
	price: Float!
	date: String!
}

input UserInput {
	email: String!
	password: String!
}

type RootQuery {
	events: [Event!]!
}

type RootMutation {
	createEvent(eventInput: EventInput): Event
	createUser(userInput: UserInput): User
}

schema {
	query: RootQuery
	mutation: RootMutation
}
`

// NewSchema parses SDL and binds it to a resolver over the given services.
func NewSchema(events EventService, users UserService) (*graphql.Schema, error) {
	schema, err := graphql.ParseSchema(SDL, NewResolver(events, users), graphql.MaxDepth(10))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	return schema, nil
}
