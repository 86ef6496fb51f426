package service

import "github.com/google/uuid"

// Identity is the caller resolved from the bearer token by the auth
// middleware: who is acting and in which of the two disjoint roles.
type Identity struct {
	ID   uuid.UUID
	Role string
}
