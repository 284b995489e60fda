package service

import (
	"errors"

	"github.com/google/uuid"
)

// Shared service errors, mapped to HTTP statuses at the handler layer
var (
	ErrForbidden = errors.New("operation not permitted")
	ErrNotFound  = errors.New("resource not found")
)

// Actor identifies the account performing a request. It is built from the
// authenticated token claims and queried before any mutating operation, so
// authorization stays an explicit policy instead of middleware-only magic.
type Actor struct {
	ID         uuid.UUID
	Email      string
	Name       string
	Privileges []string
}

// Can reports whether the actor holds the given capability
func (a Actor) Can(code string) bool {
	for _, p := range a.Privileges {
		if p == code {
			return true
		}
	}
	return false
}

// Owns reports whether the actor owns the entity with the given owner id
func (a Actor) Owns(ownerID uuid.UUID) bool {
	return a.ID == ownerID
}
