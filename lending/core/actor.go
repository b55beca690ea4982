package core

import (
	"strings"
)

// Actor is the already authenticated caller of a gateway.
type Actor struct {
	UserID  UserIDString
	IsAdmin bool
}

// User returns a borrower actor.
func User(userID UserIDString) Actor {
	return Actor{UserID: userID}
}

// Admin returns an actor with administrator capability.
func Admin(adminID UserIDString) Actor {
	return Actor{UserID: adminID, IsAdmin: true}
}

// RequireIdentity fails with ErrInvalidArgument if the actor carries no user id.
func (a Actor) RequireIdentity() error {
	if strings.TrimSpace(a.UserID) == "" {
		return InvalidArgumentError("actor user id is required")
	}

	return nil
}

// RequireAdmin fails with ErrForbidden unless the actor has administrator capability.
func (a Actor) RequireAdmin() error {
	if err := a.RequireIdentity(); err != nil {
		return err
	}

	if !a.IsAdmin {
		return ErrForbidden
	}

	return nil
}
