// Package service implements business logic on top of ports. Every exported
// operation takes the actor and the raw parameters explicitly and answers
// with an operation.Envelope.
package service

import "github.com/Strob0t/clientdesk/internal/domain/user"

// requireRole returns an authorization check that fails with msg unless the
// actor holds role.
func requireRole(role user.Role, msg string) func(user.Actor) string {
	return func(a user.Actor) string {
		if !a.Has(role) {
			return msg
		}
		return ""
	}
}

// requireAuthenticated returns an authorization check that fails with msg
// for the anonymous actor.
func requireAuthenticated(msg string) func(user.Actor) string {
	return func(a user.Actor) string {
		if a.Anonymous() {
			return msg
		}
		return ""
	}
}
