// Package user defines the identity model: the persisted account and the
// actor context every operation is evaluated against.
package user

import "time"

// Role represents the authorization level of a user.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleAffiliate Role = "affiliate"
	RoleMember    Role = "member"
)

// ValidRoles is the set of all valid user roles.
var ValidRoles = map[Role]bool{
	RoleAdmin:     true,
	RoleAffiliate: true,
	RoleMember:    true,
}

// Actor is the authenticated identity and role of a requester.
// The zero value is the anonymous actor.
type Actor struct {
	UserID int64 `json:"user_id"`
	Role   Role  `json:"role"`
}

// Anonymous reports whether the actor carries no identity.
func (a Actor) Anonymous() bool {
	return a.UserID == 0
}

// Has reports whether the actor is authenticated with the given role.
func (a Actor) Has(role Role) bool {
	return !a.Anonymous() && a.Role == role
}

// User is a registered account. Affiliates are users with RoleAffiliate and
// the affiliate profile columns filled in.
type User struct {
	ID               int64     `json:"id"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"` // never serialized
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Phone            string    `json:"phone"`
	Address          string    `json:"address"`
	City             string    `json:"city"`
	State            string    `json:"state"`
	Zip              string    `json:"zip"`
	Role             Role      `json:"role"`
	SponsorID        int64     `json:"sponsor_id,omitempty"`
	AffiliateName    string    `json:"affiliate_name,omitempty"`
	AffiliateLink    string    `json:"affiliate_link,omitempty"`
	About            string    `json:"about,omitempty"`
	Avatar           string    `json:"avatar,omitempty"`
	RegisteredAtShow bool      `json:"registered_at_show,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// Actor returns the actor context for an authenticated user.
func (u *User) Actor() Actor {
	return Actor{UserID: u.ID, Role: u.Role}
}

// LoginRequest is the typed input for password authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"` //nolint:gosec // request field, not a hardcoded secret
}

// LoginResponse is returned after successful authentication.
type LoginResponse struct {
	Token     string `json:"token"`      //nolint:gosec // response field, not a hardcoded secret
	ExpiresIn int    `json:"expires_in"` // seconds until the token expires
	UserID    int64  `json:"user_id"`
	Role      Role   `json:"role"`
}
