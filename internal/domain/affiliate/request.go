package affiliate

import (
	"strings"

	"github.com/Strob0t/clientdesk/internal/domain/user"
	"github.com/Strob0t/clientdesk/internal/operation"
)

// Messages are the validation errors reported for affiliate requests.
var Messages = operation.Messages{
	"id":                         "No affiliate id given.",
	"email":                      "No email address given.",
	"email.email":                "Email address is invalid.",
	"password":                   "No password given.",
	"password.min":               "Password must be at least 8 characters.",
	"first_name":                 "No first name given.",
	"last_name":                  "No last name given.",
	"affiliate_name":             "No affiliate name given.",
	"affiliate_link":             "No affiliate link given.",
	"affiliate_link.max":         "Affiliate link must be at most 64 characters.",
	"affiliate_link.excludesall": "Affiliate link may not contain slashes, question marks or hashes.",
}

// LinkTakenMessage is reported when the requested affiliate link belongs to
// another account.
const LinkTakenMessage = "That affiliate link is already taken."

// Scrubbed lists the registration fields never echoed back to the caller.
var Scrubbed = []string{"password", "stripe_token"}

// ProfileRequest is the typed input of the profile read.
type ProfileRequest struct {
	ID int64 `json:"id" validate:"required"`
}

// ClickRequest is the typed input of click tracking.
type ClickRequest struct {
	Link      string
	IPAddress string
}

// SearchRequest lists the affiliate ids to describe.
type SearchRequest struct {
	Affiliates []int64
}

// Registration holds the sign-up form of a new affiliate.
type Registration struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"` //nolint:gosec // request field
	FirstName     string `json:"first_name" validate:"required"`
	LastName      string `json:"last_name" validate:"required"`
	AffiliateName string `json:"affiliate_name" validate:"required"`
	AffiliateLink string `json:"affiliate_link" validate:"required,max=64,excludesall=/?#"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zip           string `json:"zip"`
	About         string `json:"about"`
	Avatar        string `json:"avatar"`

	SponsorID int64 `json:"-"`
	AtShow    bool  `json:"-"`
}

// DecodeProfile builds a ProfileRequest from raw parameters.
func DecodeProfile(p operation.Params) ProfileRequest {
	return ProfileRequest{ID: p.Int64("id")}
}

// DecodeSearch builds a SearchRequest from raw parameters.
func DecodeSearch(p operation.Params) SearchRequest {
	return SearchRequest{Affiliates: p.Int64s("affiliates")}
}

// DecodeRegistration builds a Registration. The sponsor comes from the click
// cookie, not from the form.
func DecodeRegistration(p operation.Params, sponsor int64, atShow bool) Registration {
	return Registration{
		Email:         strings.ToLower(p.Text("email")),
		Password:      p.String("password"),
		FirstName:     p.Text("first_name"),
		LastName:      p.Text("last_name"),
		AffiliateName: p.Text("affiliate_name"),
		AffiliateLink: p.Text("affiliate_link"),
		Phone:         p.Text("phone"),
		Address:       p.Text("address"),
		City:          p.Text("city"),
		State:         p.Text("state"),
		Zip:           p.Text("zip"),
		About:         p.String("about"),
		Avatar:        p.Text("avatar"),
		SponsorID:     sponsor,
		AtShow:        atShow,
	}
}

// User returns the account row to insert for r.
func (r *Registration) User(passwordHash string) user.User {
	return user.User{
		Email:            r.Email,
		PasswordHash:     passwordHash,
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		Phone:            r.Phone,
		Address:          r.Address,
		City:             r.City,
		State:            r.State,
		Zip:              r.Zip,
		Role:             user.RoleAffiliate,
		SponsorID:        r.SponsorID,
		AffiliateName:    r.AffiliateName,
		AffiliateLink:    r.AffiliateLink,
		About:            r.About,
		Avatar:           r.Avatar,
		RegisteredAtShow: r.AtShow,
	}
}
