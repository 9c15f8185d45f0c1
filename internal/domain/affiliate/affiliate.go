// Package affiliate defines the affiliate marketing model: public profiles,
// click tracking and sponsored conversions.
package affiliate

import (
	"regexp"
	"strconv"
	"time"

	"github.com/Strob0t/clientdesk/internal/domain/user"
)

// CookieName carries the sponsoring affiliate id between a click and a
// registration.
const CookieName = "affiliate"

// Redirect targets of the click and registration flows.
const (
	RegisterPath          = "/register"
	RegisterSponsoredPath = "/register/sponsored"
	LoginPath             = "/login"
)

// Profile is the public projection of an affiliate account.
type Profile struct {
	UserID        int64  `json:"user_id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	AffiliateName string `json:"affiliate_name"`
	AffiliateLink string `json:"affiliate_link"`
	About         string `json:"about"`
	Avatar        string `json:"avatar"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zip           string `json:"zip"`
}

// Summary is the directory projection.
type Summary struct {
	UserID        int64  `json:"user_id"`
	AffiliateName string `json:"affiliate_name"`
	AffiliateLink string `json:"affiliate_link"`
	Avatar        string `json:"avatar"`
	City          string `json:"city"`
	State         string `json:"state"`
}

// SearchInfo is the projection returned to the search front end.
type SearchInfo struct {
	AffiliateID     int64  `json:"affiliate_id"`
	AffiliateName   string `json:"affiliate_name"`
	AffiliateAvatar string `json:"affiliate_avatar"`
	AffiliateCity   string `json:"affiliate_city"`
	AffiliateState  string `json:"affiliate_state"`
	AffiliateZip    string `json:"affiliate_zip"`
}

// Click records one visit through an affiliate link.
type Click struct {
	ID          int64     `json:"id"`
	AffiliateID int64     `json:"affiliate_id"`
	IPAddress   string    `json:"ip_address"`
	CreatedAt   time.Time `json:"created_at"`
}

var scriptBlock = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)

// SanitizeAbout removes <script> blocks from user-supplied profile text.
func SanitizeAbout(s string) string {
	return scriptBlock.ReplaceAllString(s, "")
}

// IsAffiliate reports whether u is an affiliate account.
func IsAffiliate(u *user.User) bool {
	return u != nil && u.Role == user.RoleAffiliate
}

// ProfileOf returns the sanitized public profile of u.
func ProfileOf(u *user.User) Profile {
	return Profile{
		UserID:        u.ID,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		AffiliateName: u.AffiliateName,
		AffiliateLink: u.AffiliateLink,
		About:         SanitizeAbout(u.About),
		Avatar:        u.Avatar,
		City:          u.City,
		State:         u.State,
		Zip:           u.Zip,
	}
}

// SummaryOf returns the directory entry of u.
func SummaryOf(u *user.User) Summary {
	return Summary{
		UserID:        u.ID,
		AffiliateName: u.AffiliateName,
		AffiliateLink: u.AffiliateLink,
		Avatar:        u.Avatar,
		City:          u.City,
		State:         u.State,
	}
}

// SearchInfoOf returns the search projection of u.
func SearchInfoOf(u *user.User) SearchInfo {
	return SearchInfo{
		AffiliateID:     u.ID,
		AffiliateName:   u.AffiliateName,
		AffiliateAvatar: u.Avatar,
		AffiliateCity:   u.City,
		AffiliateState:  u.State,
		AffiliateZip:    u.Zip,
	}
}

// SponsorFromCookie parses the affiliate cookie value. Anything that is not
// a positive id yields 0.
func SponsorFromCookie(v string) int64 {
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}
