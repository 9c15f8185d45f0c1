package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/Strob0t/clientdesk/internal/domain"
	"github.com/Strob0t/clientdesk/internal/domain/affiliate"
	"github.com/Strob0t/clientdesk/internal/domain/user"
	"github.com/Strob0t/clientdesk/internal/operation"
	"github.com/Strob0t/clientdesk/internal/port/cache"
	"github.com/Strob0t/clientdesk/internal/port/database"
	"github.com/Strob0t/clientdesk/internal/port/export"
)

// PasswordHasher hashes a plain-text password for storage.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// AffiliateService handles the affiliate directory, registration, click
// tracking and conversion exports.
type AffiliateService struct {
	store  database.Store
	hasher PasswordHasher
	runner *operation.Runner
	now    func() time.Time

	links   cache.Cache
	linkTTL time.Duration
}

// NewAffiliateService creates a new AffiliateService.
func NewAffiliateService(store database.Store, hasher PasswordHasher, runner *operation.Runner) *AffiliateService {
	return &AffiliateService{store: store, hasher: hasher, runner: runner, now: time.Now}
}

// WithLinkCache caches link to sponsor lookups for the click route. Only
// hits are cached; links are never reassigned, so entries need no
// invalidation.
func (s *AffiliateService) WithLinkCache(c cache.Cache, ttl time.Duration) *AffiliateService {
	s.links = c
	s.linkTTL = ttl
	return s
}

func linkCacheKey(link string) string { return "affiliate:link:" + link }

// sponsorForLink resolves an affiliate link to the affiliate's user id.
// Cache failures fall back to the store.
func (s *AffiliateService) sponsorForLink(ctx context.Context, link string) (int64, error) {
	if s.links != nil {
		raw, ok, err := s.links.Get(ctx, linkCacheKey(link))
		if err != nil {
			slog.WarnContext(ctx, "link cache get", "link", link, "error", err)
		}
		if ok {
			if id, perr := strconv.ParseInt(string(raw), 10, 64); perr == nil {
				return id, nil
			}
		}
	}

	u, err := s.store.GetAffiliateByLink(ctx, link)
	if err != nil {
		return 0, err
	}
	if s.links != nil {
		if err := s.links.Set(ctx, linkCacheKey(link), []byte(strconv.FormatInt(u.ID, 10)), s.linkTTL); err != nil {
			slog.WarnContext(ctx, "link cache set", "link", link, "error", err)
		}
	}
	return u.ID, nil
}

type affiliatesPayload struct {
	Affiliates []affiliate.Summary `json:"affiliates"`
}

type affiliatePayload struct {
	Affiliate affiliate.Profile `json:"affiliate"`
}

type urlCheckPayload struct {
	Exists bool `json:"exists"`
}

type registeredPayload struct {
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
}

// ClickPayload carries the sponsor to remember after a tracked click.
type ClickPayload struct {
	AffiliateID int64 `json:"affiliate_id"`
	ClickID     int64 `json:"click_id"`
}

type searchInfoPayload struct {
	Affiliates []affiliate.SearchInfo `json:"affiliates"`
}

// Directory lists every affiliate by name. An empty directory is reported as
// not found.
func (s *AffiliateService) Directory(ctx context.Context, actor user.Actor) operation.Envelope {
	return operation.Run(ctx, s.runner, operation.Operation[affiliatesPayload]{
		Name:  "affiliate.directory",
		Kind:  operation.KindReadMany,
		Actor: actor,
		Execute: func(ctx context.Context) (affiliatesPayload, error) {
			rows, err := s.store.ListAffiliates(ctx)
			if err != nil {
				return affiliatesPayload{}, err
			}
			if len(rows) == 0 {
				return affiliatesPayload{}, domain.ErrNotFound
			}
			out := affiliatesPayload{Affiliates: make([]affiliate.Summary, 0, len(rows))}
			for i := range rows {
				out.Affiliates = append(out.Affiliates, affiliate.SummaryOf(&rows[i]))
			}
			return out, nil
		},
		NotFound: "No affiliates were found.",
		Failure:  "Undetermined error loading affiliates.",
	})
}

// Profile returns the public profile of one affiliate.
func (s *AffiliateService) Profile(ctx context.Context, actor user.Actor, p operation.Params) operation.Envelope {
	req := affiliate.DecodeProfile(p)
	return operation.Run(ctx, s.runner, operation.Operation[affiliatePayload]{
		Name:     "affiliate.profile",
		Kind:     operation.KindReadOne,
		Actor:    actor,
		Validate: func(l *operation.ErrorList) { operation.Check(l, req, affiliate.Messages) },
		Execute: func(ctx context.Context) (affiliatePayload, error) {
			u, err := s.store.GetUser(ctx, req.ID)
			if err != nil {
				return affiliatePayload{}, err
			}
			if !affiliate.IsAffiliate(u) {
				return affiliatePayload{}, fmt.Errorf("user %d is not an affiliate: %w", req.ID, domain.ErrNotFound)
			}
			return affiliatePayload{Affiliate: affiliate.ProfileOf(u)}, nil
		},
		NotFound: "Affiliate does not exist.",
		Failure:  "Undetermined error loading affiliate.",
	})
}

// URLCheck reports whether an affiliate link is already in use.
func (s *AffiliateService) URLCheck(ctx context.Context, actor user.Actor, p operation.Params) operation.Envelope {
	link := p.Text("link")
	return operation.Run(ctx, s.runner, operation.Operation[urlCheckPayload]{
		Name:  "affiliate.url_check",
		Kind:  operation.KindReadOne,
		Actor: actor,
		Execute: func(ctx context.Context) (urlCheckPayload, error) {
			if link == "" {
				return urlCheckPayload{}, nil
			}
			exists, err := s.store.AffiliateLinkExists(ctx, link)
			return urlCheckPayload{Exists: exists}, err
		},
		Failure: "Undetermined error checking affiliate link.",
	})
}

var existsRedirect = operation.Redirect{Location: affiliate.LoginPath, Reason: "exists"}

// Register signs up a new affiliate. An email that already has an account
// redirects to the login page before any validation runs. The sponsor comes
// from a client cookie, so it is kept only when it names an existing
// affiliate.
func (s *AffiliateService) Register(ctx context.Context, actor user.Actor, p operation.Params, sponsor int64, atShow bool) operation.Envelope {
	reg := affiliate.DecodeRegistration(p, sponsor, atShow)
	name := "affiliate.register"
	if atShow {
		name = "affiliate.register_show"
	}
	var linkTaken bool
	return operation.Run(ctx, s.runner, operation.Operation[registeredPayload]{
		Name:  name,
		Kind:  operation.KindCreate,
		Actor: actor,
		Precheck: func(ctx context.Context) (*operation.Redirect, error) {
			exists, err := s.emailRegistered(ctx, reg.Email)
			if err != nil {
				return nil, err
			}
			if exists {
				r := existsRedirect
				return &r, nil
			}
			if reg.SponsorID, err = s.resolveSponsor(ctx, reg.SponsorID); err != nil {
				return nil, err
			}
			if reg.AffiliateLink != "" {
				if linkTaken, err = s.store.AffiliateLinkExists(ctx, reg.AffiliateLink); err != nil {
					return nil, fmt.Errorf("check link %q: %w", reg.AffiliateLink, err)
				}
			}
			return nil, nil
		},
		Validate: func(l *operation.ErrorList) {
			operation.Check(l, reg, affiliate.Messages)
			if linkTaken {
				l.Add(operation.ClassValidation, affiliate.LinkTakenMessage)
			}
		},
		Execute: func(ctx context.Context) (registeredPayload, error) {
			hash, err := s.hasher.HashPassword(reg.Password)
			if err != nil {
				return registeredPayload{}, err
			}
			u := reg.User(hash)
			id, err := s.store.CreateUser(ctx, &u)
			if errors.Is(err, domain.ErrConflict) {
				// Lost a race with another registration: the email or the link.
				if exists, lerr := s.emailRegistered(ctx, reg.Email); lerr == nil && exists {
					return registeredPayload{}, &operation.RedirectError{Redirect: existsRedirect}
				}
				return registeredPayload{}, operation.Errorf(operation.ClassValidation, affiliate.LinkTakenMessage)
			}
			if err != nil {
				return registeredPayload{}, err
			}
			return registeredPayload{UserID: id, Message: "Registration complete"}, nil
		},
		Failure:         "Undetermined error registering affiliate.",
		RejectedPayload: p.Without(affiliate.Scrubbed...),
	})
}

func (s *AffiliateService) emailRegistered(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, nil
	}
	_, err := s.store.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("lookup %s: %w", email, err)
	}
}

// resolveSponsor returns id when it names an affiliate, and 0 otherwise.
func (s *AffiliateService) resolveSponsor(ctx context.Context, id int64) (int64, error) {
	if id <= 0 {
		return 0, nil
	}
	u, err := s.store.GetUser(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("lookup sponsor %d: %w", id, err)
	}
	if u.Role != user.RoleAffiliate {
		return 0, nil
	}
	return u.ID, nil
}

// Click records a visit through an affiliate link. Unknown links redirect to
// the plain registration page; known links redirect to the sponsored one and
// the payload names the sponsor to remember.
func (s *AffiliateService) Click(ctx context.Context, actor user.Actor, link, ip string) operation.Envelope {
	var sponsor int64
	env := operation.Run(ctx, s.runner, operation.Operation[ClickPayload]{
		Name:  "affiliate.click",
		Kind:  operation.KindCreate,
		Actor: actor,
		Precheck: func(ctx context.Context) (*operation.Redirect, error) {
			if link == "" {
				return &operation.Redirect{Location: affiliate.RegisterPath}, nil
			}
			id, err := s.sponsorForLink(ctx, link)
			if errors.Is(err, domain.ErrNotFound) {
				return &operation.Redirect{Location: affiliate.RegisterPath}, nil
			}
			if err != nil {
				return nil, fmt.Errorf("lookup link %q: %w", link, err)
			}
			sponsor = id
			return nil, nil
		},
		Execute: func(ctx context.Context) (ClickPayload, error) {
			id, err := s.store.CreateClick(ctx, &affiliate.Click{AffiliateID: sponsor, IPAddress: ip})
			return ClickPayload{AffiliateID: sponsor, ClickID: id}, err
		},
		Failure: "Undetermined error recording click.",
	})
	return env.RedirectTo(affiliate.RegisterSponsoredPath, "sponsored")
}

// Conversions exports the users sponsored by the actor, newest first. The
// payload is an export.Table.
func (s *AffiliateService) Conversions(ctx context.Context, actor user.Actor) operation.Envelope {
	return operation.Run(ctx, s.runner, operation.Operation[export.Table]{
		Name:      "affiliate.conversions",
		Kind:      operation.KindReadMany,
		Actor:     actor,
		Authorize: requireAuthenticated("Current user must be logged in to export conversions."),
		Execute: func(ctx context.Context) (export.Table, error) {
			rows, err := s.store.ListConversions(ctx, actor.UserID)
			if err != nil {
				return export.Table{}, err
			}
			t := export.Table{
				Filename: affiliate.ConversionFilename(actor.UserID, s.now()),
				Header:   affiliate.ConversionHeader,
				Rows:     make([][]string, 0, len(rows)),
			}
			for i := range rows {
				t.Rows = append(t.Rows, affiliate.ConversionRow(&rows[i]))
			}
			return t, nil
		},
		Failure: "Undetermined error exporting conversions.",
	})
}

// SearchInfo describes the requested affiliates for the search front end.
// Unknown ids are skipped.
func (s *AffiliateService) SearchInfo(ctx context.Context, actor user.Actor, p operation.Params) operation.Envelope {
	req := affiliate.DecodeSearch(p)
	return operation.Run(ctx, s.runner, operation.Operation[searchInfoPayload]{
		Name:  "affiliate.search_info",
		Kind:  operation.KindReadMany,
		Actor: actor,
		Execute: func(ctx context.Context) (searchInfoPayload, error) {
			out := searchInfoPayload{Affiliates: []affiliate.SearchInfo{}}
			if len(req.Affiliates) == 0 {
				return out, nil
			}
			rows, err := s.store.ListAffiliatesByID(ctx, req.Affiliates)
			if err != nil {
				return searchInfoPayload{}, err
			}
			for i := range rows {
				out.Affiliates = append(out.Affiliates, affiliate.SearchInfoOf(&rows[i]))
			}
			return out, nil
		},
		Failure: "Undetermined error loading affiliates.",
	})
}
