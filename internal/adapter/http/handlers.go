package http

import (
	"github.com/Strob0t/clientdesk/internal/port/export"
	"github.com/Strob0t/clientdesk/internal/service"
)

const defaultBodyLimit = 1 << 20 // 1 MB

// Handlers holds the HTTP handler dependencies.
type Handlers struct {
	Projects   *service.ProjectService
	Journals   *service.JournalService
	Affiliates *service.AffiliateService
	Auth       *service.AuthService
	Export     export.Sink
	BodyLimit  int64 // bytes; zero means defaultBodyLimit
	// SecureCookies marks the affiliate cookie Secure. Disable only for plain
	// HTTP development setups.
	SecureCookies bool
}

func (h *Handlers) bodyLimit() int64 {
	if h.BodyLimit > 0 {
		return h.BodyLimit
	}
	return defaultBodyLimit
}
