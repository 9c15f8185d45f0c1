package operation

import "net/http"

// Envelope is the uniform response of every operation.
//
// Success is false iff Errors is non-empty. Errors always encodes as a JSON
// array.
type Envelope struct {
	Success  bool      `json:"success"`
	Status   int       `json:"status"`
	Errors   []string  `json:"errors"`
	Payload  any       `json:"payload,omitempty"`
	Redirect *Redirect `json:"redirect,omitempty"`
}

// Redirect is the redirect-equivalent signal some legacy flows answer with
// instead of a payload.
type Redirect struct {
	Location string `json:"location"`
	Reason   string `json:"reason,omitempty"`
}

// OK returns a successful envelope.
func OK(payload any) Envelope {
	return Envelope{Success: true, Status: http.StatusOK, Errors: []string{}, Payload: payload}
}

// Fail returns the failure envelope for a non-empty list. An empty list
// yields a successful envelope so the invariant cannot be broken by callers.
func Fail(l *ErrorList, payload any) Envelope {
	if l == nil || l.Empty() {
		return OK(payload)
	}
	return Envelope{Success: false, Status: l.Status(), Errors: l.Messages(), Payload: payload}
}

// Failure returns a single-error envelope.
func Failure(class Class, msg string) Envelope {
	var l ErrorList
	l.Add(class, msg)
	return Fail(&l, nil)
}

// Redirected returns a redirect envelope.
func Redirected(location, reason string) Envelope {
	return Envelope{
		Success:  true,
		Status:   http.StatusSeeOther,
		Errors:   []string{},
		Redirect: &Redirect{Location: location, Reason: reason},
	}
}

// RedirectTo turns a successful envelope into a redirect that keeps its
// payload. Failed envelopes are returned unchanged.
func (e Envelope) RedirectTo(location, reason string) Envelope {
	if !e.Success || e.Redirect != nil {
		return e
	}
	e.Status = http.StatusSeeOther
	e.Redirect = &Redirect{Location: location, Reason: reason}
	return e
}
