package journal

import "github.com/Strob0t/clientdesk/internal/operation"

// Messages are the validation errors reported for journal requests.
var Messages = operation.Messages{
	"id":         "No journal id passed to the query.",
	"journal_id": "A journal ID was not received with this request; please provide one or use the appropriate route to create a new journal.",
	"title":      "No title given for journal.",
	"body":       "No body given for journal.",
}

// ShapeMessage is reported when a create request carries a journal id.
const ShapeMessage = "A journal ID was received with this request; please use the appropriate route for updating journals."

// GetRequest is the typed input of read-one.
type GetRequest struct {
	ID string `json:"id" validate:"required"`
}

// CreateRequest holds the fields of a new journal. JournalID must be empty:
// it is the route-shape check, not a stored value.
type CreateRequest struct {
	JournalID string `json:"-"`
	Title     string `json:"title" validate:"required"`
	Body      string `json:"body" validate:"required"`
}

// UpdateRequest holds the fields of an existing journal.
type UpdateRequest struct {
	JournalID string `json:"journal_id" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Body      string `json:"body" validate:"required"`
}

// DecodeGet builds a GetRequest from raw parameters.
func DecodeGet(p operation.Params) GetRequest {
	return GetRequest{ID: p.Text("id")}
}

// DecodeList builds the list filter for owner. The limit is clamped to
// (0, MaxLimit].
func DecodeList(owner int64, p operation.Params) ListFilter {
	limit := int(p.Int64("limit"))
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	return ListFilter{UserID: owner, Limit: limit}
}

// DecodeCreate builds a CreateRequest from raw parameters.
func DecodeCreate(p operation.Params) CreateRequest {
	return CreateRequest{
		JournalID: p.Text("journal_id"),
		Title:     p.Text("title"),
		Body:      p.Text("body"),
	}
}

// DecodeUpdate builds an UpdateRequest. The id may arrive as journal_id in
// the body or as the id route parameter.
func DecodeUpdate(p operation.Params) UpdateRequest {
	id := p.Text("journal_id")
	if id == "" {
		id = p.Text("id")
	}
	return UpdateRequest{
		JournalID: id,
		Title:     p.Text("title"),
		Body:      p.Text("body"),
	}
}

// CheckCreate records every problem of a create request.
func CheckCreate(l *operation.ErrorList, req CreateRequest) {
	if req.JournalID != "" {
		l.Add(operation.ClassShapeMismatch, ShapeMessage)
	}
	operation.Check(l, req, Messages)
}
