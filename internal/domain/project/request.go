package project

import "github.com/Strob0t/clientdesk/internal/operation"

// IDRequest is the typed input of read-one, mark-complete and soft-delete.
type IDRequest struct {
	ID int64 `json:"id" validate:"required"`
}

// CreateRequest holds the fields needed to create a new project.
type CreateRequest struct {
	Name           string `json:"name" validate:"required"`
	Type           string `json:"type"`
	Address        string `json:"address" validate:"required"`
	StartTimestamp int64  `json:"start_timestamp" validate:"required"`
}

// UpdateRequest holds every field of an existing project. Unlike create,
// the type is mandatory.
type UpdateRequest struct {
	ID             int64  `json:"id" validate:"required"`
	Name           string `json:"name" validate:"required"`
	Type           string `json:"type" validate:"required"`
	Address        string `json:"address" validate:"required"`
	StartTimestamp int64  `json:"start_timestamp" validate:"required"`
}

// Messages are the validation errors reported for project requests.
var Messages = operation.Messages{
	"id":              "No id given for project.",
	"name":            "No name given for project.",
	"type":            "No type given for project.",
	"address":         "No address given for project.",
	"start_timestamp": "No start time given for project.",
}

// DecodeID builds an IDRequest from raw parameters.
func DecodeID(p operation.Params) IDRequest {
	return IDRequest{ID: p.Int64("id")}
}

// DecodeCreate builds a CreateRequest from raw parameters.
func DecodeCreate(p operation.Params) CreateRequest {
	return CreateRequest{
		Name:           p.Text("name"),
		Type:           p.Text("type"),
		Address:        p.Text("address"),
		StartTimestamp: p.Int64("start_timestamp"),
	}
}

// DecodeUpdate builds an UpdateRequest from raw parameters.
func DecodeUpdate(p operation.Params) UpdateRequest {
	return UpdateRequest{
		ID:             p.Int64("id"),
		Name:           p.Text("name"),
		Type:           p.Text("type"),
		Address:        p.Text("address"),
		StartTimestamp: p.Int64("start_timestamp"),
	}
}

// DecodeFilter builds the list filter. Completed projects are included only
// when completed=1.
func DecodeFilter(p operation.Params) ListFilter {
	return ListFilter{IncludeCompleted: p.Int64("completed") == 1}
}
