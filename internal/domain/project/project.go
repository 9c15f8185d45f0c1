// Package project defines the Project domain entity managed by administrators.
package project

import "time"

// Project is a scheduled client job. Rows are never removed: Deleted and
// Completed are status flags.
type Project struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	Address        string    `json:"address"`
	StartTimestamp int64     `json:"start_timestamp"` // unix seconds
	Completed      bool      `json:"completed"`
	Deleted        bool      `json:"deleted"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Detail is the read-one projection.
type Detail struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	Address        string `json:"address"`
	StartTimestamp int64  `json:"start_timestamp"`
}

// Summary is the read-many projection.
type Summary struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Address        string `json:"address"`
	StartTimestamp int64  `json:"start_timestamp"`
	Completed      bool   `json:"completed"`
}

// Detail returns the read-one projection of p.
func (p *Project) Detail() Detail {
	return Detail{
		ID:             p.ID,
		Name:           p.Name,
		Type:           p.Type,
		Address:        p.Address,
		StartTimestamp: p.StartTimestamp,
	}
}

// Summary returns the read-many projection of p.
func (p *Project) Summary() Summary {
	return Summary{
		ID:             p.ID,
		Name:           p.Name,
		Address:        p.Address,
		StartTimestamp: p.StartTimestamp,
		Completed:      p.Completed,
	}
}

// ListFilter selects projects for the list query. Deleted projects are always
// excluded.
type ListFilter struct {
	IncludeCompleted bool
}
