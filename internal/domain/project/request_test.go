package project

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Strob0t/clientdesk/internal/operation"
)

func TestDecodeCreate(t *testing.T) {
	req := DecodeCreate(operation.Params{
		"name":            " Kitchen ",
		"address":         "1 Elm St",
		"start_timestamp": json.Number("1700000000"),
	})
	assert.Equal(t, CreateRequest{Name: "Kitchen", Address: "1 Elm St", StartTimestamp: 1700000000}, req)
}

func TestCreateValidation(t *testing.T) {
	var l operation.ErrorList
	operation.Check(&l, DecodeCreate(operation.Params{"name": "0"}), Messages)
	assert.Equal(t, []string{
		"No name given for project.",
		"No address given for project.",
		"No start time given for project.",
	}, l.Messages())
}

func TestUpdateValidation_TypeRequired(t *testing.T) {
	var l operation.ErrorList
	operation.Check(&l, DecodeUpdate(operation.Params{
		"id":              "4",
		"name":            "Kitchen",
		"address":         "1 Elm St",
		"start_timestamp": "1700000000",
	}), Messages)
	assert.Equal(t, []string{"No type given for project."}, l.Messages())
}

func TestDecodeFilter(t *testing.T) {
	assert.True(t, DecodeFilter(operation.Params{"completed": "1"}).IncludeCompleted)
	assert.False(t, DecodeFilter(operation.Params{"completed": "true"}).IncludeCompleted)
	assert.False(t, DecodeFilter(operation.Params{}).IncludeCompleted)
}

func TestProjections(t *testing.T) {
	p := Project{ID: 3, Name: "Kitchen", Type: "remodel", Address: "1 Elm St", StartTimestamp: 10, Completed: true}
	assert.Equal(t, Detail{ID: 3, Name: "Kitchen", Type: "remodel", Address: "1 Elm St", StartTimestamp: 10}, p.Detail())
	assert.Equal(t, Summary{ID: 3, Name: "Kitchen", Address: "1 Elm St", StartTimestamp: 10, Completed: true}, p.Summary())
}
