package csvexport_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Strob0t/clientdesk/internal/adapter/csvexport"
	"github.com/Strob0t/clientdesk/internal/port/export"
)

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	err := csvexport.Sink{}.WriteTable(&buf, export.Table{
		Filename: "7conversions.csv",
		Header:   []string{"Email", "First Name", "Address"},
		Rows: [][]string{
			{"a@example.com", "Ann", "1 Main St, Apt 2"},
			{"b@example.com", `Bo "B"`, ""},
		},
	})
	require.NoError(t, err)

	want := "Email,First Name,Address\n" +
		"a@example.com,Ann,\"1 Main St, Apt 2\"\n" +
		"b@example.com,\"Bo \"\"B\"\"\",\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteTableHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, csvexport.Sink{}.WriteTable(&buf, export.Table{Header: []string{"Email"}}))
	assert.Equal(t, "Email\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteTableWriterError(t *testing.T) {
	err := csvexport.Sink{}.WriteTable(failingWriter{}, export.Table{Header: []string{"Email"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/csv; charset=utf-8", csvexport.Sink{}.ContentType())
}
