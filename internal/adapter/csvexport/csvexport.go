// Package csvexport renders export tables as RFC 4180 CSV.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/Strob0t/clientdesk/internal/port/export"
)

// ContentType is the media type written by Sink.
const ContentType = "text/csv; charset=utf-8"

var _ export.Sink = Sink{}

// Sink writes a table as CSV with its header as the first record.
type Sink struct{}

// ContentType returns the CSV media type.
func (Sink) ContentType() string {
	return ContentType
}

// WriteTable writes the header followed by every row.
func (Sink) WriteTable(w io.Writer, t export.Table) error {
	cw := csv.NewWriter(w)
	if len(t.Header) > 0 {
		if err := cw.Write(t.Header); err != nil {
			return fmt.Errorf("write csv header: %w", err)
		}
	}
	for i, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
