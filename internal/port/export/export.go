// Package export defines the tabular export sink port.
package export

import "io"

// Table is an ordered set of rows with a header, ready to be written out as
// a downloadable file.
type Table struct {
	Filename string
	Header   []string
	Rows     [][]string
}

// Sink renders a Table onto a writer.
type Sink interface {
	ContentType() string
	WriteTable(w io.Writer, t Table) error
}
