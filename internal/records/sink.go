package records

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Delimiter separates fields in the tabular output.
const Delimiter = ';'

// CSVSink accumulates records as delimited text, header first, in the order
// they are written.
type CSVSink struct {
	buf   bytes.Buffer
	w     *csv.Writer
	count int
}

// NewCSVSink returns a sink with the header row already written.
func NewCSVSink() (*CSVSink, error) {
	s := &CSVSink{}
	s.w = csv.NewWriter(&s.buf)
	s.w.Comma = Delimiter
	s.w.UseCRLF = true
	if err := s.w.Write(Header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	return s, nil
}

// Write appends one record.
func (s *CSVSink) Write(r Record) error {
	if err := s.w.Write(r.Row()); err != nil {
		return fmt.Errorf("failed to write record %d: %w", s.count+1, err)
	}
	s.count++
	return nil
}

// Count returns the number of records written so far.
func (s *CSVSink) Count() int {
	return s.count
}

// Bytes flushes pending rows and returns the table.
func (s *CSVSink) Bytes() ([]byte, error) {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush table: %w", err)
	}
	return s.buf.Bytes(), nil
}
