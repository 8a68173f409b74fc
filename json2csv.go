package json2csv

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
)

// A Converter turns a sequence of JSON objects into CSV records, flattening
// each object with its Flattener.  The headers of the CSV are the union of
// all the keys of the flattened objects, sorted alphabetically; rows are
// written in arrival order, with an empty field for each header key the row
// lacks.
//
// Because the full header set must be known before the header row can be
// written, a Converter buffers all the flattened rows and writes nothing
// until the whole input has been consumed.  In particular a conversion that
// fails writes nothing at all.
type Converter struct {
	flattener *Flattener
}

// NewConverter returns a Converter flattening its input with the given
// Flattener (or the default one if it is nil).
func NewConverter(flattener *Flattener) *Converter {
	if flattener == nil {
		flattener = NewFlattener()
	}
	return &Converter{flattener: flattener}
}

// ConvertFromValues flattens each value in the slice and writes the
// resulting CSV to w.  Every value must be a JSON object decoded into Go
// values as described in [Flattener.Flatten].
//
// The error is non-nil if a value is not an object, if flattening produces
// a key collision (within one value or between two values), or if writing
// the CSV fails.  No output is written in the first two cases.
func (c *Converter) ConvertFromValues(values []any, w *csv.Writer) error {
	rows := make([]*FlatRow, 0, len(values))
	headers := make(map[string]string)
	for i, value := range values {
		row, err := c.flattener.Flatten(value)
		if err != nil {
			return fmt.Errorf("value %d: %w", i, err)
		}
		if err := foldHeaders(headers, row); err != nil {
			return err
		}
		rows = append(rows, row)
	}
	return writeRows(w, headers, rows)
}

// ConvertFromReader reads consecutive whitespace-separated JSON documents
// from r, flattens each of them and writes the resulting CSV to w.  The
// input is not a JSON array but a concatenation of top-level documents, as
// in JSON Lines (newlines between documents are not required).
//
// The error is non-nil if the input contains a document that is malformed
// or not an object (a *ParseError locating the document), if flattening
// produces a key collision, or if writing the CSV fails.  No output is
// written in the first two cases.
func (c *Converter) ConvertFromReader(r io.Reader, w *csv.Writer) error {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()
	var rows []*FlatRow
	headers := make(map[string]string)
	for doc := 0; ; doc++ {
		var value any
		if err := decoder.Decode(&value); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return &ParseError{Doc: doc, Offset: decoder.InputOffset(), Err: err}
		}
		if _, ok := value.(map[string]any); !ok {
			return &ParseError{Doc: doc, Offset: decoder.InputOffset(), Err: ErrNotAnObject}
		}
		row, err := c.flattener.Flatten(value)
		if err != nil {
			return fmt.Errorf("document %d: %w", doc, err)
		}
		if err := foldHeaders(headers, row); err != nil {
			return err
		}
		rows = append(rows, row)
	}
	return writeRows(w, headers, rows)
}

// foldHeaders merges the row's keys into the running header set.  Each
// header remembers the path that produced it: meeting the same key again
// with a different path means two rows disagree about what the key spells,
// which is a collision.
func foldHeaders(headers map[string]string, row *FlatRow) error {
	for _, cell := range row.cells {
		path, ok := headers[cell.Key]
		if !ok {
			headers[cell.Key] = cell.path
		} else if path != cell.path {
			return &KeyCollisionError{Key: cell.Key}
		}
	}
	return nil
}

// writeRows writes the header row followed by one record per flattened row,
// then flushes the writer.  When there are no headers at all the header row
// is skipped, but each input object still emits one (empty) record.
func writeRows(w *csv.Writer, headers map[string]string, rows []*FlatRow) error {
	keys := make([]string, 0, len(headers))
	for key := range headers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	if len(keys) > 0 {
		if err := w.Write(keys); err != nil {
			return err
		}
	}
	record := make([]string, len(keys))
	for _, row := range rows {
		for i, key := range keys {
			record[i], _ = row.Value(key)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
