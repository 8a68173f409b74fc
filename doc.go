// Package json2csv converts a sequence of JSON objects into CSV records.
//
// Each top-level JSON object in the input becomes one CSV row.  Since CSV
// has no notion of nesting, objects are first "flattened": every leaf value
// gets a compound key spelling the path from the root, so that
//
//	{"a": {"b": [1, 2]}}
//
// becomes the flat row
//
//	a.b.0 = 1
//	a.b.1 = 2
//
// The CSV headers are the union of all the flattened keys across the whole
// input, sorted alphabetically.  Rows keep their arrival order and emit an
// empty field for every header key they lack.
//
// How keys are built is configurable through a Flattener: the key separator,
// the way array indices are spelled, and whether empty arrays and objects
// get a column of their own.  The CSV format itself (delimiter, quoting,
// line endings) belongs to the encoding/csv Writer the caller provides.
//
// If two distinct paths end up with the same flattened key - for example
// {"a": {"b": 1}} and {"a.b": 2} with the default "." separator - the
// conversion fails with a KeyCollisionError rather than silently merging
// the columns.  Errors are reported before anything is written, so a failed
// conversion produces no output at all.
//
// The CLI utility is in the directory cmd/json2csv. You can install it with:
//
//	go install github.com/arnodel/json2csv/cmd/json2csv
package json2csv
