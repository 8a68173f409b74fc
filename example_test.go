package json2csv_test

import (
	"encoding/csv"
	"log"
	"os"
	"strings"

	"github.com/arnodel/json2csv"
)

// Convert a stream of JSON documents read from any io.Reader, spelling
// array indices with brackets.  Note that since empty arrays and objects
// are not preserved, "d" and "e" are not part of the headers, but their
// objects still produce a row each.
func ExampleConverter_ConvertFromReader() {
	flattener := json2csv.NewFlattener()
	flattener.ArrayFormatting = json2csv.ArrayFormattingSurrounded
	flattener.ArrayStart = "["
	flattener.ArrayEnd = "]"

	input := strings.NewReader(`{"a": {"b": 1}} {"c": [2]} {"d": []} {"e": {}}`)

	err := json2csv.NewConverter(flattener).ConvertFromReader(input, csv.NewWriter(os.Stdout))
	if err != nil {
		log.Fatal(err)
	}
	// Output:
	// a.b,c[0]
	// 1,
	// ,2
	// ,
	// ,
}

// Convert a slice of already decoded JSON objects, preserving empty arrays
// and objects and writing semicolon-separated output.  "d" and "e" are now
// part of the headers; since nothing else has those keys their columns are
// empty in every row.
func ExampleConverter_ConvertFromValues() {
	flattener := json2csv.NewFlattener()
	flattener.PreserveEmptyArrays = true
	flattener.PreserveEmptyObjects = true

	values := []any{
		map[string]any{"a": map[string]any{"b": 1}},
		map[string]any{"c": []any{2}},
		map[string]any{"d": []any{}},
		map[string]any{"e": map[string]any{}},
	}

	writer := csv.NewWriter(os.Stdout)
	writer.Comma = ';'

	err := json2csv.NewConverter(flattener).ConvertFromValues(values, writer)
	if err != nil {
		log.Fatal(err)
	}
	// Output:
	// a.b;c.0;d;e
	// 1;;;
	// ;2;;
	// ;;;
	// ;;;
}
