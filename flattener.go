package json2csv

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// ArrayFormatting selects how an array index is joined to its parent key
// when flattening.
type ArrayFormatting int

const (
	// ArrayFormattingPlain joins indices like object keys, using the key
	// separator: "tags.0".
	ArrayFormattingPlain ArrayFormatting = iota

	// ArrayFormattingSurrounded wraps indices between ArrayStart and
	// ArrayEnd: "tags[0]" with ArrayStart = "[" and ArrayEnd = "]".
	ArrayFormattingSurrounded
)

// A Flattener converts one nested JSON value into a FlatRow, a flat ordered
// mapping from compound keys to rendered scalar values.  The zero value uses
// an empty key separator, which is rarely wanted; use NewFlattener for the
// usual defaults.
type Flattener struct {
	KeySeparator         string          // joins an object key to its parent key
	ArrayFormatting      ArrayFormatting // how array indices are joined
	ArrayStart, ArrayEnd string          // surround an array index (Surrounded mode only)
	PreserveEmptyArrays  bool            // when true, [] keeps its key, with an empty value
	PreserveEmptyObjects bool            // when true, {} keeps its key, with an empty value
}

// NewFlattener returns a Flattener with the default configuration: keys
// joined with ".", plain array formatting and empty containers dropped.
func NewFlattener() *Flattener {
	return &Flattener{KeySeparator: "."}
}

// A Cell is one flattened leaf: the compound key spelling its position in
// the original value, and the rendered scalar value found there.
type Cell struct {
	Key   string
	Value string

	// path spells the same position in a way that does not depend on the
	// configured separators.  Collision checks compare paths, not keys.
	path string
}

// A FlatRow is the ordered outcome of flattening one JSON object.  Keys
// within a FlatRow are unique.
type FlatRow struct {
	cells []Cell
	index map[string]int
}

// Cells returns the row's cells in traversal order.
func (r *FlatRow) Cells() []Cell {
	return r.cells
}

// Len returns the number of cells in the row.
func (r *FlatRow) Len() int {
	return len(r.cells)
}

// Value returns the rendered value for the given flattened key, and whether
// the key is present in the row.
func (r *FlatRow) Value(key string) (string, bool) {
	i, ok := r.index[key]
	if !ok {
		return "", false
	}
	return r.cells[i].Value, true
}

func (r *FlatRow) insert(key, path, value string) error {
	if _, ok := r.index[key]; ok {
		// Two positions in one object can never share a path, so a repeated
		// key is always a genuine collision.
		return &KeyCollisionError{Key: key}
	}
	r.index[key] = len(r.cells)
	r.cells = append(r.cells, Cell{Key: key, Value: value, path: path})
	return nil
}

// Paths are spelled with control characters so that keys which only look
// the same under the configured separators can still be told apart.  Input
// keys containing these characters will confuse the collision checks.
const (
	pathSeparator = "\x1d" // joins path segments
	indexMark     = "\x1e" // prefixes array index segments
)

// Flatten converts a single top-level JSON object into a FlatRow.  It is a
// pure function of the value and the Flattener configuration.
//
// The value must be a JSON object decoded into Go values the way
// encoding/json does it: objects as map[string]any, arrays as []any and
// scalars as string, bool, nil or one of the numeric types accepted by
// renderScalar (json.Number keeps the number's exact text).  Object members
// are visited in sorted key order, so for a given input the first collision
// reported is always the same.
func (f *Flattener) Flatten(value any) (*FlatRow, error) {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, ErrNotAnObject
	}
	row := &FlatRow{index: make(map[string]int, len(obj))}
	// A top-level empty object flattens to a row with no cells, whatever
	// the preservation settings: there is no key to preserve.
	for _, key := range sortedKeys(obj) {
		if err := f.walk(row, key, key, obj[key]); err != nil {
			return nil, err
		}
	}
	return row, nil
}

func (f *Flattener) walk(row *FlatRow, key, path string, value any) error {
	switch v := value.(type) {
	case map[string]any:
		if len(v) == 0 {
			if f.PreserveEmptyObjects {
				return row.insert(key, path, "")
			}
			return nil
		}
		for _, k := range sortedKeys(v) {
			err := f.walk(row, key+f.KeySeparator+k, path+pathSeparator+k, v[k])
			if err != nil {
				return err
			}
		}
		return nil
	case []any:
		if len(v) == 0 {
			if f.PreserveEmptyArrays {
				return row.insert(key, path, "")
			}
			return nil
		}
		for i, item := range v {
			index := strconv.Itoa(i)
			err := f.walk(row, f.joinIndex(key, index), path+pathSeparator+indexMark+index, item)
			if err != nil {
				return err
			}
		}
		return nil
	default:
		rendered, err := renderScalar(value)
		if err != nil {
			return err
		}
		return row.insert(key, path, rendered)
	}
}

func (f *Flattener) joinIndex(key, index string) string {
	if f.ArrayFormatting == ArrayFormattingSurrounded {
		return key + f.ArrayStart + index + f.ArrayEnd
	}
	return key + f.KeySeparator + index
}

// renderScalar turns a scalar JSON value into the text of its CSV field.
// null becomes an empty field; numbers and booleans keep their JSON text.
func renderScalar(value any) (string, error) {
	if value == nil {
		return "", nil
	}
	switch x := value.(type) {
	case string:
		return x, nil
	case json.Number:
		return x.String(), nil
	case bool:
		return strconv.FormatBool(x), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	default:
		return "", fmt.Errorf("not a JSON scalar value: %T", value)
	}
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
