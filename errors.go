package json2csv

import (
	"errors"
	"fmt"
)

// ErrNotAnObject is returned when a top-level JSON value is not an object.
// Only objects can become CSV rows.
var ErrNotAnObject = errors.New("top-level JSON value is not an object")

// A KeyCollisionError reports that two distinct paths in the input produced
// the same key after flattening, e.g. {"a": {"b": 1}} and {"a.b": 2} with
// the default "." separator.  The colliding paths may belong to the same
// object or to two different objects in the same conversion.
type KeyCollisionError struct {
	Key string // the flattened key both paths produced
}

func (e *KeyCollisionError) Error() string {
	return fmt.Sprintf("flattened key %q already produced by a different path", e.Key)
}

// A ParseError reports an invalid document in a stream of JSON documents:
// either the bytes are not valid JSON or the top-level value is not an
// object.  Doc and Offset locate the offending document in the stream.
type ParseError struct {
	Doc    int   // index of the offending document, starting at 0
	Offset int64 // byte offset into the stream at which reading stopped
	Err    error // the underlying decoding error, or ErrNotAnObject
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("document %d (byte %d): %s", e.Doc, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
