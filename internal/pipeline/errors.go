package pipeline

import (
	"errors"
	"fmt"
)

// ErrNoProducts means every chunk in a run failed extraction. Fatal to the
// run; the daily quota is not consumed.
var ErrNoProducts = errors.New("no products could be extracted from the document")

// ExtractionError is a chunk-scoped failure: the model call errored, or its
// response was not a JSON array. It is logged and absorbed; sibling chunks
// still run.
type ExtractionError struct {
	Chunk int
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("chunk %d extraction failed: %v", e.Chunk, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
