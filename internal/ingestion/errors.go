package ingestion

import (
	"errors"
	"fmt"
)

// ErrDataUnavailable matches every DataUnavailableError via errors.Is.
var ErrDataUnavailable = errors.New("dataset unavailable")

// DataUnavailableError reports that the dataset could not be fetched or
// could not be read as a table with the expected columns.
type DataUnavailableError struct {
	Source string
	Err    error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("dataset unavailable from %s: %v", e.Source, e.Err)
}

func (e *DataUnavailableError) Unwrap() error {
	return e.Err
}

func (e *DataUnavailableError) Is(target error) bool {
	return target == ErrDataUnavailable
}
