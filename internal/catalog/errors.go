package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrDataUnavailable reports a content document that could not be
	// fetched or was malformed.
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrUnknownModule reports a module ID absent from the loaded catalog.
	ErrUnknownModule = errors.New("unknown module")
)

// DataUnavailableError names the document that failed to load.
type DataUnavailableError struct {
	Doc string
	Err error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrDataUnavailable, e.Doc, e.Err)
}

func (e *DataUnavailableError) Unwrap() []error {
	return []error{ErrDataUnavailable, e.Err}
}

func unavailable(doc string, err error) error {
	return &DataUnavailableError{Doc: doc, Err: err}
}

// UnknownModuleError wraps ErrUnknownModule with the offending ID.
func UnknownModuleError(id string) error {
	return fmt.Errorf("%w: %q", ErrUnknownModule, id)
}
