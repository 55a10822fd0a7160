package namsor

import (
	"errors"
	"fmt"
)

// MaxBatchSize is the largest number of entries the batch endpoints accept.
const MaxBatchSize = 200

// ErrUnknownOperation is returned when a (resource, operation) pair is not registered.
var ErrUnknownOperation = errors.New("unknown operation")

// EmptyBatchError is returned when a batch has no usable entries.
type EmptyBatchError struct {
	// Parameter is the display name of the input collection (e.g. "Names to Analyze").
	Parameter string
	// Noun is what the collection holds ("name" or "proper noun").
	Noun string
}

func (e *EmptyBatchError) Error() string {
	return fmt.Sprintf("Please provide at least one %s in the '%s' parameter.", e.Noun, e.Parameter)
}

// BatchTooLargeError is returned when more than MaxBatchSize raw entries are supplied.
type BatchTooLargeError struct {
	Parameter string
	Noun      string
	Count     int
}

func (e *BatchTooLargeError) Error() string {
	if e.Noun == nounProperNoun {
		return fmt.Sprintf(
			"Namsor API supports maximum %d items per request. Please reduce the number of proper nouns to %d or fewer (got %d).",
			MaxBatchSize, MaxBatchSize, e.Count)
	}
	return fmt.Sprintf(
		"Namsor API supports maximum %d names per request. Please reduce the number of names to %d or fewer (got %d).",
		MaxBatchSize, MaxBatchSize, e.Count)
}

// MissingRequiredFieldsError is returned when an operation needs a combination of
// fields and no entry carries all of them.
type MissingRequiredFieldsError struct {
	Parameter string
	// Fields are the display names of the required fields.
	Fields []string
}

func (e *MissingRequiredFieldsError) Error() string {
	return fmt.Sprintf("Please provide %s for each entry in the '%s' parameter.",
		joinFieldNames(e.Fields), e.Parameter)
}

// InvalidEntryError reports entries whose codes are malformed. Err is usually a
// *multierror.Error with one element per offending entry.
type InvalidEntryError struct {
	Parameter string
	Err       error
}

func (e *InvalidEntryError) Error() string {
	return fmt.Sprintf("invalid entries in '%s': %v", e.Parameter, e.Err)
}

func (e *InvalidEntryError) Unwrap() error {
	return e.Err
}

// joinFieldNames renders "A", "A and B" or "A, B, and C".
func joinFieldNames(fields []string) string {
	switch len(fields) {
	case 0:
		return ""
	case 1:
		return fields[0]
	case 2:
		return fields[0] + " and " + fields[1]
	}

	out := ""
	for i, f := range fields {
		switch {
		case i == len(fields)-1:
			out += "and " + f
		default:
			out += f + ", "
		}
	}
	return out
}
