// Package fieldvalue builds the typed mutation payload for a project
// field update. Build is a pure function over field metadata and a raw
// string value, which keeps it testable without any network mocking.
package fieldvalue

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/danho/pvfield/internal/domain"
)

var (
	// ErrOptionNotFound indicates no SINGLE_SELECT option with the
	// requested name exists on the field.
	ErrOptionNotFound = errors.New("option is not found")
	// ErrIterationNotFound indicates no iteration with the requested
	// title exists in either iteration set of the field.
	ErrIterationNotFound = errors.New("iteration is not found")
	// ErrUnsupportedFieldType indicates a field data type outside the
	// five supported kinds.
	ErrUnsupportedFieldType = errors.New("unsupported field data type")
	// ErrInvalidNumber indicates a NUMBER field value that does not
	// parse as a decimal number.
	ErrInvalidNumber = errors.New("invalid number")
)

// Build maps a raw string value onto the discriminated payload shape
// required by field's data type. TEXT and DATE are passed through
// unvalidated; NUMBER must parse as a decimal; SINGLE_SELECT option
// names and ITERATION titles are resolved to their opaque ids by exact,
// case-sensitive match. For iterations, completed iterations are
// searched before active ones and the first match wins.
func Build(field domain.Field, value string) (domain.FieldValue, error) {
	switch field.DataType {
	case domain.FieldTypeText:
		return domain.FieldValue{Text: &value}, nil

	case domain.FieldTypeNumber:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return domain.FieldValue{}, fmt.Errorf("%w: %q", ErrInvalidNumber, value)
		}
		return domain.FieldValue{Number: &n}, nil

	case domain.FieldTypeDate:
		return domain.FieldValue{Date: &value}, nil

	case domain.FieldTypeSingleSelect:
		for _, option := range field.Options {
			if option.Name == value {
				id := option.ID
				return domain.FieldValue{SingleSelectOptionID: &id}, nil
			}
		}
		return domain.FieldValue{}, fmt.Errorf("%w: %s", ErrOptionNotFound, value)

	case domain.FieldTypeIteration:
		if field.Configuration != nil {
			for _, iteration := range field.Configuration.CompletedIterations {
				if iteration.Title == value {
					id := iteration.ID
					return domain.FieldValue{IterationID: &id}, nil
				}
			}
			for _, iteration := range field.Configuration.Iterations {
				if iteration.Title == value {
					id := iteration.ID
					return domain.FieldValue{IterationID: &id}, nil
				}
			}
		}
		return domain.FieldValue{}, fmt.Errorf("%w: %s", ErrIterationNotFound, value)

	default:
		return domain.FieldValue{}, fmt.Errorf("%w: %s", ErrUnsupportedFieldType, field.DataType)
	}
}
