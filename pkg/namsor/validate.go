package namsor

import (
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/hashicorp/go-multierror"
)

// subdivisionPattern matches ISO 3166-2:IN codes such as "IN-KA".
var subdivisionPattern = regexp.MustCompile(`^IN-[A-Z]{2}$`)

// Validate enforces the batch bounds for op and returns the entries that will be
// transmitted, in input order.
//
// The upper bound applies to the raw count. The lower bound applies after entries
// failing op.Require are dropped: a strict requirement reports the missing field
// combination, every other operation reports an empty batch.
func Validate(op *Operation, entries []NameEntry) ([]NameEntry, error) {
	if len(entries) == 0 {
		return nil, &EmptyBatchError{Parameter: op.Parameter, Noun: op.Noun}
	}
	if len(entries) > MaxBatchSize {
		return nil, &BatchTooLargeError{Parameter: op.Parameter, Noun: op.Noun, Count: len(entries)}
	}

	kept := make([]NameEntry, 0, len(entries))
	var result *multierror.Error
	for i, e := range entries {
		if !op.Require.Satisfied(e) {
			continue
		}
		if err := validateCodes(op, e); err != nil {
			result = multierror.Append(result, fmt.Errorf("entry %d: %w", i+1, err))
			continue
		}
		kept = append(kept, e)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, &InvalidEntryError{Parameter: op.Parameter, Err: err}
	}

	if len(kept) == 0 {
		if op.Require.Strict {
			return nil, &MissingRequiredFieldsError{Parameter: op.Parameter, Fields: op.Require.Labels}
		}
		return nil, &EmptyBatchError{Parameter: op.Parameter, Noun: op.Noun}
	}

	return kept, nil
}

// validateCodes checks the format of the codes op actually transmits.
func validateCodes(op *Operation, e NameEntry) error {
	codes := NameEntry{}
	var rules []*validation.FieldRules

	if op.Country != CountryIgnored {
		codes.CountryIso2 = e.Value(FieldCountryIso2)
		rules = append(rules, validation.Field(&codes.CountryIso2, is.CountryCode2))
	}
	if op.sends(FieldSubdivisionIso) {
		codes.SubdivisionIso = e.Value(FieldSubdivisionIso)
		rules = append(rules, validation.Field(&codes.SubdivisionIso,
			validation.Match(subdivisionPattern).Error("must be an ISO 3166-2:IN code such as IN-KA")))
	}
	if len(rules) == 0 {
		return nil
	}

	return validation.ValidateStruct(&codes, rules...)
}

// sends reports whether f is one of the serialized fields of op.
func (o *Operation) sends(f Field) bool {
	for _, of := range o.Fields {
		if of == f {
			return true
		}
	}
	return false
}
