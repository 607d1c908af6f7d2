package apitests

import (
	"fmt"
	"strconv"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// FieldError means that a response did not have a required property, or the property had the
// wrong type.
type FieldError struct {
	Field    string
	Expected string
	Actual   ldvalue.Value
	Missing  bool
}

func (e *FieldError) Error() string {
	if e.Missing {
		return fmt.Sprintf("response is missing required field %q", e.Field)
	}
	return fmt.Sprintf("field %q should be %s, but was %s", e.Field, e.Expected, e.Actual.JSONString())
}

func getField(payload ldvalue.Value, name string) (ldvalue.Value, error) {
	if payload.Type() != ldvalue.ObjectType {
		return ldvalue.Null(), &FieldError{Field: name, Missing: true}
	}
	for _, key := range payload.Keys() {
		if key == name {
			return payload.GetByKey(name), nil
		}
	}
	return ldvalue.Null(), &FieldError{Field: name, Missing: true}
}

func nonNullField(payload ldvalue.Value, name string) (ldvalue.Value, error) {
	value, err := getField(payload, name)
	if err != nil {
		return value, err
	}
	if value.IsNull() {
		return value, &FieldError{Field: name, Expected: "a non-null value", Actual: value}
	}
	return value, nil
}

func numberField(payload ldvalue.Value, name string) (float64, error) {
	value, err := getField(payload, name)
	if err != nil {
		return 0, err
	}
	if !value.IsNumber() {
		return 0, &FieldError{Field: name, Expected: "a number", Actual: value}
	}
	return value.Float64Value(), nil
}

func stringField(payload ldvalue.Value, name string) (string, error) {
	value, err := getField(payload, name)
	if err != nil {
		return "", err
	}
	if !value.IsString() {
		return "", &FieldError{Field: name, Expected: "a string", Actual: value}
	}
	return value.StringValue(), nil
}

func boolLikeField(payload ldvalue.Value, name string) (bool, error) {
	value, err := getField(payload, name)
	if err != nil {
		return false, err
	}
	switch {
	case value.IsBool():
		return value.BoolValue(), nil
	case value.IsNumber() && (value.Float64Value() == 0 || value.Float64Value() == 1):
		return value.Float64Value() == 1, nil
	}
	return false, &FieldError{Field: name, Expected: "a boolean", Actual: value}
}

// formatNumber shows a number the way it appeared in the JSON response.
func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
