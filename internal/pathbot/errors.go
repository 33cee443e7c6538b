package pathbot

import (
	"fmt"
	"strings"
)

type BaseError string

func (e BaseError) Error() string {
	return string(e)
}

const (
	ErrDecode    BaseError = "decode error"
	ErrTransport BaseError = "transport error"

	ErrMalformed        BaseError = "malformed payload"
	ErrNoShape          BaseError = "payload matches no known shape"
	ErrMissingField     BaseError = "missing field"
	ErrInvalidField     BaseError = "invalid field"
	ErrUnknownEnumValue BaseError = "unknown enum value"
)

// DecodeError reports a payload that could not be turned into a Room,
// Exit or Message. errors.Is(err, ErrDecode) holds for every DecodeError.
type DecodeError struct {
	Field string
	Value string
	Err   error
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString(string(ErrDecode))
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	if e.Field != "" {
		fmt.Fprintf(&b, ": field %q", e.Field)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, " value %q", e.Value)
	}
	return b.String()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// NewUnknownEnumValueError is returned when an enumerated string field holds
// a value this client does not know.
func NewUnknownEnumValueError(field, value string) error {
	return &DecodeError{Field: field, Value: value, Err: ErrUnknownEnumValue}
}

func newMissingFieldError(field string) error {
	return &DecodeError{Field: field, Err: ErrMissingField}
}

func newInvalidFieldError(field string, err error) error {
	return &DecodeError{Field: field, Err: fmt.Errorf("%w: %v", ErrInvalidField, err)}
}

// TransportError covers network failures and non-2xx responses.
// Status is zero when no response was received.
type TransportError struct {
	Status int
	Body   string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		switch {
		case e.Err != nil:
			return fmt.Sprintf("%s: status %d: %v", ErrTransport, e.Status, e.Err)
		case e.Body != "":
			return fmt.Sprintf("%s: status %d: %s", ErrTransport, e.Status, e.Body)
		}
		return fmt.Sprintf("%s: status %d", ErrTransport, e.Status)
	}
	return fmt.Sprintf("%s: %v", ErrTransport, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}
