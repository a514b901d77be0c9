package imports

import (
	"errors"
	"fmt"
)

// The parse/validation failure kinds raised by Set and Add. Callers can
// match them with errors.Is; the bags also record the wrapped message per
// property so the caller may inspect Errors() instead.
var (
	ErrMissingRequiredField  = errors.New("required field is empty")
	ErrMalformedNumber       = errors.New("value doesn't appear to contain a valid number")
	ErrMalformedDate         = errors.New("value can't be parsed into a valid date")
	ErrMalformedEnum         = errors.New("value can't be parsed into a valid reconcile state")
	ErrUnresolvableReference = errors.New("value can't be mapped back to a known object")
)

// propError prefixes a parse failure with the property's display name, the
// form the error map and the caller both see.
func propError(prop PropType, err error) error {
	return fmt.Errorf("%s: %w", prop.String(), err)
}
