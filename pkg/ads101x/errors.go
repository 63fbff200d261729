package ads101x

import "errors"

var (
	// ErrFieldGeometry means a bit field descriptor does not fit inside its
	// register. Raised at construction, before any bus traffic.
	ErrFieldGeometry = errors.New("bit field does not fit the register")

	// ErrValueRange means a value written to a field does not fit in the
	// field's bit width.
	ErrValueRange = errors.New("value does not fit the field width")

	// ErrReadOnly means a write was attempted on a read-only field.
	ErrReadOnly = errors.New("field is read-only")
)
