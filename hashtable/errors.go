package hashtable

import (
	"errors"
	"fmt"

	"github.com/entable/entable/content"
)

var (
	ErrInvalidAddress  = errors.New("hashtable: invalid address")
	ErrAddressMismatch = errors.New("hashtable: content does not match address")
	ErrNoBackends      = errors.New("hashtable: no backends configured")
)

// DecodeError reports stored bytes that failed to parse into the expected
// typed structure. Callers decide whether corruption is fatal.
type DecodeError struct {
	Table   string
	Address content.Address
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("hashtable: decode %s/%s: %v", e.Table, e.Address, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsDecode reports whether err is (or wraps) a DecodeError.
func IsDecode(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
