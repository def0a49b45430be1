package chaos

import "github.com/pkg/errors"

// Threading errors through every formula of the divider would add a lot of
// noise for conditions that indicate a bug rather than bad input. Instead, the
// numeric code panics, and the public entry points recover to convert to an
// error. Numeric domain errors do NOT go through here: they become the
// infinity sentinel and the sample is discarded.

// panicError wraps the errors raised by fatalf, so that foreign panics can be
// told apart and re-raised.
type panicError struct {
	err error
}

// Panic with an error wrapping cause.
func fatalf(cause error, format string, args ...interface{}) {
	panic(panicError{errors.Wrapf(cause, format, args...)})
}

// HandlePanicRecover converts a value recovered from fatalf into an error. Any
// other panic is re-raised. Use it in a deferred function:
//
//	defer func() {
//		if recovered := HandlePanicRecover(recover()); recovered != nil {
//			err = recovered
//		}
//	}()
func HandlePanicRecover(r interface{}) error {
	if r != nil {
		if pe, ok := r.(panicError); ok {
			return pe.err
		}
		panic(r)
	}
	return nil
}
