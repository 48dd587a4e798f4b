package plugin

import "errors"

// Sentinel errors for script tools. Load-time errors are configuration
// faults and should abort setup.
var (
	// ErrUnknownName is returned when a script names a category or
	// action this package does not know.
	ErrUnknownName = errors.New("unknown event name")

	// ErrNoReset is returned when a script does not define the global
	// reset function.
	ErrNoReset = errors.New("script does not define reset")

	// ErrNotFunction is returned when a script arms a handler name that
	// is not a global function.
	ErrNotFunction = errors.New("handler is not a function")
)
