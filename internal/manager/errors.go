package manager

import "errors"

// Sentinel errors for tool registration. All of them indicate configuration
// faults in the host application's tool inventory and should abort setup.
var (
	// ErrDuplicateTool is returned when a tool with the same name is
	// already registered.
	ErrDuplicateTool = errors.New("tool already registered")

	// ErrToolIDCollision is returned when two distinct tool names hash to
	// the same ID.
	ErrToolIDCollision = errors.New("tool id collision")

	// ErrToolIDMismatch is returned when a tool reports an ID that is not
	// the hash of its name.
	ErrToolIDMismatch = errors.New("tool id does not match its name")

	// ErrNilTool is returned when a nil tool is registered.
	ErrNilTool = errors.New("tool cannot be nil")
)
