package petri

import "errors"

// Error types for net construction and firing.
var (
	// ErrDuplicateID is returned when a place or transition id collides
	// with an already declared node of either kind.
	ErrDuplicateID = errors.New("duplicate identifier")

	// ErrUnknownNode is returned when an operation references an
	// undeclared place or transition.
	ErrUnknownNode = errors.New("unknown place or transition")

	// ErrInvalidArc is returned for place→place or transition→transition arcs.
	ErrInvalidArc = errors.New("invalid arc: endpoints must connect a place and a transition")

	// ErrNotEnabled is returned when firing a transition whose preset is
	// not fully marked. This is a caller contract violation, never
	// recovered silently.
	ErrNotEnabled = errors.New("transition not enabled")
)
