package domain

import "errors"

// Structural errors returned by mutating floor operations.
// A failed operation leaves the floor unchanged.
//
// "No path found" is deliberately absent: an unreachable goal is a
// normal empty-path outcome of the path finder, not an error.
var (
	ErrInvalidPosition    = errors.New("position out of grid bounds")
	ErrBlockedDestination = errors.New("destination cell is blocked")
	ErrUnknownFloor       = errors.New("unknown floor")
	ErrUnknownBin         = errors.New("unknown bin")
	ErrInvalidFillLevel   = errors.New("fill level must be between 0 and 100")
)
