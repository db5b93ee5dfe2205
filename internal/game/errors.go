package game

import "errors"

var (
	// ErrIllegalAction is returned, wrapped with a reason, when a seat action
	// is rejected. The state is left untouched.
	ErrIllegalAction = errors.New("illegal action")

	// ErrInvalidSeats is returned by Start when the seat list cannot form a
	// table.
	ErrInvalidSeats = errors.New("invalid seats")
)
