package fleet

import "errors"

var (
	ErrPlacementImpossible = errors.New("could not place ships")
	ErrSearchExhausted     = errors.New("placement search ran out of steps")
	ErrOutOfBounds         = errors.New("cell is out of bounds")
	ErrAlreadyRevealed     = errors.New("cell is already revealed")
	ErrNotInProgress       = errors.New("game is not in progress")
	ErrUnknownRoster       = errors.New("unknown roster")
	ErrUnknownShipType     = errors.New("unknown ship type")
)

type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}
