package cli

import "fmt"

type positionError struct {
	pos int
	max int
}

func (e positionError) Error() string {
	if e.max == 0 {
		return fmt.Sprintf("no task at position %d: the list is empty", e.pos)
	}
	return fmt.Sprintf("no task at position %d (want 1..%d)", e.pos, e.max)
}

func errPosition(pos, max int) error {
	return positionError{pos: pos, max: max}
}
