package simulator

import (
	"errors"
	"fmt"
)

// ErrDuplicateID matches any *DuplicateIDError via errors.Is.
var ErrDuplicateID = errors.New("duplicate ant id")

type DuplicateIDError struct {
	ID uint64
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("ant ID %d already exists", e.ID)
}

func (e *DuplicateIDError) Is(target error) bool { return target == ErrDuplicateID }
