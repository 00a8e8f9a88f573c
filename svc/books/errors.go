package books

import (
	"errors"
	"fmt"
)

var (
	ErrBookNotFound = errors.New("book not found")
	ErrInvalidID    = errors.New("invalid book id")
)

// DuplicateError reports existing books whose name equals a name of the
// book being added.
type DuplicateError struct {
	Duplicates []Book
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%d similar books found", len(e.Duplicates))
}
