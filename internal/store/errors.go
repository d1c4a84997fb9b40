package store

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation indicates a required field is missing or out of range.
	ErrValidation = errors.New("validation error")
	// ErrDuplicateName indicates a case-insensitive name collision.
	ErrDuplicateName = errors.New("name already exists")
	// ErrNotFound indicates the named group, link or feed does not exist.
	ErrNotFound = errors.New("not found")

	ErrGroupNotFound = fmt.Errorf("group %w", ErrNotFound)
	ErrLinkNotFound  = fmt.Errorf("link %w", ErrNotFound)
)
