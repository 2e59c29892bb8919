/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package matching

import (
	"errors"
	"fmt"
)

var (
	ErrLoad          = errors.New("content could not be loaded")
	ErrDataIntegrity = errors.New("unsolvable slot")

	// ErrInvalidTransition is wrapped by every reason a Result is Ignored.
	ErrInvalidTransition = errors.New("ignored")

	ErrNotIdle       = fmt.Errorf("%w: round is not waiting to start", ErrInvalidTransition)
	ErrNotActive     = fmt.Errorf("%w: no slot is awaiting a choice", ErrInvalidTransition)
	ErrNotResolving  = fmt.Errorf("%w: no match is being resolved", ErrInvalidTransition)
	ErrChoiceUsed    = fmt.Errorf("%w: choice has already been used", ErrInvalidTransition)
	ErrUnknownChoice = fmt.Errorf("%w: choice is not in the pool", ErrInvalidTransition)
)

// LoadError reports a content document that is missing or malformed.
type LoadError struct {
	Doc string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Doc, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

// IntegrityError lists the slots of a layout that no catalog item matches.
type IntegrityError struct {
	Layout string
	Slots  []int
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("layout %q: slots %v have no matching catalog item", e.Layout, e.Slots)
}

func (e *IntegrityError) Is(target error) bool {
	return target == ErrDataIntegrity
}
