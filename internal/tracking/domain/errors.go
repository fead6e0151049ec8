package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the class of every tracking precondition failure.
var ErrInvalidArgument = errors.New("invalid argument")

var (
	// ErrMissingIdentity is returned when no caller identity is supplied.
	ErrMissingIdentity = &ArgumentError{Param: "identity", Reason: "identity is nil"}
	// ErrMissingEntityInfo is returned when an update targets an entity without metadata.
	ErrMissingEntityInfo = &ArgumentError{Param: "EntityInfo", Reason: "EntityInfo is nil"}
)

// ArgumentError names the parameter that violated a precondition.
type ArgumentError struct {
	Param  string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Param, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidArgument.
func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}
