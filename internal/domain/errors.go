package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrBadCollection  = errors.New("unknown collection")
	ErrDeletePending  = errors.New("a delete is already pending confirmation")
	ErrNothingPending = errors.New("no delete pending")
)
