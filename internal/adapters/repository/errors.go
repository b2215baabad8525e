package repository

import "errors"

// Sentinel kinds for snapshot store errors.
var (
	ErrClosed    = errors.New("store closed")
	ErrOpenStore = errors.New("open store failed")
	ErrPersist   = errors.New("persist snapshot failed")
)
