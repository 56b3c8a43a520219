package repository

import "errors"

// ErrRunNotFound indicates the requested run is not in the history
var ErrRunNotFound = errors.New("run not found")
