package service

import "errors"

// ErrReadOnly is returned by write operations on a service built without a
// bulk store.
var ErrReadOnly = errors.New("service is read-only")
